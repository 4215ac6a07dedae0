package models

// DraftEventType identifies what produced the last notable draft event.
type DraftEventType string

const (
	DraftEventPick     DraftEventType = "PICK"
	DraftEventAutoPick DraftEventType = "AUTOPICK"
	DraftEventSkipped  DraftEventType = "SKIPPED"
)

// DraftEvent is the single retained "last event". PICK and AUTOPICK carry a
// player summary; SKIPPED carries only the acting user.
type DraftEvent struct {
	Type   DraftEventType `json:"type"`
	UserID string         `json:"userId"`
	Player *PlayerSummary `json:"player,omitempty"`
}

// DraftSnapshot is the wire view of the whole draft aggregate. PickEndsAt is
// epoch milliseconds, absent while the draft is inactive.
type DraftSnapshot struct {
	IsActive         bool             `json:"isActive"`
	OnTheClockUserID string           `json:"onTheClockUserId,omitempty"`
	PickEndsAt       *int64           `json:"pickEndsAt,omitempty"`
	PickSeconds      int              `json:"pickSeconds"`
	Order            []string         `json:"order"`
	AutoPick         bool             `json:"autoPick"`

	Round       int `json:"round"`
	PickIndex   int `json:"pickIndex"`
	Dir         int `json:"dir"`
	TotalRounds int `json:"totalRounds"`

	HumanUserID string      `json:"humanUserId,omitempty"`
	LastEvent   *DraftEvent `json:"lastEvent,omitempty"`

	EnforceLimits  bool             `json:"enforceLimits"`
	PositionLimits map[Position]int `json:"positionLimits"`

	AllowRemoveAnytime bool `json:"allowRemoveAnytime"`

	DraftedIDs []string `json:"draftedIds"`
}
