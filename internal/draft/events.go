package draft

import (
	"time"

	"github.com/mcdev12/draftroom/internal/models"
)

// Event types fanned out to subscribers beyond the three pick events, whose
// types are the models.DraftEventType values.
const (
	EventDraftInitialized = "DRAFT_INITIALIZED"
	EventDraftReset       = "DRAFT_RESET"
	EventDraftCompleted   = "DRAFT_COMPLETED"
	EventSettingsUpdated  = "SETTINGS_UPDATED"
)

// Event is what the engine hands to publishers on every state change worth
// broadcasting.
type Event struct {
	Type    string
	UserID  string
	Payload any
}

// EventPublisher receives engine events. The engine calls Publish while
// holding its state lock, so implementations must not block: buffer, drop or
// hand off to a goroutine.
type EventPublisher interface {
	Publish(event Event)
}

// DraftInitializedPayload announces a fresh league.
type DraftInitializedPayload struct {
	Order       []string `json:"order"`
	TotalRounds int      `json:"totalRounds"`
	PickSeconds int      `json:"pickSeconds"`
}

// DraftCompletedPayload announces the terminal transition.
type DraftCompletedPayload struct {
	TotalRounds int       `json:"totalRounds"`
	CompletedAt time.Time `json:"completedAt"`
}

// SettingsUpdatedPayload carries the effective settings after an update.
type SettingsUpdatedPayload struct {
	PickSeconds        int                     `json:"pickSeconds"`
	AutoPick           bool                    `json:"autoPick"`
	EnforceLimits      bool                    `json:"enforceLimits"`
	PositionLimits     map[models.Position]int `json:"positionLimits"`
	AllowRemoveAnytime bool                    `json:"allowRemoveAnytime"`
}

func (e *Engine) publish(eventType, userID string, payload any) {
	if e.publisher == nil {
		return
	}
	e.publisher.Publish(Event{Type: eventType, UserID: userID, Payload: payload})
}
