package models

// Team is a drafting seat: the owning user, its picks in draft order, and the
// derived point total. Created lazily on first reference to a user id.
type Team struct {
	UserID string   `json:"userId"`
	Name   string   `json:"name"`
	Picks  []string `json:"picks"`
	Points float64  `json:"points"`
}

// TeamStanding is the leaderboard row shape.
type TeamStanding struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// RosterEntryStatus marks whether a roster entry still resolves in the catalog.
type RosterEntryStatus string

const (
	RosterEntryOK      RosterEntryStatus = "OK"
	RosterEntryUnknown RosterEntryStatus = "UNKNOWN"
)

// RosterEntry is one pick on a team detail view, with its computed points.
type RosterEntry struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Position Position          `json:"position"`
	Team     string            `json:"team"`
	Stats    Stats             `json:"stats"`
	Points   float64           `json:"points"`
	Status   RosterEntryStatus `json:"status"`
}

// TeamDetail is the full per-team view returned by the team endpoint.
type TeamDetail struct {
	UserID      string        `json:"userId"`
	TeamName    string        `json:"teamName"`
	TotalPoints float64       `json:"totalPoints"`
	Players     []RosterEntry `json:"players"`
}
