package models

// Position is a roster position in the player pool.
type Position string

const (
	PositionCatcher     Position = "C"
	PositionFirstBase   Position = "1B"
	PositionSecondBase  Position = "2B"
	PositionThirdBase   Position = "3B"
	PositionShortstop   Position = "SS"
	PositionOutfield    Position = "OF"
	PositionUtility     Position = "UT"
	PositionStarter     Position = "SP"
	PositionReliever    Position = "RP"
)

// ValidPositions lists every position the catalog may carry, in display order.
var ValidPositions = []Position{
	PositionCatcher,
	PositionFirstBase,
	PositionSecondBase,
	PositionThirdBase,
	PositionShortstop,
	PositionOutfield,
	PositionUtility,
	PositionStarter,
	PositionReliever,
}

// Stats is a sparse stat bag. Counting stats default to zero; rate stats are
// pointers so an absent AVG/ERA/WHIP is distinguishable from a literal zero.
type Stats struct {
	HR  int `json:"HR,omitempty"`
	RBI int `json:"RBI,omitempty"`
	R   int `json:"R,omitempty"`
	SB  int `json:"SB,omitempty"`

	AVG *float64 `json:"AVG,omitempty"`

	W  int `json:"W,omitempty"`
	SV int `json:"SV,omitempty"`
	K  int `json:"K,omitempty"`

	ERA  *float64 `json:"ERA,omitempty"`
	WHIP *float64 `json:"WHIP,omitempty"`
}

// Player is an immutable catalog entry.
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Team     string   `json:"team"`
	Position Position `json:"position"`
	Stats    Stats    `json:"stats"`
}

// Summary returns the compact form carried on draft events and queue reads.
func (p Player) Summary() PlayerSummary {
	return PlayerSummary{
		ID:       p.ID,
		Name:     p.Name,
		Team:     p.Team,
		Position: p.Position,
	}
}

// PlayerSummary is the compact player shape embedded in draft events.
type PlayerSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Team     string   `json:"team"`
	Position Position `json:"position"`
}
