// Package catalog serves the static player pool. The pool ships as an
// embedded JSON asset and is read-only for the life of the process.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/mcdev12/draftroom/internal/models"
)

//go:embed players.json
var assets embed.FS

// maxPlayers caps the pool size regardless of asset length.
const maxPlayers = 50

// Catalog is the read-only player pool the draft engine consults.
type Catalog interface {
	// Lookup resolves a player by id.
	Lookup(id string) (models.Player, bool)
	// All returns every player in catalog order. Callers must not mutate
	// the returned slice.
	All() []models.Player
}

// Static is an in-memory Catalog backed by a fixed slice.
type Static struct {
	players []models.Player
	byID    map[string]int
}

// New builds a Static catalog from a player slice, capped at maxPlayers.
// Duplicate ids are rejected.
func New(players []models.Player) (*Static, error) {
	if len(players) > maxPlayers {
		players = players[:maxPlayers]
	}
	byID := make(map[string]int, len(players))
	for i, p := range players {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: player at index %d has empty id", i)
		}
		if _, ok := byID[p.ID]; ok {
			return nil, fmt.Errorf("catalog: duplicate player id %q", p.ID)
		}
		byID[p.ID] = i
	}
	return &Static{players: players, byID: byID}, nil
}

// Load parses the embedded player asset.
func Load() (*Static, error) {
	data, err := assets.ReadFile("players.json")
	if err != nil {
		return nil, fmt.Errorf("read players asset: %w", err)
	}
	var players []models.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("parse players asset: %w", err)
	}
	return New(players)
}

// Lookup implements Catalog.
func (s *Static) Lookup(id string) (models.Player, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Player{}, false
	}
	return s.players[i], true
}

// All implements Catalog.
func (s *Static) All() []models.Player {
	return s.players
}

// Size returns the pool size.
func (s *Static) Size() int {
	return len(s.players)
}
