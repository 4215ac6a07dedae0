package draft

import (
	"fmt"

	"github.com/mcdev12/draftroom/internal/models"
)

// countPositionsLocked tallies the team's current picks by position. Picks
// that no longer resolve in the catalog are not counted.
func (e *Engine) countPositionsLocked(team *models.Team) map[models.Position]int {
	counts := make(map[models.Position]int)
	for _, pid := range team.Picks {
		p, ok := e.catalog.Lookup(pid)
		if !ok {
			continue
		}
		counts[p.Position]++
	}
	return counts
}

// checkPositionLimitLocked decides whether the team may draft a player at the
// candidate position. Enforcement off, or a cap of zero or unset, always
// passes. The same check gates direct picks and auto-picks.
func (e *Engine) checkPositionLimitLocked(team *models.Team, pos models.Position) error {
	if !e.enforceLimits {
		return nil
	}
	limit, ok := e.positionLimits[pos]
	if !ok || limit <= 0 {
		return nil
	}
	if e.countPositionsLocked(team)[pos] >= limit {
		return fmt.Errorf("%w: max %d %s", ErrPositionLimit, limit, pos)
	}
	return nil
}
