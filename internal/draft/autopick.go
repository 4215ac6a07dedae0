package draft

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/models"
)

// resolveAutoPickLocked selects a player for userID without committing:
// queue entries in stored order first, then best available by score with
// catalog order as the tie-break. Entries already drafted or blocked by a
// position cap are skipped. Returns false when nothing is eligible.
func (e *Engine) resolveAutoPickLocked(userID string) (models.PlayerSummary, bool) {
	team := e.ensureTeamLocked(userID, "")

	for _, pid := range e.queues[userID] {
		if _, taken := e.drafted[pid]; taken {
			continue
		}
		p, ok := e.catalog.Lookup(pid)
		if !ok {
			continue
		}
		if e.checkPositionLimitLocked(team, p.Position) != nil {
			continue
		}
		return p.Summary(), true
	}

	type candidate struct {
		player models.Player
		points float64
	}
	available := make([]candidate, 0)
	for _, p := range e.catalog.All() {
		if _, taken := e.drafted[p.ID]; taken {
			continue
		}
		available = append(available, candidate{player: p, points: e.score(p.Stats)})
	}
	sort.SliceStable(available, func(i, j int) bool {
		return available[i].points > available[j].points
	})
	for _, c := range available {
		if e.checkPositionLimitLocked(team, c.player.Position) != nil {
			continue
		}
		return c.player.Summary(), true
	}
	return models.PlayerSummary{}, false
}

// autoPickForLocked resolves and commits an auto-pick for userID. When no
// player is eligible the turn is skipped: stalling here would leave tick
// unable to make progress for the rest of the draft.
func (e *Engine) autoPickForLocked(userID string) bool {
	player, ok := e.resolveAutoPickLocked(userID)
	if !ok {
		log.Warn().Str("user_id", userID).Msg("no eligible player for auto-pick; skipping turn")
		e.skipTurnLocked(userID)
		return false
	}
	if err := e.commitPickLocked(userID, player, false, models.DraftEventAutoPick); err != nil {
		// The resolver pre-validated against the same rules; a failure here
		// means the state changed underneath us, which the single lock rules
		// out. Skip defensively rather than loop.
		log.Error().Err(err).Str("user_id", userID).Str("player_id", player.ID).Msg("auto-pick commit failed")
		e.skipTurnLocked(userID)
		return false
	}
	return true
}
