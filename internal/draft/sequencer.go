package draft

import "github.com/rs/zerolog/log"

// Bounds on configured rounds, applied both to explicit values and to the
// derived default.
const (
	minRounds = 1
	maxRounds = 40
)

// DeriveRounds computes the default round count for a pool of poolSize players
// split across teamCount seats: floor(poolSize/teamCount) clamped to
// [minRounds, maxRounds].
func DeriveRounds(poolSize, teamCount int) int {
	if teamCount <= 0 {
		return defaultRounds
	}
	rounds := poolSize / teamCount
	if rounds < minRounds {
		rounds = minRounds
	}
	if rounds > maxRounds {
		rounds = maxRounds
	}
	return rounds
}

// advanceLocked moves the draft to the next seat under snake rules. Walking
// off either end of the order bumps the round and reverses direction; running
// past the final round ends the draft. Callers hold e.mu.
func (e *Engine) advanceLocked() {
	e.pickIndex += e.dir

	if e.pickIndex < 0 || e.pickIndex >= len(e.order) {
		e.round++
		if e.round > e.totalRounds {
			e.active = false
			e.onClock = ""
			e.deadline = zeroTime
			e.lastEvent = nil
			log.Info().Int("rounds", e.totalRounds).Msg("draft complete")
			e.publish(EventDraftCompleted, "", DraftCompletedPayload{
				TotalRounds: e.totalRounds,
				CompletedAt: e.clock.Now().UTC(),
			})
			return
		}
		e.dir = -e.dir
		if e.dir == 1 {
			e.pickIndex = 0
		} else {
			e.pickIndex = len(e.order) - 1
		}
	}

	e.onClock = e.order[e.pickIndex]
	e.deadline = e.clock.Now().Add(e.pickDuration())
}
