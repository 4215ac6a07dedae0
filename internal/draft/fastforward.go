package draft

import "github.com/rs/zerolog/log"

// fastForwardLocked auto-plays every non-human seat until the human is on
// the clock or the draft ends, bounded by maxFastForwardSteps. Each step
// commits an auto-pick or skips, so the sequencer always progresses; the
// bound is a safety valve against misconfiguration. On arrival the human's
// deadline is refreshed to a full pick duration. Callers hold e.mu.
func (e *Engine) fastForwardLocked() {
	if e.inFastForward {
		return
	}
	e.inFastForward = true
	defer func() { e.inFastForward = false }()

	steps := 0
	for e.active && e.humanUserID != "" && e.onClock != "" && e.onClock != e.humanUserID {
		if steps >= e.maxFastForwardSteps {
			log.Warn().
				Int("max_steps", e.maxFastForwardSteps).
				Str("on_clock", e.onClock).
				Msg("fast-forward step budget exhausted")
			break
		}
		e.autoPickForLocked(e.onClock)
		steps++
	}

	if e.active && e.humanUserID != "" && e.onClock == e.humanUserID {
		e.deadline = e.clock.Now().Add(e.pickDuration())
	}
}
