package draft

import (
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/models"
)

// sanitizeQueueLocked drops ids that are unknown to the catalog, duplicated
// (first occurrence wins) or already drafted.
func (e *Engine) sanitizeQueueLocked(playerIDs []string) []string {
	seen := make(map[string]struct{}, len(playerIDs))
	out := make([]string, 0, len(playerIDs))
	for _, pid := range playerIDs {
		if _, ok := e.catalog.Lookup(pid); !ok {
			continue
		}
		if _, dup := seen[pid]; dup {
			continue
		}
		if _, taken := e.drafted[pid]; taken {
			continue
		}
		seen[pid] = struct{}{}
		out = append(out, pid)
	}
	return out
}

// removeFromAllQueuesLocked purges a drafted player from every user's queue.
func (e *Engine) removeFromAllQueuesLocked(playerID string) {
	for uid, q := range e.queues {
		filtered := q[:0]
		for _, pid := range q {
			if pid != playerID {
				filtered = append(filtered, pid)
			}
		}
		e.queues[uid] = filtered
	}
}

// SetQueue replaces the user's preference queue wholesale with a sanitized
// copy of playerIDs and returns the kept count. Queues longer than
// maxQueueLength are rejected.
func (e *Engine) SetQueue(userID string, playerIDs []string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(playerIDs) > maxQueueLength {
		return 0, ErrInvalidInput
	}
	e.ensureTeamLocked(userID, "")
	clean := e.sanitizeQueueLocked(playerIDs)
	e.queues[userID] = clean

	log.Debug().Str("user_id", userID).Int("count", len(clean)).Msg("queue replaced")
	return len(clean), nil
}

// Queue returns the user's queue expanded to player summaries, pruning any
// ids drafted since the queue was set as a side effect of the read.
func (e *Engine) Queue(userID string) []models.PlayerSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := e.queues[userID]
	kept := make([]string, 0, len(q))
	out := make([]models.PlayerSummary, 0, len(q))
	for _, pid := range q {
		if _, taken := e.drafted[pid]; taken {
			continue
		}
		kept = append(kept, pid)
		if p, ok := e.catalog.Lookup(pid); ok {
			out = append(out, p.Summary())
		}
	}
	e.queues[userID] = kept
	return out
}
