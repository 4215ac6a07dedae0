package draft

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/models"
)

func expireTurn(e *Engine, fc *clockwork.FakeClock) models.DraftSnapshot {
	fc.Advance(time.Duration(defaultPickSeconds) * time.Second)
	return e.Tick()
}

func TestAutoPickPrefersQueueOverBestAvailable(t *testing.T) {
	e, fc := newTestEngine(t)
	mustInit(t, e, InitRequest{Teams: seats("u1", "u2")})

	_, err := e.SetQueue("u1", []string{"p8", "p3"})
	require.NoError(t, err)

	snap := expireTurn(e, fc)
	require.Equal(t, models.DraftEventAutoPick, snap.LastEvent.Type)
	require.Equal(t, "p8", snap.LastEvent.Player.ID, "queue order wins over score")
}

func TestAutoPickSkipsDraftedQueueEntries(t *testing.T) {
	e, fc := newTestEngine(t)
	mustInit(t, e, InitRequest{Teams: seats("u2", "u1")})

	_, err := e.SetQueue("u1", []string{"p1", "p7"})
	require.NoError(t, err)

	// u2 drafts u1's first choice before u1's turn comes up.
	_, err = e.Pick("u2", "p1")
	require.NoError(t, err)

	snap := expireTurn(e, fc)
	require.Equal(t, "u1", snap.LastEvent.UserID)
	require.Equal(t, "p7", snap.LastEvent.Player.ID)
}

func TestAutoPickSkipsCapBlockedQueueEntries(t *testing.T) {
	e, fc := newTestEngine(t)
	mustInit(t, e, InitRequest{
		Teams:          seats("u1", "u2"),
		PositionLimits: map[models.Position]int{models.PositionFirstBase: 1},
	})

	// u1 fills the 1B slot directly, leaving p13 (1B) stuck in the queue.
	_, err := e.SetQueue("u1", []string{"p13"})
	require.NoError(t, err)
	_, err = e.Pick("u1", "p7")
	require.NoError(t, err)

	// u2's two snake turns expire, then u1 is up again.
	expireTurn(e, fc)
	expireTurn(e, fc)
	snap := expireTurn(e, fc)

	require.Equal(t, "u1", snap.LastEvent.UserID)
	require.Equal(t, "p3", snap.LastEvent.Player.ID, "falls through to best available")
	require.Len(t, e.Queue("u1"), 1, "the blocked entry stays queued")
}

func TestBestAvailableTieBreaksOnCatalogOrder(t *testing.T) {
	cat := newTestCatalog(t, []models.Player{
		{ID: "a", Name: "A", Position: models.PositionOutfield, Stats: models.Stats{HR: 5}},
		{ID: "b", Name: "B", Position: models.PositionOutfield, Stats: models.Stats{HR: 5}},
		{ID: "c", Name: "C", Position: models.PositionCatcher, Stats: models.Stats{HR: 1}},
		{ID: "d", Name: "D", Position: models.PositionCatcher, Stats: models.Stats{HR: 1}},
	})
	fc := clockwork.NewFakeClock()
	e := NewEngine(cat, hrScore, WithClock(fc))
	mustInit(t, e, InitRequest{Teams: seats("u1", "u2")})

	snap := expireTurn(e, fc)
	require.Equal(t, "a", snap.LastEvent.Player.ID)
}

func TestNoEligiblePlayerSkipsTurn(t *testing.T) {
	cat := newTestCatalog(t, []models.Player{
		{ID: "a", Name: "A", Position: models.PositionOutfield, Stats: models.Stats{HR: 2}},
		{ID: "b", Name: "B", Position: models.PositionOutfield, Stats: models.Stats{HR: 1}},
	})
	pub := &capturePublisher{}
	fc := clockwork.NewFakeClock()
	e := NewEngine(cat, hrScore, WithClock(fc), WithPublisher(pub))
	mustInit(t, e, InitRequest{
		Teams:          seats("u1", "u2"),
		Rounds:         intp(2),
		PositionLimits: map[models.Position]int{models.PositionOutfield: 1},
	})

	// Round 1 drains the pool; round 2 has nothing eligible for anyone.
	for i := 0; i < 4; i++ {
		expireTurn(e, fc)
	}

	snap := e.State()
	require.False(t, snap.IsActive)

	skips := 0
	for _, ev := range pub.events {
		if ev.Type == string(models.DraftEventSkipped) {
			skips++
		}
	}
	require.Equal(t, 2, skips, "both round-2 turns are skipped, not stalled")
	require.Contains(t, pub.types(), EventDraftCompleted)
}
