package draft

import (
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/catalog"
	"github.com/mcdev12/draftroom/internal/models"
)

// hrScore makes auto-pick ordering trivial to reason about in tests: the
// player's HR count is their score.
func hrScore(s models.Stats) float64 { return float64(s.HR) }

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

// testPlayers is a 13-player pool with strictly descending scores, so the
// best-available order is p1, p2, p3, ...
func testPlayers() []models.Player {
	return []models.Player{
		{ID: "p1", Name: "One", Team: "AAA", Position: models.PositionOutfield, Stats: models.Stats{HR: 13}},
		{ID: "p2", Name: "Two", Team: "AAA", Position: models.PositionOutfield, Stats: models.Stats{HR: 12}},
		{ID: "p3", Name: "Three", Team: "BBB", Position: models.PositionOutfield, Stats: models.Stats{HR: 11}},
		{ID: "p4", Name: "Four", Team: "BBB", Position: models.PositionOutfield, Stats: models.Stats{HR: 10}},
		{ID: "p5", Name: "Five", Team: "CCC", Position: models.PositionCatcher, Stats: models.Stats{HR: 9}},
		{ID: "p6", Name: "Six", Team: "CCC", Position: models.PositionCatcher, Stats: models.Stats{HR: 8}},
		{ID: "p7", Name: "Seven", Team: "DDD", Position: models.PositionFirstBase, Stats: models.Stats{HR: 7}},
		{ID: "p8", Name: "Eight", Team: "DDD", Position: models.PositionShortstop, Stats: models.Stats{HR: 6}},
		{ID: "p9", Name: "Nine", Team: "EEE", Position: models.PositionStarter, Stats: models.Stats{HR: 5}},
		{ID: "p10", Name: "Ten", Team: "EEE", Position: models.PositionStarter, Stats: models.Stats{HR: 4}},
		{ID: "p11", Name: "Eleven", Team: "FFF", Position: models.PositionReliever, Stats: models.Stats{HR: 3}},
		{ID: "p12", Name: "Twelve", Team: "FFF", Position: models.PositionUtility, Stats: models.Stats{HR: 2}},
		{ID: "p13", Name: "Thirteen", Team: "GGG", Position: models.PositionFirstBase, Stats: models.Stats{HR: 1}},
	}
}

func newTestCatalog(t *testing.T, players []models.Player) *catalog.Static {
	t.Helper()
	cat, err := catalog.New(players)
	require.NoError(t, err)
	return cat
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *clockwork.FakeClock) {
	t.Helper()
	fc := clockwork.NewFakeClock()
	opts = append([]Option{WithClock(fc)}, opts...)
	return NewEngine(newTestCatalog(t, testPlayers()), hrScore, opts...), fc
}

func seats(userIDs ...string) []TeamSeat {
	out := make([]TeamSeat, 0, len(userIDs))
	for _, uid := range userIDs {
		out = append(out, TeamSeat{UserID: uid, Name: "Team " + uid})
	}
	return out
}

func mustInit(t *testing.T, e *Engine, req InitRequest) models.DraftSnapshot {
	t.Helper()
	snap, err := e.Init(req)
	require.NoError(t, err)
	return snap
}

// capturePublisher records every event the engine publishes.
type capturePublisher struct {
	events []Event
}

func (c *capturePublisher) Publish(event Event) {
	c.events = append(c.events, event)
}

func (c *capturePublisher) types() []string {
	out := make([]string, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.Type)
	}
	return out
}
