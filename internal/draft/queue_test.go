package draft

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetQueueSanitizes(t *testing.T) {
	e, _ := newTestEngine(t)
	mustInit(t, e, InitRequest{Teams: seats("u1", "u2")})

	count, err := e.SetQueue("u2", []string{"p1", "bogus", "p1", "p2"})
	require.NoError(t, err)
	require.Equal(t, 2, count)

	q := e.Queue("u2")
	require.Len(t, q, 2)
	require.Equal(t, "p1", q[0].ID)
	require.Equal(t, "p2", q[1].ID)
}

func TestSetQueueDropsAlreadyDrafted(t *testing.T) {
	e, _ := newTestEngine(t)
	mustInit(t, e, InitRequest{Teams: seats("u1", "u2")})

	_, err := e.Pick("u1", "p1")
	require.NoError(t, err)

	count, err := e.SetQueue("u2", []string{"p1", "p2"})
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestSetQueueRejectsOverlongList(t *testing.T) {
	e, _ := newTestEngine(t)

	ids := make([]string, maxQueueLength+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("x%d", i)
	}
	_, err := e.SetQueue("u1", ids)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetQueueReplacesWholesale(t *testing.T) {
	e, _ := newTestEngine(t)
	mustInit(t, e, InitRequest{Teams: seats("u1", "u2")})

	_, err := e.SetQueue("u2", []string{"p1", "p2"})
	require.NoError(t, err)
	count, err := e.SetQueue("u2", []string{"p3"})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	q := e.Queue("u2")
	require.Len(t, q, 1)
	require.Equal(t, "p3", q[0].ID)
}

func TestPickPurgesEveryQueue(t *testing.T) {
	e, _ := newTestEngine(t)
	mustInit(t, e, InitRequest{Teams: seats("u1", "u2")})

	_, err := e.SetQueue("u1", []string{"p1", "p2"})
	require.NoError(t, err)
	_, err = e.SetQueue("u2", []string{"p1", "p3"})
	require.NoError(t, err)

	_, err = e.Pick("u1", "p1")
	require.NoError(t, err)

	require.Len(t, e.Queue("u1"), 1)
	require.Len(t, e.Queue("u2"), 1)
	require.Equal(t, "p3", e.Queue("u2")[0].ID)
}

func TestQueueReadPrunesDrafted(t *testing.T) {
	e, _ := newTestEngine(t)
	mustInit(t, e, InitRequest{Teams: seats("u1", "u2")})

	// Force the stale state a queue can reach if the registry changes
	// between writes.
	e.queues["u2"] = []string{"p1", "p2"}
	e.drafted["p1"] = struct{}{}

	q := e.Queue("u2")
	require.Len(t, q, 1)
	require.Equal(t, "p2", q[0].ID)
	require.Equal(t, []string{"p2"}, e.queues["u2"])
}

func TestQueueUnknownUserIsEmpty(t *testing.T) {
	e, _ := newTestEngine(t)
	require.Empty(t, e.Queue("stranger"))
}
