package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/catalog"
	"github.com/mcdev12/draftroom/internal/draft"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/mcdev12/draftroom/internal/scoring"
)

func newTestAPI(t *testing.T) (http.Handler, *catalog.Static) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	engine := draft.NewEngine(cat, scoring.ScoreStats, draft.WithClock(clockwork.NewFakeClock()))
	return New(engine, cat, nil).Router(), cat
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func initLeague(t *testing.T, h http.Handler) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/league/init", map[string]any{
		"teams": []map[string]string{
			{"userId": "u1", "name": "Alpha"},
			{"userId": "u2", "name": "Beta"},
		},
		"rounds":        2,
		"enforceLimits": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	h, _ := newTestAPI(t)
	rec := doJSON(t, h, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OK bool `json:"ok"`
	}
	decode(t, rec, &body)
	require.True(t, body.OK)
}

func TestPlayersEndpoints(t *testing.T) {
	h, cat := newTestAPI(t)

	rec := doJSON(t, h, http.MethodGet, "/api/players", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var players []models.Player
	decode(t, rec, &players)
	require.Len(t, players, cat.Size())

	first := cat.All()[0]
	rec = doJSON(t, h, http.MethodGet, "/api/players/"+first.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p models.Player
	decode(t, rec, &p)
	require.Equal(t, first.ID, p.ID)

	rec = doJSON(t, h, http.MethodGet, "/api/players/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScoringTop(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := doJSON(t, h, http.MethodGet, "/api/scoring/top?n=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var top []scoring.ScoredPlayer
	decode(t, rec, &top)
	require.Len(t, top, 3)
	require.GreaterOrEqual(t, top[0].Points, top[1].Points)
	require.GreaterOrEqual(t, top[1].Points, top[2].Points)

	rec = doJSON(t, h, http.MethodGet, "/api/scoring/top?n=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/api/scoring/top?n=0", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInitValidation(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/league/init", map[string]any{
		"teams": []map[string]string{{"userId": "u1", "name": "Solo"}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/league/init", map[string]any{
		"teams": []map[string]string{
			{"userId": "u1", "name": "Alpha"},
			{"userId": "u2"},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftFlow(t *testing.T) {
	h, cat := newTestAPI(t)
	initLeague(t, h)

	rec := doJSON(t, h, http.MethodGet, "/api/draft/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var snap models.DraftSnapshot
	decode(t, rec, &snap)
	require.True(t, snap.IsActive)
	require.Equal(t, "u1", snap.OnTheClockUserID)
	require.Equal(t, 2, snap.TotalRounds)

	pid := cat.All()[0].ID
	rec = doJSON(t, h, http.MethodPost, "/api/draft/pick", map[string]string{
		"userId": "u1", "playerId": pid,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var picked struct {
		OK   bool        `json:"ok"`
		Team models.Team `json:"team"`
	}
	decode(t, rec, &picked)
	require.True(t, picked.OK)
	require.Equal(t, []string{pid}, picked.Team.Picks)

	rec = doJSON(t, h, http.MethodGet, "/api/draft/state", nil)
	decode(t, rec, &snap)
	require.Equal(t, "u2", snap.OnTheClockUserID)
	require.Contains(t, snap.DraftedIDs, pid)

	rec = doJSON(t, h, http.MethodGet, "/api/team/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail models.TeamDetail
	decode(t, rec, &detail)
	require.Len(t, detail.Players, 1)
	require.Equal(t, pid, detail.Players[0].ID)

	rec = doJSON(t, h, http.MethodGet, "/api/teams", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var standings []models.TeamStanding
	decode(t, rec, &standings)
	require.Len(t, standings, 2)
}

func TestPickErrors(t *testing.T) {
	h, cat := newTestAPI(t)
	initLeague(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/draft/pick", map[string]string{
		"userId": "u2", "playerId": cat.All()[0].ID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/draft/pick", map[string]string{
		"userId": "u1", "playerId": "nope",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/draft/pick", map[string]string{
		"userId": "u1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTeamNotFound(t *testing.T) {
	h, _ := newTestAPI(t)
	initLeague(t, h)

	rec := doJSON(t, h, http.MethodGet, "/api/team/stranger", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHumanEndpoint(t *testing.T) {
	h, _ := newTestAPI(t)
	initLeague(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/draft/human", map[string]string{"userId": "stranger"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/draft/human", map[string]string{"userId": "u1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Draft models.DraftSnapshot `json:"draft"`
	}
	decode(t, rec, &body)
	require.Equal(t, "u1", body.Draft.HumanUserID)
}

func TestSettingsEndpoint(t *testing.T) {
	h, _ := newTestAPI(t)
	initLeague(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/draft/settings", map[string]any{"pickSeconds": 30})
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Draft models.DraftSnapshot `json:"draft"`
	}
	decode(t, rec, &body)
	require.Equal(t, 30, body.Draft.PickSeconds)

	rec = doJSON(t, h, http.MethodPost, "/api/draft/settings", map[string]any{"pickSeconds": 3})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueueEndpoints(t *testing.T) {
	h, cat := newTestAPI(t)
	initLeague(t, h)

	pid := cat.All()[0].ID
	rec := doJSON(t, h, http.MethodPost, "/api/queue/set", map[string]any{
		"userId":    "u2",
		"playerIds": []string{pid, "bogus"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var set struct {
		OK    bool `json:"ok"`
		Count int  `json:"count"`
	}
	decode(t, rec, &set)
	require.True(t, set.OK)
	require.Equal(t, 1, set.Count)

	rec = doJSON(t, h, http.MethodGet, "/api/queue/u2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var q struct {
		UserID string                 `json:"userId"`
		Queue  []models.PlayerSummary `json:"queue"`
	}
	decode(t, rec, &q)
	require.Equal(t, "u2", q.UserID)
	require.Len(t, q.Queue, 1)
	require.Equal(t, pid, q.Queue[0].ID)

	rec = doJSON(t, h, http.MethodPost, "/api/queue/set", map[string]any{"playerIds": []string{pid}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetEndpoints(t *testing.T) {
	h, cat := newTestAPI(t)
	initLeague(t, h)

	pid := cat.All()[0].ID
	rec := doJSON(t, h, http.MethodPost, "/api/draft/pick", map[string]string{
		"userId": "u1", "playerId": pid,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/draft/resetTeam", map[string]string{"userId": "u1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var reset struct {
		Team models.Team `json:"team"`
	}
	decode(t, rec, &reset)
	require.Empty(t, reset.Team.Picks)

	rec = doJSON(t, h, http.MethodPost, "/api/draft/resetTeam", map[string]string{"userId": "zz"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/draft/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Draft models.DraftSnapshot `json:"draft"`
	}
	decode(t, rec, &body)
	require.True(t, body.Draft.IsActive)
	require.Equal(t, 1, body.Draft.Round)
	require.Empty(t, body.Draft.DraftedIDs)
}

func TestTickEndpoint(t *testing.T) {
	h, _ := newTestAPI(t)
	initLeague(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/draft/tick", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var snap models.DraftSnapshot
	decode(t, rec, &snap)
	require.Equal(t, "u1", snap.OnTheClockUserID, "no-op before the deadline")
}
