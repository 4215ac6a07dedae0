// Package handlers binds the draft engine to its HTTP API. Request validation
// happens here, business rules stay in the engine.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mcdev12/draftroom/internal/catalog"
	"github.com/mcdev12/draftroom/internal/draft"
	"github.com/mcdev12/draftroom/internal/gateway"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/mcdev12/draftroom/internal/scoring"
)

// Handlers carries the dependencies of every route.
type Handlers struct {
	engine  *draft.Engine
	catalog catalog.Catalog
	hub     *gateway.Hub
}

// New builds the handler set. hub may be nil when the WebSocket feed is
// disabled.
func New(engine *draft.Engine, cat catalog.Catalog, hub *gateway.Hub) *Handlers {
	return &Handlers{engine: engine, catalog: cat, hub: hub}
}

type initTeamPayload struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type initPayload struct {
	Teams              []initTeamPayload `json:"teams"`
	Rounds             *int              `json:"rounds"`
	PickSeconds        *int              `json:"pickSeconds"`
	AutoPick           *bool             `json:"autoPick"`
	EnforceLimits      *bool             `json:"enforceLimits"`
	PositionLimits     map[string]int    `json:"positionLimits"`
	AllowRemoveAnytime *bool             `json:"allowRemoveAnytime"`
}

func (h *Handlers) handleInit(w http.ResponseWriter, r *http.Request) {
	var body initPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Teams) < 2 {
		writeError(w, http.StatusBadRequest, "at least 2 teams are required")
		return
	}

	req := draft.InitRequest{
		Rounds:             body.Rounds,
		PickSeconds:        body.PickSeconds,
		AutoPick:           body.AutoPick,
		EnforceLimits:      body.EnforceLimits,
		AllowRemoveAnytime: body.AllowRemoveAnytime,
	}
	for _, t := range body.Teams {
		if t.UserID == "" || t.Name == "" {
			writeError(w, http.StatusBadRequest, "team userId and name are required")
			return
		}
		req.Teams = append(req.Teams, draft.TeamSeat{UserID: t.UserID, Name: t.Name})
	}
	req.PositionLimits = positionLimits(body.PositionLimits)

	snap, err := h.engine.Init(req)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, initResponse{OK: true, Draft: snap, Teams: h.engine.TeamsSorted()})
}

func (h *Handlers) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.State())
}

func (h *Handlers) handleHuman(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID *string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID := ""
	if body.UserID != nil {
		userID = *body.UserID
	}
	snap, err := h.engine.SetHuman(userID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{OK: true, Draft: snap})
}

func (h *Handlers) handleTick(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Tick())
}

type pickPayload struct {
	UserID   string `json:"userId"`
	PlayerID string `json:"playerId"`
}

func (h *Handlers) handlePick(w http.ResponseWriter, r *http.Request) {
	var body pickPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" || body.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "userId and playerId are required")
		return
	}
	team, err := h.engine.Pick(body.UserID, body.PlayerID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pickResponse{OK: true, Team: team})
}

func (h *Handlers) handleRemove(w http.ResponseWriter, r *http.Request) {
	var body pickPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" || body.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "userId and playerId are required")
		return
	}
	team, snap, err := h.engine.Remove(body.UserID, body.PlayerID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teamDraftResponse{OK: true, Team: team, Draft: snap})
}

func (h *Handlers) handleTeam(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	detail, err := h.engine.Team(userID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handlers) handleTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.TeamsSorted())
}

type settingsPayload struct {
	PickSeconds        *int           `json:"pickSeconds"`
	AutoPick           *bool          `json:"autoPick"`
	EnforceLimits      *bool          `json:"enforceLimits"`
	PositionLimits     map[string]int `json:"positionLimits"`
	AllowRemoveAnytime *bool          `json:"allowRemoveAnytime"`
}

func (h *Handlers) handleSettings(w http.ResponseWriter, r *http.Request) {
	var body settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	snap, err := h.engine.UpdateSettings(draft.SettingsUpdate{
		PickSeconds:        body.PickSeconds,
		AutoPick:           body.AutoPick,
		EnforceLimits:      body.EnforceLimits,
		PositionLimits:     positionLimits(body.PositionLimits),
		AllowRemoveAnytime: body.AllowRemoveAnytime,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{OK: true, Draft: snap})
}

func (h *Handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.ResetDraft()
	writeJSON(w, http.StatusOK, initResponse{OK: true, Draft: snap, Teams: h.engine.TeamsSorted()})
}

func (h *Handlers) handleResetTeam(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	team, snap, err := h.engine.ResetTeam(body.UserID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teamDraftResponse{OK: true, Team: team, Draft: snap})
}

func (h *Handlers) handleQueueGet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	writeJSON(w, http.StatusOK, queueResponse{UserID: userID, Queue: h.engine.Queue(userID)})
}

type queueSetPayload struct {
	UserID    string   `json:"userId"`
	PlayerIDs []string `json:"playerIds"`
}

func (h *Handlers) handleQueueSet(w http.ResponseWriter, r *http.Request) {
	var body queueSetPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	count, err := h.engine.SetQueue(body.UserID, body.PlayerIDs)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queueSetResponse{OK: true, UserID: body.UserID, Count: count})
}

func (h *Handlers) handlePlayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.All())
}

func (h *Handlers) handlePlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.catalog.Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) handleScoringTop(w http.ResponseWriter, r *http.Request) {
	n := 5
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, scoring.TopPlayers(h.catalog.All(), n))
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true})
}

// positionLimits converts the wire cap table to model positions.
func positionLimits(raw map[string]int) map[models.Position]int {
	if len(raw) == 0 {
		return nil
	}
	limits := make(map[models.Position]int, len(raw))
	for pos, limit := range raw {
		limits[models.Position(pos)] = limit
	}
	return limits
}
