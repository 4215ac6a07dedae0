package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/draft"
	"github.com/mcdev12/draftroom/internal/models"
)

// okResponse is the generic success envelope.
type okResponse struct {
	OK bool `json:"ok"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type initResponse struct {
	OK    bool                  `json:"ok"`
	Draft models.DraftSnapshot  `json:"draft"`
	Teams []models.TeamStanding `json:"teams"`
}

type draftResponse struct {
	OK    bool                 `json:"ok"`
	Draft models.DraftSnapshot `json:"draft"`
}

type pickResponse struct {
	OK   bool         `json:"ok"`
	Team *models.Team `json:"team"`
}

type teamDraftResponse struct {
	OK    bool                 `json:"ok"`
	Team  *models.Team         `json:"team"`
	Draft models.DraftSnapshot `json:"draft"`
}

type queueResponse struct {
	UserID string                 `json:"userId"`
	Queue  []models.PlayerSummary `json:"queue"`
}

type queueSetResponse struct {
	OK     bool   `json:"ok"`
	UserID string `json:"userId"`
	Count  int    `json:"count"`
}

type healthResponse struct {
	OK bool `json:"ok"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{OK: false, Error: msg})
}

// writeEngineError maps engine sentinel errors to HTTP statuses. Missing
// aggregates are 404s; every other business-rule failure is a 400.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, draft.ErrTeamNotFound) || errors.Is(err, draft.ErrPlayerNotFound) {
		status = http.StatusNotFound
	}
	writeError(w, status, err.Error())
}
