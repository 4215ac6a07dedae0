package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router returns a configured chi router with all API routes.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/health", h.handleHealth)

	r.Get("/api/players", h.handlePlayers)
	r.Get("/api/players/{id}", h.handlePlayer)
	r.Get("/api/scoring/top", h.handleScoringTop)

	r.Post("/api/league/init", h.handleInit)

	r.Get("/api/draft/state", h.handleState)
	r.Post("/api/draft/human", h.handleHuman)
	r.Post("/api/draft/tick", h.handleTick)
	r.Post("/api/draft/pick", h.handlePick)
	r.Post("/api/draft/remove", h.handleRemove)
	r.Post("/api/draft/settings", h.handleSettings)
	r.Post("/api/draft/reset", h.handleReset)
	r.Post("/api/draft/resetTeam", h.handleResetTeam)

	r.Get("/api/team/{userId}", h.handleTeam)
	r.Get("/api/teams", h.handleTeams)

	r.Get("/api/queue/{userId}", h.handleQueueGet)
	r.Post("/api/queue/set", h.handleQueueSet)

	if h.hub != nil {
		r.Get("/ws/draft", h.hub.ServeWS)
	}

	return r
}
