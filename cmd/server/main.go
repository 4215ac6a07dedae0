package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/catalog"
	"github.com/mcdev12/draftroom/internal/config"
	"github.com/mcdev12/draftroom/internal/draft"
	"github.com/mcdev12/draftroom/internal/gateway"
	"github.com/mcdev12/draftroom/internal/handlers"
	"github.com/mcdev12/draftroom/internal/scoring"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file loaded")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Log)

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load player catalog")
	}
	log.Info().Int("players", cat.Size()).Msg("player catalog loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := gateway.NewHub(gateway.DefaultHubConfig())
	go hub.Run(ctx)

	publishers := gateway.Fanout{hub}
	if cfg.NATS.Enabled {
		js, err := gateway.NewJetStreamPublisher(gateway.JetStreamConfig{
			URL:           cfg.NATS.URL,
			StreamName:    cfg.NATS.StreamName,
			SubjectPrefix: cfg.NATS.SubjectPrefix,
			MaxReconnects: -1,
			ReconnectWait: 2 * time.Second,
			MaxAge:        24 * time.Hour,
			MaxMsgs:       -1,
			PublishWait:   5 * time.Second,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer js.Close()
		publishers = append(publishers, js)
		log.Info().Str("url", cfg.NATS.URL).Msg("NATS event publishing enabled")
	}

	engine := draft.NewEngine(cat, scoring.ScoreStats,
		draft.WithPublisher(publishers),
		draft.WithMaxFastForwardSteps(cfg.Draft.MaxFastForwardSteps),
	)

	// The engine owns no timers; this loop drives timeout resolution.
	go runTickLoop(ctx, engine, cfg.Server.TickInterval.Std())

	h := handlers.New(engine, cat, hub)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           corsHandler.Handler(h.Router()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func runTickLoop(ctx context.Context, engine *draft.Engine, interval time.Duration) {
	clock := clockwork.NewRealClock()
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			engine.Tick()
		}
	}
}

func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}
