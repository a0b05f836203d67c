package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/Simplici0/minecalc/internal/config"
	"github.com/Simplici0/minecalc/internal/db"
	"github.com/Simplici0/minecalc/internal/metrics"
	"github.com/Simplici0/minecalc/internal/migrations"
	"github.com/Simplici0/minecalc/internal/scenario"
	"github.com/Simplici0/minecalc/internal/seed"
)

type server struct {
	auth    *authService
	store   scenario.Store
	metrics *metrics.Recorder
}

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)

	srv, closeServer, err := newServer(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to start server")
	}
	defer closeServer()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("backend", cfg.StoreBackend).Msg("listening")
	if err := http.ListenAndServe(addr, srv.routes(log.Logger)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// newServer opens the configured store and applies optional baseline seeding.
// The returned func releases the store.
func newServer(ctx context.Context, cfg config.Config) (*server, func(), error) {
	store, closeStore, err := openStore(ctx, cfg.StoreBackend)
	if err != nil {
		return nil, nil, fmt.Errorf("open scenario store: %w", err)
	}

	stats, err := seed.Run(ctx, store, seed.Config{Baseline: cfg.SeedBaseline})
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("seed scenarios: %w", err)
	}
	log.Info().Int("inserts", stats.Inserts).Msg("seed complete")

	srv := &server{auth: newAuthService(cfg.AdminToken), store: store, metrics: metrics.NewRecorder()}
	return srv, closeStore, nil
}

// openStore builds the configured scenario store. The SQLite backend lives
// entirely in memory; nothing is written to disk.
func openStore(ctx context.Context, backend string) (scenario.Store, func(), error) {
	if backend == config.StoreMemory {
		return scenario.NewMemoryStore(), func() {}, nil
	}

	database, err := db.Open(db.MemoryDSN)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { closeQuietly(database) }

	if err := migrations.Up(ctx, database); err != nil {
		closeDB()
		return nil, nil, err
	}
	store, err := scenario.NewSQLStore(ctx, database)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("create sql scenario store: %w", err)
	}
	return store, closeDB, nil
}

func closeQuietly(database *sql.DB) {
	if err := database.Close(); err != nil {
		log.Warn().Err(err).Msg("close database")
	}
}

func (s *server) routes(logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/", s.handleHome)
	r.Post("/", s.handleFormSubmit)
	r.With(s.auth.requireAdmin).Post("/scenarios/clear", s.handleFormClear)

	r.Route("/api", func(r chi.Router) {
		r.Get("/defaults", s.handleDefaults)
		r.Post("/calculate", s.handleCalculate)
		r.Post("/report", s.handleReport)
		r.Get("/scenarios", s.handleScenariosList)
		r.Post("/scenarios", s.handleScenariosSave)
		r.Get("/scenarios/compare", s.handleScenariosCompare)
		r.With(s.auth.requireAdmin).Delete("/scenarios", s.handleScenariosClear)
	})
	return r
}
