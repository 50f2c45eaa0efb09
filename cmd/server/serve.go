package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"qara/internal/compliance"
	"qara/internal/compliance/handler"
	analyticsmetrics "qara/internal/compliance/metrics"
	"qara/internal/compliance/service"
	"qara/internal/compliance/store/catalogcache"
	"qara/internal/compliance/store/memory"
	"qara/internal/compliance/store/sqlstore"
	"qara/internal/platform/config"
	"qara/internal/platform/database"
	"qara/internal/platform/httpserver"
	"qara/internal/platform/logger"
	httpmetrics "qara/internal/platform/metrics"
	"qara/internal/platform/redis"
	"qara/pkg/platform/httputil"
)

func newServeCommand() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the analytics HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply database migrations before serving")
	return cmd
}

// healthCheck reports whether one dependency is reachable.
type healthCheck func(ctx context.Context) error

// infra holds the wired stores and the resources to release on shutdown.
type infra struct {
	audits  service.AuditStore
	catalog service.CatalogStore
	health  map[string]healthCheck
	closers []func() error
}

func (i *infra) close(log *slog.Logger) {
	for _, c := range i.closers {
		if err := c(); err != nil {
			log.Warn("failed to release resource", "error", err)
		}
	}
}

func serve(ctx context.Context, cfg config.Server, migrate bool) error {
	log := logger.New(cfg.Log.SlogLevel(), cfg.Log.Format)
	slog.SetDefault(log)

	scoring, err := compliance.LoadScoringConfig(cfg.ScoringConfigPath)
	if err != nil {
		return err
	}
	if cfg.ScoringConfigPath != "" {
		log.Info("loaded scoring configuration", "path", cfg.ScoringConfigPath)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	analytics := analyticsmetrics.New(reg)

	deps, err := buildInfra(ctx, cfg, migrate, log, analytics)
	if err != nil {
		return err
	}
	defer deps.close(log)

	svc := service.New(deps.audits, deps.catalog, compliance.NewEngine(scoring),
		service.WithLogger(log),
		service.WithMetrics(analytics),
	)

	router := chi.NewRouter()
	router.Get("/healthz", healthHandler(deps.health))
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	handler.New(svc, log, httpmetrics.New(reg)).Register(router)

	srv := httpserver.New(cfg.Addr, router, httpserver.WithWriteTimeout(handler.DefaultTimeout+5*time.Second))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting qara", "addr", cfg.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// buildInfra selects the SQL or in-memory store and puts the Redis catalog
// cache in front of it when REDIS_URL is set. A Redis outage at startup only
// disables the cache.
func buildInfra(ctx context.Context, cfg config.Server, migrate bool, log *slog.Logger, m *analyticsmetrics.Metrics) (*infra, error) {
	deps := &infra{health: map[string]healthCheck{}}

	if cfg.Database.URL != "" {
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, db.Close)
		if migrate {
			if err := database.Migrate(ctx, db); err != nil {
				deps.close(log)
				return nil, err
			}
		}
		store := sqlstore.New(db, sqlstore.WithLogger(log), sqlstore.WithMetrics(m))
		deps.audits, deps.catalog = store, store
		deps.health["database"] = dbHealth(db)
		log.Info("using sql store", "driver", db.DriverName())
	} else {
		store := memory.New()
		if cfg.DemoSeed {
			store = memory.NewDemo(time.Now())
		} else {
			processes, referentials := memory.Catalog()
			store.Load(memory.Dataset{Processes: processes, Referentials: referentials})
		}
		deps.audits, deps.catalog = store, store
		log.Warn("DATABASE_URL not set, using in-memory store", "demo_seed", cfg.DemoSeed)
	}

	client, err := redis.New(ctx, cfg.Redis)
	switch {
	case err != nil:
		log.Warn("redis unavailable, catalog cache disabled", "error", err)
	case client != nil:
		deps.closers = append(deps.closers, client.Close)
		deps.catalog = catalogcache.New(deps.catalog, client.Client, cfg.Redis.CacheTTL,
			catalogcache.WithLogger(log),
			catalogcache.WithMetrics(m),
		)
		deps.health["redis"] = client.Health
		log.Info("catalog cache enabled", "ttl", cfg.Redis.CacheTTL.String())
	}

	return deps, nil
}

func dbHealth(db *sqlx.DB) healthCheck {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}

func healthHandler(checks map[string]healthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		components := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				components[name] = "down"
				continue
			}
			components[name] = "up"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{"status": state, "components": components})
	}
}
