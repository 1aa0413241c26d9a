package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/p-n-ai/pai-quiz/internal/analysis"
	"github.com/p-n-ai/pai-quiz/internal/api"
	"github.com/p-n-ai/pai-quiz/internal/curriculum"
	"github.com/p-n-ai/pai-quiz/internal/events"
	"github.com/p-n-ai/pai-quiz/internal/platform/cache"
	"github.com/p-n-ai/pai-quiz/internal/platform/config"
	"github.com/p-n-ai/pai-quiz/internal/platform/database"
	"github.com/p-n-ai/pai-quiz/internal/platform/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log, os.Stdout))

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	catalog, err := curriculum.NewLoader(cfg.CurriculumPath)
	if err != nil {
		return fmt.Errorf("loading curriculum: %w", err)
	}

	engine, err := analysis.NewEngine(engineConfig(cfg.Analysis), analysis.WithTopics(catalog))
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	opts := []api.Option{
		api.WithMetrics(metrics.New()),
		api.WithAllowedOrigins(cfg.CORS.AllowedOrigins),
	}

	if cfg.HasDatabase() {
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		opts = append(opts,
			api.WithEvents(events.NewPostgresLogger(db.Pool)),
			api.WithReadinessCheck("database", db),
		)
		slog.Info("event log enabled")
	}

	if cfg.HasCache() {
		c, err := cache.New(ctx, cfg.Cache.URL, cfg.Cache.TTL)
		if err != nil {
			return fmt.Errorf("connecting to cache: %w", err)
		}
		defer c.Close()
		opts = append(opts,
			api.WithCache(c),
			api.WithReadinessCheck("cache", c),
		)
		slog.Info("result cache enabled", "ttl", cfg.Cache.TTL)
	}

	servers := []*http.Server{
		newHTTPServer(cfg.Server.Host, cfg.Server.Port, api.NewServer(engine, opts...).Handler()),
	}
	if cfg.Static.Dir != "" {
		servers = append(servers, newHTTPServer(cfg.Server.Host, cfg.Static.Port, newStaticHandler(cfg.Static.Dir)))
	}

	return serve(ctx, servers)
}

// serve runs every server until ctx is cancelled or one of them fails, then
// shuts all of them down.
func serve(ctx context.Context, servers []*http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		g.Go(func() error {
			slog.Info("server starting", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listening on %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

func newHTTPServer(host string, port int, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// newStaticHandler serves the quiz front end from dir.
func newStaticHandler(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func engineConfig(c config.AnalysisConfig) analysis.Config {
	return analysis.Config{
		Thresholds: analysis.Thresholds{
			StrongCutoff:        c.StrongCutoff,
			ModerateCutoff:      c.ModerateCutoff,
			NotAttemptedPenalty: c.NotAttemptedPenalty,
		},
		DailyBudgetMinutes: c.DailyBudgetMinutes,
		FocusTopicLimit:    c.FocusTopicLimit,
	}
}
