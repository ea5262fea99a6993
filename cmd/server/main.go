package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/diary-stats-service/internal/config"
	"github.com/maxviazov/diary-stats-service/internal/handler"
	"github.com/maxviazov/diary-stats-service/internal/jobs"
	"github.com/maxviazov/diary-stats-service/internal/logger"
	"github.com/maxviazov/diary-stats-service/internal/repository"
	"github.com/maxviazov/diary-stats-service/internal/repository/postgres"
	"github.com/maxviazov/diary-stats-service/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	path := os.Getenv("APP_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
	appLogger.Info().Msg("service stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	repo, err := repository.New(ctx, &cfg.Postgres, &appLogger)
	if err != nil {
		return fmt.Errorf("postgres connection: %w", err)
	}
	defer repo.Close()

	pool := repo.Pool()
	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		appLogger.Info().Msg("migrations applied")
	}

	caches, err := service.NewCaches(service.CacheConfig{
		TTL:        cfg.Stats.CacheTTL(),
		MaxEntries: cfg.Stats.CacheMaxEntries,
	})
	if err != nil {
		return fmt.Errorf("caches: %w", err)
	}
	defer caches.Close()

	activities := postgres.NewActivityRepository(pool)
	seasons := postgres.NewSeasonRepository(pool)
	profiles := postgres.NewProfileRepository(pool)

	svc := handler.Services{
		Diary:   service.NewDiaryService(activities, caches, appLogger),
		Match:   service.NewMatchService(activities, seasons, profiles, caches, cfg.Stats.TrendWindowDays, appLogger),
		Season:  service.NewSeasonService(activities, seasons, postgres.NewTxManager(pool), appLogger),
		Profile: service.NewProfileService(profiles, appLogger),
	}

	if cfg.Jobs.SeasonCloseEnabled {
		closer := jobs.NewSeasonCloser(svc.Season, cfg.Jobs.SeasonCloseSpec, 0, appLogger)
		if err := closer.Start(); err != nil {
			return err
		}
		defer closer.Stop()
	}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	err = handler.Register(r, postgres.NewPinger(pool), svc, handler.Options{
		Timeout:   cfg.Stats.RequestTimeout(),
		RateLimit: handler.RateLimitConfig{RPS: cfg.App.RateLimitRPS, Burst: cfg.App.RateLimitBurst},
		Logger:    appLogger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("env", cfg.App.Env).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
