package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/maxviazov/diary-stats-service/internal/service"
)

// Services bundles the service layer behind the API.
type Services struct {
	Diary   service.DiaryService
	Match   service.MatchService
	Season  service.SeasonService
	Profile service.ProfileService
}

// Options tune the HTTP layer. The zero value is usable.
type Options struct {
	// Timeout bounds each service call; zero uses DefaultServiceTimeout.
	Timeout   time.Duration
	RateLimit RateLimitConfig
	Logger    zerolog.Logger
}

// Register mounts middleware, probes, /metrics and the v1 API on r. Probes
// and /metrics are not rate limited.
func Register(r *gin.Engine, repo Pinger, svc Services, opts Options) error {
	limit, err := RateLimit(opts.RateLimit)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	r.Use(RequestLogger(opts.Logger), Metrics())

	h := NewHealthHandler(repo)
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}

		v1 := api.Group("", limit)
		NewDiaryHandler(svc.Diary, opts.Timeout).Register(v1)
		NewMatchHandler(svc.Match, opts.Timeout).Register(v1)
		NewSeasonHandler(svc.Season, opts.Timeout).Register(v1)
		NewProfileHandler(svc.Profile, opts.Timeout).Register(v1)
	}
	return nil
}
