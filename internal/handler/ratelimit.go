package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleLimiterTTL drops the limiter of a client that has been quiet this long.
// Every request pushes the expiry forward.
const idleLimiterTTL = 10 * time.Minute

// RateLimitConfig is a per-client token bucket. A zero RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// clientLimiters hands out one token bucket per client IP.
type clientLimiters struct {
	mu    sync.Mutex
	cfg   RateLimitConfig
	ttl   time.Duration
	cache *ristretto.Cache[string, *rate.Limiter]
}

func newClientLimiters(cfg RateLimitConfig) (*clientLimiters, error) {
	if cfg.Burst <= 0 {
		cfg.Burst = max(1, int(cfg.RPS))
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, *rate.Limiter]{
		NumCounters: 100_000,
		MaxCost:     10_000,
		BufferItems: 64,
		// MaxCost counts entries, not bytes
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &clientLimiters{cfg: cfg, ttl: idleLimiterTTL, cache: c}, nil
}

func (l *clientLimiters) allow(client string) bool {
	l.mu.Lock()
	lim, ok := l.cache.Get(client)
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)
	}
	// Get does not extend the TTL; re-set to restart the idle clock.
	l.cache.SetWithTTL(client, lim, 1, l.ttl)
	if !ok {
		l.cache.Wait()
	}
	l.mu.Unlock()
	return lim.Allow()
}

// RateLimit rejects requests over the per-client budget with 429. It returns
// a pass-through handler when limiting is disabled.
func RateLimit(cfg RateLimitConfig) (gin.HandlerFunc, error) {
	if cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }, nil
	}
	limiters, err := newClientLimiters(cfg)
	if err != nil {
		return nil, err
	}
	return func(c *gin.Context) {
		if !limiters.allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited"})
			return
		}
		c.Next()
	}, nil
}
