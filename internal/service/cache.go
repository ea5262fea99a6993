package service

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/goccy/go-json"

	"github.com/maxviazov/diary-stats-service/internal/metrics"
	"github.com/maxviazov/diary-stats-service/internal/model"
)

// CacheConfig sizes the aggregation memos. A zero TTL disables memoization.
type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int64
}

// Caches bundles the memos shared by the services. A nil *Caches disables
// memoization.
type Caches struct {
	diary *memo[model.DiaryStats]
	match *memo[model.MatchStatisticAverage]
}

func NewCaches(cfg CacheConfig) (*Caches, error) {
	diary, err := newMemo[model.DiaryStats]("diary", cfg)
	if err != nil {
		return nil, err
	}
	match, err := newMemo[model.MatchStatisticAverage]("match", cfg)
	if err != nil {
		diary.close()
		return nil, err
	}
	return &Caches{diary: diary, match: match}, nil
}

func (c *Caches) diaryMemo() *memo[model.DiaryStats] {
	if c == nil {
		return nil
	}
	return c.diary
}

func (c *Caches) matchMemo() *memo[model.MatchStatisticAverage] {
	if c == nil {
		return nil
	}
	return c.match
}

// Close stops the cache goroutines.
func (c *Caches) Close() {
	if c == nil {
		return
	}
	c.diary.close()
	c.match.close()
}

// memo is a store-aside cache for pure aggregations. Keys are a content hash
// of the aggregation inputs, so a changed record set never hits a stale
// entry and nothing needs invalidating.
type memo[V any] struct {
	name  string
	ttl   time.Duration
	cache *ristretto.Cache[string, V]
}

// newMemo returns nil when caching is disabled; a nil memo computes every call.
func newMemo[V any](name string, cfg CacheConfig) (*memo[V], error) {
	if cfg.TTL <= 0 {
		return nil, nil
	}
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 10_000
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
		// MaxCost counts entries, not bytes
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s cache: %w", name, err)
	}
	return &memo[V]{name: name, ttl: cfg.TTL, cache: c}, nil
}

// getOrCompute returns the cached value for inputs or computes and stores it.
// Inputs that cannot be encoded skip the cache.
func (m *memo[V]) getOrCompute(prefix string, inputs any, compute func() V) V {
	if m == nil {
		return compute()
	}
	key, ok := cacheKey(prefix, inputs)
	if !ok {
		return compute()
	}
	if v, hit := m.cache.Get(key); hit {
		metrics.CacheResult(m.name, true)
		return v
	}
	metrics.CacheResult(m.name, false)

	v := compute()
	m.cache.SetWithTTL(key, v, 1, m.ttl)
	// Set is buffered; wait so an immediate repeat request sees the entry.
	m.cache.Wait()
	return v
}

func (m *memo[V]) close() {
	if m != nil {
		m.cache.Close()
	}
}

func cacheKey(prefix string, inputs any) (string, bool) {
	raw, err := json.Marshal(inputs)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s:%016x", prefix, xxhash.Sum64(raw)), true
}
