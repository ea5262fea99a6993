package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/diary-stats-service/internal/logger"
)

// Config is the full application configuration as read from config.yaml
// and APP_* environment overrides.
type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Stats    StatsConfig         `mapstructure:"stats"`
	Jobs     JobsConfig          `mapstructure:"jobs"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env" validate:"omitempty,oneof=dev test staging prod"`
	Port    int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	// RateLimitRPS is the per-client request rate on /api/v1; zero disables it.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" validate:"gte=0"`
}

// PostgresConfig durations are in seconds.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"gte=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"gte=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime" validate:"gte=0"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time" validate:"gte=0"`
	HealthCheckPeriod int    `mapstructure:"health_check_period" validate:"gte=0"`
	AutoMigrate       bool   `mapstructure:"auto_migrate"`
}

type StatsConfig struct {
	CacheTTLSeconds       int   `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	CacheMaxEntries       int64 `mapstructure:"cache_max_entries" validate:"gte=0"`
	TrendWindowDays       int   `mapstructure:"trend_window_days" validate:"gt=0,lte=1095"`
	RequestTimeoutSeconds int   `mapstructure:"request_timeout_seconds" validate:"gt=0"`
}

// CacheTTL returns the memo TTL; zero disables caching.
func (s StatsConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

func (s StatsConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

type JobsConfig struct {
	SeasonCloseSpec    string `mapstructure:"season_close_spec"`
	SeasonCloseEnabled bool   `mapstructure:"season_close_enabled"`
}

// Validate checks the sections the server cannot start without. The logger
// section validates itself in logger.New.
func (c *Config) Validate() error {
	v := validator.New()
	for name, section := range map[string]any{
		"app":      c.App,
		"postgres": c.Postgres,
		"stats":    c.Stats,
	} {
		if err := v.Struct(section); err != nil {
			return fmt.Errorf("%s config validation error: %w", name, err)
		}
	}
	if c.Jobs.SeasonCloseEnabled && c.Jobs.SeasonCloseSpec == "" {
		return fmt.Errorf("jobs config validation error: season_close_spec is required when the job is enabled")
	}
	return nil
}
