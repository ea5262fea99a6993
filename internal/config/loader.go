package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads the YAML file at path, applies APP_* environment overrides
// (APP_POSTGRES_PASSWORD overrides postgres.password) and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	setDefaults(v)

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// setDefaults also registers every key with viper, which AutomaticEnv needs
// to pick up env-only values during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "diary-stats-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.rate_limit_rps", 20)
	v.SetDefault("app.rate_limit_burst", 40)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)
	v.SetDefault("postgres.auto_migrate", true)

	v.SetDefault("stats.cache_ttl_seconds", 60)
	v.SetDefault("stats.cache_max_entries", 10000)
	v.SetDefault("stats.trend_window_days", 30)
	v.SetDefault("stats.request_timeout_seconds", 5)

	v.SetDefault("jobs.season_close_spec", "0 0 3 1 1 *")
	v.SetDefault("jobs.season_close_enabled", false)
}
