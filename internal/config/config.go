package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Knob ranges. Values outside a range are clamped, not rejected: a bad
// env var should degrade to something sane, not break the tool.
const (
	minCacheTTLSeconds = 60
	maxCacheTTLSeconds = 86400

	minRequestsPerMinute = 10
	maxRequestsPerMinute = 120
)

type API struct {
	BaseURL        string `mapstructure:"base_url"`
	Provider       string `mapstructure:"provider"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Cache struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type RateLimit struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	MaxWaitSeconds    int `mapstructure:"max_wait_seconds"`
	MaxAttempts       int `mapstructure:"max_attempts"`
}

type Monitor struct {
	IntervalSeconds int    `mapstructure:"interval_seconds"`
	MetricsAddr     string `mapstructure:"metrics_addr"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	API       API       `mapstructure:"api"`
	DataDir   string    `mapstructure:"data_dir"`
	Cache     Cache     `mapstructure:"cache"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
	Monitor   Monitor   `mapstructure:"monitor"`
	Logging   Logging   `mapstructure:"logging"`
}

func (c *AppConfig) RatesFile() string  { return filepath.Join(c.DataDir, "rates.json") }
func (c *AppConfig) AlertsFile() string { return filepath.Join(c.DataDir, "alerts.json") }

func (c *AppConfig) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c *AppConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func (c *AppConfig) LimiterMaxWait() time.Duration {
	return time.Duration(c.RateLimit.MaxWaitSeconds) * time.Second
}

func (c *AppConfig) MonitorInterval() time.Duration {
	return time.Duration(c.Monitor.IntervalSeconds) * time.Second
}

// Init loads settings from the environment. An optional .env file is
// honored when present.
func Init() (*AppConfig, error) {
	var cfg AppConfig

	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("api.base_url", "https://api.exchangerate-api.com/v4")
	v.SetDefault("api.provider", "exchangerate-api")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("rate_limit.requests_per_minute", 60)
	v.SetDefault("rate_limit.max_wait_seconds", 30)
	v.SetDefault("rate_limit.max_attempts", 3)
	v.SetDefault("monitor.interval_seconds", 600)
	v.SetDefault("monitor.metrics_addr", "")
	v.SetDefault("logging.level", "info")

	_ = v.BindEnv("api.base_url", "WISERATE_API_URL")
	_ = v.BindEnv("api.provider", "WISERATE_API_PROVIDER")
	_ = v.BindEnv("api.timeout_seconds", "WISERATE_API_TIMEOUT_SECONDS")
	_ = v.BindEnv("data_dir", "WISERATE_DATA_DIR")
	_ = v.BindEnv("cache.ttl_seconds", "WISERATE_CACHE_TTL")
	_ = v.BindEnv("rate_limit.requests_per_minute", "WISERATE_MAX_REQUESTS_PER_MINUTE")
	_ = v.BindEnv("rate_limit.max_wait_seconds", "WISERATE_RATE_LIMIT_MAX_WAIT_SECONDS")
	_ = v.BindEnv("rate_limit.max_attempts", "WISERATE_RETRY_ATTEMPTS")
	_ = v.BindEnv("monitor.interval_seconds", "WISERATE_MONITOR_INTERVAL")
	_ = v.BindEnv("monitor.metrics_addr", "WISERATE_METRICS_ADDR")
	_ = v.BindEnv("logging.level", "WISERATE_LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Cache.TTLSeconds = clamp(cfg.Cache.TTLSeconds, minCacheTTLSeconds, maxCacheTTLSeconds)
	cfg.RateLimit.RequestsPerMinute = clamp(cfg.RateLimit.RequestsPerMinute, minRequestsPerMinute, maxRequestsPerMinute)

	return &cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wiserate"
	}
	return filepath.Join(home, ".wiserate")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
