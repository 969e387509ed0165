package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Advisor   AdvisorConfig   `yaml:"advisor"`
	Live      LiveConfig      `yaml:"live"`
	CSV       CSVConfig       `yaml:"csv"`
	History   HistoryConfig   `yaml:"history"`
	QueryLog  QueryLogConfig  `yaml:"queryLog"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AdvisorConfig holds the classification tunables. Band thresholds apply to
// the current pollutant index; a boundary value classifies into the higher
// risk band.
type AdvisorConfig struct {
	ModerateThreshold  float64 `yaml:"moderateThreshold"`
	UnhealthyThreshold float64 `yaml:"unhealthyThreshold"`
	HazardousThreshold float64 `yaml:"hazardousThreshold"`
	AnomalyRatio       float64 `yaml:"anomalyRatio"`
	HistoryWindow      int     `yaml:"historyWindow"`
	RecentQueries      int     `yaml:"recentQueries"`
	DefaultLocation    string  `yaml:"defaultLocation"`
}

// LiveConfig points at the live air quality API.
type LiveConfig struct {
	BaseURL            string        `yaml:"baseUrl"`
	Timeout            time.Duration `yaml:"timeout"`
	BreakerMaxFailures uint32        `yaml:"breakerMaxFailures"`
	BreakerOpenTimeout time.Duration `yaml:"breakerOpenTimeout"`
}

// CSVConfig points at the bundled fallback data file.
type CSVConfig struct {
	Path string `yaml:"path"`
}

// HistoryConfig controls reading retention.
type HistoryConfig struct {
	MaxEntries int            `yaml:"maxEntries"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// QueryLogConfig controls the served-advisory log.
type QueryLogConfig struct {
	MaxEntries int         `yaml:"maxEntries"`
	Redis      RedisConfig `yaml:"redis"`
}

// RedisConfig contains connection information for the Valkey backed log.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// SchedulerConfig controls the background history refresh job.
type SchedulerConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Interval  time.Duration `yaml:"interval"`
	Locations []string      `yaml:"locations"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("ADVISOR_ANOMALY_RATIO"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Advisor.AnomalyRatio = parsed
		}
	}
	if v := os.Getenv("ADVISOR_HISTORY_WINDOW"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Advisor.HistoryWindow = parsed
		}
	}
	if v := os.Getenv("ADVISE_LOCATION"); v != "" {
		cfg.Advisor.DefaultLocation = v
	}
	if v := os.Getenv("AQ_LIVE_BASE_URL"); v != "" {
		cfg.Live.BaseURL = v
	}
	if v := os.Getenv("AQ_LIVE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Live.Timeout = parsed
		}
	}
	if v := os.Getenv("AQ_CSV_PATH"); v != "" {
		cfg.CSV.Path = v
	}
	if v := os.Getenv("HISTORY_POSTGRES_DSN"); v != "" {
		cfg.History.Postgres.DSN = v
	}
	if v := os.Getenv("QUERYLOG_REDIS_ENABLED"); v != "" {
		cfg.QueryLog.Redis.Enabled = isTruthy(v)
	}
	if v := os.Getenv("QUERYLOG_REDIS_ADDR"); v != "" {
		cfg.QueryLog.Redis.Addr = v
	}
	if v := os.Getenv("SCHEDULER_ENABLED"); v != "" {
		cfg.Scheduler.Enabled = isTruthy(v)
	}
	if v := os.Getenv("SCHEDULER_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Scheduler.Interval = parsed
		}
	}
	if v := os.Getenv("SCHEDULER_LOCATIONS"); v != "" {
		cfg.Scheduler.Locations = splitList(v)
	}
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Advisor: AdvisorConfig{
			ModerateThreshold:  50,
			UnhealthyThreshold: 100,
			HazardousThreshold: 200,
			AnomalyRatio:       0.3,
			HistoryWindow:      7,
			RecentQueries:      20,
			DefaultLocation:    "Chennai",
		},
		Live: LiveConfig{
			BaseURL:            "https://api.openaq.org/v2/latest",
			Timeout:            10 * time.Second,
			BreakerMaxFailures: 3,
			BreakerOpenTimeout: 30 * time.Second,
		},
		CSV: CSVConfig{
			Path: "data/sample_data.csv",
		},
		History: HistoryConfig{
			MaxEntries: 96,
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
		QueryLog: QueryLogConfig{
			MaxEntries: 200,
		},
		Scheduler: SchedulerConfig{
			Enabled:  false,
			Interval: 15 * time.Minute,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Advisor.ModerateThreshold <= 0 {
		return errors.New("advisor.moderateThreshold must be positive")
	}
	if c.Advisor.UnhealthyThreshold <= c.Advisor.ModerateThreshold {
		return errors.New("advisor.unhealthyThreshold must exceed advisor.moderateThreshold")
	}
	if c.Advisor.HazardousThreshold <= c.Advisor.UnhealthyThreshold {
		return errors.New("advisor.hazardousThreshold must exceed advisor.unhealthyThreshold")
	}
	if c.Advisor.AnomalyRatio <= 0 {
		return errors.New("advisor.anomalyRatio must be positive")
	}
	if c.Advisor.HistoryWindow <= 0 {
		return errors.New("advisor.historyWindow must be positive")
	}
	if strings.TrimSpace(c.Advisor.DefaultLocation) == "" {
		return errors.New("advisor.defaultLocation cannot be empty")
	}
	if c.Live.BaseURL == "" {
		return errors.New("live.baseUrl cannot be empty")
	}
	if c.Live.Timeout <= 0 {
		return errors.New("live.timeout must be positive")
	}
	if strings.TrimSpace(c.CSV.Path) == "" {
		return errors.New("csv.path cannot be empty")
	}
	if c.QueryLog.Redis.Enabled && strings.TrimSpace(c.QueryLog.Redis.Addr) == "" {
		return errors.New("queryLog.redis.addr cannot be empty when the valkey log is enabled")
	}
	if c.Scheduler.Enabled {
		if c.Scheduler.Interval <= 0 {
			return errors.New("scheduler.interval must be positive")
		}
		if len(c.Scheduler.Locations) == 0 {
			return errors.New("scheduler.locations cannot be empty when the scheduler is enabled")
		}
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
