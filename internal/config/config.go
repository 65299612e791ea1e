// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "TALENT_MATCH"

// Config is the full runtime configuration. Values come from defaults, then an optional
// config file, then TALENT_MATCH_* environment variables (e.g. TALENT_MATCH_REDIS_ADDR).
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	RateLimit RateLimitConfig `mapstructure:"rate-limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

// DatabaseConfig configures PostgreSQL
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig configures the match cache. An empty address disables caching.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// NATSConfig configures résumé events. An empty URL disables messaging.
type NATSConfig struct {
	URL            string `mapstructure:"url"`
	ResumeSubject  string `mapstructure:"resume-subject"`
	MatchesSubject string `mapstructure:"matches-subject"`
	QueueGroup     string `mapstructure:"queue-group"`
}

// MatchingConfig holds ranking defaults
type MatchingConfig struct {
	Limit          int `mapstructure:"limit"`
	MinScore       int `mapstructure:"min-score"`
	RecommendLimit int `mapstructure:"recommend-limit"`
	Workers        int `mapstructure:"workers"`
}

// TracingConfig configures OTLP span export
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	CollectorURL string  `mapstructure:"collector-url"`
	ServiceName  string  `mapstructure:"service-name"`
	SampleRatio  float64 `mapstructure:"sample-ratio"`
}

// GeminiConfig configures résumé extraction
type GeminiConfig struct {
	APIKey string `mapstructure:"api-key"`
	Model  string `mapstructure:"model"`
}

// RateLimitConfig configures per-client API rate limiting
type RateLimitConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	RequestsPerMinute int      `mapstructure:"requests-per-minute"`
	Burst             int      `mapstructure:"burst"`
	Whitelist         []string `mapstructure:"whitelist"`
	Blacklist         []string `mapstructure:"blacklist"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read-timeout", 15*time.Second)
	v.SetDefault("server.write-timeout", 60*time.Second)
	v.SetDefault("server.shutdown-timeout", 10*time.Second)

	v.SetDefault("database.url", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 10*time.Minute)

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.resume-subject", "resumes.parsed")
	v.SetDefault("nats.matches-subject", "matches.computed")
	v.SetDefault("nats.queue-group", "talent-match")

	v.SetDefault("matching.limit", 20)
	v.SetDefault("matching.min-score", 30)
	v.SetDefault("matching.recommend-limit", 10)
	v.SetDefault("matching.workers", 0)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.collector-url", "localhost:4317")
	v.SetDefault("tracing.service-name", "talent-match")
	v.SetDefault("tracing.sample-ratio", 1.0)

	v.SetDefault("gemini.api-key", "")
	v.SetDefault("gemini.model", "")

	v.SetDefault("rate-limit.enabled", true)
	v.SetDefault("rate-limit.requests-per-minute", 120)
	v.SetDefault("rate-limit.burst", 20)
	v.SetDefault("rate-limit.whitelist", []string{})
	v.SetDefault("rate-limit.blacklist", []string{})

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load reads configuration. path may be empty, in which case only defaults and the
// environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Conventional unprefixed variables also used by the rest of the tooling
	if err := v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}
	if err := v.BindEnv("gemini.api-key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Connection settings are checked by the commands that need them.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'server.port' must be between 1 and 65535"))
	}
	if c.Matching.Limit < 1 || c.Matching.Limit > 100 {
		errs = append(errs, fmt.Errorf("config error: 'matching.limit' must be between 1 and 100"))
	}
	if c.Matching.RecommendLimit < 1 || c.Matching.RecommendLimit > 100 {
		errs = append(errs, fmt.Errorf("config error: 'matching.recommend-limit' must be between 1 and 100"))
	}
	if c.Matching.MinScore < 0 || c.Matching.MinScore > 100 {
		errs = append(errs, fmt.Errorf("config error: 'matching.min-score' must be between 0 and 100"))
	}
	if c.Matching.Workers < 0 {
		errs = append(errs, fmt.Errorf("config error: 'matching.workers' must be non-negative"))
	}
	if c.Redis.TTL < 0 {
		errs = append(errs, fmt.Errorf("config error: 'redis.ttl' must be non-negative"))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("config error: 'tracing.sample-ratio' must be between 0 and 1"))
	}
	if c.Tracing.Enabled && c.Tracing.CollectorURL == "" {
		errs = append(errs, fmt.Errorf("config error: 'tracing.collector-url' is required when tracing is enabled"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, fmt.Errorf("config error: rate limit values must be positive"))
	}

	return errors.Join(errs...)
}

// RequireDatabase returns an error when no database URL is configured
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or %s_DATABASE_URL)", EnvPrefix)
	}
	return nil
}
