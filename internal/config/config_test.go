package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 20, cfg.Matching.Limit)
	assert.Equal(t, 30, cfg.Matching.MinScore)
	assert.Equal(t, 10, cfg.Matching.RecommendLimit)
	assert.Equal(t, "resumes.parsed", cfg.NATS.ResumeSubject)
	assert.Equal(t, "matches.computed", cfg.NATS.MatchesSubject)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Tracing.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
server:
  port: 9090
redis:
  addr: "redis:6379"
  ttl: 2m
matching:
  limit: 50
  min-score: 40
tracing:
  enabled: true
  collector-url: "otel:4317"
`
	tmpFile := filepath.Join(t.TempDir(), "talent-match.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 50, cfg.Matching.Limit)
	assert.Equal(t, 40, cfg.Matching.MinScore)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "otel:4317", cfg.Tracing.CollectorURL)
	// Untouched keys keep defaults
	assert.Equal(t, "talent-match", cfg.NATS.QueueGroup)
}

func TestLoad_RateLimitLists(t *testing.T) {
	content := `
rate-limit:
  requests-per-minute: 60
  whitelist: ["10.0.0.1", "10.0.0.2"]
  blacklist: ["192.168.1.9"]
`
	tmpFile := filepath.Join(t.TempDir(), "talent-match.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.RateLimit.Whitelist)
	assert.Equal(t, []string{"192.168.1.9"}, cfg.RateLimit.Blacklist)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TALENT_MATCH_SERVER_PORT", "7070")
	t.Setenv("TALENT_MATCH_MATCHING_MIN_SCORE", "55")
	t.Setenv("TALENT_MATCH_NATS_URL", "nats://localhost:4222")
	t.Setenv("DATABASE_URL", "postgres://localhost/talent")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 55, cfg.Matching.MinScore)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "postgres://localhost/talent", cfg.Database.URL)
	assert.NoError(t, cfg.RequireDatabase())
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	_, err := Load(tmpFile)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"limit too high", func(c *Config) { c.Matching.Limit = 101 }, "matching.limit"},
		{"negative min score", func(c *Config) { c.Matching.MinScore = -1 }, "matching.min-score"},
		{"negative workers", func(c *Config) { c.Matching.Workers = -2 }, "matching.workers"},
		{"sample ratio", func(c *Config) { c.Tracing.SampleRatio = 2 }, "tracing.sample-ratio"},
		{"tracing without collector", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.CollectorURL = ""
		}, "collector-url"},
		{"rate limit", func(c *Config) { c.RateLimit.Burst = 0 }, "rate limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequireDatabase(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.RequireDatabase())
}
