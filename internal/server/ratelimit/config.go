package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one method and path pattern
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // requests per window, 0 means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a Config allowing perMinute requests per client with the given
// burst on ordinary endpoints, plus the stricter DefaultEndpointConfigs.
func NewConfig(enabled bool, perMinute, burst int, whitelist, blacklist []string) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    perMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       toSet(whitelist),
		Blacklist:       toSet(blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint overrides
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Recommendations rank the pool once per open job of a business
		{Path: "/businesses/", Method: "GET", Limit: 30, Window: time.Minute, Burst: 5},

		{Path: "/candidates/", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},

		// Health checks are unlimited
		{Path: "/health", Method: "GET", Limit: 0},
	}
}

// toSet trims entries and drops blanks
func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = true
		}
	}
	return set
}
