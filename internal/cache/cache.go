// Package cache stores computed match rankings in Redis.
package cache

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a key is absent from the cache
	ErrNotFound = errors.New("key not found in cache")
	// ErrInvalidValue is returned when a cached value cannot be decoded
	ErrInvalidValue = errors.New("invalid value for cache")
)

// Options configures the Redis connection and expiry of cached rankings
type Options struct {
	Addr      string
	Password  string
	DB        int
	TTL       time.Duration
	KeyPrefix string
}

// DefaultOptions returns a local Redis with a 10 minute TTL
func DefaultOptions() Options {
	return Options{
		Addr:      "localhost:6379",
		TTL:       10 * time.Minute,
		KeyPrefix: "talent-match",
	}
}
