package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/talent-match/internal/types"
)

// Redis caches match rankings. Keys embed a generation counter; Invalidate bumps the
// counter so every ranking stored under an older generation stops being addressable and
// expires by TTL. Callers read Generation before computing a ranking and store it under
// that value, so a ranking that raced an invalidation is never served.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// New creates a Redis cache from opts. Zero values fall back to DefaultOptions.
func New(opts Options) *Redis {
	defaults := DefaultOptions()
	if opts.Addr == "" {
		opts.Addr = defaults.Addr
	}
	if opts.TTL <= 0 {
		opts.TTL = defaults.TTL
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = defaults.KeyPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return &Redis{client: client, ttl: opts.TTL, prefix: opts.KeyPrefix}
}

// Ping checks the connection
func (c *Redis) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// GetMatches returns the ranking cached for key under generation. ok is false on a miss.
func (c *Redis) GetMatches(ctx context.Context, generation int64, key string) ([]types.MatchResult, bool, error) {
	var results []types.MatchResult
	err := c.get(ctx, formatMatchKey(c.prefix, generation, key), &results)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return results, true, nil
}

// SetMatches stores a ranking under generation and key for the configured TTL
func (c *Redis) SetMatches(ctx context.Context, generation int64, key string, results []types.MatchResult) error {
	if results == nil {
		results = []types.MatchResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}

	fullKey := formatMatchKey(c.prefix, generation, key)
	if err := c.client.Set(ctx, fullKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache matches: %w", err)
	}
	return nil
}

// Invalidate makes every cached ranking stale, e.g. after a résumé changes
func (c *Redis) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate match cache: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (c *Redis) Close() error {
	return c.client.Close()
}

func (c *Redis) get(ctx context.Context, fullKey string, value any) error {
	data, err := c.client.Get(ctx, fullKey).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return nil
}

// Generation returns the current invalidation counter, 0 when never set
func (c *Redis) Generation(ctx context.Context) (int64, error) {
	val, err := c.client.Get(ctx, c.generationKey()).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	gen, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: generation %q", ErrInvalidValue, val)
	}
	return gen, nil
}

func (c *Redis) generationKey() string {
	return c.prefix + ":match:generation"
}

func formatMatchKey(prefix string, generation int64, key string) string {
	return fmt.Sprintf("%s:match:%d:%s", prefix, generation, key)
}
