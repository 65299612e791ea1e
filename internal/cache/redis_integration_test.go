//go:build integration

package cache

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/types"
)

// These tests require a running Redis.
// Set TEST_REDIS_ADDR to run them, e.g. TEST_REDIS_ADDR=localhost:6379

func getTestCache(t *testing.T) *Redis {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping integration test")
	}

	c := New(Options{Addr: addr, KeyPrefix: "talent-match-test-" + uuid.NewString()})
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test redis: %v", err)
	}
	return c
}

func TestIntegration_MatchesRoundTripAndInvalidate(t *testing.T) {
	c := getTestCache(t)
	defer c.Close()
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	_, ok, err := c.GetMatches(ctx, gen, "job-1")
	require.NoError(t, err)
	assert.False(t, ok)

	results := []types.MatchResult{{CandidateID: uuid.New(), Username: "alice", Score: 88, Reasons: []string{"high overall fit"}}}
	require.NoError(t, c.SetMatches(ctx, gen, "job-1", results))

	got, ok, err := c.GetMatches(ctx, gen, "job-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, results, got)

	require.NoError(t, c.Invalidate(ctx))

	next, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)
	_, ok, err = c.GetMatches(ctx, next, "job-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIntegration_WriteUnderStaleGenerationIsUnreachable(t *testing.T) {
	c := getTestCache(t)
	defer c.Close()
	ctx := context.Background()

	started, err := c.Generation(ctx)
	require.NoError(t, err)

	// A résumé changes while the ranking is being computed
	require.NoError(t, c.Invalidate(ctx))
	stale := []types.MatchResult{{CandidateID: uuid.New(), Username: "bob", Score: 51, Reasons: []string{"potential fit"}}}
	require.NoError(t, c.SetMatches(ctx, started, "job-2", stale))

	current, err := c.Generation(ctx)
	require.NoError(t, err)
	_, ok, err := c.GetMatches(ctx, current, "job-2")
	require.NoError(t, err)
	assert.False(t, ok)
}
