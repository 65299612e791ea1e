package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l.now = clock.Now
	return l, clock
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 60, 3, nil, nil))
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/jobs/1/matching-applicants", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 60, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/jobs/1/matching-applicants", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Second, info.RetryAfter)
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(true, 60, 1, nil, nil))
	defer l.Stop()

	allowed, _ := l.Allow("c", "/jobs/x", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/jobs/x", "GET")
	require.False(t, allowed)

	clock.Advance(time.Second)
	allowed, _ = l.Allow("c", "/jobs/x", "GET")
	assert.True(t, allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 60, 1, nil, nil))
	defer l.Stop()

	allowed, _ := l.Allow("a", "/jobs/x", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("b", "/jobs/x", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/jobs/x", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Lists(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 1, 1, []string{" 1.1.1.1 "}, []string{"6.6.6.6"}))
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("1.1.1.1", "/jobs/x", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("6.6.6.6", "/jobs/x", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(NewConfig(false, 1, 1, nil, nil))
	defer l.Stop()
	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("c", "/jobs/x", "GET")
		assert.True(t, allowed)
	}

	nilCfg := NewLimiter(nil)
	defer nilCfg.Stop()
	allowed, _ := nilCfg.Allow("c", "/jobs/x", "GET")
	assert.True(t, allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 1, 1, nil, nil))
	defer l.Stop()
	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_EndpointOverride(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 1000, 100, nil, nil))
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("c", "/businesses/b1/recommendations", "GET")
		require.True(t, allowed)
	}
	allowed, info := l.Allow("c", "/businesses/b1/recommendations", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 30, info.Limit)
}

func TestLimiter_IDsInPathShareEndpointBucket(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 1000, 100, nil, nil))
	defer l.Stop()

	allowedCount := 0
	for i := 0; i < 50; i++ {
		path := fmt.Sprintf("/businesses/%d/recommendations", i)
		if ok, _ := l.Allow("c", path, "GET"); ok {
			allowedCount++
		}
	}
	assert.Equal(t, 5, allowedCount)
}

func TestLimiter_DefaultBucketSpansPaths(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 60, 3, nil, nil))
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("c", fmt.Sprintf("/jobs/%d/matching-applicants", i), "GET")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("c", "/jobs/99/matching-applicants", "GET")
	assert.False(t, allowed)

	// A configured endpoint keeps its own bucket
	allowed, _ = l.Allow("c", "/candidates/1/resume", "PUT")
	assert.True(t, allowed)
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(true, 60, 1, nil, nil))
	defer l.Stop()

	l.Allow("a", "/jobs/x", "GET")
	clock.Advance(30 * time.Minute)
	l.Allow("b", "/jobs/x", "GET")
	clock.Advance(45 * time.Minute)

	l.cleanup()
	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "b:*")
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 60, 50, nil, nil))
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/jobs/x", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(NewConfig(true, 60, 1, nil, nil))
	l.Stop()
	assert.NotPanics(t, l.Stop)

	select {
	case <-l.Done():
	default:
		t.Fatal("Done not closed after Stop")
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/jobs/", Method: "GET", Limit: 1},
		{Path: "/jobs/special/", Method: "GET", Limit: 2},
		{Path: "/jobs/exact", Method: "GET", Limit: 3},
		{Path: "/jobs/", Method: "PUT", Limit: 4},
	}

	tests := []struct {
		path, method string
		want         int
	}{
		{"/jobs/1", "GET", 1},
		{"/jobs/special/1", "GET", 2},
		{"/jobs/exact", "GET", 3},
		{"/jobs/1", "PUT", 4},
		{"/other", "GET", -1},
		{"/jobs/1", "DELETE", -1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.want < 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Limit)
		})
	}
}
