package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_AppliesDefaults(t *testing.T) {
	c := New(Options{})
	defer c.Close()

	assert.Equal(t, 10*time.Minute, c.ttl)
	assert.Equal(t, "talent-match", c.prefix)
	assert.Equal(t, "localhost:6379", c.client.Options().Addr)
}

func TestNew_KeepsExplicitOptions(t *testing.T) {
	c := New(Options{Addr: "redis:6380", TTL: time.Minute, KeyPrefix: "tm", DB: 2})
	defer c.Close()

	assert.Equal(t, time.Minute, c.ttl)
	assert.Equal(t, "tm", c.prefix)
	assert.Equal(t, 2, c.client.Options().DB)
}

func TestFormatMatchKey(t *testing.T) {
	assert.Equal(t, "tm:match:0:job:20:30:abc", formatMatchKey("tm", 0, "job:20:30:abc"))
	assert.NotEqual(t, formatMatchKey("tm", 1, "k"), formatMatchKey("tm", 2, "k"))
}
