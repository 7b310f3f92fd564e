package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiterConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		// CleanupInterval left zero so no background goroutine starts.
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

func TestAllowBurstExhaustion(t *testing.T) {
	l := NewLimiter(testLimiterConfig())
	defer l.Stop()

	// The checks tier allows a burst of 2 before refill kicks in.
	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("1.2.3.4", "/checks", "POST")
		assert.True(t, allowed, "request %d", i)
		assert.Equal(t, 10, info.Limit)
	}

	allowed, info := l.Allow("1.2.3.4", "/checks", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	// Other clients have their own bucket.
	allowed, _ = l.Allow("5.6.7.8", "/checks", "POST")
	assert.True(t, allowed)
}

func TestAllowHealthUnlimited(t *testing.T) {
	l := NewLimiter(testLimiterConfig())
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestAllowWhitelistAndBlacklist(t *testing.T) {
	cfg := testLimiterConfig()
	cfg.Whitelist["10.0.0.1"] = true
	cfg.Blacklist["6.6.6.6"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/checks", "POST")
		require.True(t, allowed)
	}

	allowed, info := l.Allow("6.6.6.6", "/health", "GET")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
}

func TestAllowDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/checks", "POST")
		require.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	t.Run("exact match", func(t *testing.T) {
		rule := MatchEndpoint("/checks", "POST", configs)
		require.NotNil(t, rule)
		assert.Equal(t, 10, rule.Limit)
	})

	t.Run("prefix match", func(t *testing.T) {
		rule := MatchEndpoint("/reports/BCR-ABC123/email", "POST", configs)
		require.NotNil(t, rule)
		assert.Equal(t, 30, rule.Limit)
	})

	t.Run("method must match", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/checks", "GET", configs))
	})

	t.Run("health is always unlimited", func(t *testing.T) {
		rule := MatchEndpoint("/health", "GET", configs)
		require.NotNil(t, rule)
		assert.Equal(t, 0, rule.Limit)
	})

	t.Run("unknown path", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/nowhere", "GET", configs))
	})
}

func TestEvictIdle(t *testing.T) {
	l := NewLimiter(testLimiterConfig())
	defer l.Stop()

	l.Allow("1.2.3.4", "/checks", "POST")
	require.Len(t, l.buckets, 1)

	// A cutoff in the future marks every bucket idle.
	l.evictIdle(time.Now().Add(time.Minute))
	assert.Empty(t, l.buckets)
}
