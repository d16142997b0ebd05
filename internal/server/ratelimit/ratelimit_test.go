package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoints ...EndpointConfig) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: endpoints,
	}
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l := NewLimiter(testConfig(
		EndpointConfig{Path: "/auth/resume/parse/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
	))
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/auth/resume/parse/", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/auth/resume/parse/", "POST")
	assert.True(t, allowed)

	allowed, info := l.Allow("1.2.3.4", "/auth/resume/parse/", "POST")
	require.False(t, allowed, "third request should exceed the burst")
	assert.Equal(t, 10, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	l := NewLimiter(testConfig(
		EndpointConfig{Path: "/auth/upload/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
	))
	defer l.Stop()

	allowed, _ := l.Allow("1.1.1.1", "/auth/upload/", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.1.1.1", "/auth/upload/", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("2.2.2.2", "/auth/upload/", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestLimiter_PrefixMatch(t *testing.T) {
	l := NewLimiter(testConfig(
		EndpointConfig{Path: "/auth/upload/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
	))
	defer l.Stop()

	allowed, info := l.Allow("c", "/auth/upload/anything", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 10, info.Limit)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 500; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("c", "/auth/resume/parse/", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_UnmatchedUsesDefault(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	_, info := l.Allow("c", "/auth/navigation/", "GET")
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_StopIdempotent(t *testing.T) {
	l := NewLimiter(testConfig())
	l.Stop()
	l.Stop()
}
