package ratelimit

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  3,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.66": true},
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/search", Method: http.MethodGet, Limit: 2, Window: time.Minute},
			{Path: "/api/admin/", Method: http.MethodPost, Limit: 1, Window: time.Minute},
		},
	}
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *time.Time) {
	t.Helper()
	l := NewLimiter(cfg)
	t.Cleanup(l.Stop)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllow_DefaultLimit(t *testing.T) {
	l, _ := newTestLimiter(t, testConfig())

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("1.2.3.4", "/api/recipes", http.MethodGet)
		require.True(t, allowed, "request %d", i)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("1.2.3.4", "/api/recipes", http.MethodGet)
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, info.RetryAfter, 21*time.Second)
}

func TestAllow_Refills(t *testing.T) {
	l, now := newTestLimiter(t, testConfig())

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/search", http.MethodGet)
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("1.2.3.4", "/api/search", http.MethodGet)
	require.False(t, allowed)

	*now = now.Add(31 * time.Second)
	allowed, _ = l.Allow("1.2.3.4", "/api/search", http.MethodGet)
	assert.True(t, allowed)
}

func TestAllow_SeparateClientsAndEndpoints(t *testing.T) {
	l, _ := newTestLimiter(t, testConfig())

	allowed, _ := l.Allow("1.2.3.4", "/api/admin/recipes", http.MethodPost)
	require.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/api/admin/techniques", http.MethodPost)
	assert.False(t, allowed, "prefix endpoints share one bucket")

	allowed, _ = l.Allow("5.6.7.8", "/api/admin/recipes", http.MethodPost)
	assert.True(t, allowed, "other clients have their own bucket")

	allowed, _ = l.Allow("1.2.3.4", "/api/search", http.MethodGet)
	assert.True(t, allowed, "other endpoints have their own bucket")
}

func TestAllow_Lists(t *testing.T) {
	l, _ := newTestLimiter(t, testConfig())

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/api/search", http.MethodGet)
		require.True(t, allowed)
	}

	allowed, _ := l.Allow("10.0.0.66", "/api/recipes", http.MethodGet)
	assert.False(t, allowed)
}

func TestAllow_EndpointName(t *testing.T) {
	l, _ := newTestLimiter(t, testConfig())

	_, info := l.Allow("1.2.3.4", "/api/recipes/torta-della-nonna", http.MethodGet)
	assert.Equal(t, DefaultEndpoint, info.Endpoint)

	_, info = l.Allow("1.2.3.4", "/api/admin/recipes/42", http.MethodPost)
	assert.Equal(t, "POST /api/admin/", info.Endpoint)

	_, info = l.Allow("1.2.3.4", "/api/search", http.MethodGet)
	assert.Equal(t, "GET /api/search", info.Endpoint)

	_, info = l.Allow("10.0.0.66", "/api/search", http.MethodGet)
	assert.Equal(t, BlacklistEndpoint, info.Endpoint)
}

func TestAllow_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false})
	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/search", http.MethodGet)
		require.True(t, allowed)
	}
}

func TestAllow_HealthUnlimited(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 1
	l, _ := newTestLimiter(t, cfg)

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", http.MethodGet)
		require.True(t, allowed)
	}
}

func TestCleanup(t *testing.T) {
	l, now := newTestLimiter(t, testConfig())

	l.Allow("1.2.3.4", "/api/recipes", http.MethodGet)
	l.Allow("5.6.7.8", "/api/recipes", http.MethodGet)
	assert.Equal(t, 0, l.cleanup())

	*now = now.Add(2 * time.Hour)
	l.Allow("5.6.7.8", "/api/recipes", http.MethodGet)
	assert.Equal(t, 1, l.cleanup())
	assert.Len(t, l.buckets, 1)
}

func TestStop_Idempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Second, CleanupInterval: time.Millisecond})
	l.Stop()
	l.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs(60)

	cfg := MatchEndpoint("/api/auth/login", http.MethodPost, configs)
	require.NotNil(t, cfg)
	assert.Equal(t, 10, cfg.Limit)

	cfg = MatchEndpoint("/api/admin/products/abc/refresh", http.MethodPost, configs)
	require.NotNil(t, cfg)
	assert.Equal(t, time.Hour, cfg.Window)

	cfg = MatchEndpoint("/api/admin/recipes/abc", http.MethodPut, configs)
	require.NotNil(t, cfg)
	assert.Equal(t, "/api/admin/", cfg.Path)

	cfg = MatchEndpoint("/api/search", http.MethodGet, configs)
	require.NotNil(t, cfg)
	assert.Equal(t, 60, cfg.Limit)
	assert.Equal(t, 20, cfg.Burst)

	assert.Nil(t, MatchEndpoint("/api/recipes", http.MethodGet, configs))
	assert.Nil(t, MatchEndpoint("/api/search", http.MethodPost, configs))

	cfg = MatchEndpoint("/metrics", http.MethodGet, configs)
	require.NotNil(t, cfg)
	assert.Zero(t, cfg.Limit)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "100")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2,")
	t.Setenv("RATE_LIMIT_SEARCH_LIMIT", "30")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 100, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.Len(t, cfg.Whitelist, 2)
	assert.True(t, cfg.Whitelist["10.0.0.2"])
	assert.Empty(t, cfg.Blacklist)

	search := MatchEndpoint("/api/search", http.MethodGet, cfg.EndpointConfigs)
	require.NotNil(t, search)
	assert.Equal(t, 30, search.Limit)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
