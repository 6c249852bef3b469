package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/pastry-blog/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" makes it a prefix
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Endpoint names reported in Info for requests no endpoint config matched.
const (
	DefaultEndpoint   = "default"
	BlacklistEndpoint = "blacklist"
)

const defaultPath = "*"

// Name returns "METHOD path" for a configured endpoint and DefaultEndpoint
// for the catch-all limit.
func (c *EndpointConfig) Name() string {
	if c.Path == defaultPath {
		return DefaultEndpoint
	}
	if c.Path == "" {
		return "unlimited"
	}
	return c.Method + " " + c.Path
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !config.GetEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    config.GetEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   config.GetEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: config.GetEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(config.GetEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(config.GetEnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(config.GetEnvInt("RATE_LIMIT_SEARCH_LIMIT", 60)),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. searchLimit is
// the number of searches a client may run per minute.
func DefaultEndpointConfigs(searchLimit int) []EndpointConfig {
	return []EndpointConfig{
		// Login attempts (strictest)
		{Path: "/api/auth/login", Method: http.MethodPost, Limit: 10, Window: time.Minute, Burst: 5},

		// Product refresh fetches a remote page
		{Path: "/api/admin/products/", Method: http.MethodPost, Limit: 30, Window: time.Hour, Burst: 5},

		// Admin writes
		{Path: "/api/admin/", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/admin/", Method: http.MethodPut, Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/admin/", Method: http.MethodDelete, Limit: 120, Window: time.Minute, Burst: 20},

		// Search hits the database three times per request
		{Path: "/api/search", Method: http.MethodGet, Limit: searchLimit, Window: time.Minute, Burst: max(searchLimit/3, 1)},

		// Listings and detail pages use the default limit
		// Health and metrics are unlimited, see MatchEndpoint
	}
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
