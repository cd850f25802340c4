package config

import (
	"strings"
	"time"
)

// MarketAPIConfig describes the remote marketplace REST API the client
// calls for all business operations.
type MarketAPIConfig struct {
	// BaseURL is the root of the remote API, e.g. "https://api.rentnest.example".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:9000"`

	// Timeout is the per-request timeout for API calls.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// GuestKey is the API key sent on unauthenticated (guest) calls.
	GuestKey string `env:"GUEST_KEY" envDefault:""`

	// TokenFallbackTTL is the vault expiry used when the bearer token is
	// opaque (no parseable exp claim).
	TokenFallbackTTL time.Duration `env:"TOKEN_FALLBACK_TTL" envDefault:"24h"`
}

// Sanitize applies guardrails to API configuration values.
func (c *MarketAPIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.TokenFallbackTTL <= 0 {
		c.TokenFallbackTTL = 24 * time.Hour
	}
}
