package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: remote marketplace API configuration
//   - http.go: HTTP server configuration
//   - storage.go: Redis and session storage configuration
//   - refresh.go: profile refresh poller configuration
//   - observability.go: metrics configuration
type AppConfig struct {
	// IsDev controls development mode behavior (relaxed cookies, etc.)
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Remote marketplace API configuration
	API MarketAPIConfig `envPrefix:"API_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Redis and session storage configuration
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Session SessionConfig `envPrefix:"SESSION_"`

	// Profile refresh poller configuration
	Refresh RefreshConfig `envPrefix:"REFRESH_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.HTTP.Sanitize()
	c.Session.Sanitize()
	c.Refresh.Sanitize()
	c.Observability.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
