package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://www.rentnest.example").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// AuthRatePerMinute limits credential-endpoint requests per client IP.
	AuthRatePerMinute int `env:"HTTP_AUTH_RATE_PER_MINUTE" envDefault:"30"`

	// AuthRateBurst is the burst size for the credential-endpoint limiter.
	AuthRateBurst int `env:"HTTP_AUTH_RATE_BURST" envDefault:"10"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.AuthRatePerMinute < 1 {
		h.AuthRatePerMinute = 1
	}
	if h.AuthRateBurst < 1 {
		h.AuthRateBurst = 1
	}
}
