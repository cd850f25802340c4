package config

import "time"

// RefreshConfig controls the background profile refresh poller that runs
// while a session's account update or KYC verification is pending.
type RefreshConfig struct {
	// Interval is the polling period. The remote profile endpoint is hit
	// once per tick per pending session.
	Interval time.Duration `env:"INTERVAL" envDefault:"30s"`

	// Timeout bounds a single profile fetch.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to refresh configuration values.
// Intervals below 5s would let slow responses overlap the next tick.
func (c *RefreshConfig) Sanitize() {
	if c.Interval < 5*time.Second {
		c.Interval = 5 * time.Second
	}
	if c.Timeout <= 0 || c.Timeout >= c.Interval {
		c.Timeout = c.Interval / 2
	}
}
