package config

import "time"

// RedisConfig contains Redis configuration for the durable session store
// and the token vault.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelPort       string   `env:"SENTINEL_PORT"        envDefault:"26379"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// SessionConfig controls persistence of per-visitor session state.
type SessionConfig struct {
	// KeyPrefix namespaces every session and vault key in Redis.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"rentnest:"`

	// TTL is how long an idle session survives between visits.
	TTL time.Duration `env:"TTL" envDefault:"720h"`
}

// Sanitize applies guardrails to session configuration values.
func (c *SessionConfig) Sanitize() {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "rentnest:"
	}
	if c.TTL <= 0 {
		c.TTL = 720 * time.Hour
	}
}
