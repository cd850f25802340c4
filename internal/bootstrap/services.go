package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rentnest/rentnest-web/config"
	redisadapter "github.com/rentnest/rentnest-web/internal/adapters/redis"
	"github.com/rentnest/rentnest-web/internal/adapters/refresh"
	"github.com/rentnest/rentnest-web/internal/marketapi"
	"github.com/rentnest/rentnest-web/internal/observability/statsd"
	"github.com/rentnest/rentnest-web/internal/session"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Sessions *session.Manager
	API      *marketapi.Client
	Refresh  *refresh.Runner
	Metrics  statsd.Sink
}

// ServiceDeps contains the dependencies needed to build services.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the storage adapters, the marketplace client, the
// session manager, and the refresh poller together.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.Enabled,
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  cfg.Observability.Metrics.Prefix,
		Logger:  logger,
	})
	if err != nil {
		// Metrics are best effort; a bad sink address must not keep the
		// service down.
		logger.Warn("statsd client unavailable, metrics disabled", "error", err)
	}
	var sink statsd.Sink
	if err == nil {
		sink = metrics
	}
	sink = statsd.OrNop(sink)

	store := redisadapter.NewSessionStore(redisadapter.SessionStoreOptions{
		Client: deps.RedisClient,
		Prefix: cfg.Session.KeyPrefix,
		TTL:    cfg.Session.TTL,
	})
	vault := redisadapter.NewTokenVault(redisadapter.TokenVaultOptions{
		Client: deps.RedisClient,
		Prefix: cfg.Session.KeyPrefix,
		TTL:    cfg.Session.TTL,
	})

	apiClient := marketapi.NewClient(marketapi.ClientOptions{
		BaseURL:          cfg.API.BaseURL,
		HTTPClient:       &http.Client{Timeout: cfg.API.Timeout},
		Vault:            vault,
		Logger:           logger,
		Metrics:          sink,
		GuestKey:         cfg.API.GuestKey,
		TokenFallbackTTL: cfg.API.TokenFallbackTTL,
	})

	sessions := session.NewManager(session.ManagerOptions{
		Store:   store,
		Vault:   vault,
		Logger:  logger,
		Metrics: sink,
	})

	runner, err := refresh.NewRunner(refresh.RunnerOptions{
		Sessions: sessions,
		Profiles: apiClient,
		Interval: cfg.Refresh.Interval,
		Timeout:  cfg.Refresh.Timeout,
		Logger:   logger,
		Metrics:  sink,
	})
	if err != nil {
		return nil, fmt.Errorf("create refresh runner: %w", err)
	}

	return &ServiceContainer{
		Sessions: sessions,
		API:      apiClient,
		Refresh:  runner,
		Metrics:  sink,
	}, nil
}

// Close stops background work owned by the container.
func (c *ServiceContainer) Close() {
	if c == nil {
		return
	}
	if c.Refresh != nil {
		c.Refresh.StopAll()
	}
}
