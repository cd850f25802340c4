package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rentnest/rentnest-web/config"
	httpx "github.com/rentnest/rentnest-web/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

const shutdownGrace = 10 * time.Second

// ServeHTTP builds the router, runs the HTTP server until ctx is
// canceled, then stops the background pollers and drains the server.
func ServeHTTP(ctx context.Context, cfg *HTTPServerConfig) error {
	if cfg == nil || cfg.Services == nil {
		return errors.New("services are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Sessions:          cfg.Services.Sessions,
		API:               cfg.Services.API,
		Catalog:           cfg.Services.API,
		Refresh:           cfg.Services.Refresh,
		CookieDomain:      appCfg.HTTP.CookieDomain,
		SecureCookies:     strings.HasPrefix(appCfg.HTTP.BaseURL, "https://"),
		AuthRatePerMinute: appCfg.HTTP.AuthRatePerMinute,
		AuthRateBurst:     appCfg.HTTP.AuthRateBurst,
		IsDev:             appCfg.IsDev,
		Logger:            logger,
	})

	addr := appCfg.HTTP.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		// Stop profile refresh pollers before draining connections.
		cfg.Services.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}
