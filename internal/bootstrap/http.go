package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	zentra "github.com/zentra-pos/zentra"
	"github.com/zentra-pos/zentra/config"
	httpx "github.com/zentra-pos/zentra/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer builds the router and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	templates, err := fs.Sub(zentra.TemplateFS, "frontend/templates")
	if err != nil {
		return nil, fmt.Errorf("template fs: %w", err)
	}
	static, err := fs.Sub(zentra.StaticFS, "frontend/static")
	if err != nil {
		return nil, fmt.Errorf("static fs: %w", err)
	}

	renderer, err := httpx.NewTemplateRenderer(templates, logger)
	if err != nil {
		return nil, fmt.Errorf("template renderer: %w", err)
	}

	handler := httpx.NewRouter(httpx.RouterOptions{
		Services: httpx.RouterServices{
			Sessions:      cfg.Services.Sessions,
			Employees:     cfg.Services.Employees,
			Branches:      cfg.Services.Branches,
			Organizations: cfg.Services.Organizations,
		},
		Renderer:     renderer,
		StaticFS:     static,
		Logger:       logger,
		CookieDomain: appCfg.HTTP.CookieDomain,
		IsDev:        appCfg.IsDev,
		SSOEnabled:   SSOEnabled(appCfg.Auth.Mode),
	})

	server := &http.Server{
		Addr:         appCfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  appCfg.HTTP.ReadTimeout,
		WriteTimeout: appCfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", serveErr)
		}
	}()

	return server, nil
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, cfg *config.AppConfig, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}
	return nil
}
