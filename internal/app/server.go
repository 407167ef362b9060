package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/wordjournal/internal/config"
	"github.com/heartmarshall/wordjournal/internal/transport/middleware"
	"github.com/heartmarshall/wordjournal/internal/transport/rest"
)

// Handler builds the HTTP handler: the REST router behind the middleware
// chain. The returned stop func releases the rate limiter.
func (a *App) Handler() (http.Handler, func()) {
	limiter := middleware.NewRateLimiter(time.Minute)

	router := rest.NewRouter(
		rest.NewLookupHandler(a.Lookup, a.Bundled, a.Logger),
		rest.NewRecentHandler(a.Recents, a.Logger),
		rest.NewHealthHandler(map[string]rest.Pinger{"cache_store": a.Cache}, a.Lookup.Sources(), BuildVersion()),
		limiter.Limit(a.Config.Server.RateLimitPerMinute),
	)

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(a.Logger),
		middleware.Recovery(a.Logger),
		middleware.CORS(a.Config.CORS),
	)(router)
	return handler, limiter.Stop
}

// Serve runs the HTTP server until ctx is canceled, then shuts down
// gracefully within the configured timeout.
func (a *App) Serve(ctx context.Context) error {
	handler, stop := a.Handler()
	defer stop()

	cfg := a.Config.Server
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// Run is the server entry point. It loads configuration from configPath,
// initializes the logger, wires and warms the engine and serves HTTP until
// ctx is canceled.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("cache_backend", cfg.Cache.Backend),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Warm(ctx); err != nil {
		return fmt.Errorf("warm: %w", err)
	}
	logger.Info("lookup engine ready",
		slog.Int("cached", a.Cache.Len()),
		slog.Int("bundled_words", a.Bundled.Len()),
		slog.Any("sources", a.Lookup.Sources()),
	)

	return a.Serve(ctx)
}
