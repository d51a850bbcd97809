package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/myrjola/gymplan/internal/e2etest"
	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 2 * time.Second

// configureAndStartServer serves handler on addr until ctx is cancelled and then shuts down gracefully.
// The SQLite optimizer runs alongside the server when the SQLite store is in use.
func (app *application) configureAndStartServer(
	ctx context.Context,
	addr string,
	handler http.Handler,
	optimizeInterval time.Duration,
) error {
	srv := &http.Server{ //nolint:exhaustruct // defaults are fine for the rest.
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
		Handler:           handler,
		IdleTimeout:       time.Minute,
		ReadTimeout:       defaultTimeout,
		WriteTimeout:      defaultTimeout,
		ReadHeaderTimeout: time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("TCP listen: %w", err)
	}
	app.logger.LogAttrs(ctx, slog.LevelInfo, "starting server", slog.Any(e2etest.LogAddrKey, listener.Addr().String()))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if serveErr := srv.Serve(listener); !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("server serve: %w", serveErr)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
		defer cancel()
		app.logger.LogAttrs(shutdownCtx, slog.LevelInfo, "shutting down server")
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			return fmt.Errorf("shutdown server: %w", shutdownErr)
		}
		return nil
	})
	if app.db != nil {
		g.Go(func() error {
			app.db.RunOptimizer(ctx, optimizeInterval)
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return err //nolint:wrapcheck // wrapped in the goroutines.
	}
	return nil
}
