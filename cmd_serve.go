package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/icco/launchdash/lib/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the dataset and serve the dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := NewApp(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to load dataset", slog.Any("error", err))
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				logger.Error("Failed to close database", slog.Any("error", err))
			}
		}()

		return serve(ctx, app)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, app *App) error {
	srv := &http.Server{
		Addr:         app.cfg.Addr(),
		Handler:      app.router,
		ReadTimeout:  config.Duration(app.cfg.Server.ReadTimeout, 10*time.Second),
		WriteTimeout: config.Duration(app.cfg.Server.WriteTimeout, 30*time.Second),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info("Starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("Shutting down server")

		timeout := config.Duration(app.cfg.Server.ShutdownTimeout, 15*time.Second)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
