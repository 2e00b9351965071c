//	@title			Consultant Documents API
//	@version		1.0
//	@description	Uploads consultant documents to public-read object storage.
//
//	@BasePath	/

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consultant-backend/internal/bootstrap"
	"consultant-backend/internal/shared/config"
	"consultant-backend/internal/shared/server"
	"consultant-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.SetLevel(cfg.LogLevel)

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("server.bootstrap_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		telemetry.Info("server.listening", map[string]any{
			"addr": srv.Addr,
			"env":  cfg.Env,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			telemetry.Error("server.error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	<-quit
	telemetry.Info("server.shutting_down", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		telemetry.Error("server.forced_shutdown", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("server.stopped", nil)
}
