package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brandaudit/internal/app"
	"brandaudit/internal/config"
	"brandaudit/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("starting brand audit service", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ai := cfg.GenAI
	appLogger.Info("AI config", map[string]interface{}{
		"model":      ai.Model,
		"timeoutMs":  ai.TimeoutMS,
		"maxRetries": ai.MaxRetries,
		"apiKeySet":  ai.IsEnabled(),
	})

	ctx := context.Background()
	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.WithError(err).Error("failed to build application", nil)
		os.Exit(1)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.Router(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeoutMS),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeoutMS),
	}

	go func() {
		appLogger.Info("server starting", map[string]interface{}{
			"addr":      srv.Addr,
			"generator": a.Generator,
			"endpoints": []string{
				"POST /api/analyze",
				"GET  /health",
				"GET  /metrics",
			},
		})

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Error("ListenAndServe failed", nil)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("server forced to shutdown", nil)
	}

	appLogger.Info("server exited", nil)
}
