package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/account-compliance-api/internal/api"
	"github.com/account-compliance-api/internal/config"
	"github.com/account-compliance-api/internal/repository"
	"github.com/account-compliance-api/internal/service"
	"github.com/account-compliance-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(logger.Options{})
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.IsDevelopment() || cfg.Log.Format == "pretty",
	})
	log.Info().Msg("Starting Account Compliance API server...")

	// Initialize repositories
	repos := repository.New(cfg.Session.MaxSessions)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Start idle session janitor
	services.Session.StartJanitor(context.Background())

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Int("password_max_age_days", cfg.Audit.PasswordMaxAgeDays).
			Dur("session_ttl", cfg.Session.TTL).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop session janitor
	services.Session.StopJanitor()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
