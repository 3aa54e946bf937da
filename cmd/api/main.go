package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hemp-kart/internal/config"
	"hemp-kart/internal/database"
	"hemp-kart/internal/export"
	"hemp-kart/internal/handler"
	"hemp-kart/internal/repository"
	"hemp-kart/internal/router"
	"hemp-kart/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting hemp-kart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to prepare database schema: %w", err)
	}

	// Initialize repositories
	discountRepo := repository.NewDiscountRepository(pool, logger)
	redemptionRepo := repository.NewRedemptionRepository(pool, logger)

	// Initialize analytics exporter with S3 and local fallback
	var exporter export.Exporter
	if cfg.Export.S3Enabled {
		s3Exporter, err := export.NewS3Exporter(ctx, cfg.Export.Bucket, cfg.Export.Region, cfg.Export.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 exporter, falling back to local file system")
			exporter = export.NewFileExporter(cfg.Export.LocalDir, logger)
		} else {
			exporter = s3Exporter
		}
	} else {
		exporter = export.NewFileExporter(cfg.Export.LocalDir, logger)
		logger.Info().Msg("using local file system for analytics exports (S3 disabled)")
	}

	// Initialize services
	discountService := service.NewDiscountService(discountRepo, logger)
	analyticsService := service.NewAnalyticsService(redemptionRepo, exporter, cfg.Analytics.MaxRows, logger)
	adminService := service.NewAdminService(discountRepo, logger)

	// Initialize HTTP handlers
	discountHandler := handler.NewDiscountHandler(discountService, logger)
	adminHandler := handler.NewAdminHandler(adminService, analyticsService, logger)

	// Initialize router
	mux := router.New(discountHandler, adminHandler, cfg.Auth.AdminKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
