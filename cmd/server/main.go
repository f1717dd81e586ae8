// Package main is the entry point for the empty-leg listing service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jetcheck/listing-engine/internal/adapter/feed"
	listinghttp "github.com/jetcheck/listing-engine/internal/adapter/http"
	"github.com/jetcheck/listing-engine/internal/adapter/http/middleware"
	"github.com/jetcheck/listing-engine/internal/config"
	"github.com/jetcheck/listing-engine/internal/infrastructure/display"
	"github.com/jetcheck/listing-engine/internal/infrastructure/logger"
	"github.com/jetcheck/listing-engine/internal/infrastructure/timeutil"
	"github.com/jetcheck/listing-engine/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("feed", cfg.Feed.BaseURL).
		Msg("Configuration loaded")

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Middleware: request ID, request logging, panic recovery
	middleware.Setup(e, log.Logger)

	// Wire the feed client, engine and handler
	setupRoutes(e, cfg)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e)
}

// setupLogger builds the service logger from config and installs it globally.
func setupLogger(cfg *config.Config) {
	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	l := logger.New(logCfg)
	logger.SetGlobal(l)
	log.Logger = l.Logger
	zerolog.SetGlobalLevel(l.GetLevel())
}

// setupRoutes wires the application layers and registers the HTTP routes.
func setupRoutes(e *echo.Echo, cfg *config.Config) {
	source := feed.NewClient(cfg.Feed.Source, cfg.Feed.BaseURL, cfg.Feed.Timeout, log.Logger)

	engine := usecase.NewListingEngine(&usecase.Config{
		Locale: cfg.LocaleTag(),
	})

	resolver := timeutil.NewResolver(timeutil.MustGetLocation(cfg.Listing.ViewerTimezone))
	formatter := display.NewFormatter(cfg.LocaleTag(), resolver)

	handler := listinghttp.NewListingHandler(
		source,
		engine,
		formatter,
		cfg.Listing.DefaultPageSize,
		cfg.Listing.MaxPageSize,
	)

	listinghttp.RegisterRoutes(e, handler)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
