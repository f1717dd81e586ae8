// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/jetcheck/listing-engine/internal/infrastructure/timeutil"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Feed    FeedConfig
	Listing ListingConfig
	Logging LoggingConfig
	App     AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// FeedConfig holds settings for the upstream flight feed.
type FeedConfig struct {
	BaseURL string        `env:"FEED_BASE_URL" envDefault:"http://localhost:9000"`
	Source  string        `env:"FEED_SOURCE" envDefault:"jetcheck"`
	Timeout time.Duration `env:"FEED_TIMEOUT" envDefault:"5s"`
}

// ListingConfig holds listing presentation settings.
type ListingConfig struct {
	// DefaultPageSize is the page size used when the request names none.
	DefaultPageSize int `env:"LISTING_PAGE_SIZE" envDefault:"12"`

	// MaxPageSize caps the page size a request may ask for.
	MaxPageSize int `env:"LISTING_MAX_PAGE_SIZE" envDefault:"100"`

	// Locale drives facet collation, number grouping and currency symbols.
	Locale string `env:"LISTING_LOCALE" envDefault:"en"`

	// ViewerTimezone is the timezone flights without their own timezone are
	// displayed in.
	ViewerTimezone string `env:"LISTING_VIEWER_TZ" envDefault:"Europe/Zurich"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	// Validate timeouts are positive
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Feed.Timeout <= 0 {
		return fmt.Errorf("FEED_TIMEOUT must be positive")
	}

	// Validate the feed base URL
	u, err := url.Parse(cfg.Feed.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("FEED_BASE_URL must be an absolute URL, got %q", cfg.Feed.BaseURL)
	}

	// Validate listing settings
	if cfg.Listing.DefaultPageSize < 1 {
		return fmt.Errorf("LISTING_PAGE_SIZE must be positive, got %d", cfg.Listing.DefaultPageSize)
	}
	if cfg.Listing.MaxPageSize < cfg.Listing.DefaultPageSize {
		return fmt.Errorf("LISTING_MAX_PAGE_SIZE (%d) must be at least LISTING_PAGE_SIZE (%d)",
			cfg.Listing.MaxPageSize, cfg.Listing.DefaultPageSize)
	}
	if _, err := language.Parse(cfg.Listing.Locale); err != nil {
		return fmt.Errorf("LISTING_LOCALE must be a BCP 47 tag, got %q", cfg.Listing.Locale)
	}
	if _, err := timeutil.GetLocation(cfg.Listing.ViewerTimezone); err != nil {
		return fmt.Errorf("LISTING_VIEWER_TZ must be an IANA timezone, got %q", cfg.Listing.ViewerTimezone)
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	// Validate app environment
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// LocaleTag returns the parsed listing locale. Call after Load, which
// validates the tag.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Listing.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
