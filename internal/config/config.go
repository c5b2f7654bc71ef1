// Package config loads the server's settings from the environment. A .env
// file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Zachkp/folio/internal/page"
)

// Config is the full set of environment settings.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE" envDefault:"debug"`
	DatabasePath    string        `env:"DATABASE_PATH" envDefault:"folio.db"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	ToEmail  string `env:"TO_EMAIL"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`

	// Visitor rows older than this are deleted.
	VisitorRetention time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`

	ThemeBackground string `env:"THEME_BACKGROUND"`
	ThemeForeground string `env:"THEME_FOREGROUND"`
	ThemePrimary    string `env:"THEME_PRIMARY"`
	ThemeMuted      string `env:"THEME_MUTED"`
}

// Load reads the given .env files, if they exist, and parses the
// environment. Variables already set take precedence over the files.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that env cannot express in tags.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if c.VisitorRetention <= 0 {
		return fmt.Errorf("VISITOR_RETENTION must be positive, got %s", c.VisitorRetention)
	}
	if err := c.Theme().Validate(); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// MailEnabled reports whether SMTP credentials are configured.
func (c Config) MailEnabled() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

// Recipient is where contact messages are delivered. It falls back to the
// SMTP account itself.
func (c Config) Recipient() string {
	if c.ToEmail != "" {
		return c.ToEmail
	}
	return c.SMTPUser
}

// Theme returns the configured design tokens with defaults applied.
func (c Config) Theme() page.Theme {
	return page.Theme{
		Background: c.ThemeBackground,
		Foreground: c.ThemeForeground,
		Primary:    c.ThemePrimary,
		Muted:      c.ThemeMuted,
	}.WithDefaults()
}
