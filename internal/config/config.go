// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings read at startup.
type Config struct {
	// DBPath is the SQLite file holding the saved templates.
	DBPath string `env:"IMIHIGO_DB,expand" envDefault:"${HOME}/.imihigo/imihigo.db"`

	// LogLevel filters persistence and service logs written to stderr.
	LogLevel slog.Level `env:"IMIHIGO_LOG_LEVEL" envDefault:"WARN"`

	// LogUseCases writes one record per service use case.
	LogUseCases bool `env:"IMIHIGO_LOG_USE_CASES" envDefault:"false"`

	// ExportDir is where CSV reports are written unless a command overrides it.
	ExportDir string `env:"IMIHIGO_EXPORT_DIR" envDefault:"."`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the Config for the current environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
