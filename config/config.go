// Package config reads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the plain and terminal front ends.
// Command-line flags override them in main.
type Config struct {
	LevelDir     string `env:"GRIDCRAWL_LEVEL_DIR" envDefault:"dungeons"`
	LogLevel     string `env:"GRIDCRAWL_LOG_LEVEL" envDefault:"warn"`
	LogFile      string `env:"GRIDCRAWL_LOG_FILE"`
	StrictLoad   bool   `env:"GRIDCRAWL_STRICT_LOAD" envDefault:"false"`
	ManualPickup bool   `env:"GRIDCRAWL_MANUAL_PICKUP" envDefault:"false"`
	ScanWorkers  int    `env:"GRIDCRAWL_SCAN_WORKERS" envDefault:"4"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.ScanWorkers < 1 {
		return Config{}, fmt.Errorf("GRIDCRAWL_SCAN_WORKERS must be at least 1, got %d", cfg.ScanWorkers)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
