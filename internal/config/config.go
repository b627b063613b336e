package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidTick is returned when the configured tick is not positive.
var ErrInvalidTick = errors.New("tick must be positive")

// Config holds runtime settings read from the environment.
type Config struct {
	// DBPath overrides the default event store location.
	DBPath string `env:"COREWAKE_DB"`

	// CatalogPath loads quest lines from a JSON file instead of the
	// built-in catalog.
	CatalogPath string `env:"COREWAKE_CATALOG"`

	// Tick is the countdown granularity.
	Tick time.Duration `env:"COREWAKE_TICK" envDefault:"10ms"`

	// Mute drops every sound cue.
	Mute bool `env:"COREWAKE_MUTE"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Tick <= 0 {
		return Config{}, fmt.Errorf("COREWAKE_TICK=%s: %w", cfg.Tick, ErrInvalidTick)
	}
	return cfg, nil
}
