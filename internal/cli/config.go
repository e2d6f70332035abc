package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds demo settings loaded from environment variables.
// Flags win over environment values.
type Config struct {
	Scenario string `env:"STOREX_DEMO_SCENARIO"`
	Quiet    bool   `env:"STOREX_DEMO_QUIET"`
}

// loadConfig loads configuration from environment variables.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
