// Package config loads process configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration.
type Config struct {
	// Addr is the listen address of the HTTP/websocket server.
	Addr string `env:"ADDR" envDefault:":3001"`
	// DatabasePath is the SQLite file holding the persisted rule set.
	DatabasePath string `env:"DATABASE_PATH" envDefault:"giveaway.db"`
	// SourceURL is the websocket URL of the upstream live-event relay.
	// Empty disables the source client (events can still arrive through
	// the webhook endpoint).
	SourceURL string `env:"EVENT_SOURCE_URL"`
	// SourceOrigin is the Origin header sent when dialing the source.
	SourceOrigin string `env:"EVENT_SOURCE_ORIGIN" envDefault:"http://localhost"`
}

// Load parses configuration from the environment. A missing .env file is
// not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
