// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs to run. The EMAIL_* settings are
// required: the newsletter sender refuses to start without a transport.
type Config struct {
	Address       string `env:"ADDRESS" envDefault:":2000"`
	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"agency"`

	EmailHost     string `env:"EMAIL_HOST,required"`
	EmailPort     int    `env:"EMAIL_PORT" envDefault:"587"`
	EmailUser     string `env:"EMAIL_USER,required"`
	EmailPassword string `env:"EMAIL_PASSWORD,required"`
	EmailFromName string `env:"EMAIL_FROM_NAME" envDefault:"Digital Marketing Agency"`

	// SendConfirmations enables the acknowledgement email on first inquiry.
	SendConfirmations bool `env:"SEND_CONFIRMATIONS" envDefault:"false"`
	// SendTimeoutSeconds bounds one SMTP send.
	SendTimeoutSeconds int `env:"SEND_TIMEOUT_SECONDS" envDefault:"30"`
	// Debug exposes internal error messages on 500 responses.
	Debug bool `env:"DEBUG" envDefault:"false"`
}

// Load reads .env when present, then parses the environment.
func Load() (*Config, error) {
	// Missing .env is fine; OS environment still applies.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
