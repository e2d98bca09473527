package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all environment-driven settings for the server process
type Config struct {
	Port          string `envconfig:"PORT" default:"5000"`
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" required:"true"`
	Timezone      string `envconfig:"TIMEZONE" default:"Australia/Sydney"`
	FrontendURL   string `envconfig:"FRONTEND_URL" default:"*"`
}

// Load reads .env (if present) and then populates Config from the environment
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}
