// Package config loads application settings from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddr        string        `env:"SERVER_ADDRESS" validate:"hostname_port"`
	DatabaseDSN    string        `env:"DATABASE_URL" validate:"required"`
	RedisDSN       string        `env:"REDIS_URL" validate:"required"`
	LogLevel       string        `env:"LOG_LEVEL" validate:"loglevel"`
	SessionTTL     time.Duration `env:"SESSION_TTL"`
	StoreTimeout   time.Duration `env:"STORE_TIMEOUT"`
	SendGridAPIKey string        `env:"SENDGRID_API_KEY"`
	SupportInbox   string        `env:"SUPPORT_INBOX" validate:"omitempty,email"`
	MarketBaseURL  string        `env:"MARKET_BASE_URL" validate:"url"`
	NewsBaseURL    string        `env:"NEWS_BASE_URL" validate:"url"`
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error", "fatal":
		return true
	}
	return false
}

// Load builds the config from defaults, a .env file when present, and
// process environment variables, then validates the result.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, continuing")
		}
	}

	cfg := &Config{
		RunAddr:       ":8080",
		LogLevel:      "info",
		SessionTTL:    24 * time.Hour,
		StoreTimeout:  10 * time.Second,
		MarketBaseURL: "https://api.coingecko.com/api/v3",
		NewsBaseURL:   "https://api.coindesk.com/v1",
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	v := validator.New()
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return nil, err
	}
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
