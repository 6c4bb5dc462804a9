package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"vehicle-tracker.db"`
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	BcryptCost   int    `envconfig:"BCRYPT_COST" default:"12"`
	// Hour of the day (local time) at which the reminder sweep runs.
	ReminderHour int `envconfig:"REMINDER_HOUR" default:"0"`
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}

	if len(c.JWTSecret) < 32 {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.ReminderHour < 0 || c.ReminderHour > 23 {
		return Config{}, fmt.Errorf("REMINDER_HOUR must be between 0 and 23, got %d", c.ReminderHour)
	}

	return c, nil
}
