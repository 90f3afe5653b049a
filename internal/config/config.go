package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppName string `envconfig:"APP_NAME" default:"Apotek Inventory v1.0"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	Port    string `envconfig:"PORT" default:"3000"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Reference location for "today" in expiry and window calculations.
	Timezone string `envconfig:"TIMEZONE" default:"Asia/Jakarta"`

	SeedDemo        bool          `envconfig:"SEED_DEMO" default:"true"`
	AlertTick       time.Duration `envconfig:"ALERT_TICK" default:"1m"` // 0 disables the digest
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads the given .env files (default ".env") when present, then the environment.
// A missing env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.Port == "" {
		return nil, errors.New("port must be provided")
	}
	if cfg.AlertTick < 0 {
		return nil, errors.New("alert tick must not be negative")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// Location resolves Timezone. Hosts without tzdata fall back to WIB (UTC+7).
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

// Clock returns the current time in Location.
func (c *Config) Clock() func() time.Time {
	loc := c.Location()
	return func() time.Time {
		return time.Now().In(loc)
	}
}
