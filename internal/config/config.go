package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	DatabaseURL    string
	JWTSecret      string
	SessionTTL     time.Duration
	BcryptCost     int
	LoginRateMax   int
	LoginRateEvery time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsDevelopment reports whether the service runs in a development environment.
// Session cookies are only marked Secure outside development.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("OD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Campus OD API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("session.ttl", "360h")
	v.SetDefault("bcrypt.cost", 12)
	v.SetDefault("login.rate_max", 10)
	v.SetDefault("login.rate_window", "1m")

	ttl, err := time.ParseDuration(v.GetString("session.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	rateWindow, err := time.ParseDuration(v.GetString("login.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid login rate window: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		DatabaseURL:    v.GetString("database.url"),
		JWTSecret:      v.GetString("jwt.secret"),
		SessionTTL:     ttl,
		BcryptCost:     v.GetInt("bcrypt.cost"),
		LoginRateMax:   v.GetInt("login.rate_max"),
		LoginRateEvery: rateWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = 12
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 360 * time.Hour
	}

	return cfg, nil
}
