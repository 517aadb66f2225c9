package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration, sourced from the environment
// (optionally seeded from a .env file).
type Config struct {
	Port             string
	DatabaseURL      string
	MigrationsPath   string
	JWTSecret        string
	JWTExpiryMinutes int
	LogLevel         string
	CORSOrigins      []string
	RateLimit        string
	PosthogAPIKey    string
	PosthogEndpoint  string
}

// LoadConfig reads configuration from the environment. A missing .env file
// is not an error; missing required values are.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_EXPIRY_MINUTES", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://app.posthog.com")

	cfg := &Config{
		Port:             viper.GetString("PORT"),
		DatabaseURL:      viper.GetString("DATABASE_URL"),
		MigrationsPath:   viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		JWTExpiryMinutes: viper.GetInt("JWT_EXPIRY_MINUTES"),
		LogLevel:         viper.GetString("LOG_LEVEL"),
		CORSOrigins:      strings.Split(viper.GetString("CORS_ORIGINS"), ","),
		RateLimit:        viper.GetString("RATE_LIMIT"),
		PosthogAPIKey:    viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:  viper.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// SlogLevel maps the configured level string to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
