package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
)

// Storage backend selectors.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	Backend       string
	WeekStart     time.Weekday
	RateLimit     string
	IsProduction  bool
	EnableDBCheck bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("BACKEND", BackendPostgres)
	viper.SetDefault("WEEK_START", "monday")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		Port:          viper.GetString("PORT"),
		Backend:       viper.GetString("BACKEND"),
		WeekStart:     domain.ParseWeekStart(viper.GetString("WEEK_START")),
		RateLimit:     viper.GetString("RATE_LIMIT"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck: viper.GetBool("ENABLE_DB_CHECK"),
	}

	switch cfg.Backend {
	case BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("invalid BACKEND %q: must be %q or %q", cfg.Backend, BackendPostgres, BackendMemory)
	}

	if cfg.Backend == BackendPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	return cfg, nil
}
