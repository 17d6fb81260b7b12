package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mytheresa/go-inventory/pkg/e"
	"github.com/mytheresa/go-inventory/pkg/logger"
)

// Supported values for DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	App      AppConfig
}

// DatabaseConfig selects the engine and how to reach it.
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	PgDriver   string // "pgx" or "pq"
	SQLitePath string
	QueryLog   bool
}

// AppConfig holds application configuration
type AppConfig struct {
	Environment string
	LogLevel    slog.Level
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	queryLog, err := parseBoolEnv("DB_QUERY_LOG", false)
	if err != nil {
		return nil, e.Wrap("DB_QUERY_LOG", err)
	}

	level, err := logger.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, e.Wrap("LOG_LEVEL", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", DriverSQLite),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "inventory"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			PgDriver:   getEnv("DB_PG_DRIVER", "pgx"),
			SQLitePath: getEnv("SQLITE_PATH", "inventory.sqlite3"),
			QueryLog:   queryLog,
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    level,
		},
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *DatabaseConfig) validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return e.Wrap("DB_DRIVER", fmt.Errorf("%w: %q", e.ErrIncorrectEnvVariable, c.Driver))
	}

	switch c.PgDriver {
	case "pgx", "pq":
	default:
		return e.Wrap("DB_PG_DRIVER", fmt.Errorf("%w: %q", e.ErrIncorrectEnvVariable, c.PgDriver))
	}

	return nil
}

// GetDSN returns the postgres connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, e.ErrIncorrectEnvVariable
	}

	return b, nil
}
