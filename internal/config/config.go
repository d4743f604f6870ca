package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

// Store backends selectable through TODOEY_STORE.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds everything the composition root needs.
type Config struct {
	Port  int
	Store string
	DB    Database
}

// Database describes the Postgres connection and pool.
type Database struct {
	Host         string
	Port         string
	Username     string
	Password     string
	Name         string
	SSLMode      string
	LogLevel     string // silent, error, warn or info
	MaxOpenConns int
	MaxIdleConns int
}

// DSN renders the connection string understood by the postgres driver.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.Username, d.Password, d.Name, d.Port, d.SSLMode)
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first.
func Load() (Config, error) {
	return loadFrom(os.Getenv)
}

func loadFrom(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}
	getInt := func(key string, fallback int) (int, error) {
		v := get(key, "")
		if v == "" {
			return fallback, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, v)
		}
		return n, nil
	}

	var cfg Config
	var err error
	if cfg.Port, err = getInt("PORT", 8080); err != nil {
		return Config{}, err
	}

	cfg.Store = strings.ToLower(get("TODOEY_STORE", StorePostgres))
	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return Config{}, fmt.Errorf("invalid TODOEY_STORE %q: must be %q or %q", cfg.Store, StorePostgres, StoreMemory)
	}

	cfg.DB = Database{
		Host:     get("TODOEY_DB_HOST", "localhost"),
		Port:     get("TODOEY_DB_PORT", "5432"),
		Username: get("TODOEY_DB_USERNAME", "postgres"),
		Password: get("TODOEY_DB_PASSWORD", ""),
		Name:     get("TODOEY_DB_DATABASE", "todoey"),
		SSLMode:  get("TODOEY_DB_SSLMODE", "disable"),
		LogLevel: strings.ToLower(get("TODOEY_DB_LOG_LEVEL", "warn")),
	}
	switch cfg.DB.LogLevel {
	case "silent", "error", "warn", "info":
	default:
		return Config{}, fmt.Errorf("invalid TODOEY_DB_LOG_LEVEL %q", cfg.DB.LogLevel)
	}
	if cfg.DB.MaxOpenConns, err = getInt("TODOEY_DB_MAX_OPEN_CONNS", 100); err != nil {
		return Config{}, err
	}
	if cfg.DB.MaxIdleConns, err = getInt("TODOEY_DB_MAX_IDLE_CONNS", 10); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
