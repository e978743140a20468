package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds application settings resolved from the environment.
type Config struct {
	// DataDir holds the database, log file and exports.
	DataDir string

	// DBPath is the SQLite file. Empty means <DataDir>/quizdeck.db.
	DBPath string

	// Store selects the key-value backend for learner data.
	Store       string
	RedisAddr   string
	RedisPrefix string

	// CatalogPath points at the topics manifest (YAML or JSON).
	CatalogPath string

	LogMode string
	LogFile string

	// HalfLifeHours is the spaced-repetition recovery half-life.
	HalfLifeHours float64

	// Seed fixes the random source when non-zero.
	Seed uint64
}

// Load reads an optional .env file and then the QUIZDECK_* environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}
	dataDir = getenvDefault("QUIZDECK_DATA_DIR", dataDir)

	cfg := &Config{
		DataDir:     dataDir,
		DBPath:      os.Getenv("QUIZDECK_DB"),
		Store:       getenvDefault("QUIZDECK_STORE", StoreSQLite),
		RedisAddr:   getenvDefault("QUIZDECK_REDIS_ADDR", "localhost:6379"),
		RedisPrefix: getenvDefault("QUIZDECK_REDIS_PREFIX", "quizdeck:"),
		CatalogPath: getenvDefault("QUIZDECK_CATALOG", filepath.Join(dataDir, "catalog", "topics.yaml")),
		LogMode:     getenvDefault("QUIZDECK_LOG_MODE", "prod"),
		LogFile:     getenvDefault("QUIZDECK_LOG_FILE", filepath.Join(dataDir, "quizdeck.log")),
	}

	cfg.HalfLifeHours, err = getenvFloat("QUIZDECK_HALF_LIFE_HOURS", 24)
	if err != nil {
		return nil, err
	}
	if cfg.HalfLifeHours <= 0 {
		return nil, fmt.Errorf("config: QUIZDECK_HALF_LIFE_HOURS must be positive, got %v", cfg.HalfLifeHours)
	}

	if v := os.Getenv("QUIZDECK_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: QUIZDECK_SEED=%q is not a valid seed: %w", v, err)
		}
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config: QUIZDECK_REDIS_ADDR is required for the redis store")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store)
	}
	return nil
}

// ResolvedDBPath returns DBPath or the default file under DataDir.
func (c *Config) ResolvedDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, "quizdeck.db")
}

// defaultDataDir resolves $XDG_DATA_HOME/quizdeck or ~/.local/share/quizdeck.
func defaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "quizdeck"), nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvFloat(k string, fallback float64) (float64, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a number: %w", k, v, err)
	}
	return f, nil
}
