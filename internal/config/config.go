// Package config loads process configuration from the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/damon-houk/fxrate-store/internal/infrastructure/db"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/logger"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the full process configuration
type Config struct {
	HTTP    HTTP
	Log     Log
	Storage Storage
}

type HTTP struct {
	Addr string `env:"FXRATE_HTTP_ADDR" env-default:":8080" env-description:"HTTP listen address"`
}

type Log struct {
	Level string `env:"FXRATE_LOG_LEVEL" env-default:"INFO" env-description:"DEBUG, INFO, WARN, ERROR or FATAL"`
}

type Storage struct {
	Engine           string `env:"FXRATE_STORAGE_ENGINE" env-default:"badger" env-description:"badger or sqlite"`
	BadgerPath       string `env:"FXRATE_BADGER_PATH" env-default:"./data" env-description:"BadgerDB data directory"`
	BadgerSyncWrites bool   `env:"FXRATE_BADGER_SYNC_WRITES" env-default:"true" env-description:"fsync every badger write"`
	SQLiteDSN        string `env:"FXRATE_SQLITE_DSN" env-default:"./data/fxrates.db" env-description:"SQLite database file"`
}

// Load reads an optional dotenv file and then the environment.
// Variables already set in the environment take precedence over the file.
func Load(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values cleanenv cannot check on its own
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	switch db.Engine(c.Storage.Engine) {
	case db.EngineBadger, db.EngineSQLite:
	default:
		return fmt.Errorf("unsupported storage engine %q", c.Storage.Engine)
	}
	return nil
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() logger.Level {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.InfoLevel
	}
	return level
}

// StorageOptions converts the storage section into engine options
func (c *Config) StorageOptions(log logger.Logger) db.Options {
	return db.Options{
		Engine: db.Engine(c.Storage.Engine),
		Badger: db.BadgerOptions{
			Path:       c.Storage.BadgerPath,
			SyncWrites: c.Storage.BadgerSyncWrites,
			Logger:     log,
		},
		SQLiteDSN: c.Storage.SQLiteDSN,
	}
}

// Usage describes every supported variable
func Usage() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}
