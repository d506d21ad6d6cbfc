// Package config loads the fin configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/etnz/finance/logger"
)

// Storage backends.
const (
	BackendAuto = "auto" // kv when its database exists, file otherwise
	BackendFile = "file" // a JSON document on disk
	BackendKV   = "kv"   // a key in a sqlite key-value table
)

// Config is the runtime configuration of fin.
type Config struct {
	// Storage
	Backend  string `env:"FIN_BACKEND"   envDefault:"auto"`
	DataFile string `env:"FIN_DATA_FILE" envDefault:"finance-data.json"`
	KVPath   string `env:"FIN_KV_PATH"   envDefault:"finance.db"`
	KVKey    string `env:"FIN_KV_KEY"    envDefault:"finance-tracker-data"`

	// Display
	Currency string `env:"FIN_CURRENCY" envDefault:"USD"`

	WriteTimeout time.Duration `env:"FIN_WRITE_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"FIN_LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"FIN_LOG_FORMAT" envDefault:"text"`

	// Assistant
	GeminiModel string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// Load reads the optional .env files then the environment.
func Load(dotenv ...string) (Config, error) {
	// a missing .env file is not an error.
	_ = godotenv.Load(dotenv...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	backends := []string{BackendAuto, BackendFile, BackendKV}
	if !slices.Contains(backends, c.Backend) {
		errs = append(errs, fmt.Errorf("invalid backend %q: must be one of %v", c.Backend, backends))
	}
	if c.Backend != BackendKV && c.DataFile == "" {
		errs = append(errs, errors.New("data file path cannot be empty"))
	}
	if c.Backend != BackendFile {
		if c.KVPath == "" {
			errs = append(errs, errors.New("kv database path cannot be empty"))
		}
		if c.KVKey == "" {
			errs = append(errs, errors.New("kv key cannot be empty"))
		}
	}

	if money.GetCurrency(strings.ToUpper(c.Currency)) == nil {
		errs = append(errs, fmt.Errorf("unknown currency %q", c.Currency))
	}
	if c.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("invalid write timeout %v: must be positive", c.WriteTimeout))
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("invalid log format %q: must be text or json", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}
