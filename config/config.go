// Package config loads the coinjar settings from a .env file, an optional YAML
// file and COINJAR_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application settings.
type Config struct {
	// LedgerFile is the ledger text file commands work on.
	LedgerFile string `yaml:"ledger_file"`
	// ClosedCurrencies rejects currencies missing from the currency block.
	ClosedCurrencies bool `yaml:"closed_currencies"`
	// History is the number of undo steps kept by the interpreter.
	History int `yaml:"history"`
	// AmountColumn is where amounts end in the canonical output.
	AmountColumn int `yaml:"amount_column"`
}

// Environment variables overriding the file settings.
const (
	EnvConfigFile       = "COINJAR_CONFIG"
	EnvLedgerFile       = "COINJAR_LEDGER_FILE"
	EnvClosedCurrencies = "COINJAR_CLOSED_CURRENCIES"
	EnvHistory          = "COINJAR_HISTORY"
	EnvAmountColumn     = "COINJAR_AMOUNT_COLUMN"
)

// DefaultConfigFile is read when COINJAR_CONFIG is not set.
const DefaultConfigFile = "coinjar.yaml"

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		LedgerFile:   "coinjar.ledger",
		History:      100,
		AmountColumn: 72,
	}
}

// Load reads the configuration. It loads envPath (or ./.env when empty and
// present), then the YAML file named by COINJAR_CONFIG or coinjar.yaml if it
// exists, then applies the COINJAR_* variables.
func Load(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	c := Default()
	path := getEnvOrDefault(EnvConfigFile, DefaultConfigFile)
	if err := c.readFile(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || os.Getenv(EnvConfigFile) != "" {
			return nil, err
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, c.Validate()
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.LedgerFile = getEnvOrDefault(EnvLedgerFile, c.LedgerFile)
	if v := os.Getenv(EnvClosedCurrencies); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvClosedCurrencies, err)
		}
		c.ClosedCurrencies = b
	}
	var err error
	if c.History, err = parseIntEnv(EnvHistory, c.History); err != nil {
		return err
	}
	if c.AmountColumn, err = parseIntEnv(EnvAmountColumn, c.AmountColumn); err != nil {
		return err
	}
	return nil
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.LedgerFile == "" {
		errs = append(errs, errors.New("ledger file is not set"))
	}
	if c.History < 0 {
		errs = append(errs, fmt.Errorf("history must not be negative, got %d", c.History))
	}
	if c.AmountColumn < 0 {
		errs = append(errs, fmt.Errorf("amount column must not be negative, got %d", c.AmountColumn))
	}
	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}
	return n, nil
}
