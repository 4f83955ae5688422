// Package config loads server configuration from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kushtunes/royalty/internal/currency"
)

// Config represents the complete server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// DBPath is the SQLite database path.
	DBPath string `yaml:"db_path"`

	// JWTSecret signs and verifies session tokens. Must match the identity
	// service's secret.
	JWTSecret string `yaml:"jwt_secret"`

	// CurrencyRates maps ISO currency codes to USD conversion rates.
	// Missing codes fall back to rate 1 at conversion time.
	CurrencyRates map[string]float64 `yaml:"currency_rates"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	return Config{
		Addr:   ":8080",
		DBPath: "./data/royalty.db",
	}
}

// Load reads the config file at path (if path is non-empty) and then applies
// environment overrides: ROYALTY_ADDR, ROYALTY_DB, JWT_SECRET, and
// CURRENCY_RATES (a JSON object of code -> rate).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if v := os.Getenv("ROYALTY_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("ROYALTY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("CURRENCY_RATES"); v != "" {
		rates, err := currency.ParseRates(v)
		if err != nil {
			// A broken rate table should not stop payouts from being
			// computed in USD; log and continue with whatever we had.
			slog.Warn("Ignoring malformed CURRENCY_RATES", "error", err)
		} else {
			cfg.CurrencyRates = rates
		}
	}

	return cfg, nil
}
