// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries every runtime setting of the hub.
type Config struct {
	BaseCurrency    string
	CacheTTL        time.Duration
	RefreshInterval time.Duration
	SourceTimeout   time.Duration
	DataDir         string
	LogFile         string
	ExchangeRateKey string
}

// Load reads settings from the environment. A .env file in the working
// directory is merged in when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("BASE_CURRENCY", "USD")
	v.SetDefault("CACHE_TTL_SECONDS", 300)
	v.SetDefault("REFRESH_INTERVAL_SECONDS", 60)
	v.SetDefault("SOURCE_TIMEOUT_SECONDS", 10)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("EXCHANGERATE_API_KEY", "")

	cfg := &Config{
		BaseCurrency:    v.GetString("BASE_CURRENCY"),
		CacheTTL:        time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		RefreshInterval: time.Duration(v.GetInt("REFRESH_INTERVAL_SECONDS")) * time.Second,
		SourceTimeout:   time.Duration(v.GetInt("SOURCE_TIMEOUT_SECONDS")) * time.Second,
		DataDir:         v.GetString("DATA_DIR"),
		LogFile:         v.GetString("LOG_FILE"),
		ExchangeRateKey: v.GetString("EXCHANGERATE_API_KEY"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BaseCurrency == "" {
		return fmt.Errorf("BASE_CURRENCY must not be empty")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be positive, got %s", c.CacheTTL)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL_SECONDS must be positive, got %s", c.RefreshInterval)
	}
	if c.SourceTimeout <= 0 {
		return fmt.Errorf("SOURCE_TIMEOUT_SECONDS must be positive, got %s", c.SourceTimeout)
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	return nil
}
