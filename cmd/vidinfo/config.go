package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/vidinfo/extract"
	vidinfohttp "github.com/fwojciec/vidinfo/http"
)

// Config holds the defaults applied to flags left unset.
type Config struct {
	Timeout     time.Duration `toml:"timeout"`
	Concurrency int           `toml:"concurrency"`
	MaxDepth    int           `toml:"max_depth"`
	UserAgent   string        `toml:"user_agent"`
	Rate        float64       `toml:"rate"`
	Retries     int           `toml:"retries"`
	InfoDir     string        `toml:"info_dir"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:     vidinfohttp.DefaultFetchTimeout,
		Concurrency: extract.DefaultConcurrency,
		MaxDepth:    extract.DefaultMaxDepth,
		UserAgent:   vidinfohttp.DefaultUserAgent,
		Rate:        2,
		Retries:     len(extract.DefaultRetryDelays()),
	}
}

// LoadConfig reads the TOML file at path over the defaults. A missing
// file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate cannot be negative, got %g", c.Rate)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative, got %d", c.Retries)
	}
	return nil
}

// retryDelays returns n exponential backoff delays starting at one second.
func retryDelays(n int) []time.Duration {
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = time.Second << i
	}
	return delays
}

func defaultConfigPath() string {
	if path := os.Getenv("VIDINFO_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vidinfo", "config.toml")
}

func defaultDBPath() string {
	if path := os.Getenv("VIDINFO_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "vidinfo.db"
	}
	dir := filepath.Join(home, ".vidinfo")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "archive.db")
}
