// Package config loads the optional fleetprov.yaml configuration file.
//
// Every value has a default, so the file is only needed to change them.
// Command-line flags take precedence over file values.
package config

import (
	"fmt"
	"time"
)

// DefaultFile is the config file looked up in the working directory when no
// path is given.
const DefaultFile = "fleetprov.yaml"

// Defaults applied when neither file nor flags set a value.
const (
	DefaultAPIURL      = "https://api.example.local"
	DefaultTokenEnv    = "FLEETPROV_TOKEN"
	DefaultTimeout     = 10 * time.Second
	DefaultRetries     = 3
	DefaultConcurrency = 12
	DefaultLogLevel    = "info"
)

// Config is the full fleetprov configuration.
type Config struct {
	API APIConfig `yaml:"api"`
	Run RunConfig `yaml:"run"`
	Log LogConfig `yaml:"log"`
}

// APIConfig configures the remote provisioning API.
type APIConfig struct {
	URL      string `yaml:"url"`
	TokenEnv string `yaml:"token_env"`
	Timeout  string `yaml:"timeout"` // per-attempt, e.g. "10s"
}

// RunConfig configures dispatch and retry behavior. Retries is a pointer so
// an explicit 0 in the file is distinguishable from the value being unset.
type RunConfig struct {
	Retries     *int `yaml:"retries"`
	Concurrency int  `yaml:"concurrency"`
	// Backoff between attempts; empty means none.
	BackoffInitial string `yaml:"backoff_initial"`
	BackoffMax     string `yaml:"backoff_max"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.API.URL == "" {
		c.API.URL = DefaultAPIURL
	}
	if c.API.TokenEnv == "" {
		c.API.TokenEnv = DefaultTokenEnv
	}
	if c.API.Timeout == "" {
		c.API.Timeout = DefaultTimeout.String()
	}
	if c.Run.Retries == nil {
		retries := DefaultRetries
		c.Run.Retries = &retries
	}
	if c.Run.Concurrency == 0 {
		c.Run.Concurrency = DefaultConcurrency
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Run.Retries != nil && *c.Run.Retries < 0 {
		return fmt.Errorf("run.retries must not be negative, got %d", *c.Run.Retries)
	}
	if c.Run.Concurrency < 1 {
		return fmt.Errorf("run.concurrency must be at least 1, got %d", c.Run.Concurrency)
	}
	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		return fmt.Errorf("api.timeout is not a valid duration: %w", err)
	}
	for name, v := range map[string]string{
		"run.backoff_initial": c.Run.BackoffInitial,
		"run.backoff_max":     c.Run.BackoffMax,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("%s is not a valid duration: %w", name, err)
		}
	}
	return nil
}

// Retries returns the configured retry count.
func (c *Config) Retries() int {
	if c.Run.Retries == nil {
		return DefaultRetries
	}
	return *c.Run.Retries
}

// TimeoutDuration returns the parsed per-attempt API timeout.
func (c *Config) TimeoutDuration() time.Duration {
	return parseDuration(c.API.Timeout, DefaultTimeout)
}

// BackoffInitialDuration returns the parsed initial backoff, zero when unset.
func (c *Config) BackoffInitialDuration() time.Duration {
	return parseDuration(c.Run.BackoffInitial, 0)
}

// BackoffMaxDuration returns the parsed maximum backoff, zero when unset.
func (c *Config) BackoffMaxDuration() time.Duration {
	return parseDuration(c.Run.BackoffMax, 0)
}

func parseDuration(v string, fallback time.Duration) time.Duration {
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
