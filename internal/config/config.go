package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"sealed-auction/internal/crypto/pedersen"
	"sealed-auction/internal/engine"

	"gopkg.in/yaml.v3"
)

// Config holds the service settings
type Config struct {
	Port             string `yaml:"port"`
	LogLevel         string `yaml:"log_level"`
	LateRevealPolicy string `yaml:"late_reveal_policy"`
	EventFeedSize    int    `yaml:"event_feed_size"`
	PedersenDomain   string `yaml:"pedersen_domain"`
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Port:             "8080",
		LogLevel:         "info",
		LateRevealPolicy: string(engine.LateRevealAudit),
		EventFeedSize:    10000,
		PedersenDomain:   pedersen.DefaultDomain,
	}
}

// Load reads the YAML file at path (skipped when path is empty), then
// applies environment overrides and validates the result
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Port = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("LATE_REVEAL_POLICY"); ok && v != "" {
		c.LateRevealPolicy = v
	}
	if v, ok := lookup("PEDERSEN_DOMAIN"); ok && v != "" {
		c.PedersenDomain = v
	}
	if v, ok := lookup("EVENT_FEED_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: EVENT_FEED_SIZE: %w", err)
		}
		c.EventFeedSize = n
	}
	return nil
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	var errs []error

	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("port %q is not numeric", c.Port))
	}
	if _, err := engine.ParseLateRevealPolicy(c.LateRevealPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.EventFeedSize < 0 {
		errs = append(errs, fmt.Errorf("event_feed_size must not be negative"))
	}
	if strings.TrimSpace(c.PedersenDomain) == "" {
		errs = append(errs, fmt.Errorf("pedersen_domain is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Port
}

// Policy returns the parsed late reveal policy; call after Validate
func (c Config) Policy() engine.LateRevealPolicy {
	p, _ := engine.ParseLateRevealPolicy(c.LateRevealPolicy)
	return p
}
