package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"
)

const (
	defaultSupportsMultipleSecureCodecs     = true
	defaultSupportsSecureWithNonSecureCodec = true
	defaultOraclePollInterval               = 5 * time.Second

	envSupportsMultipleSecureCodecs     = "MEDIARM_SUPPORTS_MULTIPLE_SECURE_CODECS"
	envSupportsSecureWithNonSecureCodec = "MEDIARM_SUPPORTS_SECURE_WITH_NON_SECURE_CODEC"
	envOraclePollInterval                = "MEDIARM_ORACLE_POLL_INTERVAL"
)

// Config aggregates the daemon's startup-time policy defaults and tunables.
// The policy fields seed registry.Config once at startup; the config RPC
// can still change them at runtime. OraclePollInterval is loaded and
// validated here, but neither the daemon nor the watch TUI reads it; the
// TUI re-polls the registry snapshot only on demand.
type Config struct {
	SupportsMultipleSecureCodecs     bool
	SupportsSecureWithNonSecureCodec bool
	OraclePollInterval                time.Duration
}

// Load builds a Config from an optional JSON file path plus environment
// overrides, following the file-then-env precedence used throughout this
// project's daemons.
func Load(path string) (Config, error) {
	cfg := Config{
		SupportsMultipleSecureCodecs:     defaultSupportsMultipleSecureCodecs,
		SupportsSecureWithNonSecureCodec: defaultSupportsSecureWithNonSecureCodec,
		OraclePollInterval:                defaultOraclePollInterval,
	}

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = fileCfg
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envSupportsMultipleSecureCodecs); v != "" {
		if b, err := parseBool(v); err == nil {
			cfg.SupportsMultipleSecureCodecs = b
		} else {
			log.Printf("invalid %s value %q: %v", envSupportsMultipleSecureCodecs, v, err)
		}
	}
	if v := os.Getenv(envSupportsSecureWithNonSecureCodec); v != "" {
		if b, err := parseBool(v); err == nil {
			cfg.SupportsSecureWithNonSecureCodec = b
		} else {
			log.Printf("invalid %s value %q: %v", envSupportsSecureWithNonSecureCodec, v, err)
		}
	}
	if v := os.Getenv(envOraclePollInterval); v != "" {
		if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
			cfg.OraclePollInterval = dur
		} else if err != nil {
			log.Printf("invalid %s value %q: %v", envOraclePollInterval, v, err)
		}
	}
}

func parseBool(v string) (bool, error) {
	switch v {
	case "1", "true", "TRUE", "True":
		return true, nil
	case "0", "false", "FALSE", "False":
		return false, nil
	default:
		return false, errors.New("expected a boolean value")
	}
}

type fileConfig struct {
	SupportsMultipleSecureCodecs     *bool  `json:"supports_multiple_secure_codecs"`
	SupportsSecureWithNonSecureCodec *bool  `json:"supports_secure_with_non_secure_codec"`
	OraclePollInterval                string `json:"oracle_poll_interval"`
}

func loadFromFile(path string) (Config, error) {
	cfg := Config{
		SupportsMultipleSecureCodecs:     defaultSupportsMultipleSecureCodecs,
		SupportsSecureWithNonSecureCodec: defaultSupportsSecureWithNonSecureCodec,
		OraclePollInterval:                defaultOraclePollInterval,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, err
	}

	if raw.SupportsMultipleSecureCodecs != nil {
		cfg.SupportsMultipleSecureCodecs = *raw.SupportsMultipleSecureCodecs
	}
	if raw.SupportsSecureWithNonSecureCodec != nil {
		cfg.SupportsSecureWithNonSecureCodec = *raw.SupportsSecureWithNonSecureCodec
	}
	if raw.OraclePollInterval != "" {
		dur, err := time.ParseDuration(raw.OraclePollInterval)
		if err != nil {
			return cfg, fmt.Errorf("parse oracle_poll_interval: %w", err)
		}
		if dur <= 0 {
			return cfg, errors.New("oracle_poll_interval must be > 0")
		}
		cfg.OraclePollInterval = dur
	}
	return cfg, nil
}
