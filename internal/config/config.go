// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything a decom session needs. It is resolved once at
// startup and handed to the components that need it.
type Config struct {
	Platform  PlatformConfig  `yaml:"platform"`
	Probe     ProbeConfig     `yaml:"probe"`
	Migration MigrationConfig `yaml:"migration"`
	Log       LogConfig       `yaml:"log"`

	// MetricsFile, when set, receives outcome counters in Prometheus text format.
	MetricsFile string `yaml:"metrics_file" env:"DECOM_METRICS_FILE"`
	LockPath    string `yaml:"lock_path" env:"DECOM_LOCK_PATH"`
}

// PlatformConfig describes the origin platform CLI.
type PlatformConfig struct {
	Binary string `yaml:"binary" env:"HEROKU_BIN"`
}

// ProbeConfig holds reachability probe settings.
type ProbeConfig struct {
	PingBinary  string        `yaml:"ping_binary" env:"DECOM_PING_BIN"`
	PingCount   int           `yaml:"ping_count" env:"DECOM_PING_COUNT"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"DECOM_HTTP_TIMEOUT"`
}

// MigrationConfig names both providers and the DNS fragments that identify them
// in probe output. Signature lists are semicolon separated in the environment.
type MigrationConfig struct {
	Origin                string   `yaml:"origin" env:"DECOM_ORIGIN_NAME"`
	Destination           string   `yaml:"destination" env:"DECOM_DESTINATION_NAME"`
	DomainSuffix          string   `yaml:"domain_suffix" env:"DECOM_DOMAIN_SUFFIX"`
	OriginSignatures      []string `yaml:"origin_signatures" env:"DECOM_ORIGIN_SIGNATURES"`
	DestinationSignatures []string `yaml:"destination_signatures" env:"DECOM_DESTINATION_SIGNATURES"`
}

// LogConfig controls the session log.
type LogConfig struct {
	Level  string `yaml:"level" env:"DECOM_LOG_LEVEL"`
	Format string `yaml:"format" env:"DECOM_LOG_FORMAT"` // "text" or "json"
	File   string `yaml:"file" env:"DECOM_LOG_FILE"`     // "-" means stderr
}

// LoadOptions points Load at optional files.
type LoadOptions struct {
	// ConfigFile is an explicit YAML path. When empty the default path under
	// the decom home is tried and silently skipped if absent.
	ConfigFile string
	// EnvFile is a dotenv file merged into the process environment. A missing
	// file is ignored; variables already set win.
	EnvFile string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Platform: PlatformConfig{
			Binary: "heroku",
		},
		Probe: ProbeConfig{
			PingBinary:  "ping",
			PingCount:   4,
			HTTPTimeout: 10 * time.Second,
		},
		Migration: MigrationConfig{
			Origin:                "Heroku",
			Destination:           "Azure",
			DomainSuffix:          ".botics.co",
			OriginSignatures:      []string{"herokudns.com", "herokuapp.com"},
			DestinationSignatures: []string{"azurewebsites.net", "azurefd.net", "cloudapp.azure.com"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   GetLogPath(),
		},
		LockPath: GetLockPath(),
	}
}

// Load resolves configuration from defaults, the YAML file, the dotenv file and
// the environment, in that order of increasing precedence.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if err := mergeFile(cfg, opts.ConfigFile); err != nil {
		return nil, err
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", opts.EnvFile, err)
		}
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = GetConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the workflow cannot run with.
func (c *Config) Validate() error {
	if c.Platform.Binary == "" {
		return fmt.Errorf("platform binary is required")
	}
	if c.Probe.PingBinary == "" {
		return fmt.Errorf("ping binary is required")
	}
	if c.Probe.PingCount <= 0 {
		return fmt.Errorf("ping count must be positive, got %d", c.Probe.PingCount)
	}
	if c.Probe.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %v", c.Probe.HTTPTimeout)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
