// Package config provides configuration loading and validation for daylog.
// Supports YAML files with environment variable overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable Load reads the config path from.
const EnvConfigPath = "DAYLOG_CONFIG"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all configuration for a daylog logger and the daylogd CLI.
type Config struct {
	Log           LogConfig           `yaml:"log"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// LogConfig configures the dated log files.
type LogConfig struct {
	Directory      string   `yaml:"directory" env:"DAYLOG_DIRECTORY"`
	UseUTC         bool     `yaml:"useUTC" env:"DAYLOG_USE_UTC"`
	DateTimeFormat string   `yaml:"dateTimeFormat" env:"DAYLOG_DATETIME_FORMAT"`
	EnabledLabels  []string `yaml:"enabledLabels" env:"DAYLOG_ENABLED_LABELS"`

	// DeleteOlderThan is the retention threshold. Zero disables retention.
	DeleteOlderThan     time.Duration `yaml:"deleteOlderThan" env:"DAYLOG_DELETE_OLDER_THAN"`
	HandleSweepInterval time.Duration `yaml:"handleSweepInterval" env:"DAYLOG_HANDLE_SWEEP_INTERVAL"`
	Sync                bool          `yaml:"sync" env:"DAYLOG_SYNC"`
}

// ObservabilityConfig configures operational logging and metrics.
type ObservabilityConfig struct {
	MetricsAddr string `yaml:"metricsAddr" env:"DAYLOG_METRICS_ADDR"`
	LogLevel    string `yaml:"logLevel" env:"DAYLOG_LOG_LEVEL"`
	LogFormat   string `yaml:"logFormat" env:"DAYLOG_LOG_FORMAT"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Directory:           "logs",
			DateTimeFormat:      "2006-01-02 15:04:05",
			HandleSweepInterval: 2 * time.Hour,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// Load reads the file named by DAYLOG_CONFIG, or starts from defaults when
// the variable is unset, then applies environment overrides and validates.
func Load() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return LoadFromPath(path)
	}
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads a YAML file, applies environment overrides and validates.
func LoadFromPath(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of Default. Unknown keys are rejected.
// Environment overrides and validation are not applied.
func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Log.Directory) == "" {
		return fmt.Errorf("%w: log.directory must not be empty", ErrInvalidConfig)
	}
	if c.Log.DeleteOlderThan < 0 {
		return fmt.Errorf("%w: log.deleteOlderThan must not be negative, got %s",
			ErrInvalidConfig, c.Log.DeleteOlderThan)
	}
	if c.Log.HandleSweepInterval < 0 {
		return fmt.Errorf("%w: log.handleSweepInterval must not be negative, got %s",
			ErrInvalidConfig, c.Log.HandleSweepInterval)
	}
	switch c.Observability.LogLevel {
	case "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("%w: observability.logLevel %q is not one of debug, info, warn, error, off",
			ErrInvalidConfig, c.Observability.LogLevel)
	}
	switch c.Observability.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%w: observability.logFormat %q is not one of json, text",
			ErrInvalidConfig, c.Observability.LogFormat)
	}
	return nil
}

// applyEnv overrides fields that carry an env tag with the value of that
// variable when it is set. List values are comma separated; blank items are
// dropped.
func (c *Config) applyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.Log.EnabledLabels = compactList(c.Log.EnabledLabels)
	return nil
}

func compactList(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
