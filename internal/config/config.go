// Package config loads and validates the unit's deployment configuration.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Operating modes.
const (
	// ModeStandalone runs a single unit that owns every process written
	// to it.
	ModeStandalone = "standalone"

	// ModeRouter runs a unit that fronts a pool: it owns only the native
	// process and redirects everything else to the assigned pool member.
	ModeRouter = "router"
)

// Config is the unit's deployment configuration, loaded from a YAML file.
type Config struct {
	// Mode selects standalone or router operation. Defaults to standalone.
	Mode string `yaml:"mode"`

	// DatabasePath is the SQLite database file path. Required.
	DatabasePath string `yaml:"database_path"`

	// NativeProcessID is the process this unit owns directly when running
	// as a router. Required in router mode.
	NativeProcessID string `yaml:"native_process_id,omitempty"`

	// SchedulerListPath points at the JSON pool membership file.
	// Required in router mode.
	SchedulerListPath string `yaml:"scheduler_list_path,omitempty"`

	// GatewayURL is the chain gateway queried for block height.
	GatewayURL string `yaml:"gateway_url,omitempty"`

	// UploadNodeURL is the bundle upload endpoint.
	UploadNodeURL string `yaml:"upload_node_url,omitempty"`

	// WalletPath is the unit's signing key file.
	WalletPath string `yaml:"wallet_path,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `yaml:"log_level,omitempty"`
}

// Load reads and parses a config YAML file. Unknown fields are rejected
// so typos fail loudly instead of silently falling back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if cfg.Mode == "" {
		cfg.Mode = ModeStandalone
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required fields are present and consistent with
// the selected mode.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeStandalone, ModeRouter:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeStandalone, ModeRouter, c.Mode)
	}

	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}

	if c.Mode == ModeRouter {
		if c.NativeProcessID == "" {
			return fmt.Errorf("native_process_id is required in router mode")
		}
		if c.SchedulerListPath == "" {
			return fmt.Errorf("scheduler_list_path is required in router mode")
		}
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

// SlogLevel maps the configured log level to its slog constant.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// schedulerEntry is one element of the scheduler list file.
type schedulerEntry struct {
	URL string `json:"url"`
}

// LoadSchedulerList reads the JSON pool membership file: an array of
// objects with a "url" field. The returned slice preserves file order,
// which fixes registration order for new entries.
func LoadSchedulerList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scheduler list: %w", err)
	}

	var entries []schedulerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse scheduler list JSON: %w", err)
	}

	urls := make([]string, len(entries))
	for i, e := range entries {
		urls[i] = e.URL
	}
	return urls, nil
}
