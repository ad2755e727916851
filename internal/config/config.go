// Package config holds all docsentry configuration.
// Config lives at .docsentry/config.yaml in the documentation workspace; a
// missing file means defaults. Environment variables (DOCSENTRY_*) override
// the file for CI environments where editing the workspace is awkward.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all docsentry configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Documentation roots per suite
	Roots RootsConfig `yaml:"roots"`

	// External linter binaries and timeouts
	Tools ToolsConfig `yaml:"tools"`

	// Validation run history
	History HistoryConfig `yaml:"history"`

	// Watch mode
	Watch WatchConfig `yaml:"watch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// RootsConfig names the conventional directories each suite scans.
// Paths are relative to the workspace root.
type RootsConfig struct {
	Sphinx   string `yaml:"sphinx"`    // reStructuredText / Sphinx source
	APISpecs string `yaml:"api_specs"` // OpenAPI documents
	GraphQL  string `yaml:"graphql"`   // GraphQL SDL files
	Proto    string `yaml:"proto"`     // Protocol Buffers definitions
	Markdown string `yaml:"markdown"`  // Markdown tree (usually the whole workspace)
}

// ToolsConfig configures the wrapped external linters.
// Empty binary names fall back to the conventional name on PATH.
type ToolsConfig struct {
	RSTCheck     string `yaml:"rstcheck"`
	SphinxBuild  string `yaml:"sphinx_build"`
	SwaggerCLI   string `yaml:"swagger_cli"`
	Node         string `yaml:"node"`
	Protoc       string `yaml:"protoc"`
	Markdownlint string `yaml:"markdownlint"`

	// Default timeout for a single tool invocation
	DefaultTimeout string `yaml:"default_timeout"`
}

// HistoryConfig configures the validation run history store.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
	KeepRuns     int    `yaml:"keep_runs"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce window for settling rapid editor saves
	Debounce string `yaml:"debounce"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "docsentry",
		Version: "1.0.0",

		Roots: RootsConfig{
			Sphinx:   "docs/source",
			APISpecs: "api-specs",
			GraphQL:  "graphql",
			Proto:    "proto",
			Markdown: ".",
		},

		Tools: ToolsConfig{
			RSTCheck:       "rstcheck",
			SphinxBuild:    "sphinx-build",
			SwaggerCLI:     "swagger-cli",
			Node:           "node",
			Protoc:         "protoc",
			Markdownlint:   "markdownlint",
			DefaultTimeout: "60s",
		},

		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: ".docsentry/history.db",
			KeepRuns:     200,
		},

		Watch: WatchConfig{
			Debounce: "500ms",
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a config file. A missing file returns defaults, not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadWorkspace loads the config for a workspace directory.
func LoadWorkspace(workspace string) (*Config, error) {
	return Load(filepath.Join(workspace, ".docsentry", "config.yaml"))
}

// Save writes the config to the given path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides applies DOCSENTRY_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DOCSENTRY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DOCSENTRY_HISTORY_DB"); v != "" {
		c.History.DatabasePath = v
	}
	if v := os.Getenv("DOCSENTRY_NODE"); v != "" {
		c.Tools.Node = v
	}
	if v := os.Getenv("DOCSENTRY_PROTOC"); v != "" {
		c.Tools.Protoc = v
	}
	if v := os.Getenv("DOCSENTRY_TOOL_TIMEOUT"); v != "" {
		c.Tools.DefaultTimeout = v
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Tools.DefaultTimeout); err != nil {
		return fmt.Errorf("tools.default_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	}
	if c.History.KeepRuns < 0 {
		return fmt.Errorf("history.keep_runs must be >= 0, got %d", c.History.KeepRuns)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}

	return nil
}

// ToolTimeout returns the per-invocation timeout for external linters.
func (c *Config) ToolTimeout() time.Duration {
	d, err := time.ParseDuration(c.Tools.DefaultTimeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// DebounceDuration returns the watch debounce window.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}
