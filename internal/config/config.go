// Package config provides configuration types, defaults, and persistence for emblem.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/emblem/internal/log"
	"github.com/zjrosen/emblem/internal/render"
)

// RenderConfig holds rendering defaults applied when the corresponding
// flags are not given.
type RenderConfig struct {
	// Target selects the publishing environment: "github", "local", "npm".
	Target string `mapstructure:"target"`

	// Backend overrides the target's default backend: "shields" or "svg".
	// Empty means the target decides.
	Backend string `mapstructure:"backend"`

	// AssetsDir is where generated SVG files are written, relative to the
	// output document unless absolute.
	AssetsDir string `mapstructure:"assets_dir"`
}

// Config holds all configuration options for emblem.
type Config struct {
	Render RenderConfig `mapstructure:"render"`

	// Strict treats warnings (unknown tags) as errors.
	Strict bool `mapstructure:"strict"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Render: RenderConfig{
			Target:    render.TargetGitHub.String(),
			Backend:   "",
			AssetsDir: "assets",
		},
		Strict: false,
	}
}

// Validate checks the configuration for errors. Empty values use defaults.
func Validate(cfg Config) error {
	if cfg.Render.Target != "" {
		if _, err := render.ParseTarget(cfg.Render.Target); err != nil {
			return fmt.Errorf("render.target: %w", err)
		}
	}
	if cfg.Render.Backend != "" {
		if _, err := render.ParseBackend(cfg.Render.Backend); err != nil {
			return fmt.Errorf("render.backend: %w", err)
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Emblem Configuration

# Rendering defaults, overridable per run with flags
render:
  # Publishing target: "github" (default), "local", or "npm"
  # Targets pick a default backend: github and npm use shields.io URLs,
  # local generates SVG files. npm never emits file artifacts.
  target: github

  # Force a backend regardless of target: "shields" or "svg"
  # backend: svg

  # Directory for generated SVG files (svg backend only)
  assets_dir: assets

# Treat unknown-tag warnings as errors
strict: false
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
