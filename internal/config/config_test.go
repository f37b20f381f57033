package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "github", cfg.Render.Target)
	assert.Empty(t, cfg.Render.Backend, "backend defaults to the target's choice")
	assert.Equal(t, "assets", cfg.Render.AssetsDir)
	assert.False(t, cfg.Strict)

	assert.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "empty values are valid",
			mutate: func(c *Config) { c.Render.Target = ""; c.Render.Backend = "" },
		},
		{
			name:   "explicit backend",
			mutate: func(c *Config) { c.Render.Backend = "svg" },
		},
		{
			name:    "bad target",
			mutate:  func(c *Config) { c.Render.Target = "gitlab" },
			wantErr: "render.target",
		},
		{
			name:    "bad backend",
			mutate:  func(c *Config) { c.Render.Backend = "png" },
			wantErr: "render.backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "emblem.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "target: github")
	assert.Contains(t, string(data), "strict: false")
}
