package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/emblem/internal/registry"
	"github.com/zjrosen/emblem/internal/render"
	"github.com/zjrosen/emblem/internal/template"
)

func TestLineCol(t *testing.T) {
	source := "first\nsecond line\nthird"

	tests := []struct {
		name     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{"start of document", 0, 1, 1},
		{"mid first line", 3, 1, 4},
		{"start of second line", 6, 2, 1},
		{"mid second line", 13, 2, 8},
		{"third line", 18, 3, 1},
		{"offset past end clamps", 100, 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := lineCol(source, tt.offset)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestDetectTarget(t *testing.T) {
	t.Run("npm from package.json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o600))
		assert.Equal(t, render.TargetNPM, detectTarget(dir))
	})

	t.Run("github from git checkout", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o750))
		assert.Equal(t, render.TargetGitHub, detectTarget(dir))
	})

	t.Run("npm wins over git", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o600))
		assert.Equal(t, render.TargetNPM, detectTarget(dir))
	})

	t.Run("local otherwise", func(t *testing.T) {
		assert.Equal(t, render.TargetLocal, detectTarget(t.TempDir()))
	})
}

func TestCheckFile(t *testing.T) {
	reg, err := registry.Load()
	require.NoError(t, err)
	resolver := template.NewResolver(reg)

	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "doc.md")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("clean document passes", func(t *testing.T) {
		path := write(t, "hello {{star/}} world")
		assert.True(t, checkFile(resolver, path, false))
		assert.True(t, checkFile(resolver, path, true))
	})

	t.Run("unknown tag passes unless strict", func(t *testing.T) {
		path := write(t, "see {{notreal}} here")
		assert.True(t, checkFile(resolver, path, false))
		assert.False(t, checkFile(resolver, path, true))
	})

	t.Run("validation error always fails", func(t *testing.T) {
		path := write(t, "{{star:repeat=0/}}")
		assert.False(t, checkFile(resolver, path, false))
	})

	t.Run("parse error always fails", func(t *testing.T) {
		path := write(t, "broken {{star")
		assert.False(t, checkFile(resolver, path, false))
	})

	t.Run("missing file fails", func(t *testing.T) {
		assert.False(t, checkFile(resolver, filepath.Join(t.TempDir(), "nope.md"), false))
	})
}

func TestInitConfig_SeedsDefaultConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	initConfig()

	path := filepath.Join(".emblem", "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err, "first run writes a starter config")
	assert.Contains(t, string(data), "target: github")

	assert.Equal(t, path, viper.ConfigFileUsed())
	assert.Equal(t, "github", viper.GetString("render.target"))
}
