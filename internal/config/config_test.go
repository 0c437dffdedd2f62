package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
scheme: linear
iterations: 3
wireframe:
  path: out.png
  projection: xz
log:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, "linear", cfg.Scheme)
	assert.Equal(t, 3, cfg.Iterations)
	assert.Equal(t, "out.png", cfg.Wireframe.Path)
	assert.Equal(t, "xz", cfg.Wireframe.Projection)
	// Untouched keys keep their defaults.
	assert.Equal(t, 800, cfg.Wireframe.Width)
	assert.Equal(t, 2, cfg.Wireframe.Supersample)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown scheme", "scheme: loop\n"},
		{"zero iterations", "iterations: 0\n"},
		{"negative workers", "workers: -1\n"},
		{"bad projection", "wireframe:\n  projection: uv\n"},
		{"bad level", "log:\n  level: trace\n"},
		{"unknown key", "schema: butterfly\n"},
		{"not yaml", "scheme: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestValidationErrors(t *testing.T) {
	cfg := Default()
	cfg.Wireframe.LineWidth = 0
	err := cfg.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "LineWidth", verrs[0].Field())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "butterfly.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scheme: pascal\nworkers: 4\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pascal", cfg.Scheme)
	assert.Equal(t, 4, cfg.Workers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSlogLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		assert.Equal(t, want, Log{Level: name}.SlogLevel(), name)
	}
}
