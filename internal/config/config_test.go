package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/jostle/internal/dynamo"
	"github.com/san-kum/jostle/internal/input"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8.0, cfg.Radius)
	assert.Equal(t, 80, cfg.GridSize)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 1280.0, cfg.Geometry().Extent())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero radius", func(c *Config) { c.Radius = 0 }, dynamo.ErrInvalidRadius},
		{"small grid", func(c *Config) { c.GridSize = 2 }, dynamo.ErrInvalidGridSize},
		{"negative ticks", func(c *Config) { c.Ticks = -1 }, ErrInvalidConfig},
		{"zero fps", func(c *Config) { c.FPS = 0 }, ErrInvalidConfig},
		{"negative events", func(c *Config) { c.Input.EventsPerTick = -1 }, ErrInvalidConfig},
		{"bad zero policy", func(c *Config) { c.ZeroDistance = "jitter" }, ErrInvalidConfig},
		{"unknown pattern", func(c *Config) { c.Input.Pattern = "zigzag" }, input.ErrUnknownPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, tt.want), "Validate() = %v, want %v", err, tt.want)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jostle.yaml")

	cfg := DefaultConfig()
	cfg.Ticks = 42
	cfg.Input.Pattern = "points"
	cfg.Input.Points = [][2]float64{{1, 2}, {3, 4}}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.Ticks)
	assert.Equal(t, "points", loaded.Input.Pattern)
	assert.Equal(t, [][2]float64{{1, 2}, {3, 4}}, loaded.Input.Points)
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ticks: 5\ninput:\n  pattern: circle\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Ticks)
	assert.Equal(t, "circle", cfg.Input.Pattern)
	assert.Equal(t, 8.0, cfg.Radius, "default radius")
	assert.Equal(t, DefaultScale, cfg.Input.Scale, "default scale")
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pair")
	require.NotNil(t, cfg)
	assert.Equal(t, 1, cfg.Ticks)
	assert.Len(t, cfg.Input.Points, 2)
	assert.Equal(t, 8.0, cfg.Radius, "preset should carry default geometry")

	cfg.Input.Points[0] = [2]float64{99, 99}
	assert.NotEqual(t, [2]float64{99, 99}, Presets["pair"].Input.Points[0], "GetPreset shares the preset table")
}

func TestGetPreset_NotFound(t *testing.T) {
	assert.Nil(t, GetPreset("nonexistent"))
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		assert.NoError(t, GetPreset(name).Validate(), "preset %s", name)
	}
}

func TestNewWorldAndSource(t *testing.T) {
	cfg := GetPreset("collinear")
	w, err := cfg.NewWorld()
	require.NoError(t, err)
	src, err := cfg.NewSource()
	require.NoError(t, err)

	assert.Len(t, src.Next(0), 3)
	assert.Zero(t, w.ParticleCount(), "world should start empty")
}

func TestClone(t *testing.T) {
	cfg := GetPreset("pair")
	cp := cfg.Clone()
	cp.Input.Points[0] = [2]float64{7, 7}
	cp.Ticks = 99

	assert.NotEqual(t, [2]float64{7, 7}, cfg.Input.Points[0])
	assert.NotEqual(t, 99, cfg.Ticks)
}
