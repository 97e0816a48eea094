package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glowdeck.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[render]
width = 128
target = "headless"

[cube]
enabled = true
panels = 4

[display]
brightness = 50.0

[audio]
file = "track.mp3"
play = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.Render.Width)
	assert.Equal(t, "headless", cfg.Render.Target)
	assert.True(t, cfg.Cube.Enabled)
	assert.Equal(t, 4, cfg.Cube.Panels)
	assert.Equal(t, 50.0, cfg.Display.Brightness)
	assert.Equal(t, "track.mp3", cfg.Audio.File)
	assert.True(t, cfg.Audio.Play)

	// Untouched sections keep their defaults.
	assert.Equal(t, 64, cfg.Render.Height)
	assert.Equal(t, 60, cfg.Render.FPS)
	assert.Equal(t, float32(0.88), cfg.Camera.Damping)
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[render\nwidth = "), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
