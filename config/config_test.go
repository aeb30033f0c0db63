package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cellterm/input"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cellterm.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, input.ModeEsc|input.ModeMouse, mode)
	assert.Equal(t, 50*time.Millisecond, cfg.PollTimeout.Duration)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
backend = "headless"
input_mode = "alt"
mouse = false
poll_timeout = "20ms"
event_capacity = 8
bell = "none"
log_file = "/tmp/cellterm.log"
log_level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendHeadless, cfg.Backend)
	assert.Equal(t, 20*time.Millisecond, cfg.PollTimeout.Duration)
	assert.Equal(t, 8, cfg.EventCapacity)
	assert.Equal(t, BellNone, cfg.Bell)
	assert.Equal(t, "/tmp/cellterm.log", cfg.LogFile)
	// Absent key keeps its default
	assert.Equal(t, 0.5, cfg.BellVolume)

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, input.ModeAlt, mode)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `backend = `},
		{"unknown key", `colour = "red"`},
		{"bad backend", `backend = "x11"`},
		{"bad duration", `poll_timeout = "soon"`},
		{"zero duration", `poll_timeout = "0s"`},
		{"bad mode", `input_mode = "meta"`},
		{"bad capacity", `event_capacity = 0`},
		{"bad bell", `bell = "loud"`},
		{"bad volume", `bell_volume = 2.0`},
		{"bad level", `log_level = "chatty"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestModeCombined(t *testing.T) {
	cfg := Default()
	cfg.InputMode = "esc+alt"
	cfg.Mouse = false
	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, input.ModeEsc|input.ModeAlt, mode)
}

func TestOptions(t *testing.T) {
	opts, err := Default().Options()
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	cfg := Default()
	cfg.InputMode = ""
	_, err = cfg.Options()
	assert.Error(t, err)
}
