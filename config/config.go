// Package config loads the cellterm session configuration from TOML.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/cellterm/event"
	"github.com/lixenwraith/cellterm/input"
	"github.com/lixenwraith/cellterm/terminal"
)

// Backend names
const (
	BackendAuto     = "auto"
	BackendANSI     = "ansi"
	BackendTcell    = "tcell"
	BackendWincon   = "wincon"
	BackendHeadless = "headless"
)

// Bell modes
const (
	BellNone   = "none"
	BellAudio  = "audio"
	BellDevice = "device"
)

// Duration is a time.Duration that decodes from TOML strings like "50ms"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is one terminal session's settings
type Config struct {
	Backend       string   `toml:"backend"`
	InputMode     string   `toml:"input_mode"`
	Mouse         bool     `toml:"mouse"`
	PollTimeout   Duration `toml:"poll_timeout"`
	EventCapacity int      `toml:"event_capacity"`
	Bell          string   `toml:"bell"`
	BellVolume    float64  `toml:"bell_volume"`
	LogFile       string   `toml:"log_file"`
	LogLevel      string   `toml:"log_level"`
}

// Default returns the settings used when no file is given
func Default() *Config {
	return &Config{
		Backend:       BackendAuto,
		InputMode:     "esc",
		Mouse:         true,
		PollTimeout:   Duration{terminal.DefaultPollTimeout},
		EventCapacity: event.DefaultCapacity,
		Bell:          BellDevice,
		BellVolume:    0.5,
		LogLevel:      "info",
	}
}

// Load reads path over the defaults. Keys absent from the file keep their default.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Validate checks value ranges and names
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendANSI, BackendTcell, BackendWincon, BackendHeadless:
	default:
		return errors.Errorf("unknown backend %q", c.Backend)
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	if c.PollTimeout.Duration <= 0 {
		return errors.Errorf("poll_timeout must be positive, got %s", c.PollTimeout)
	}
	if c.EventCapacity < 1 {
		return errors.Errorf("event_capacity must be at least 1, got %d", c.EventCapacity)
	}
	switch c.Bell {
	case BellNone, BellAudio, BellDevice:
	default:
		return errors.Errorf("unknown bell %q", c.Bell)
	}
	if c.BellVolume < 0 || c.BellVolume > 1 {
		return errors.Errorf("bell_volume must be within 0..1, got %g", c.BellVolume)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Mode combines input_mode and mouse into translator mode bits.
// input_mode is "esc", "alt" or "esc+alt".
func (c *Config) Mode() (input.Mode, error) {
	var m input.Mode
	for _, part := range strings.Split(c.InputMode, "+") {
		switch strings.TrimSpace(part) {
		case "esc":
			m |= input.ModeEsc
		case "alt":
			m |= input.ModeAlt
		default:
			return 0, errors.Errorf("unknown input_mode %q", c.InputMode)
		}
	}
	if c.Mouse {
		m |= input.ModeMouse
	}
	return m, nil
}

// Level parses log_level
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	return l, nil
}

// Options converts the session settings into terminal options
func (c *Config) Options() ([]terminal.Option, error) {
	mode, err := c.Mode()
	if err != nil {
		return nil, err
	}
	return []terminal.Option{
		terminal.WithInputMode(mode),
		terminal.WithPollTimeout(c.PollTimeout.Duration),
		terminal.WithEventCapacity(c.EventCapacity),
	}, nil
}
