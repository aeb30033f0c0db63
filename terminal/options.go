package terminal

import (
	"io"
	"log/slog"
	"time"

	"github.com/lixenwraith/cellterm/event"
	"github.com/lixenwraith/cellterm/input"
)

// DefaultPollTimeout bounds how long the listener blocks before rechecking shutdown
const DefaultPollTimeout = 50 * time.Millisecond

// syntheticCapacity is the PostEvent queue depth
const syntheticCapacity = 16

type options struct {
	mode        input.Mode
	pollTimeout time.Duration
	capacity    int
	logger      *slog.Logger
	beeper      Beeper
}

func defaultOptions() options {
	return options{
		mode:        input.ModeEsc,
		pollTimeout: DefaultPollTimeout,
		capacity:    event.DefaultCapacity,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a Terminal
type Option func(*options)

// WithInputMode sets the translator mode (escape handling, mouse reporting)
func WithInputMode(mode input.Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithPollTimeout sets the listener poll timeout; non-positive keeps the default
func WithPollTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollTimeout = d
		}
	}
}

// WithEventCapacity sets the event channel depth
func WithEventCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLogger routes diagnostics to l
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBell sets the beeper used by Bell, overriding a backend beeper
func WithBell(b Beeper) Option {
	return func(o *options) {
		o.beeper = b
	}
}
