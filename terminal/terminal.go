package terminal

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/event"
	"github.com/lixenwraith/cellterm/input"
)

// Terminal owns the cell grid, the attribute context and the input listener.
// Drawing, Flush and event consumption belong to one goroutine (the consumer);
// the listener runs on its own goroutine until Stop or Close.
type Terminal struct {
	backend Backend
	src     Source
	logger  *slog.Logger
	beeper  Beeper

	grid   *cellbuf.Grid
	fg, bg cellbuf.Attribute

	events    *event.Channel
	synthetic chan event.Event

	// Listener lifecycle
	group    *errgroup.Group
	cancel   context.CancelFunc
	done     chan struct{} // closed after the listener returns
	exitErr  error         // valid once done is closed
	stopOnce sync.Once
	stopErr  error

	closeOnce sync.Once
	closeErr  error
}

// New sizes the grid to the backend and starts the input listener on src.
// A nil src gives an output-only terminal whose GetEvent only yields posted events.
func New(backend Backend, src Source, opts ...Option) (*Terminal, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w, h, err := backend.Size()
	if err != nil {
		return nil, deviceErr("size", err)
	}

	t := &Terminal{
		backend:   backend,
		src:       src,
		logger:    o.logger,
		beeper:    o.beeper,
		grid:      cellbuf.New(int(w), int(h)),
		fg:        cellbuf.ColorDefault,
		bg:        cellbuf.ColorDefault,
		events:    event.NewChannel(o.capacity),
		synthetic: make(chan event.Event, syntheticCapacity),
		done:      make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.group, ctx = errgroup.WithContext(ctx)

	if src == nil {
		close(t.done)
		return t, nil
	}

	l := &listener{
		src:     src,
		tr:      input.NewTranslator(o.mode),
		events:  t.events,
		timeout: o.pollTimeout,
		logger:  o.logger,
	}
	t.group.Go(func() error {
		err := l.run(ctx)
		t.exitErr = err
		close(t.done)
		return err
	})

	t.logger.Debug("terminal started",
		"width", w, "height", h,
		"mode", o.mode.String(),
		"poll_timeout", o.pollTimeout,
		"capacity", t.events.Cap())
	return t, nil
}

// ===== GRID ACCESS =====

// Grid exposes the cell grid for backends and tests
func (t *Terminal) Grid() *cellbuf.Grid {
	return t.grid
}

// Size returns grid dimensions
func (t *Terminal) Size() (width, height int) {
	return t.grid.Width(), t.grid.Height()
}

// Dirty reports unflushed changes
func (t *Terminal) Dirty() bool {
	return t.grid.Dirty()
}

// Cells returns the row-major cell storage (read-only by convention)
func (t *Terminal) Cells() []cellbuf.Cell {
	return t.grid.Cells()
}

// Cell returns the cell at (x, y)
func (t *Terminal) Cell(x, y int) (cellbuf.Cell, bool) {
	return t.grid.Get(x, y)
}

// SetCell writes c as-is, ignoring the attribute context
func (t *Terminal) SetCell(x, y int, c cellbuf.Cell) bool {
	return t.grid.Set(x, y, c)
}

// Clear resets every cell and damages the whole grid
func (t *Terminal) Clear() {
	t.grid.Clear()
}

// Resize adopts new dimensions, usually from a Resize event
func (t *Terminal) Resize(width, height int) {
	t.grid.Resize(width, height)
}

// ===== ATTRIBUTE CONTEXT =====

func (t *Terminal) SetForeground(fg cellbuf.Attribute) {
	t.fg = fg
}

func (t *Terminal) SetBackground(bg cellbuf.Attribute) {
	t.bg = bg
}

func (t *Terminal) Foreground() cellbuf.Attribute {
	return t.fg
}

func (t *Terminal) Background() cellbuf.Attribute {
	return t.bg
}

// withAttrs swaps in fg/bg and returns the restore func
func (t *Terminal) withAttrs(fg, bg cellbuf.Attribute) func() {
	oldFg, oldBg := t.fg, t.bg
	t.fg, t.bg = fg, bg
	return func() {
		t.fg, t.bg = oldFg, oldBg
	}
}

// ===== DEVICE OUTPUT =====

// Flush writes the damaged rectangle to the backend and resets damage on success.
// On failure nothing is reset and nothing is retried.
func (t *Terminal) Flush() error {
	damage := t.grid.Damage()
	if err := t.backend.Write(damage, t.grid); err != nil {
		t.logger.Warn("flush failed", "damage", damage, "error", err)
		return deviceErr("write", err)
	}
	t.grid.Reset()
	return nil
}

// Sync damages the whole grid and flushes, repainting the device from the model
func (t *Terminal) Sync() error {
	t.grid.Invalidate()
	return t.Flush()
}

// SetCursorPos moves the device cursor
func (t *Terminal) SetCursorPos(x, y int16) error {
	return deviceErr("cursor", t.backend.SetCursorPos(x, y))
}

// CursorPos queries the device cursor
func (t *Terminal) CursorPos() (CursorInfo, error) {
	ci, err := t.backend.CursorPos()
	if err != nil {
		return CursorInfo{}, deviceErr("cursor", err)
	}
	return ci, nil
}

// Bell rings the configured beeper, else the backend's, else does nothing
func (t *Terminal) Bell() error {
	b := t.beeper
	if b == nil {
		if bb, ok := t.backend.(Beeper); ok {
			b = bb
		}
	}
	if b == nil {
		return nil
	}
	return deviceErr("bell", b.Beep())
}

// ===== SHUTDOWN =====

// Stop signals the listener and waits for it to exit. Idempotent.
// Returns the listener's device error, if it ended with one.
func (t *Terminal) Stop() error {
	t.stopOnce.Do(func() {
		t.cancel()
		err := t.group.Wait()
		if err != nil && !IsDeviceError(err) {
			// Cancellation is the normal exit path
			err = nil
		}
		t.stopErr = err
		t.logger.Debug("listener stopped", "error", err)
	})
	return t.stopErr
}

// Close stops the listener, then closes the source and backend if they are
// io.Closers. Device handles are released only after the listener has exited.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() {
		err := t.Stop()

		if c, ok := t.src.(io.Closer); ok {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = deviceErr("close", cerr)
			}
		}
		// Backend and source are often the same device
		if c, ok := t.backend.(io.Closer); ok && !sameDevice(t.backend, t.src) {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = deviceErr("close", cerr)
			}
		}
		t.closeErr = err
	})
	return t.closeErr
}

// sameDevice reports whether b and s are one object
func sameDevice(b Backend, s Source) bool {
	if s == nil {
		return false
	}
	bs, ok := b.(Source)
	return ok && bs == s
}
