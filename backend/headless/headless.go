// Package headless is an in-memory terminal device.
// Output lands in a mirror screen, input comes from pushed samples.
// Used by tests and by the CLI's headless backend.
package headless

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/input"
	"github.com/lixenwraith/cellterm/terminal"
)

// ErrClosed is returned by Poll and Write after Close
var ErrClosed = errors.New("headless: device closed")

// sampleBuffer is the pushed-input queue depth
const sampleBuffer = 256

// Device implements terminal.Backend, terminal.Source and terminal.Beeper
type Device struct {
	mu sync.Mutex

	width, height int
	screen        []cellbuf.Cell
	writes        []cellbuf.Rect
	cursor        terminal.CursorInfo
	beeps         int

	writeErr  error
	sizeErr   error
	cursorErr error
	pollErr   error

	samples        chan input.Sample
	closed         bool
	pollAfterClose bool
}

// New creates a device of width x height with a blank screen
func New(width, height int) *Device {
	d := &Device{
		width:   width,
		height:  height,
		cursor:  terminal.CursorInfo{Visible: true},
		samples: make(chan input.Sample, sampleBuffer),
	}
	d.screen = blank(width * height)
	return d
}

func blank(n int) []cellbuf.Cell {
	if n < 0 {
		n = 0
	}
	s := make([]cellbuf.Cell, n)
	for i := range s {
		s[i] = cellbuf.DefaultCell()
	}
	return s
}

// ===== BACKEND =====

// Size returns the device dimensions
func (d *Device) Size() (int32, int32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sizeErr != nil {
		return 0, 0, d.sizeErr
	}
	return int32(d.width), int32(d.height), nil
}

// Write copies the damaged cells of grid into the mirror screen.
// The mirror follows the grid's dimensions; a size change blanks it first.
func (d *Device) Write(damage cellbuf.Rect, grid *cellbuf.Grid) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.writeErr != nil {
		return d.writeErr
	}
	d.writes = append(d.writes, damage)
	if damage.Empty() {
		return nil
	}

	gw, gh := grid.Width(), grid.Height()
	if damage.Left < 0 || damage.Top < 0 || damage.Right >= gw || damage.Bottom >= gh {
		return errors.Errorf("headless: damage %+v outside %dx%d grid", damage, gw, gh)
	}
	if gw != d.width || gh != d.height {
		d.width, d.height = gw, gh
		d.screen = blank(gw * gh)
	}

	for y := damage.Top; y <= damage.Bottom; y++ {
		row := grid.Row(y)
		copy(d.screen[y*gw+damage.Left:y*gw+damage.Right+1], row[damage.Left:damage.Right+1])
	}
	return nil
}

// SetCursorPos records the cursor position
func (d *Device) SetCursorPos(x, y int16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cursorErr != nil {
		return d.cursorErr
	}
	d.cursor.X, d.cursor.Y = x, y
	return nil
}

// CursorPos returns the recorded cursor
func (d *Device) CursorPos() (terminal.CursorInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cursorErr != nil {
		return terminal.CursorInfo{}, d.cursorErr
	}
	return d.cursor, nil
}

// Beep counts bell requests
func (d *Device) Beep() error {
	d.mu.Lock()
	d.beeps++
	d.mu.Unlock()
	return nil
}

// ===== SOURCE =====

// Poll returns the next pushed sample, waiting at most timeout
func (d *Device) Poll(timeout time.Duration) (input.Sample, bool, error) {
	d.mu.Lock()
	if d.closed {
		d.pollAfterClose = true
		d.mu.Unlock()
		return input.Sample{}, false, ErrClosed
	}
	if err := d.pollErr; err != nil {
		d.mu.Unlock()
		return input.Sample{}, false, err
	}
	d.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case s := <-d.samples:
		return s, true, nil
	case <-timer.C:
		return input.Sample{}, false, nil
	}
}

// Push queues samples for Poll. Blocks if the queue is full.
func (d *Device) Push(samples ...input.Sample) {
	for _, s := range samples {
		d.samples <- s
	}
}

// Resize changes the device size and queues the matching resize sample
func (d *Device) Resize(width, height int) {
	d.mu.Lock()
	d.width, d.height = width, height
	d.screen = blank(width * height)
	d.mu.Unlock()
	d.Push(input.ResizeSample(width, height))
}

// ===== FAULT INJECTION =====

// FailWrite makes Write return err until cleared with nil
func (d *Device) FailWrite(err error) {
	d.mu.Lock()
	d.writeErr = err
	d.mu.Unlock()
}

// FailSize makes Size return err until cleared with nil
func (d *Device) FailSize(err error) {
	d.mu.Lock()
	d.sizeErr = err
	d.mu.Unlock()
}

// FailCursor makes cursor calls return err until cleared with nil
func (d *Device) FailCursor(err error) {
	d.mu.Lock()
	d.cursorErr = err
	d.mu.Unlock()
}

// FailPoll makes Poll return err until cleared with nil
func (d *Device) FailPoll(err error) {
	d.mu.Lock()
	d.pollErr = err
	d.mu.Unlock()
}

// ===== INSPECTION =====

// Screen returns a copy of the mirror screen, row-major
func (d *Device) Screen() []cellbuf.Cell {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]cellbuf.Cell, len(d.screen))
	copy(out, d.screen)
	return out
}

// Cell returns the mirrored cell at (x, y)
func (d *Device) Cell(x, y int) (cellbuf.Cell, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return cellbuf.Cell{}, false
	}
	return d.screen[y*d.width+x], true
}

// Line returns row y of the mirror as text
func (d *Device) Line(y int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if y < 0 || y >= d.height {
		return ""
	}
	rs := make([]rune, d.width)
	for x := range rs {
		rs[x] = d.screen[y*d.width+x].Ch
	}
	return string(rs)
}

// Writes returns every damage rect passed to Write, in order
func (d *Device) Writes() []cellbuf.Rect {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]cellbuf.Rect, len(d.writes))
	copy(out, d.writes)
	return out
}

// Beeps returns the number of Beep calls
func (d *Device) Beeps() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.beeps
}

// Close marks the device closed. Idempotent.
func (d *Device) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}

// Closed reports whether Close was called
func (d *Device) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// PolledAfterClose reports whether Poll ran after Close, which would mean the
// listener outlived the device
func (d *Device) PolledAfterClose() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pollAfterClose
}
