package terminal

import (
	"time"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/input"
)

// CursorInfo is the device cursor state
type CursorInfo struct {
	Visible bool
	X, Y    int16
}

// Backend abstracts the output side of a terminal device
type Backend interface {
	// Size returns current device dimensions in cells
	Size() (width, height int32, err error)

	// Write pushes the cells of grid inside damage to the device.
	// An empty damage rect is a no-op. Cells outside damage must not be written,
	// except that a row may widen by one column at either end to cover a whole
	// wide rune the damage cuts in half.
	Write(damage cellbuf.Rect, grid *cellbuf.Grid) error

	// SetCursorPos moves the device cursor (0-indexed)
	SetCursorPos(x, y int16) error

	// CursorPos returns cursor visibility and position
	CursorPos() (CursorInfo, error)
}

// Source abstracts the input side of a terminal device.
// Poll blocks for at most timeout; ok is false when nothing arrived.
// Only the listener goroutine calls Poll.
type Source interface {
	Poll(timeout time.Duration) (s input.Sample, ok bool, err error)
}

// Beeper produces an audible bell
type Beeper interface {
	Beep() error
}
