//go:build windows

package wincon

import (
	"sync"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/input"
	"github.com/lixenwraith/cellterm/terminal"
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procReadConsoleInputW    = kernel32.NewProc("ReadConsoleInputW")
	procWriteConsoleOutputW  = kernel32.NewProc("WriteConsoleOutputW")
	procGetConsoleCursorInfo = kernel32.NewProc("GetConsoleCursorInfo")
	procSetConsoleCursorInfo = kernel32.NewProc("SetConsoleCursorInfo")
)

// ErrClosed is returned after Close
var ErrClosed = errors.New("wincon: console closed")

// consoleCursorInfo mirrors CONSOLE_CURSOR_INFO
type consoleCursorInfo struct {
	Size    uint32
	Visible int32
}

// Console implements terminal.Backend, terminal.Source and terminal.Beeper
// on the process's standard console handles
type Console struct {
	in, out windows.Handle
	inMode  uint32

	mu     sync.Mutex
	closed bool

	// Listener goroutine only
	dec decoder
}

// Open switches the input handle to window and mouse input
func Open() (*Console, error) {
	in, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return nil, errors.Wrap(err, "wincon: stdin handle")
	}
	out, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return nil, errors.Wrap(err, "wincon: stdout handle")
	}

	c := &Console{in: in, out: out}
	if err := windows.GetConsoleMode(in, &c.inMode); err != nil {
		return nil, errors.Wrap(err, "wincon: console mode")
	}
	mode := uint32(windows.ENABLE_WINDOW_INPUT | windows.ENABLE_MOUSE_INPUT | windows.ENABLE_EXTENDED_FLAGS)
	if err := windows.SetConsoleMode(in, mode); err != nil {
		return nil, errors.Wrap(err, "wincon: set console mode")
	}
	return c, nil
}

func (c *Console) screenInfo() (windows.ConsoleScreenBufferInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	err := windows.GetConsoleScreenBufferInfo(c.out, &info)
	return info, err
}

// Size returns the visible window dimensions
func (c *Console) Size() (int32, int32, error) {
	info, err := c.screenInfo()
	if err != nil {
		return 0, 0, errors.Wrap(err, "wincon: screen buffer info")
	}
	w := int32(info.Window.Right-info.Window.Left) + 1
	h := int32(info.Window.Bottom-info.Window.Top) + 1
	return w, h, nil
}

// Write sends the damaged region in one WriteConsoleOutputW call
func (c *Console) Write(damage cellbuf.Rect, grid *cellbuf.Grid) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if damage.Empty() {
		return nil
	}

	buf := packRegion(damage, grid)
	size := windows.Coord{X: int16(damage.Width()), Y: int16(damage.Height())}
	region := windows.SmallRect{
		Left:   int16(damage.Left),
		Top:    int16(damage.Top),
		Right:  int16(damage.Right),
		Bottom: int16(damage.Bottom),
	}
	r, _, err := procWriteConsoleOutputW.Call(
		uintptr(c.out),
		uintptr(unsafe.Pointer(&buf[0])),
		coordArg(size),
		coordArg(windows.Coord{}),
		uintptr(unsafe.Pointer(&region)),
	)
	if r == 0 {
		return errors.Wrap(err, "wincon: write console output")
	}
	return nil
}

// coordArg packs a COORD for a by-value syscall argument
func coordArg(c windows.Coord) uintptr {
	return uintptr(uint16(c.X)) | uintptr(uint16(c.Y))<<16
}

// SetCursorPos moves the console cursor
func (c *Console) SetCursorPos(x, y int16) error {
	if err := windows.SetConsoleCursorPosition(c.out, windows.Coord{X: x, Y: y}); err != nil {
		return errors.Wrap(err, "wincon: set cursor position")
	}
	return nil
}

// CursorPos queries the console cursor position and visibility
func (c *Console) CursorPos() (terminal.CursorInfo, error) {
	info, err := c.screenInfo()
	if err != nil {
		return terminal.CursorInfo{}, errors.Wrap(err, "wincon: screen buffer info")
	}
	var ci consoleCursorInfo
	if r, _, err := procGetConsoleCursorInfo.Call(uintptr(c.out), uintptr(unsafe.Pointer(&ci))); r == 0 {
		return terminal.CursorInfo{}, errors.Wrap(err, "wincon: cursor info")
	}
	return terminal.CursorInfo{
		Visible: ci.Visible != 0,
		X:       info.CursorPosition.X,
		Y:       info.CursorPosition.Y,
	}, nil
}

// SetCursorVisible shows or hides the console cursor
func (c *Console) SetCursorVisible(visible bool) error {
	var ci consoleCursorInfo
	if r, _, err := procGetConsoleCursorInfo.Call(uintptr(c.out), uintptr(unsafe.Pointer(&ci))); r == 0 {
		return errors.Wrap(err, "wincon: cursor info")
	}
	ci.Visible = 0
	if visible {
		ci.Visible = 1
	}
	if r, _, err := procSetConsoleCursorInfo.Call(uintptr(c.out), uintptr(unsafe.Pointer(&ci))); r == 0 {
		return errors.Wrap(err, "wincon: set cursor info")
	}
	return nil
}

// Beep writes BEL to the console
func (c *Console) Beep() error {
	var n uint32
	return errors.Wrap(windows.WriteFile(c.out, []byte{'\a'}, &n, nil), "wincon: bell")
}

// Poll waits at most timeout for an input record and decodes it
func (c *Console) Poll(timeout time.Duration) (input.Sample, bool, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return input.Sample{}, false, ErrClosed
	}

	ev, err := windows.WaitForSingleObject(c.in, uint32(timeout.Milliseconds()))
	if err != nil {
		return input.Sample{}, false, errors.Wrap(err, "wincon: wait for input")
	}
	if ev == uint32(windows.WAIT_TIMEOUT) {
		return input.Sample{}, false, nil
	}

	var rec inputRecord
	var read uint32
	r, _, err := procReadConsoleInputW.Call(
		uintptr(c.in),
		uintptr(unsafe.Pointer(&rec)),
		1,
		uintptr(unsafe.Pointer(&read)),
	)
	if r == 0 {
		return input.Sample{}, false, errors.Wrap(err, "wincon: read console input")
	}
	if read == 0 {
		return input.Sample{}, false, nil
	}
	s, ok := c.dec.decode(&rec)
	return s, ok, nil
}

// Close restores the saved input mode. Call only after the listener has stopped polling.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return errors.Wrap(windows.SetConsoleMode(c.in, c.inMode), "wincon: restore console mode")
}
