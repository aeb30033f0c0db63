//go:build unix

package ansi

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/containerd/console"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/input"
	"github.com/lixenwraith/cellterm/terminal"
)

// escapeTimeout is the duration to wait after ESC to distinguish
// standalone ESC from escape sequence start
const escapeTimeout = 50 * time.Millisecond

// ErrClosed is returned by device calls after Close
var ErrClosed = errors.New("ansi: device closed")

// Options configures Open
type Options struct {
	In    *os.File // defaults to os.Stdin
	Out   *os.File // defaults to os.Stdout
	Mouse bool     // enable SGR mouse reporting
}

// Device is an xterm-compatible terminal on a unix tty.
// It implements terminal.Backend, terminal.Source and terminal.Beeper.
// Output methods belong to the consumer goroutine, Poll to the listener.
type Device struct {
	in   *os.File
	inFd int
	con  console.Console
	mode Options

	// Output side
	mu     sync.Mutex
	out    *renderer
	cursor terminal.CursorInfo
	closed bool

	// Input side, listener goroutine only
	parser       *Parser
	queue        []input.Sample
	readBuf      []byte
	pendingSince time.Time
	winch        chan os.Signal
}

// Open puts the tty in raw mode, enters the alternate screen and hides the cursor
func Open(opts Options) (*Device, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	fd := int(opts.In.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.Errorf("ansi: %s is not a terminal", opts.In.Name())
	}

	con, err := console.ConsoleFromFile(opts.In)
	if err != nil {
		return nil, errors.Wrap(err, "ansi: open console")
	}
	if err := con.SetRaw(); err != nil {
		return nil, errors.Wrap(err, "ansi: raw mode")
	}

	d := &Device{
		in:      opts.In,
		inFd:    fd,
		con:     con,
		mode:    opts,
		out:     newRenderer(opts.Out),
		parser:  NewParser(),
		readBuf: make([]byte, 256),
		winch:   make(chan os.Signal, 1),
	}
	signal.Notify(d.winch, syscall.SIGWINCH)

	seqs := [][]byte{csiAltScreenEnter, csiCursorHide, csiAutoWrapOff}
	if opts.Mouse {
		seqs = append(seqs, csiMouseDragOn, csiMouseSGROn)
	}
	if err := d.out.raw(seqs...); err != nil {
		d.restore()
		return nil, errors.Wrap(err, "ansi: init screen")
	}
	if err := d.out.clear(); err != nil {
		d.restore()
		return nil, errors.Wrap(err, "ansi: clear screen")
	}
	return d, nil
}

// Size returns the tty dimensions
func (d *Device) Size() (int32, int32, error) {
	ws, err := d.con.Size()
	if err != nil {
		return 0, 0, errors.Wrap(err, "ansi: window size")
	}
	return int32(ws.Width), int32(ws.Height), nil
}

// Write renders the damaged cells
func (d *Device) Write(damage cellbuf.Rect, grid *cellbuf.Grid) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	return errors.Wrap(d.out.render(damage, grid), "ansi: write")
}

// SetCursorPos moves the cursor (0-indexed)
func (d *Device) SetCursorPos(x, y int16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if err := d.out.cursorTo(int(x), int(y)); err != nil {
		return errors.Wrap(err, "ansi: cursor")
	}
	d.cursor.X, d.cursor.Y = x, y
	return nil
}

// CursorPos returns the last cursor position set through this device.
// The tty is not queried: its reply would race the listener for stdin.
func (d *Device) CursorPos() (terminal.CursorInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor, nil
}

// SetCursorVisible shows or hides the cursor
func (d *Device) SetCursorVisible(visible bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	seq := csiCursorHide
	if visible {
		seq = csiCursorShow
	}
	if err := d.out.raw(seq); err != nil {
		return errors.Wrap(err, "ansi: cursor")
	}
	d.cursor.Visible = visible
	return nil
}

// Beep sends BEL
func (d *Device) Beep() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return errors.Wrap(d.out.raw(bel), "ansi: bell")
}

// ===== INPUT =====

// Poll returns one sample, waiting at most timeout for the tty.
// A resize signal is reported before pending input.
func (d *Device) Poll(timeout time.Duration) (input.Sample, bool, error) {
	if s, ok := d.dequeue(); ok {
		return s, true, nil
	}

	select {
	case <-d.winch:
		w, h, err := d.Size()
		if err != nil {
			return input.Sample{}, false, err
		}
		return input.ResizeSample(int(w), int(h)), true, nil
	default:
	}

	if d.parser.Pending() {
		if left := escapeTimeout - time.Since(d.pendingSince); left < timeout {
			timeout = max(left, 0)
		}
	}

	fds := []unix.PollFd{{Fd: int32(d.inFd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, pollMillis(timeout))
	if err != nil {
		if err == unix.EINTR {
			// SIGWINCH, picked up on the next call
			return input.Sample{}, false, nil
		}
		return input.Sample{}, false, errors.Wrap(err, "ansi: poll")
	}

	if n == 0 {
		if d.parser.Pending() && time.Since(d.pendingSince) >= escapeTimeout {
			d.queue = append(d.queue, d.parser.Timeout()...)
		}
		s, ok := d.dequeue()
		return s, ok, nil
	}

	rn, err := unix.Read(d.inFd, d.readBuf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return input.Sample{}, false, nil
		}
		return input.Sample{}, false, errors.Wrap(err, "ansi: read")
	}
	if rn == 0 {
		return input.Sample{}, false, errors.Wrap(io.EOF, "ansi: read")
	}

	wasPending := d.parser.Pending()
	d.queue = append(d.queue, d.parser.Feed(d.readBuf[:rn])...)
	if d.parser.Pending() && !wasPending {
		d.pendingSince = time.Now()
	}

	s, ok := d.dequeue()
	return s, ok, nil
}

func (d *Device) dequeue() (input.Sample, bool) {
	if len(d.queue) == 0 {
		return input.Sample{}, false
	}
	s := d.queue[0]
	d.queue = d.queue[1:]
	return s, true
}

// ===== SHUTDOWN =====

// Close restores the tty. Call only after the listener has stopped polling.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.restore()
}

// restore undoes Open: mouse off, cursor on, main screen, cooked mode
func (d *Device) restore() error {
	signal.Stop(d.winch)

	seqs := [][]byte{}
	if d.mode.Mouse {
		seqs = append(seqs, csiMouseDragOff, csiMouseSGROff)
	}
	seqs = append(seqs, csiCursorShow, csiAltScreenExit, csiAutoWrapOn, csiSGR0)
	werr := d.out.raw(seqs...)

	if err := d.con.Reset(); err != nil {
		return errors.Wrap(err, "ansi: restore console")
	}
	return errors.Wrap(werr, "ansi: restore screen")
}
