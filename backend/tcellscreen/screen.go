// Package tcellscreen adapts a tcell.Screen to the terminal backend and
// input source interfaces.
package tcellscreen

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/input"
	"github.com/lixenwraith/cellterm/terminal"
)

// ErrClosed is returned after Close
var ErrClosed = errors.New("tcellscreen: screen closed")

// eventBuffer is the depth of the PollEvent pump channel
const eventBuffer = 100

// Screen implements terminal.Backend, terminal.Source and terminal.Beeper on tcell
type Screen struct {
	screen tcell.Screen

	mu     sync.Mutex
	cursor terminal.CursorInfo

	events   chan tcell.Event
	stop     chan struct{}
	pumpDone chan struct{}

	// Listener goroutine only
	held uint32

	closeOnce sync.Once
}

// Open creates and initializes the default tcell screen
func Open(mouse bool) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "tcellscreen: new screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "tcellscreen: init")
	}
	if mouse {
		screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	}
	screen.EnableFocus()
	return New(screen), nil
}

// New wraps an initialized screen and starts pumping its events.
// Close finalizes the screen.
func New(screen tcell.Screen) *Screen {
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	screen.Clear()

	s := &Screen{
		screen:   screen,
		events:   make(chan tcell.Event, eventBuffer),
		stop:     make(chan struct{}),
		pumpDone: make(chan struct{}),
	}
	go s.pump()
	return s
}

// pump forwards PollEvent results until the screen is finalized
func (s *Screen) pump() {
	defer close(s.pumpDone)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.stop:
			return
		}
	}
}

// ===== BACKEND =====

// Size returns the screen dimensions
func (s *Screen) Size() (int32, int32, error) {
	w, h := s.screen.Size()
	return int32(w), int32(h), nil
}

// Write copies the damaged cells into tcell's back buffer and shows them
func (s *Screen) Write(damage cellbuf.Rect, grid *cellbuf.Grid) error {
	select {
	case <-s.stop:
		return ErrClosed
	default:
	}
	if damage.Empty() {
		return nil
	}

	right := min(damage.Right, grid.Width()-1)
	bottom := min(damage.Bottom, grid.Height()-1)
	for y := max(damage.Top, 0); y <= bottom; y++ {
		row := grid.Row(y)
		for x := max(damage.Left, 0); x <= right; x++ {
			c := row[x]
			s.screen.SetContent(x, y, c.Ch, nil, cellStyle(c))
			if runewidth.RuneWidth(c.Ch) == 2 {
				x++
			}
		}
	}
	s.screen.Show()
	return nil
}

// SetCursorPos moves the cursor, showing it if it is visible
func (s *Screen) SetCursorPos(x, y int16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.X, s.cursor.Y = x, y
	if s.cursor.Visible {
		s.screen.ShowCursor(int(x), int(y))
	}
	return nil
}

// CursorPos returns the tracked cursor
func (s *Screen) CursorPos() (terminal.CursorInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, nil
}

// SetCursorVisible shows or hides the cursor at its tracked position
func (s *Screen) SetCursorVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Visible = visible
	if visible {
		s.screen.ShowCursor(int(s.cursor.X), int(s.cursor.Y))
	} else {
		s.screen.HideCursor()
	}
}

// Beep rings the terminal bell
func (s *Screen) Beep() error {
	return errors.Wrap(s.screen.Beep(), "tcellscreen: beep")
}

// ===== SOURCE =====

// Poll converts the next tcell event into a sample, waiting at most timeout.
// Events with no sample form (paste, interrupts) report ok=false.
func (s *Screen) Poll(timeout time.Duration) (input.Sample, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-s.events:
		if !ok {
			return input.Sample{}, false, ErrClosed
		}
		sample, ok := s.convert(ev)
		return sample, ok, nil
	case <-s.pumpDone:
		return input.Sample{}, false, ErrClosed
	case <-timer.C:
		return input.Sample{}, false, nil
	}
}

func (s *Screen) convert(ev tcell.Event) (input.Sample, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return keySample(ev)
	case *tcell.EventMouse:
		return s.mouseSample(ev), true
	case *tcell.EventResize:
		w, h := ev.Size()
		return input.ResizeSample(w, h), true
	case *tcell.EventFocus:
		return input.Sample{Kind: input.SampleFocus}, true
	}
	return input.Sample{}, false
}

// ===== SHUTDOWN =====

// Close finalizes the screen and stops the event pump. Idempotent.
func (s *Screen) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.screen.Fini()
		<-s.pumpDone
	})
	return nil
}
