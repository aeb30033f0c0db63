package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cellterm/backend/headless"
	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/event"
	"github.com/lixenwraith/cellterm/input"
	"github.com/lixenwraith/cellterm/terminal"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// newOutputTerm builds a terminal without a listener; events are fed to
// the app directly
func newOutputTerm(t *testing.T, w, h int) (*terminal.Terminal, *headless.Device) {
	t.Helper()
	dev := headless.New(w, h)
	term, err := terminal.New(dev, nil)
	require.NoError(t, err)
	t.Cleanup(func() { term.Close() })
	return term, dev
}

func cellAt(t *testing.T, term *terminal.Terminal, x, y int) cellbuf.Cell {
	t.Helper()
	c, ok := term.Cell(x, y)
	require.True(t, ok, "cell %d,%d out of range", x, y)
	return c
}

func key(k event.Key) event.Event { return event.KeyPress(k, 0, 0) }
func char(r rune) event.Event     { return event.KeyPress(0, r, 0) }

func TestRectDemoInitialFrame(t *testing.T) {
	term, _ := newOutputTerm(t, 80, 24)
	d := newRectDemo()
	d.init(term)
	d.draw(term)

	for x := 2; x <= 4; x++ {
		assert.Equal(t, '*', cellAt(t, term, x, 3).Ch)
		assert.Equal(t, '*', cellAt(t, term, x, 5).Ch)
	}
	assert.Equal(t, '*', cellAt(t, term, 2, 4).Ch)
	assert.Equal(t, '*', cellAt(t, term, 4, 4).Ch)
	assert.Equal(t, ' ', cellAt(t, term, 3, 4).Ch)

	c := cellAt(t, term, 2, 3)
	assert.Equal(t, cellbuf.ColorWhite, c.Fg)
	assert.Equal(t, cellbuf.ColorBlack, c.Bg)
	assert.Equal(t, 'T', cellAt(t, term, 0, 0).Ch)
	assert.Equal(t, 'A', cellAt(t, term, 0, 1).Ch)
}

func TestRectDemoArrowsMoveAndErase(t *testing.T) {
	term, _ := newOutputTerm(t, 80, 24)
	d := newRectDemo()
	d.init(term)
	d.draw(term)

	require.True(t, d.handle(term, key(event.KeyArrowRight)))
	d.draw(term)

	assert.Equal(t, 4, d.x)
	assert.Equal(t, ' ', cellAt(t, term, 2, 3).Ch)
	assert.Equal(t, '*', cellAt(t, term, 5, 3).Ch)
}

func TestRectDemoStaysBelowHeader(t *testing.T) {
	term, _ := newOutputTerm(t, 80, 24)
	d := newRectDemo()
	d.init(term)

	d.handle(term, key(event.KeyArrowUp))
	assert.Equal(t, 3, d.y)
	d.handle(term, key(event.KeyArrowUp))
	assert.Equal(t, 3, d.y)

	d.handle(term, key(event.KeyArrowLeft))
	d.handle(term, key(event.KeyArrowLeft))
	assert.Equal(t, 1, d.x)
}

func TestRectDemoResize(t *testing.T) {
	term, _ := newOutputTerm(t, 80, 24)
	d := newRectDemo()
	d.init(term)

	d.handle(term, char('-'))
	assert.Equal(t, 1, d.size, "never shrinks below one")

	d.handle(term, key(event.KeyArrowDown))
	d.handle(term, key(event.KeyArrowRight))
	d.handle(term, char('+'))
	assert.Equal(t, 2, d.size)
	d.handle(term, event.Mouse(0, 0, event.MouseWheelUp, 0))
	assert.Equal(t, 3, d.size)

	d.handle(term, event.Mouse(0, 0, event.MouseWheelUp, 0))
	assert.Equal(t, 3, d.size, "top edge would reach the header")

	d.handle(term, event.Mouse(0, 0, event.MouseWheelDown, 0))
	assert.Equal(t, 2, d.size)
	d.handle(term, char('='))
	assert.Equal(t, 3, d.size)
	d.handle(term, char('_'))
	assert.Equal(t, 2, d.size)
}

func TestRectDemoClickCyclesColor(t *testing.T) {
	term, _ := newOutputTerm(t, 80, 24)
	d := newRectDemo()
	d.init(term)

	d.handle(term, event.Mouse(3, 4, event.MouseLeft, 0))
	d.handle(term, event.Mouse(3, 4, event.MouseRelease, 0))
	assert.Equal(t, cellbuf.ColorRed, d.color, "white wraps to red")

	d.handle(term, event.Mouse(3, 4, event.MouseLeft, 0))
	d.handle(term, event.Mouse(3, 4, event.MouseRelease, 0))
	assert.Equal(t, cellbuf.ColorGreen, d.color)

	d.draw(term)
	assert.Equal(t, cellbuf.ColorGreen, cellAt(t, term, 2, 3).Fg)
}

func TestRectDemoDragMoves(t *testing.T) {
	term, _ := newOutputTerm(t, 80, 24)
	d := newRectDemo()
	d.init(term)

	d.handle(term, event.Mouse(3, 4, event.MouseLeft, 0))
	d.handle(term, event.Mouse(5, 6, event.MouseLeft, event.ModMotion))
	d.handle(term, event.Mouse(5, 6, event.MouseRelease, 0))

	assert.Equal(t, 5, d.x)
	assert.Equal(t, 6, d.y)
	assert.Equal(t, cellbuf.ColorWhite, d.color, "a drag is not a click")
}

func TestRectDemoDragOutsideIgnored(t *testing.T) {
	term, _ := newOutputTerm(t, 80, 24)
	d := newRectDemo()
	d.init(term)

	d.handle(term, event.Mouse(40, 20, event.MouseLeft, 0))
	d.handle(term, event.Mouse(45, 20, event.MouseLeft, event.ModMotion))

	assert.Equal(t, 3, d.x)
	assert.Equal(t, 4, d.y)
}

func TestRectDemoEscQuits(t *testing.T) {
	term, _ := newOutputTerm(t, 80, 24)
	d := newRectDemo()
	d.init(term)
	assert.False(t, d.handle(term, key(event.KeyEsc)))
}

func TestHelloDemo(t *testing.T) {
	term, dev := newOutputTerm(t, 40, 10)
	d := &helloDemo{g: &globals{logger: discard}}
	d.init(term)
	d.draw(term)
	require.NoError(t, term.Flush())

	assert.Equal(t, "     Hello, World!", dev.Line(3)[:18])
	c, _ := dev.Cell(12, 3)
	assert.Equal(t, cellbuf.ColorGreen, c.Fg)

	assert.True(t, d.handle(term, char('b')))
	assert.Equal(t, 1, dev.Beeps())
	assert.True(t, d.handle(term, char('x')))
	assert.False(t, d.handle(term, key(event.KeyEsc)))
}

func TestEventsViewKeepsNewest(t *testing.T) {
	term, dev := newOutputTerm(t, 60, 8)
	v := &eventsView{}
	v.init(term)

	for r := 'a'; r <= 'h'; r++ {
		require.True(t, v.handle(term, char(r)))
	}
	v.draw(term)
	require.NoError(t, term.Flush())

	require.Len(t, v.log, 4)
	assert.Equal(t, 8, v.count)
	assert.Contains(t, dev.Line(2), "'e'")
	assert.Contains(t, dev.Line(5), "'h'")
	assert.Contains(t, dev.Line(7), "events 8")

	assert.False(t, v.handle(term, key(event.KeyCtrlC)))
}

func TestRunDrivesApp(t *testing.T) {
	dev := headless.New(80, 24)
	term, err := terminal.New(dev, dev, terminal.WithPollTimeout(5*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { term.Close() })

	dev.Push(
		input.KeyDownSample(input.VKRight, 0, 0),
		input.KeyDownSample(input.VKEscape, 0x1b, 0),
	)

	d := newRectDemo()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, run(ctx, term, d, discard))

	assert.Equal(t, 4, d.x)
	c, _ := dev.Cell(5, 3)
	assert.Equal(t, '*', c.Ch)
}

func TestRunFollowsResize(t *testing.T) {
	dev := headless.New(80, 24)
	term, err := terminal.New(dev, dev, terminal.WithPollTimeout(5*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { term.Close() })

	dev.Resize(40, 12)
	dev.Push(input.KeyDownSample(input.VKEscape, 0x1b, 0))

	d := newRectDemo()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, run(ctx, term, d, discard))

	w, h := term.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 12, h)
	assert.Equal(t, 40, d.width)
}

func TestRunStopsOnContext(t *testing.T) {
	dev := headless.New(20, 5)
	term, err := terminal.New(dev, dev, terminal.WithPollTimeout(5*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { term.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.NoError(t, run(ctx, term, &helloDemo{g: &globals{logger: discard}}, discard))
}
