package terminal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cellterm/backend/headless"
	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/terminal"
)

// newTerm creates an output-only terminal over a headless device
func newTerm(t *testing.T, w, h int) (*terminal.Terminal, *headless.Device) {
	t.Helper()
	dev := headless.New(w, h)
	term, err := terminal.New(dev, nil)
	require.NoError(t, err)
	t.Cleanup(func() { term.Close() })
	return term, dev
}

// row renders row y of the grid as text
func row(term *terminal.Terminal, y int) string {
	w, _ := term.Size()
	rs := make([]rune, w)
	for x := range rs {
		c, _ := term.Cell(x, y)
		rs[x] = c.Ch
	}
	return string(rs)
}

func TestPutChar(t *testing.T) {
	term, _ := newTerm(t, 4, 3)
	term.SetForeground(cellbuf.ColorRed)
	term.SetBackground(cellbuf.ColorBlue)

	assert.True(t, term.PutChar(1, 1, 'q'))
	c, ok := term.Cell(1, 1)
	require.True(t, ok)
	assert.Equal(t, cellbuf.Cell{Ch: 'q', Fg: cellbuf.ColorRed, Bg: cellbuf.ColorBlue}, c)

	assert.False(t, term.PutChar(-1, 0, 'x'))
	assert.False(t, term.PutChar(4, 0, 'x'))
	assert.False(t, term.PutChar(0, 3, 'x'))
}

func TestPutStringBounds(t *testing.T) {
	term, _ := newTerm(t, 80, 25)

	assert.False(t, term.PutString(-10, 3, "example"))
	assert.False(t, term.PutString(81, 3, "example"))
	assert.False(t, term.PutString(1, -1, "example"))
	assert.False(t, term.PutString(1, 26, "example"))
	assert.False(t, term.Dirty())

	assert.True(t, term.PutString(0, 0, "example"))
	assert.True(t, term.PutString(2, 1, "example"))
	assert.True(t, term.PutString(-4, 2, "example"))
	assert.True(t, term.PutString(3, 3, "example"))
	assert.True(t, term.Dirty())

	assert.Equal(t, "ple", row(term, 2)[:3])
	assert.Equal(t, "   example", row(term, 3)[:10])
}

func TestPutStringClipsRight(t *testing.T) {
	term, _ := newTerm(t, 5, 1)
	assert.True(t, term.PutString(2, 0, "abcdef"))
	assert.Equal(t, "  abc", row(term, 0))
}

func TestPutStringWide(t *testing.T) {
	t.Run("wide runes take two columns", func(t *testing.T) {
		term, _ := newTerm(t, 6, 1)
		assert.True(t, term.PutString(0, 0, "日本x"))
		c0, _ := term.Cell(0, 0)
		c2, _ := term.Cell(2, 0)
		c4, _ := term.Cell(4, 0)
		assert.Equal(t, '日', c0.Ch)
		assert.Equal(t, '本', c2.Ch)
		assert.Equal(t, 'x', c4.Ch)
	})

	t.Run("wide rune on last column becomes blank", func(t *testing.T) {
		term, _ := newTerm(t, 3, 1)
		term.PutChar(2, 0, '#')
		assert.True(t, term.PutString(0, 0, "ab日"))
		assert.Equal(t, "ab ", row(term, 0))
	})

	t.Run("zero width runes do not advance", func(t *testing.T) {
		term, _ := newTerm(t, 4, 1)
		assert.True(t, term.PutString(0, 0, "áb"))
		assert.Equal(t, "ab  ", row(term, 0))
	})

	t.Run("wide rune straddling negative edge", func(t *testing.T) {
		term, _ := newTerm(t, 4, 1)
		assert.True(t, term.PutString(-1, 0, "日ab"))
		assert.Equal(t, " ab ", row(term, 0))
	})
}

func TestPutStringVertical(t *testing.T) {
	term, _ := newTerm(t, 80, 25)

	assert.False(t, term.PutStringVertical(3, -10, "example"))
	assert.False(t, term.PutStringVertical(3, 26, "example"))
	assert.False(t, term.PutStringVertical(-1, 1, "example"))
	assert.False(t, term.PutStringVertical(81, 1, "example"))

	assert.True(t, term.PutStringVertical(0, 0, "example"))
	assert.True(t, term.PutStringVertical(2, -4, "example"))

	c, _ := term.Cell(2, 0)
	assert.Equal(t, 'p', c.Ch)
	c, _ = term.Cell(0, 6)
	assert.Equal(t, 'e', c.Ch)
}

func TestPutHorizontalLineClipping(t *testing.T) {
	term, dev := newTerm(t, 5, 1)

	assert.True(t, term.PutHorizontalLine(-4, 0, 7, '*'))
	assert.Equal(t, "***  ", row(term, 0))
	assert.Equal(t, cellbuf.Rect{Left: 0, Top: 0, Right: 2, Bottom: 0}, term.Grid().Damage())

	require.NoError(t, term.Flush())
	assert.Equal(t, "***  ", dev.Line(0))
}

func TestPutLines(t *testing.T) {
	term, _ := newTerm(t, 80, 25)

	assert.False(t, term.PutHorizontalLine(-10, 3, 7, '-'))
	assert.False(t, term.PutHorizontalLine(81, 3, 7, '-'))
	assert.False(t, term.PutHorizontalLine(1, -1, 7, '-'))
	assert.False(t, term.PutHorizontalLine(1, 26, 7, '-'))
	assert.False(t, term.PutHorizontalLine(1, 1, 0, '-'))

	assert.False(t, term.PutVerticalLine(3, -10, 7, '-'))
	assert.False(t, term.PutVerticalLine(3, 26, 7, '-'))
	assert.False(t, term.PutVerticalLine(-1, 1, 7, '-'))
	assert.False(t, term.PutVerticalLine(81, 1, 7, '-'))
	assert.False(t, term.Dirty())

	assert.True(t, term.PutVerticalLine(0, -1, 7, '-'))
	assert.True(t, term.PutVerticalLine(3, 20, 7, '='))
	assert.True(t, term.PutHorizontalLine(75, 24, 10, '+'))

	c, _ := term.Cell(0, 5)
	assert.Equal(t, '-', c.Ch)
	c, _ = term.Cell(0, 6)
	assert.Equal(t, ' ', c.Ch)
	c, _ = term.Cell(3, 24)
	assert.Equal(t, '=', c.Ch)
	c, _ = term.Cell(79, 24)
	assert.Equal(t, '+', c.Ch)
}

func TestWithAttrsRestoresContext(t *testing.T) {
	term, _ := newTerm(t, 10, 3)
	term.SetForeground(cellbuf.ColorGreen)
	term.SetBackground(cellbuf.ColorBlack)

	check := func(name string, ok bool) {
		t.Helper()
		assert.Equal(t, cellbuf.ColorGreen, term.Foreground(), name)
		assert.Equal(t, cellbuf.ColorBlack, term.Background(), name)
	}

	fg, bg := cellbuf.ColorYellow|cellbuf.AttrBold, cellbuf.ColorMagenta

	check("char", term.PutCharWithAttrs(0, 0, 'a', fg, bg))
	check("char out of bounds", term.PutCharWithAttrs(-1, 0, 'a', fg, bg))
	check("string", term.PutStringWithAttrs(0, 1, "abc", fg, bg))
	check("string out of bounds", term.PutStringWithAttrs(0, 9, "abc", fg, bg))
	check("vertical", term.PutStringVerticalWithAttrs(5, 0, "abc", fg, bg))
	check("hline", term.PutHorizontalLineWithAttrs(0, 2, 3, '-', fg, bg))
	check("vline", term.PutVerticalLineWithAttrs(9, 0, 3, '|', fg, bg))

	c, _ := term.Cell(1, 1)
	assert.Equal(t, cellbuf.Cell{Ch: 'b', Fg: fg, Bg: bg}, c)
}

func TestTerminalResizeAndClear(t *testing.T) {
	term, _ := newTerm(t, 3, 2)
	term.PutString(0, 0, "abc")

	term.Resize(5, 3)
	w, h := term.Size()
	assert.Equal(t, 5, w)
	assert.Equal(t, 3, h)
	assert.Equal(t, "abc  ", row(term, 0))
	assert.Equal(t, cellbuf.Rect{Left: 0, Top: 0, Right: 4, Bottom: 2}, term.Grid().Damage())

	term.Clear()
	assert.Equal(t, "     ", row(term, 0))
	assert.Len(t, term.Cells(), 15)
}
