package terminal

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/cellterm/cellbuf"
)

// All drawing primitives clip against the grid and return false when nothing
// was placed. The *WithAttrs variants leave the attribute context unchanged.

// PutChar writes ch at (x, y) with the current attributes
func (t *Terminal) PutChar(x, y int, ch rune) bool {
	return t.grid.Set(x, y, cellbuf.Cell{Ch: ch, Fg: t.fg, Bg: t.bg})
}

// PutCharWithAttrs writes ch at (x, y) with fg/bg
func (t *Terminal) PutCharWithAttrs(x, y int, ch rune, fg, bg cellbuf.Attribute) bool {
	defer t.withAttrs(fg, bg)()
	return t.PutChar(x, y, ch)
}

// PutString places s left to right from column x, honoring display width.
// Zero-width runes are skipped without advancing. Runes at negative columns
// advance but are not drawn. A wide rune landing on the last column becomes a
// blank; any other rune crossing the right edge is dropped.
func (t *Terminal) PutString(x, y int, s string) bool {
	w := t.grid.Width()
	if y < 0 || y >= t.grid.Height() || x >= w {
		return false
	}

	placed := false
	pos := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}

		if pos >= 0 {
			switch {
			case pos+rw <= w:
				t.grid.Set(pos, y, cellbuf.Cell{Ch: r, Fg: t.fg, Bg: t.bg})
				placed = true
			case rw == 2 && pos == w-1:
				t.grid.Set(pos, y, cellbuf.Cell{Ch: ' ', Fg: t.fg, Bg: t.bg})
				placed = true
			}
		}

		pos += rw
		if pos >= w {
			break
		}
	}
	return placed
}

// PutStringWithAttrs is PutString with fg/bg
func (t *Terminal) PutStringWithAttrs(x, y int, s string, fg, bg cellbuf.Attribute) bool {
	defer t.withAttrs(fg, bg)()
	return t.PutString(x, y, s)
}

// PutStringVertical places s top to bottom from row y, one rune per row
func (t *Terminal) PutStringVertical(x, y int, s string) bool {
	h := t.grid.Height()
	if x < 0 || x >= t.grid.Width() || y >= h {
		return false
	}

	placed := false
	pos := y
	for _, r := range s {
		if pos >= 0 {
			t.grid.Set(x, pos, cellbuf.Cell{Ch: r, Fg: t.fg, Bg: t.bg})
			placed = true
		}
		pos++
		if pos >= h {
			break
		}
	}
	return placed
}

// PutStringVerticalWithAttrs is PutStringVertical with fg/bg
func (t *Terminal) PutStringVerticalWithAttrs(x, y int, s string, fg, bg cellbuf.Attribute) bool {
	defer t.withAttrs(fg, bg)()
	return t.PutStringVertical(x, y, s)
}

// PutHorizontalLine fills length cells rightward from (x, y), clipped at both ends
func (t *Terminal) PutHorizontalLine(x, y, length int, ch rune) bool {
	if y < 0 || y >= t.grid.Height() {
		return false
	}
	start, end := clip(x, length, t.grid.Width())
	if start >= end {
		return false
	}

	c := cellbuf.Cell{Ch: ch, Fg: t.fg, Bg: t.bg}
	for xx := start; xx < end; xx++ {
		t.grid.Set(xx, y, c)
	}
	return true
}

// PutHorizontalLineWithAttrs is PutHorizontalLine with fg/bg
func (t *Terminal) PutHorizontalLineWithAttrs(x, y, length int, ch rune, fg, bg cellbuf.Attribute) bool {
	defer t.withAttrs(fg, bg)()
	return t.PutHorizontalLine(x, y, length, ch)
}

// PutVerticalLine fills length cells downward from (x, y), clipped at both ends
func (t *Terminal) PutVerticalLine(x, y, length int, ch rune) bool {
	if x < 0 || x >= t.grid.Width() {
		return false
	}
	start, end := clip(y, length, t.grid.Height())
	if start >= end {
		return false
	}

	c := cellbuf.Cell{Ch: ch, Fg: t.fg, Bg: t.bg}
	for yy := start; yy < end; yy++ {
		t.grid.Set(x, yy, c)
	}
	return true
}

// PutVerticalLineWithAttrs is PutVerticalLine with fg/bg
func (t *Terminal) PutVerticalLineWithAttrs(x, y, length int, ch rune, fg, bg cellbuf.Attribute) bool {
	defer t.withAttrs(fg, bg)()
	return t.PutVerticalLine(x, y, length, ch)
}

// clip intersects [from, from+length) with [0, limit)
func clip(from, length, limit int) (start, end int) {
	start, end = from, from+length
	if start < 0 {
		start = 0
	}
	if end > limit {
		end = limit
	}
	return start, end
}
