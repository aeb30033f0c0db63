// @lixen: #focus{sys[term,io,output]}
package ansi

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/cellterm/cellbuf"
)

// renderer writes damaged grid regions as ANSI with style coalescing
type renderer struct {
	writer *bufio.Writer

	// Style state for coalescing
	lastFg    cellbuf.Attribute
	lastBg    cellbuf.Attribute
	lastValid bool
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{
		writer: bufio.NewWriterSize(w, 64*1024),
	}
}

// render emits the cells inside damage, one cursor jump per row.
// The cell after a wide rune is covered by it and is skipped. A row whose
// damage starts on that covered cell is redrawn from the wide rune, and a
// wide rune on the right edge paints one column past it, so the device never
// shows half a glyph.
func (o *renderer) render(damage cellbuf.Rect, grid *cellbuf.Grid) error {
	if damage.Empty() {
		return nil
	}

	left, top := max(damage.Left, 0), max(damage.Top, 0)
	right, bottom := min(damage.Right, grid.Width()-1), min(damage.Bottom, grid.Height()-1)

	w := o.writer
	for y := top; y <= bottom; y++ {
		row := grid.Row(y)
		start := left
		if coveredCell(row, left) {
			start = left - 1
		}
		writeCursorPos(w, start, y)

		for x := start; x <= right; x++ {
			c := row[x]
			o.writeStyle(w, c.Fg, c.Bg)

			r := c.Ch
			if r < 0x20 {
				r = ' '
			}
			if r < 0x80 {
				w.WriteByte(byte(r))
			} else {
				w.WriteRune(r)
			}

			if runewidth.RuneWidth(r) == 2 {
				x++
			}
		}
	}

	w.Write(csiSGR0)
	o.lastValid = false
	return w.Flush()
}

// coveredCell reports whether row[x] is the second column of a wide rune
func coveredCell(row []cellbuf.Cell, x int) bool {
	if x <= 0 || runewidth.RuneWidth(row[x-1].Ch) != 2 {
		return false
	}
	// row[x-1] is itself covered by an earlier wide rune
	return !coveredCell(row, x-1)
}

// writeStyle emits a single combined SGR sequence when style changes
func (o *renderer) writeStyle(w *bufio.Writer, fg, bg cellbuf.Attribute) {
	if o.lastValid && fg == o.lastFg && bg == o.lastBg {
		return
	}

	// Always reset first so dropped style flags do not linger
	w.Write(csi)
	w.WriteByte('0')

	flags := fg | bg
	if flags.Has(cellbuf.AttrBold) {
		w.Write([]byte(";1"))
	}
	if flags.Has(cellbuf.AttrUnderline) {
		w.Write([]byte(";4"))
	}
	if flags.Has(cellbuf.AttrReverse) {
		w.Write([]byte(";7"))
	}

	w.WriteByte(';')
	writeInt(w, sgrColor(fg.Color(), 30))
	w.WriteByte(';')
	writeInt(w, sgrColor(bg.Color(), 40))
	w.WriteByte('m')

	o.lastFg = fg
	o.lastBg = bg
	o.lastValid = true
}

// sgrColor maps a color index to its SGR parameter; base is 30 (fg) or 40 (bg)
func sgrColor(c cellbuf.Attribute, base int) int {
	if c == cellbuf.ColorDefault || c > cellbuf.ColorWhite {
		return base + 9
	}
	return base + int(c-cellbuf.ColorBlack)
}

// clear erases the screen with default colors
func (o *renderer) clear() error {
	w := o.writer
	w.Write(csiSGR0)
	w.Write(csiClear)
	o.lastValid = false
	return w.Flush()
}

// raw writes control sequences through the same buffer to keep stream order
func (o *renderer) raw(seqs ...[]byte) error {
	for _, s := range seqs {
		o.writer.Write(s)
	}
	return o.writer.Flush()
}

// cursorTo positions the cursor
func (o *renderer) cursorTo(x, y int) error {
	writeCursorPos(o.writer, x, y)
	return o.writer.Flush()
}
