// Package wincon drives a Windows console through the console API.
// Record decoding and attribute packing are portable so they can be tested anywhere.
package wincon

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/input"
)

// INPUT_RECORD event types
const (
	keyEvent              = 0x0001
	mouseEvent            = 0x0002
	windowBufferSizeEvent = 0x0004
	menuEvent             = 0x0008
	focusEvent            = 0x0010
)

// controlStateMask keeps the alt, ctrl and shift bits of dwControlKeyState
const controlStateMask = 0x1F

// inputRecord mirrors INPUT_RECORD: a type tag and a 16-byte event union
type inputRecord struct {
	EventType uint16
	_         uint16
	Event     [16]byte
}

// decoder turns input records into samples, joining UTF-16 surrogate pairs
// that arrive as two key records
type decoder struct {
	highSurrogate rune
}

func (d *decoder) decode(r *inputRecord) (input.Sample, bool) {
	e := r.Event[:]
	le := binary.LittleEndian

	switch r.EventType {
	case keyEvent:
		s := input.Sample{
			Kind:       input.SampleKey,
			KeyDown:    le.Uint32(e[0:4]) != 0,
			Repeat:     le.Uint16(e[4:6]),
			VirtualKey: le.Uint16(e[6:8]),
			Char:       rune(le.Uint16(e[10:12])),
			Control:    input.ControlState(le.Uint32(e[12:16]) & controlStateMask),
		}
		switch {
		case utf16.IsSurrogate(s.Char) && s.Char < 0xDC00:
			if s.KeyDown {
				d.highSurrogate = s.Char
			}
			return input.Sample{}, false
		case utf16.IsSurrogate(s.Char):
			if d.highSurrogate == 0 {
				return input.Sample{}, false
			}
			s.Char = utf16.DecodeRune(d.highSurrogate, s.Char)
			if s.KeyDown {
				d.highSurrogate = 0
			}
		}
		return s, true

	case mouseEvent:
		return input.MouseSample(
			int(int16(le.Uint16(e[0:2]))),
			int(int16(le.Uint16(e[2:4]))),
			le.Uint32(e[4:8]),
			input.MouseFlags(le.Uint32(e[12:16])),
			input.ControlState(le.Uint32(e[8:12])&controlStateMask),
		), true

	case windowBufferSizeEvent:
		return input.ResizeSample(int(int16(le.Uint16(e[0:2]))), int(int16(le.Uint16(e[2:4])))), true

	case menuEvent, focusEvent:
		return input.Sample{Kind: input.SampleFocus}, true
	}
	return input.Sample{}, false
}

// Console character attributes
const (
	foregroundBlue      = 0x0001
	foregroundGreen     = 0x0002
	foregroundRed       = 0x0004
	foregroundIntensity = 0x0008
	backgroundBlue      = 0x0010
	backgroundGreen     = 0x0020
	backgroundRed       = 0x0040
	backgroundIntensity = 0x0080
)

// Color tables indexed by color; the default foreground is white, the default background black
var (
	foregroundTable = [...]uint16{
		foregroundRed | foregroundGreen | foregroundBlue,
		0,
		foregroundRed,
		foregroundGreen,
		foregroundRed | foregroundGreen,
		foregroundBlue,
		foregroundRed | foregroundBlue,
		foregroundGreen | foregroundBlue,
		foregroundRed | foregroundGreen | foregroundBlue,
	}
	backgroundTable = [...]uint16{
		0,
		0,
		backgroundRed,
		backgroundGreen,
		backgroundRed | backgroundGreen,
		backgroundBlue,
		backgroundRed | backgroundBlue,
		backgroundGreen | backgroundBlue,
		backgroundRed | backgroundGreen | backgroundBlue,
	}
)

func lookup(table []uint16, a cellbuf.Attribute) uint16 {
	i := int(a.Color())
	if i >= len(table) {
		i = len(table) - 1
	}
	return table[i]
}

// charInfo mirrors CHAR_INFO
type charInfo struct {
	Char       uint16
	Attributes uint16
}

// cellInfo packs a cell into a CHAR_INFO. Reverse swaps the color nibbles,
// bold brightens the side it is set on. Runes outside the BMP render as U+FFFD.
func cellInfo(c cellbuf.Cell) charInfo {
	attr := lookup(foregroundTable[:], c.Fg) | lookup(backgroundTable[:], c.Bg)
	if (c.Fg | c.Bg).Has(cellbuf.AttrReverse) {
		attr = (attr&0xF0)>>4 | (attr&0x0F)<<4
	}
	if c.Fg.Has(cellbuf.AttrBold) {
		attr |= foregroundIntensity
	}
	if c.Bg.Has(cellbuf.AttrBold) {
		attr |= backgroundIntensity
	}

	ch := c.Ch
	if ch > 0xFFFF || utf16.IsSurrogate(ch) {
		ch = 0xFFFD
	}
	return charInfo{Char: uint16(ch), Attributes: attr}
}

// packRegion lays out the damaged cells row-major for WriteConsoleOutputW
func packRegion(damage cellbuf.Rect, grid *cellbuf.Grid) []charInfo {
	out := make([]charInfo, 0, damage.Width()*damage.Height())
	for y := damage.Top; y <= damage.Bottom; y++ {
		for x := damage.Left; x <= damage.Right; x++ {
			c, ok := grid.Get(x, y)
			if !ok {
				c = cellbuf.Cell{Ch: ' ', Fg: cellbuf.ColorWhite, Bg: cellbuf.ColorBlack}
			}
			out = append(out, cellInfo(c))
		}
	}
	return out
}
