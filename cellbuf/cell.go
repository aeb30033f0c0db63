// @lixen: #focus{sys[grid,cell]}
package cellbuf

// Attribute holds a color index in the low nibble and style flags above it
type Attribute uint16

// Color indices (low nibble of Attribute)
const (
	ColorDefault Attribute = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// Style flags, combinable with a color: ColorRed | AttrBold
const (
	AttrBold Attribute = 1 << (iota + 9)
	AttrUnderline
	AttrReverse
)

// colorMask selects the color index bits
const colorMask Attribute = 0x0F

// Color returns the color index with style flags stripped
func (a Attribute) Color() Attribute {
	return a & colorMask
}

// Has reports whether all bits of flag are set
func (a Attribute) Has(flag Attribute) bool {
	return a&flag == flag
}

// Cell is one screen position: a single code point plus foreground/background attributes.
// Cells are compared with ==.
type Cell struct {
	Ch rune
	Fg Attribute
	Bg Attribute
}

// DefaultCell returns the blank cell every grid position starts with
func DefaultCell() Cell {
	return Cell{Ch: ' ', Fg: ColorDefault, Bg: ColorDefault}
}
