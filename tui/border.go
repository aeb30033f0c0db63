package tui

import "github.com/lixenwraith/cellterm/cellbuf"

// LineType selects a box drawing character set
type LineType uint8

const (
	LineSingle  LineType = iota // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineRounded                 // ╭─╮│╰╯
	LineASCII                   // +-+|++
)

var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineASCII:   {'+', '-', '+', '|', '+', '+'},
}

const (
	boxTL = iota
	boxH
	boxTR
	boxV
	boxBL
	boxBR
)

func chars(line LineType) [6]rune {
	if int(line) >= len(boxChars) {
		line = LineSingle
	}
	return boxChars[line]
}

// Box draws a border along the edge of r
func (r Region) Box(line LineType, fg, bg cellbuf.Attribute) {
	if r.W < 2 || r.H < 2 {
		return
	}
	c := chars(line)

	r.Cell(0, 0, c[boxTL], fg, bg)
	r.Cell(r.W-1, 0, c[boxTR], fg, bg)
	r.Cell(0, r.H-1, c[boxBL], fg, bg)
	r.Cell(r.W-1, r.H-1, c[boxBR], fg, bg)

	for x := 1; x < r.W-1; x++ {
		r.Cell(x, 0, c[boxH], fg, bg)
		r.Cell(x, r.H-1, c[boxH], fg, bg)
	}
	for y := 1; y < r.H-1; y++ {
		r.Cell(0, y, c[boxV], fg, bg)
		r.Cell(r.W-1, y, c[boxV], fg, bg)
	}
}

// Divider draws a horizontal rule at row y with an optional centered label
func (r Region) Divider(y int, label string, line LineType, fg, bg cellbuf.Attribute) {
	if y < 0 || y >= r.H {
		return
	}
	h := chars(line)[boxH]
	for x := 0; x < r.W; x++ {
		r.Cell(x, y, h, fg, bg)
	}

	if label == "" || r.W <= 4 {
		return
	}
	text := Clip(" "+label+" ", r.W-2)
	r.Text((r.W-Width(text))/2, y, text, fg|cellbuf.AttrBold, bg)
}

// Card draws a titled border and returns the region inside it
func (r Region) Card(title string, line LineType, fg, bg cellbuf.Attribute) Region {
	r.Box(line, fg, bg)
	if title != "" && r.W > 4 {
		t := Clip(title, r.W-4)
		r.Text((r.W-Width(t)-2)/2, 0, " "+t+" ", fg|cellbuf.AttrBold, bg)
	}
	return r.Inset(1)
}
