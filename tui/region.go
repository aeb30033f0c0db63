// Package tui draws simple framed layouts onto a terminal's cell grid.
// Regions clip every write to their own bounds before it reaches the grid.
package tui

import "github.com/lixenwraith/cellterm/cellbuf"

// Canvas is the drawing surface a Region writes through; *terminal.Terminal satisfies it
type Canvas interface {
	Size() (width, height int)
	PutCharWithAttrs(x, y int, ch rune, fg, bg cellbuf.Attribute) bool
	PutStringWithAttrs(x, y int, s string, fg, bg cellbuf.Attribute) bool
}

// Region is a rectangle of a Canvas; coordinates are relative to its origin
type Region struct {
	canvas Canvas
	X, Y   int // absolute origin
	W, H   int
}

// Screen returns a region covering the whole canvas
func Screen(c Canvas) Region {
	w, h := c.Size()
	return Region{canvas: c, W: w, H: h}
}

// Sub returns a nested region clipped to r
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	w = max(min(w, r.W-x), 0)
	h = max(min(h, r.H-y), 0)
	return Region{canvas: r.canvas, X: r.X + x, Y: r.Y + y, W: w, H: h}
}

// Inset shrinks r by n cells on every side
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Empty reports whether r has no cells
func (r Region) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Cell sets one cell, ignoring positions outside r
func (r Region) Cell(x, y int, ch rune, fg, bg cellbuf.Attribute) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.canvas.PutCharWithAttrs(r.X+x, r.Y+y, ch, fg, bg)
}

// Text writes s at (x, y), truncated to the region's right edge
func (r Region) Text(x, y int, s string, fg, bg cellbuf.Attribute) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.canvas.PutStringWithAttrs(r.X+x, r.Y+y, Clip(s, r.W-x), fg, bg)
}

// Fill paints every cell of r blank with bg
func (r Region) Fill(bg cellbuf.Attribute) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.Cell(x, y, ' ', cellbuf.ColorDefault, bg)
		}
	}
}
