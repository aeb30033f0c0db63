package cellbuf

// Rect is an inclusive cell rectangle. EmptyRect (all -1) means nothing is damaged.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// EmptyRect returns the "no pending changes" sentinel
func EmptyRect() Rect {
	return Rect{Left: -1, Top: -1, Right: -1, Bottom: -1}
}

// Empty reports whether r is the sentinel
func (r Rect) Empty() bool {
	return r.Left == -1
}

// Width returns the column count, 0 for an empty rect
func (r Rect) Width() int {
	if r.Empty() {
		return 0
	}
	return r.Right - r.Left + 1
}

// Height returns the row count, 0 for an empty rect
func (r Rect) Height() int {
	if r.Empty() {
		return 0
	}
	return r.Bottom - r.Top + 1
}

// Contains reports whether (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	if r.Empty() {
		return false
	}
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Extend returns the smallest rect covering r and (x, y); never shrinks
func (r Rect) Extend(x, y int) Rect {
	if r.Empty() {
		return Rect{Left: x, Top: y, Right: x, Bottom: y}
	}
	if x < r.Left {
		r.Left = x
	} else if x > r.Right {
		r.Right = x
	}
	if y < r.Top {
		r.Top = y
	} else if y > r.Bottom {
		r.Bottom = y
	}
	return r
}
