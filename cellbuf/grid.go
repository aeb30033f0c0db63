package cellbuf

// Grid is the in-memory screen model: a row-major cell matrix with damage tracking.
// Not safe for concurrent use; a single goroutine owns it.
type Grid struct {
	width  int
	height int
	cells  []Cell // len == width*height, always
	dirty  bool
	damage Rect
}

// New allocates a width x height grid of default cells with no damage
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		damage: EmptyRect(),
	}
	fill(g.cells)
	return g
}

// fill resets cells to DefaultCell using exponential copy
func fill(cells []Cell) {
	if len(cells) == 0 {
		return
	}
	cells[0] = DefaultCell()
	for filled := 1; filled < len(cells); filled *= 2 {
		copy(cells[filled:], cells[:filled])
	}
}

// Width returns the grid width in cells
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in cells
func (g *Grid) Height() int {
	return g.height
}

// Cells exposes the row-major storage; callers must treat it as read-only
func (g *Grid) Cells() []Cell {
	return g.cells
}

// Row returns the read-only cells of row y, nil if y is out of bounds
func (g *Grid) Row(y int) []Cell {
	if y < 0 || y >= g.height {
		return nil
	}
	start := y * g.width
	return g.cells[start : start+g.width : start+g.width]
}

// Dirty reports whether any cell changed since the last Reset
func (g *Grid) Dirty() bool {
	return g.dirty
}

// Damage returns the bounding box of cells changed since the last Reset
func (g *Grid) Damage() Rect {
	return g.damage
}

// inBounds returns true if (x, y) addresses a cell
func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// full returns the rect covering the whole grid
func (g *Grid) full() Rect {
	if g.width == 0 || g.height == 0 {
		return EmptyRect()
	}
	return Rect{Left: 0, Top: 0, Right: g.width - 1, Bottom: g.height - 1}
}

// Clear resets every cell to default and damages the whole grid,
// regardless of how many cells actually changed
func (g *Grid) Clear() {
	fill(g.cells)
	g.damage = g.full()
	g.dirty = true
}

// Invalidate damages the whole grid without touching cell contents
func (g *Grid) Invalidate() {
	g.damage = g.full()
	g.dirty = true
}

// Resize reallocates the grid, keeping the overlapping top-left region.
// Unchanged dimensions are a no-op; otherwise the whole new grid is damaged
// because the device buffer itself was invalidated by the resize.
func (g *Grid) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == g.width && height == g.height {
		return
	}

	cells := make([]Cell, width*height)
	fill(cells)

	minW := min(g.width, width)
	minH := min(g.height, height)
	for y := 0; y < minH; y++ {
		copy(cells[y*width:y*width+minW], g.cells[y*g.width:y*g.width+minW])
	}

	g.cells = cells
	g.width = width
	g.height = height
	g.Invalidate()
}

// Get returns the cell at (x, y); ok is false outside the grid
func (g *Grid) Get(x, y int) (Cell, bool) {
	if !g.inBounds(x, y) {
		return Cell{}, false
	}
	return g.cells[y*g.width+x], true
}

// Set writes c at (x, y) and grows the damage rect to include it.
// Returns false without mutation when out of bounds. Writing a cell equal to
// the current one succeeds but leaves dirty and damage untouched.
func (g *Grid) Set(x, y int, c Cell) bool {
	if !g.inBounds(x, y) {
		return false
	}
	idx := y*g.width + x
	if g.cells[idx] == c {
		return true
	}
	g.cells[idx] = c
	g.dirty = true
	g.damage = g.damage.Extend(x, y)
	return true
}

// Reset clears dirty state after the device has accepted a write.
// Only the flush path should call it.
func (g *Grid) Reset() {
	g.dirty = false
	g.damage = EmptyRect()
}
