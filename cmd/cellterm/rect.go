package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/event"
	"github.com/lixenwraith/cellterm/terminal"
)

func newRectCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "rect",
		Short: "Drag, move and resize a rectangle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runApp(cmd.Context(), newRectDemo())
		},
	}
}

// topRows is the header height the rectangle stays below
const topRows = 2

// rectDemo is a square outline centered on (x, y) with half-size size.
// Arrows move it, wheel or +/- resize it, a click cycles its color and a
// left-button drag moves it.
type rectDemo struct {
	x, y, size int
	color      cellbuf.Attribute

	width, height int

	// Drag anchor, -1 when no drag started inside the rectangle
	mouseX, mouseY int
	dragged        bool
}

func newRectDemo() *rectDemo {
	return &rectDemo{
		x: 3, y: 4, size: 1,
		color:  cellbuf.ColorWhite,
		mouseX: -1, mouseY: -1,
	}
}

func (d *rectDemo) init(t *terminal.Terminal) {
	d.width, d.height = t.Size()
	t.Clear()
	t.SetForeground(d.color)
	// Cursor errors are cosmetic here
	_ = t.SetCursorPos(0, 1)
}

func (d *rectDemo) draw(t *terminal.Terminal) {
	t.PutString(0, 0, "Try dragging rectangle with mouse. ESC to exit DEMO")
	t.PutString(0, 1, "Arrows - move, wheel/+/- resize, click - change color")
	drawRect(t, d.x, d.y, d.size, '*', d.color)
}

func drawRect(t *terminal.Terminal, x, y, size int, ch rune, fg cellbuf.Attribute) {
	t.PutHorizontalLineWithAttrs(x-size, y-size, size*2+1, ch, fg, cellbuf.ColorBlack)
	t.PutHorizontalLineWithAttrs(x-size, y+size, size*2+1, ch, fg, cellbuf.ColorBlack)
	t.PutVerticalLineWithAttrs(x-size, y-size+1, size*2-1, ch, fg, cellbuf.ColorBlack)
	t.PutVerticalLineWithAttrs(x+size, y-size+1, size*2-1, ch, fg, cellbuf.ColorBlack)
}

// canGrow reports whether one more ring still fits below the header
func (d *rectDemo) canGrow() bool {
	return d.x-d.size > 0 && d.x+d.size+1 < d.width &&
		d.y-d.size > topRows && d.y+d.size+1 < d.height
}

func (d *rectDemo) handle(t *terminal.Terminal, ev event.Event) bool {
	x, y, size, color := d.x, d.y, d.size, d.color

	switch ev.Type {
	case event.TypeResize:
		d.width, d.height = int(ev.Width), int(ev.Height)

	case event.TypeKey:
		switch ev.Key {
		case event.KeyEsc:
			return false
		case event.KeyArrowLeft:
			if d.x-d.size > 0 {
				x--
			}
		case event.KeyArrowRight:
			if d.x+1+d.size < d.width {
				x++
			}
		case event.KeyArrowUp:
			if d.y-d.size > topRows {
				y--
			}
		case event.KeyArrowDown:
			if d.y+1+d.size < d.height {
				y++
			}
		default:
			switch ev.Ch {
			case '+', '=':
				if d.canGrow() {
					size++
				}
			case '-', '_':
				if d.size > 1 {
					size--
				}
			}
		}

	case event.TypeMouse:
		mx, my := int(ev.X), int(ev.Y)
		switch ev.Button {
		case event.MouseRelease:
			if !d.dragged {
				color = d.color + 1
				if color > cellbuf.ColorWhite {
					color = cellbuf.ColorRed
				}
			}
			d.mouseX, d.mouseY = -1, -1
			d.dragged = false
		case event.MouseWheelUp:
			if d.canGrow() {
				size++
			}
		case event.MouseWheelDown:
			if d.size > 1 {
				size--
			}
		case event.MouseLeft:
			if ev.Mod&event.ModMotion == 0 &&
				my <= d.y+d.size && my >= d.y-d.size && mx <= d.x+d.size && mx >= d.x-d.size {
				d.mouseX, d.mouseY = mx, my
			}
		}

		if ev.Mod&event.ModMotion != 0 && d.mouseX >= 0 && d.mouseY >= 0 {
			dx, dy := mx-d.mouseX, my-d.mouseY
			if dx != 0 || dy != 0 {
				d.dragged = true
				if d.x+dx-d.size >= 0 && d.x+dx+d.size < d.width &&
					d.y+dy-d.size >= topRows && d.y+dy+d.size < d.height {
					x, y = d.x+dx, d.y+dy
				}
				d.mouseX, d.mouseY = mx, my
			}
		}
	}

	if x != d.x || y != d.y || size != d.size || color != d.color {
		drawRect(t, d.x, d.y, d.size, ' ', d.color)
		d.x, d.y, d.size, d.color = x, y, size, color
	}
	return true
}
