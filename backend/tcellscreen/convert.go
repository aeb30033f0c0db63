package tcellscreen

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/input"
)

// specialKeys maps tcell's named keys to virtual keys
var specialKeys = map[tcell.Key]uint16{
	tcell.KeyUp:     input.VKUp,
	tcell.KeyDown:   input.VKDown,
	tcell.KeyLeft:   input.VKLeft,
	tcell.KeyRight:  input.VKRight,
	tcell.KeyHome:   input.VKHome,
	tcell.KeyEnd:    input.VKEnd,
	tcell.KeyPgUp:   input.VKPrior,
	tcell.KeyPgDn:   input.VKNext,
	tcell.KeyInsert: input.VKInsert,
	tcell.KeyDelete: input.VKDelete,
	tcell.KeyF1:     input.VKF1,
	tcell.KeyF2:     input.VKF2,
	tcell.KeyF3:     input.VKF3,
	tcell.KeyF4:     input.VKF4,
	tcell.KeyF5:     input.VKF5,
	tcell.KeyF6:     input.VKF6,
	tcell.KeyF7:     input.VKF7,
	tcell.KeyF8:     input.VKF8,
	tcell.KeyF9:     input.VKF9,
	tcell.KeyF10:    input.VKF10,
	tcell.KeyF11:    input.VKF11,
	tcell.KeyF12:    input.VKF12,
}

// controlState maps tcell modifiers to sample control state
func controlState(mod tcell.ModMask) input.ControlState {
	var c input.ControlState
	if mod&tcell.ModShift != 0 {
		c |= input.Shift
	}
	if mod&tcell.ModAlt != 0 {
		c |= input.LeftAlt
	}
	if mod&tcell.ModCtrl != 0 {
		c |= input.LeftCtrl
	}
	return c
}

// keySample rebuilds the key-down sample a console would have reported
func keySample(ev *tcell.EventKey) (input.Sample, bool) {
	ctrl := controlState(ev.Modifiers())
	key := ev.Key()

	if vk, ok := specialKeys[key]; ok {
		return input.KeyDownSample(vk, 0, ctrl), true
	}

	switch key {
	case tcell.KeyRune:
		r := ev.Rune()
		if ctrl&input.LeftCtrl != 0 {
			if l := unicode.ToLower(r); l >= 'a' && l <= 'z' {
				// Some terminals report Ctrl+letter as the letter plus ModCtrl
				return input.KeyDownSample(input.VKForChar(l), l-'a'+1, ctrl), true
			}
		}
		if unicode.IsUpper(r) {
			ctrl |= input.Shift
		}
		return input.KeyDownSample(input.VKForChar(r), r, ctrl), true
	case tcell.KeyBacktab:
		return input.KeyDownSample(input.VKTab, '\t', ctrl|input.Shift), true
	case tcell.KeyTab:
		return input.KeyDownSample(input.VKTab, '\t', ctrl), true
	case tcell.KeyEnter:
		return input.KeyDownSample(input.VKReturn, '\r', ctrl), true
	case tcell.KeyEscape:
		return input.KeyDownSample(input.VKEscape, 0x1b, ctrl), true
	case tcell.KeyBackspace:
		// tcell folds DEL (Backspace2) into Backspace when building the event
		return input.KeyDownSample(input.VKBack, 0x08, ctrl), true
	case tcell.KeyCtrlSpace:
		return input.KeyDownSample(input.VKSpace, 0, ctrl|input.LeftCtrl), true
	}

	// Ctrl+letter arrives as its control code
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return input.KeyDownSample(input.VKA+uint16(key-tcell.KeyCtrlA), rune(key), ctrl|input.LeftCtrl), true
	}
	return input.Sample{}, false
}

// Sample bits for tcell's primary, secondary and middle buttons
var buttonBits = [...]struct {
	tcell tcell.ButtonMask
	bit   uint32
}{
	{tcell.Button1, input.ButtonLeft},
	{tcell.Button2, input.ButtonRight},
	{tcell.Button3, 0x04},
}

// mouseSample converts a tcell mouse event. tcell reports only the current
// button state, so a change against the previous state is a click and an
// unchanged state is motion.
func (s *Screen) mouseSample(ev *tcell.EventMouse) input.Sample {
	x, y := ev.Position()
	ctrl := controlState(ev.Modifiers())
	btn := ev.Buttons()

	switch {
	case btn&tcell.WheelUp != 0:
		return input.WheelSample(x, y, s.held, 1, ctrl)
	case btn&tcell.WheelDown != 0:
		return input.WheelSample(x, y, s.held, -1, ctrl)
	case btn&(tcell.WheelLeft|tcell.WheelRight) != 0:
		ws := input.WheelSample(x, y, s.held, 1, ctrl)
		ws.Flags = input.MouseHWheeled
		return ws
	}

	var held uint32
	for _, b := range buttonBits {
		if btn&b.tcell != 0 {
			held |= b.bit
		}
	}

	flags := input.MouseMoved
	if held != s.held {
		flags = input.MouseClick
	}
	s.held = held
	return input.MouseSample(x, y, held, flags, ctrl)
}

// palette maps the eight grid colors onto tcell's ANSI colors
var palette = [...]tcell.Color{
	cellbuf.ColorDefault: tcell.ColorDefault,
	cellbuf.ColorBlack:   tcell.ColorBlack,
	cellbuf.ColorRed:     tcell.ColorMaroon,
	cellbuf.ColorGreen:   tcell.ColorGreen,
	cellbuf.ColorYellow:  tcell.ColorOlive,
	cellbuf.ColorBlue:    tcell.ColorNavy,
	cellbuf.ColorMagenta: tcell.ColorPurple,
	cellbuf.ColorCyan:    tcell.ColorTeal,
	cellbuf.ColorWhite:   tcell.ColorSilver,
}

func color(a cellbuf.Attribute) tcell.Color {
	c := a.Color()
	if int(c) >= len(palette) {
		return tcell.ColorDefault
	}
	return palette[c]
}

// cellStyle builds the tcell style of a cell; style flags from either attribute apply
func cellStyle(c cellbuf.Cell) tcell.Style {
	flags := c.Fg | c.Bg
	return tcell.StyleDefault.
		Foreground(color(c.Fg)).
		Background(color(c.Bg)).
		Bold(flags.Has(cellbuf.AttrBold)).
		Underline(flags.Has(cellbuf.AttrUnderline)).
		Reverse(flags.Has(cellbuf.AttrReverse))
}
