// @lixen: #focus{sys[input,raw]}
package input

// Kind classifies a raw device sample
type Kind uint8

const (
	SampleNone Kind = iota
	SampleKey
	SampleMouse
	SampleResize
	SampleFocus // focus/menu notifications, never translated
)

// ControlState holds modifier keys held while a sample was taken
type ControlState uint16

const (
	RightAlt ControlState = 1 << iota
	LeftAlt
	RightCtrl
	LeftCtrl
	Shift
)

// Alt reports whether either Alt key is held
func (c ControlState) Alt() bool {
	return c&(LeftAlt|RightAlt) != 0
}

// Ctrl reports whether either Ctrl key is held
func (c ControlState) Ctrl() bool {
	return c&(LeftCtrl|RightCtrl) != 0
}

// Mouse button bits of Sample.Buttons (low 16 bits).
// The high 16 bits carry a signed wheel delta.
const (
	ButtonLeft   uint32 = 0x01
	ButtonRight  uint32 = 0x02
	ButtonMiddle uint32 = 0x04 | 0x08 | 0x10 // second, third and fourth from the left

	buttonMask uint32 = 0xFFFF
)

// WheelStep is one wheel notch in the delta field
const WheelStep = 120

// MouseFlags tells which class of mouse sample this is
type MouseFlags uint8

const (
	MouseClick       MouseFlags = 0 // button state changed (or not)
	MouseMoved       MouseFlags = 1 << 0
	MouseDoubleClick MouseFlags = 1 << 1
	MouseWheeled     MouseFlags = 1 << 2
	MouseHWheeled    MouseFlags = 1 << 3
)

// Sample is one undecoded reading from the device, shaped after a console input record.
// Backends fill only the fields relevant to Kind.
type Sample struct {
	Kind Kind

	// Key samples
	KeyDown    bool
	VirtualKey uint16 // VK* code, 0 if unknown
	Char       rune   // decoded character, 0 if none
	Repeat     uint16

	// Mouse samples
	X       int
	Y       int
	Buttons uint32 // pressed-button bitmask | wheel delta << 16
	Flags   MouseFlags

	// Key and mouse samples
	Control ControlState

	// Resize samples
	Width  int
	Height int
}

// PressedButtons returns the button bitmask without the wheel delta
func (s Sample) PressedButtons() uint32 {
	return s.Buttons & buttonMask
}

// WheelDelta decodes the signed wheel delta from the high bits of Buttons
func (s Sample) WheelDelta() int16 {
	return int16(s.Buttons >> 16)
}

// KeyDownSample builds a key-down sample
func KeyDownSample(vk uint16, ch rune, ctrl ControlState) Sample {
	return Sample{Kind: SampleKey, KeyDown: true, VirtualKey: vk, Char: ch, Control: ctrl, Repeat: 1}
}

// MouseSample builds a mouse sample
func MouseSample(x, y int, buttons uint32, flags MouseFlags, ctrl ControlState) Sample {
	return Sample{Kind: SampleMouse, X: x, Y: y, Buttons: buttons, Flags: flags, Control: ctrl}
}

// WheelSample builds a wheel sample; positive notches scroll up
func WheelSample(x, y int, held uint32, notches int, ctrl ControlState) Sample {
	delta := uint32(uint16(int16(notches * WheelStep)))
	return MouseSample(x, y, held&buttonMask|delta<<16, MouseWheeled, ctrl)
}

// ResizeSample builds a resize sample
func ResizeSample(width, height int) Sample {
	return Sample{Kind: SampleResize, Width: width, Height: height}
}
