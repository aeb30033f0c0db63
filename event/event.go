package event

import "fmt"

// Type distinguishes the event variants
type Type uint8

const (
	TypeNone Type = iota
	TypeResize
	TypeMouse
	TypeKey
)

// String returns the variant name
func (t Type) String() string {
	switch t {
	case TypeResize:
		return "Resize"
	case TypeMouse:
		return "Mouse"
	case TypeKey:
		return "Key"
	default:
		return "None"
	}
}

// Event is the tagged union handed from the input listener to the consumer.
// Only the fields of the active variant are meaningful:
//   - TypeResize: Width, Height
//   - TypeMouse:  X, Y, Button, Mod (Alt, Motion)
//   - TypeKey:    Key, Ch, Mod (Alt)
//
// Events are plain values and carry no reference to the grid or device.
type Event struct {
	Type Type

	Width  int32
	Height int32

	X      int32
	Y      int32
	Button MouseButton

	Key Key
	Ch  rune // decoded character, 0 when the key has none

	Mod Modifier
}

// None is the suppressed/empty event
var None = Event{}

// Resize builds a resize event
func Resize(width, height int32) Event {
	return Event{Type: TypeResize, Width: width, Height: height}
}

// Mouse builds a mouse event
func Mouse(x, y int32, button MouseButton, mod Modifier) Event {
	return Event{Type: TypeMouse, X: x, Y: y, Button: button, Mod: mod}
}

// KeyPress builds a key event
func KeyPress(key Key, ch rune, mod Modifier) Event {
	return Event{Type: TypeKey, Key: key, Ch: ch, Mod: mod}
}

// IsNone reports whether e carries nothing
func (e Event) IsNone() bool {
	return e.Type == TypeNone
}

// String renders the event for logs and the event viewer
func (e Event) String() string {
	switch e.Type {
	case TypeResize:
		return fmt.Sprintf("Resize(%d, %d)", e.Width, e.Height)
	case TypeMouse:
		return fmt.Sprintf("Mouse(%d, %d, %s, %s)", e.X, e.Y, e.Button, e.Mod)
	case TypeKey:
		if e.Ch != 0 && e.Key == 0 {
			return fmt.Sprintf("Key(%q, %s)", e.Ch, e.Mod)
		}
		if e.Ch != 0 {
			return fmt.Sprintf("Key(%s, %q, %s)", e.Key, e.Ch, e.Mod)
		}
		return fmt.Sprintf("Key(%s, %s)", e.Key, e.Mod)
	default:
		return "None"
	}
}
