package event

// MouseButton identifies what a mouse event reports
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseRelease
	MouseWheelUp
	MouseWheelDown
)

// String returns human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseMiddle:
		return "Middle"
	case MouseRight:
		return "Right"
	case MouseRelease:
		return "Release"
	case MouseWheelUp:
		return "WheelUp"
	case MouseWheelDown:
		return "WheelDown"
	default:
		return "None"
	}
}

// IsWheel reports whether b is a wheel notch
func (b MouseButton) IsWheel() bool {
	return b == MouseWheelUp || b == MouseWheelDown
}
