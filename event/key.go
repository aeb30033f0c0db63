// @focus: #sys { io } #input { keys }
package event

import "strconv"

// Key is an abstract key code. Special keys count down from 0xFFFF; the
// control range 0x00-0x1F and a few ASCII codes map to their byte values.
type Key uint16

// Special keys
const (
	KeyF1 Key = 0xFFFF - iota
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	keyMin // lower bound of the special key range
)

// Control range and ASCII keys
const (
	KeyCtrlTilde      Key = 0x00
	KeyCtrl2          Key = 0x00
	KeyCtrlSpace      Key = 0x00
	KeyCtrlA          Key = 0x01
	KeyCtrlB          Key = 0x02
	KeyCtrlC          Key = 0x03
	KeyCtrlD          Key = 0x04
	KeyCtrlE          Key = 0x05
	KeyCtrlF          Key = 0x06
	KeyCtrlG          Key = 0x07
	KeyBackspace      Key = 0x08
	KeyCtrlH          Key = 0x08
	KeyTab            Key = 0x09
	KeyCtrlI          Key = 0x09
	KeyCtrlJ          Key = 0x0A
	KeyCtrlK          Key = 0x0B
	KeyCtrlL          Key = 0x0C
	KeyEnter          Key = 0x0D
	KeyCtrlM          Key = 0x0D
	KeyCtrlN          Key = 0x0E
	KeyCtrlO          Key = 0x0F
	KeyCtrlP          Key = 0x10
	KeyCtrlQ          Key = 0x11
	KeyCtrlR          Key = 0x12
	KeyCtrlS          Key = 0x13
	KeyCtrlT          Key = 0x14
	KeyCtrlU          Key = 0x15
	KeyCtrlV          Key = 0x16
	KeyCtrlW          Key = 0x17
	KeyCtrlX          Key = 0x18
	KeyCtrlY          Key = 0x19
	KeyCtrlZ          Key = 0x1A
	KeyEsc            Key = 0x1B
	KeyCtrlLsqBracket Key = 0x1B
	KeyCtrl3          Key = 0x1B
	KeyCtrl4          Key = 0x1C
	KeyCtrlBackslash  Key = 0x1C
	KeyCtrl5          Key = 0x1D
	KeyCtrlRsqBracket Key = 0x1D
	KeyCtrl6          Key = 0x1E
	KeyCtrl7          Key = 0x1F
	KeyCtrlSlash      Key = 0x1F
	KeyCtrlUnderscore Key = 0x1F
	KeySpace          Key = 0x20
	KeyBackspace2     Key = 0x7F
	KeyCtrl8          Key = 0x7F
)

// Modifier is a bitset attached to key and mouse events
type Modifier uint8

const (
	ModNone   Modifier = 0
	ModAlt    Modifier = 1 << 0
	ModMotion Modifier = 1 << 1 // mouse moved with a button held
)

// keyNames maps special and control keys to display names
var keyNames = map[Key]string{
	KeyF1:         "F1",
	KeyF2:         "F2",
	KeyF3:         "F3",
	KeyF4:         "F4",
	KeyF5:         "F5",
	KeyF6:         "F6",
	KeyF7:         "F7",
	KeyF8:         "F8",
	KeyF9:         "F9",
	KeyF10:        "F10",
	KeyF11:        "F11",
	KeyF12:        "F12",
	KeyInsert:     "Insert",
	KeyDelete:     "Delete",
	KeyHome:       "Home",
	KeyEnd:        "End",
	KeyPgUp:       "PgUp",
	KeyPgDn:       "PgDn",
	KeyArrowUp:    "Up",
	KeyArrowDown:  "Down",
	KeyArrowLeft:  "Left",
	KeyArrowRight: "Right",

	KeyCtrlSpace:      "Ctrl+Space",
	KeyBackspace:      "Backspace",
	KeyTab:            "Tab",
	KeyEnter:          "Enter",
	KeyEsc:            "Esc",
	KeyCtrlBackslash:  "Ctrl+\\",
	KeyCtrlRsqBracket: "Ctrl+]",
	KeyCtrl6:          "Ctrl+6",
	KeyCtrlUnderscore: "Ctrl+_",
	KeySpace:          "Space",
	KeyBackspace2:     "Backspace2",
}

// IsSpecial reports whether k is in the function/navigation range
func (k Key) IsSpecial() bool {
	return k > keyMin
}

// String returns a display name; Ctrl+letter codes render as "Ctrl+X"
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= KeyCtrlA && k <= KeyCtrlZ {
		return "Ctrl+" + string(rune('A'+k-KeyCtrlA))
	}
	if k < 0x80 {
		return string(rune(k))
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

// String renders set modifier names joined by '+'
func (m Modifier) String() string {
	switch m {
	case ModNone:
		return ""
	case ModAlt:
		return "Alt"
	case ModMotion:
		return "Motion"
	case ModAlt | ModMotion:
		return "Alt+Motion"
	}
	return "Mod(" + strconv.Itoa(int(m)) + ")"
}
