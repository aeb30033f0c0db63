package input

import "github.com/lixenwraith/cellterm/event"

// Mode selects escape handling and mouse reporting (bitmask)
type Mode uint8

const (
	// ModeEsc emits Escape immediately as KeyEsc
	ModeEsc Mode = 1 << iota
	// ModeAlt buffers Escape and tags the next key event with ModAlt
	ModeAlt
	// ModeMouse enables mouse translation
	ModeMouse
)

// String renders mode bits for logs
func (m Mode) String() string {
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if m&ModeEsc != 0 {
		add("esc")
	}
	if m&ModeAlt != 0 {
		add("alt")
	}
	if m&ModeMouse != 0 {
		add("mouse")
	}
	if s == "" {
		return "none"
	}
	return s
}

// mouseState persists across samples; it never leaves the Translator
type mouseState struct {
	buttons  uint32            // last pressed-button bitmask from a click sample
	x, y     int               // last motion/wheel position
	button   event.MouseButton // last resolved button
	dragging bool              // a press is active
}

// Translator converts raw samples to events, one sample at a time.
// Not safe for concurrent use; the input listener owns it.
//
// Ambiguities resolved by fixed fallbacks:
//   - ModeEsc and ModeAlt both set: ModeEsc wins for the Escape key, ModeAlt still
//     tags keys typed with Alt held.
//   - A click sample where one button is released and another pressed reports
//     only the release.
//   - Motion with buttons held but no press seen reports the first held
//     button (left, right, middle), never Release.
type Translator struct {
	mode       Mode
	altPending bool // Escape seen in ModeAlt, waiting for the next key
	mouse      mouseState
}

// NewTranslator creates a translator in the given mode
func NewTranslator(mode Mode) *Translator {
	return &Translator{
		mode: mode,
		mouse: mouseState{
			x:      -1,
			y:      -1,
			button: event.MouseRelease,
		},
	}
}

// Mode returns the active mode bits
func (t *Translator) Mode() Mode {
	return t.mode
}

// SetMode replaces the mode bits; leaving ModeAlt drops a buffered Escape
func (t *Translator) SetMode(mode Mode) {
	if mode&ModeAlt == 0 {
		t.altPending = false
	}
	t.mode = mode
}

// Translate converts one sample; ok is false when the sample is suppressed
func (t *Translator) Translate(s Sample) (ev event.Event, ok bool) {
	switch s.Kind {
	case SampleKey:
		return t.translateKey(s)
	case SampleMouse:
		return t.translateMouse(s)
	case SampleResize:
		return event.Resize(int32(s.Width), int32(s.Height)), true
	}
	return event.None, false
}

// ===== KEYS =====

func (t *Translator) translateKey(s Sample) (event.Event, bool) {
	if !s.KeyDown {
		return event.None, false
	}

	key, ch, kind := t.resolveKey(s)
	switch kind {
	case keyBuffered, keyNone:
		return event.None, false
	}

	var mod event.Modifier
	if t.mode&ModeAlt != 0 {
		if t.altPending || s.Control.Alt() {
			mod = event.ModAlt
		}
		t.altPending = false
	}
	return event.KeyPress(key, ch, mod), true
}

// keyResult tells translateKey what resolveKey decided
type keyResult uint8

const (
	keyNone     keyResult = iota // nothing to emit
	keyEmit                      // emit key/ch
	keyBuffered                  // Escape swallowed into altPending
)

// resolveKey maps a key-down sample through the fixed tables
func (t *Translator) resolveKey(s Sample) (event.Key, rune, keyResult) {
	vk := s.VirtualKey
	ctrl := s.Control.Ctrl()

	if k, ok := functionKey(vk); ok {
		return k, 0, keyEmit
	}
	if k, ok := navKeys[vk]; ok {
		return k, 0, keyEmit
	}

	switch vk {
	case VKBack:
		if ctrl {
			return event.KeyBackspace2, 0, keyEmit
		}
		return event.KeyBackspace, 0, keyEmit
	case VKSpace:
		if ctrl {
			return event.KeyCtrlSpace, 0, keyEmit
		}
		return event.KeySpace, 0, keyEmit
	case VKEscape:
		if k, res := t.escape(); res != keyNone {
			return k, 0, res
		}
	}

	if ctrl {
		if s.Char >= rune(event.KeyCtrlA) && s.Char <= rune(event.KeyCtrlRsqBracket) {
			if s.Char == rune(event.KeyEsc) {
				// Ctrl+[ is Escape
				if k, res := t.escape(); res != keyNone {
					return k, 0, res
				}
			}
			return event.Key(s.Char), 0, keyEmit
		}
		if vk == VK0+3 {
			if k, res := t.escape(); res != keyNone {
				return k, 0, res
			}
			return event.KeyCtrl3, 0, keyEmit
		}
		if k, ok := ctrlKeys[vk]; ok {
			return k, 0, keyEmit
		}
	}

	if s.Char != 0 {
		return 0, s.Char, keyEmit
	}
	return 0, 0, keyNone
}

// escape applies the escape mode; keyNone means neither mode claims Escape
// and the sample falls through to character pass-through
func (t *Translator) escape() (event.Key, keyResult) {
	if t.mode&ModeEsc != 0 {
		return event.KeyEsc, keyEmit
	}
	if t.mode&ModeAlt != 0 {
		t.altPending = true
		return 0, keyBuffered
	}
	return 0, keyNone
}

// ===== MOUSE =====

func (t *Translator) translateMouse(s Sample) (event.Event, bool) {
	if t.mode&ModeMouse == 0 {
		return event.None, false
	}

	var mod event.Modifier
	if t.mode&ModeAlt != 0 && s.Control.Alt() {
		mod = event.ModAlt
	}
	x, y := int32(s.X), int32(s.Y)

	switch {
	case s.Flags&MouseWheeled != 0:
		delta := s.WheelDelta()
		if delta == 0 {
			return event.None, false
		}
		t.mouse.x, t.mouse.y = s.X, s.Y
		if delta > 0 {
			return event.Mouse(x, y, event.MouseWheelUp, mod), true
		}
		return event.Mouse(x, y, event.MouseWheelDown, mod), true

	case s.Flags&MouseHWheeled != 0:
		return event.None, false

	case s.Flags&MouseMoved != 0:
		// Hover is never reported: only drags
		if s.PressedButtons() == 0 {
			return event.None, false
		}
		if s.X == t.mouse.x && s.Y == t.mouse.y {
			return event.None, false
		}
		t.mouse.x, t.mouse.y = s.X, s.Y
		return event.Mouse(x, y, t.activeButton(s.PressedButtons()), mod|event.ModMotion), true
	}

	return t.transition(s, x, y, mod)
}

// transition compares the click sample's bitmask with the previous one.
// Releases are checked first so a combined press+release reports the release.
func (t *Translator) transition(s Sample, x, y int32, mod event.Modifier) (event.Event, bool) {
	prev := t.mouse.buttons
	cur := s.PressedButtons()
	t.mouse.buttons = cur

	for _, b := range mouseButtons {
		if prev&b.mask != 0 && cur&b.mask == 0 {
			t.mouse.button = event.MouseRelease
			t.mouse.dragging = false
			return event.Mouse(x, y, event.MouseRelease, mod), true
		}
	}
	for _, b := range mouseButtons {
		if prev&b.mask == 0 && cur&b.mask != 0 {
			t.mouse.button = b.button
			t.mouse.dragging = true
			return event.Mouse(x, y, b.button, mod), true
		}
	}
	return event.None, false
}

// activeButton returns the button a drag with held mask cur belongs to.
// A drag whose press was never seen (pressed outside the window, or the
// pressed half of a swap reported as a release) adopts the first held
// button in table order, so its later release is reported.
func (t *Translator) activeButton(cur uint32) event.MouseButton {
	for _, b := range mouseButtons {
		if b.button == t.mouse.button && cur&b.mask != 0 {
			return b.button
		}
	}
	for _, b := range mouseButtons {
		if cur&b.mask != 0 {
			t.mouse.button = b.button
			t.mouse.buttons = cur
			t.mouse.dragging = true
			return b.button
		}
	}
	return t.mouse.button
}

// Dragging reports whether a button press is active
func (t *Translator) Dragging() bool {
	return t.mouse.dragging
}
