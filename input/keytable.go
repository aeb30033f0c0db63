package input

import "github.com/lixenwraith/cellterm/event"

// navKeys maps navigation and editing virtual keys to abstract keys
var navKeys = map[uint16]event.Key{
	VKInsert: event.KeyInsert,
	VKDelete: event.KeyDelete,
	VKHome:   event.KeyHome,
	VKEnd:    event.KeyEnd,
	VKPrior:  event.KeyPgUp,
	VKNext:   event.KeyPgDn,
	VKUp:     event.KeyArrowUp,
	VKDown:   event.KeyArrowDown,
	VKLeft:   event.KeyArrowLeft,
	VKRight:  event.KeyArrowRight,
	VKTab:    event.KeyTab,
	VKReturn: event.KeyEnter,
}

// ctrlKeys maps Ctrl+digit/punctuation virtual keys that produce no control
// character to their control codes. Ctrl+3 is absent: it is Escape.
var ctrlKeys = map[uint16]event.Key{
	VKOEM3:     event.KeyCtrl2,
	VK0 + 2:    event.KeyCtrl2,
	VK0 + 4:    event.KeyCtrl4,
	VK0 + 5:    event.KeyCtrl5,
	VK0 + 6:    event.KeyCtrl6,
	VK0 + 7:    event.KeyCtrl7,
	VKOEMMinus: event.KeyCtrl7,
	VKOEM2:     event.KeyCtrl7,
	VK0 + 8:    event.KeyCtrl8,
}

// functionKey maps VKF1..VKF12 to KeyF1..KeyF12
func functionKey(vk uint16) (event.Key, bool) {
	if vk < VKF1 || vk > VKF12 {
		return 0, false
	}
	return event.KeyF1 - event.Key(vk-VKF1), true
}

// mouseButtons lists button groups in transition-check order
var mouseButtons = [...]struct {
	mask   uint32
	button event.MouseButton
}{
	{ButtonLeft, event.MouseLeft},
	{ButtonRight, event.MouseRight},
	{ButtonMiddle, event.MouseMiddle},
}
