package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cellterm/event"
)

func TestMouseDisabled(t *testing.T) {
	tr := NewTranslator(ModeEsc)
	got := collect(tr,
		MouseSample(1, 1, ButtonLeft, MouseClick, 0),
		MouseSample(1, 1, 0, MouseClick, 0),
	)
	assert.Empty(t, got)
}

func TestMousePressRelease(t *testing.T) {
	tr := NewTranslator(ModeEsc | ModeMouse)

	got := collect(tr,
		MouseSample(10, 5, ButtonLeft, MouseClick, 0),
		MouseSample(10, 5, 0, MouseClick, 0),
	)
	require.Len(t, got, 2)
	assert.Equal(t, event.Mouse(10, 5, event.MouseLeft, event.ModNone), got[0])
	assert.Equal(t, event.Mouse(10, 5, event.MouseRelease, event.ModNone), got[1])
	assert.False(t, tr.Dragging())
}

func TestMouseButtons(t *testing.T) {
	tests := []struct {
		name string
		mask uint32
		want event.MouseButton
	}{
		{"left", ButtonLeft, event.MouseLeft},
		{"right", ButtonRight, event.MouseRight},
		{"middle", 0x04, event.MouseMiddle},
		{"fourth", 0x08, event.MouseMiddle},
		{"fifth", 0x10, event.MouseMiddle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranslator(ModeMouse)
			ev, ok := tr.Translate(MouseSample(0, 0, tt.mask, MouseClick, 0))
			require.True(t, ok)
			assert.Equal(t, tt.want, ev.Button)
			assert.True(t, tr.Dragging())
		})
	}
}

func TestMouseUnchangedMaskSuppressed(t *testing.T) {
	tr := NewTranslator(ModeMouse)
	got := collect(tr,
		MouseSample(2, 2, ButtonLeft, MouseClick, 0),
		MouseSample(2, 2, ButtonLeft, MouseClick, 0),
		MouseSample(2, 2, ButtonLeft, MouseDoubleClick, 0),
	)
	require.Len(t, got, 1)
	assert.Equal(t, event.MouseLeft, got[0].Button)
}

func TestMouseReleasePriority(t *testing.T) {
	tr := NewTranslator(ModeMouse)
	got := collect(tr,
		MouseSample(0, 0, ButtonLeft, MouseClick, 0),
		// left released and right pressed in one sample
		MouseSample(0, 0, ButtonRight, MouseClick, 0),
	)
	require.Len(t, got, 2)
	assert.Equal(t, event.MouseLeft, got[0].Button)
	assert.Equal(t, event.MouseRelease, got[1].Button)
	assert.False(t, tr.Dragging())
}

func TestMouseDragWithoutPress(t *testing.T) {
	tr := NewTranslator(ModeMouse)
	got := collect(tr,
		// button went down outside the window
		MouseSample(3, 3, ButtonLeft, MouseMoved, 0),
		MouseSample(4, 3, ButtonLeft, MouseMoved, 0),
		MouseSample(4, 3, 0, MouseClick, 0),
	)
	require.Len(t, got, 3)
	assert.Equal(t, event.Mouse(3, 3, event.MouseLeft, event.ModMotion), got[0])
	assert.Equal(t, event.Mouse(4, 3, event.MouseLeft, event.ModMotion), got[1])
	assert.Equal(t, event.Mouse(4, 3, event.MouseRelease, event.ModNone), got[2])
	assert.False(t, tr.Dragging())
}

func TestMouseDragAfterSwap(t *testing.T) {
	tr := NewTranslator(ModeMouse)
	got := collect(tr,
		MouseSample(0, 0, ButtonLeft, MouseClick, 0),
		MouseSample(0, 0, ButtonRight, MouseClick, 0),
		MouseSample(1, 0, ButtonRight, MouseMoved, 0),
		MouseSample(1, 0, 0, MouseClick, 0),
	)
	require.Len(t, got, 4)
	assert.Equal(t, event.MouseRelease, got[1].Button)
	assert.Equal(t, event.Mouse(1, 0, event.MouseRight, event.ModMotion), got[2])
	assert.Equal(t, event.MouseRelease, got[3].Button)
}

func TestMouseHoverSuppressed(t *testing.T) {
	tr := NewTranslator(ModeMouse)
	got := collect(tr,
		MouseSample(1, 1, 0, MouseMoved, 0),
		MouseSample(2, 1, 0, MouseMoved, 0),
		MouseSample(3, 1, 0, MouseMoved, 0),
	)
	assert.Empty(t, got)
}

func TestMouseDrag(t *testing.T) {
	tr := NewTranslator(ModeMouse)
	got := collect(tr,
		MouseSample(1, 1, ButtonLeft, MouseClick, 0),
		MouseSample(2, 1, ButtonLeft, MouseMoved, 0),
		MouseSample(2, 1, ButtonLeft, MouseMoved, 0), // same cell
		MouseSample(3, 2, ButtonLeft, MouseMoved, 0),
		MouseSample(3, 2, 0, MouseClick, 0),
	)
	require.Len(t, got, 4)
	assert.Equal(t, event.Mouse(1, 1, event.MouseLeft, event.ModNone), got[0])
	assert.Equal(t, event.Mouse(2, 1, event.MouseLeft, event.ModMotion), got[1])
	assert.Equal(t, event.Mouse(3, 2, event.MouseLeft, event.ModMotion), got[2])
	assert.Equal(t, event.Mouse(3, 2, event.MouseRelease, event.ModNone), got[3])
}

func TestMouseWheel(t *testing.T) {
	tr := NewTranslator(ModeMouse)
	got := collect(tr,
		WheelSample(4, 4, 0, 1, 0),
		WheelSample(4, 4, 0, -1, 0),
		WheelSample(4, 4, 0, 0, 0),
	)
	require.Len(t, got, 2)
	assert.Equal(t, event.Mouse(4, 4, event.MouseWheelUp, event.ModNone), got[0])
	assert.Equal(t, event.Mouse(4, 4, event.MouseWheelDown, event.ModNone), got[1])
}

func TestMouseWheelIgnoresButtonState(t *testing.T) {
	tr := NewTranslator(ModeMouse)
	got := collect(tr,
		MouseSample(0, 0, ButtonLeft, MouseClick, 0),
		WheelSample(0, 0, ButtonLeft, -2, 0),
		MouseSample(0, 0, 0, MouseClick, 0),
	)
	require.Len(t, got, 3)
	assert.Equal(t, event.MouseWheelDown, got[1].Button)
	assert.Equal(t, event.MouseRelease, got[2].Button)
}

func TestMouseHorizontalWheelIgnored(t *testing.T) {
	tr := NewTranslator(ModeMouse)
	s := WheelSample(0, 0, 0, 1, 0)
	s.Flags = MouseHWheeled
	_, ok := tr.Translate(s)
	assert.False(t, ok)
}

func TestMouseAltModifier(t *testing.T) {
	tr := NewTranslator(ModeMouse | ModeAlt)
	ev, ok := tr.Translate(MouseSample(0, 0, ButtonRight, MouseClick, LeftAlt))
	require.True(t, ok)
	assert.Equal(t, event.ModAlt, ev.Mod)

	// Without ModeAlt the held Alt key is not reported
	tr = NewTranslator(ModeMouse)
	ev, ok = tr.Translate(MouseSample(0, 0, ButtonRight, MouseClick, LeftAlt))
	require.True(t, ok)
	assert.Equal(t, event.ModNone, ev.Mod)
}

func TestWheelSampleEncoding(t *testing.T) {
	s := WheelSample(0, 0, ButtonLeft, -1, 0)
	assert.Equal(t, int16(-WheelStep), s.WheelDelta())
	assert.Equal(t, ButtonLeft, s.PressedButtons())
}
