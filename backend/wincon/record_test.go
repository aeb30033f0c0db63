package wincon

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/input"
)

func keyRecord(down bool, vk uint16, ch uint16, state uint32) *inputRecord {
	r := &inputRecord{EventType: keyEvent}
	le := binary.LittleEndian
	if down {
		le.PutUint32(r.Event[0:4], 1)
	}
	le.PutUint16(r.Event[4:6], 1)
	le.PutUint16(r.Event[6:8], vk)
	le.PutUint16(r.Event[10:12], ch)
	le.PutUint32(r.Event[12:16], state)
	return r
}

func mouseRecord(x, y int16, buttons, state, flags uint32) *inputRecord {
	r := &inputRecord{EventType: mouseEvent}
	le := binary.LittleEndian
	le.PutUint16(r.Event[0:2], uint16(x))
	le.PutUint16(r.Event[2:4], uint16(y))
	le.PutUint32(r.Event[4:8], buttons)
	le.PutUint32(r.Event[8:12], state)
	le.PutUint32(r.Event[12:16], flags)
	return r
}

func TestDecodeKey(t *testing.T) {
	var d decoder
	// 0x0100 is ENHANCED_KEY, which is masked off
	s, ok := d.decode(keyRecord(true, input.VKA, 'a', 0x0108))
	require.True(t, ok)
	assert.Equal(t, input.KeyDownSample(input.VKA, 'a', input.LeftCtrl), s)

	s, ok = d.decode(keyRecord(false, input.VKA, 'a', 0))
	require.True(t, ok)
	assert.False(t, s.KeyDown)
}

func TestDecodeSurrogatePair(t *testing.T) {
	var d decoder
	_, ok := d.decode(keyRecord(true, 0, 0xD83D, 0))
	assert.False(t, ok)

	s, ok := d.decode(keyRecord(true, 0, 0xDE00, 0))
	require.True(t, ok)
	assert.Equal(t, '😀', s.Char)

	// Orphan low surrogate
	_, ok = d.decode(keyRecord(true, 0, 0xDE00, 0))
	assert.False(t, ok)
}

func TestDecodeMouse(t *testing.T) {
	var d decoder
	s, ok := d.decode(mouseRecord(12, 7, input.ButtonLeft, 0x10, uint32(input.MouseMoved)))
	require.True(t, ok)
	assert.Equal(t, input.MouseSample(12, 7, input.ButtonLeft, input.MouseMoved, input.Shift), s)

	wheel := input.WheelSample(0, 0, 0, -1, 0)
	s, ok = d.decode(mouseRecord(0, 0, wheel.Buttons, 0, uint32(input.MouseWheeled)))
	require.True(t, ok)
	assert.Equal(t, int16(-input.WheelStep), s.WheelDelta())
}

func TestDecodeResizeAndFocus(t *testing.T) {
	var d decoder
	r := &inputRecord{EventType: windowBufferSizeEvent}
	binary.LittleEndian.PutUint16(r.Event[0:2], 120)
	binary.LittleEndian.PutUint16(r.Event[2:4], 40)
	s, ok := d.decode(r)
	require.True(t, ok)
	assert.Equal(t, input.ResizeSample(120, 40), s)

	s, ok = d.decode(&inputRecord{EventType: focusEvent})
	require.True(t, ok)
	assert.Equal(t, input.SampleFocus, s.Kind)

	_, ok = d.decode(&inputRecord{EventType: 0x40})
	assert.False(t, ok)
}

func TestCellInfo(t *testing.T) {
	tests := []struct {
		name string
		cell cellbuf.Cell
		want uint16
	}{
		{"default", cellbuf.Cell{Ch: 'x'}, foregroundRed | foregroundGreen | foregroundBlue},
		{"red on blue", cellbuf.Cell{Ch: 'x', Fg: cellbuf.ColorRed, Bg: cellbuf.ColorBlue}, foregroundRed | backgroundBlue},
		{"bold fg", cellbuf.Cell{Ch: 'x', Fg: cellbuf.ColorGreen | cellbuf.AttrBold}, foregroundGreen | foregroundIntensity},
		{"bold bg", cellbuf.Cell{Ch: 'x', Bg: cellbuf.ColorCyan | cellbuf.AttrBold}, foregroundRed | foregroundGreen | foregroundBlue | backgroundGreen | backgroundBlue | backgroundIntensity},
		{"reverse", cellbuf.Cell{Ch: 'x', Fg: cellbuf.ColorYellow | cellbuf.AttrReverse, Bg: cellbuf.ColorBlack}, backgroundRed | backgroundGreen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ci := cellInfo(tt.cell)
			assert.Equal(t, uint16('x'), ci.Char)
			assert.Equal(t, tt.want, ci.Attributes)
		})
	}
}

func TestCellInfoAstral(t *testing.T) {
	assert.Equal(t, uint16(0xFFFD), cellInfo(cellbuf.Cell{Ch: '😀'}).Char)
}

func TestPackRegion(t *testing.T) {
	g := cellbuf.New(4, 3)
	g.Set(1, 1, cellbuf.Cell{Ch: 'a'})
	g.Set(2, 2, cellbuf.Cell{Ch: 'b'})

	buf := packRegion(g.Damage(), g)
	require.Len(t, buf, 4)
	assert.Equal(t, uint16('a'), buf[0].Char)
	assert.Equal(t, uint16(' '), buf[1].Char)
	assert.Equal(t, uint16(' '), buf[2].Char)
	assert.Equal(t, uint16('b'), buf[3].Char)
}
