package headless

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/input"
)

func TestWriteMirrorsDamage(t *testing.T) {
	d := New(4, 2)
	g := cellbuf.New(4, 2)
	g.Set(1, 1, cellbuf.Cell{Ch: 'x', Fg: cellbuf.ColorRed})
	g.Set(2, 1, cellbuf.Cell{Ch: 'y'})

	require.NoError(t, d.Write(g.Damage(), g))

	assert.Equal(t, "    ", d.Line(0))
	assert.Equal(t, " xy ", d.Line(1))
	c, ok := d.Cell(1, 1)
	require.True(t, ok)
	assert.Equal(t, cellbuf.ColorRed, c.Fg)
	assert.Equal(t, []cellbuf.Rect{{Left: 1, Top: 1, Right: 2, Bottom: 1}}, d.Writes())
}

func TestWriteOutsideDamageUntouched(t *testing.T) {
	d := New(3, 1)
	g := cellbuf.New(3, 1)
	g.Set(0, 0, cellbuf.Cell{Ch: 'a'})
	g.Set(2, 0, cellbuf.Cell{Ch: 'c'})

	require.NoError(t, d.Write(cellbuf.Rect{Left: 0, Top: 0, Right: 0, Bottom: 0}, g))
	assert.Equal(t, "a  ", d.Line(0))
}

func TestWriteEmptyRecorded(t *testing.T) {
	d := New(2, 2)
	g := cellbuf.New(2, 2)

	require.NoError(t, d.Write(cellbuf.EmptyRect(), g))
	assert.Equal(t, []cellbuf.Rect{cellbuf.EmptyRect()}, d.Writes())
}

func TestWriteRejectsOutOfBounds(t *testing.T) {
	d := New(2, 2)
	g := cellbuf.New(2, 2)
	err := d.Write(cellbuf.Rect{Left: 0, Top: 0, Right: 5, Bottom: 0}, g)
	assert.Error(t, err)
}

func TestWriteFollowsGridSize(t *testing.T) {
	d := New(2, 1)
	g := cellbuf.New(3, 2)
	g.Set(2, 1, cellbuf.Cell{Ch: 'z'})

	require.NoError(t, d.Write(g.Damage(), g))
	assert.Equal(t, "  z", d.Line(1))
	assert.Len(t, d.Screen(), 6)
}

func TestFaultInjection(t *testing.T) {
	d := New(2, 2)
	boom := errors.New("boom")

	d.FailSize(boom)
	_, _, err := d.Size()
	assert.ErrorIs(t, err, boom)
	d.FailSize(nil)
	w, h, err := d.Size()
	require.NoError(t, err)
	assert.Equal(t, int32(2), w)
	assert.Equal(t, int32(2), h)

	d.FailWrite(boom)
	assert.ErrorIs(t, d.Write(cellbuf.EmptyRect(), cellbuf.New(2, 2)), boom)
	assert.Empty(t, d.Writes())

	d.FailCursor(boom)
	assert.ErrorIs(t, d.SetCursorPos(1, 1), boom)
	_, err = d.CursorPos()
	assert.ErrorIs(t, err, boom)

	d.FailPoll(boom)
	_, _, err = d.Poll(time.Millisecond)
	assert.ErrorIs(t, err, boom)
}

func TestCursor(t *testing.T) {
	d := New(5, 5)
	ci, err := d.CursorPos()
	require.NoError(t, err)
	assert.True(t, ci.Visible)

	require.NoError(t, d.SetCursorPos(3, 4))
	ci, err = d.CursorPos()
	require.NoError(t, err)
	assert.Equal(t, int16(3), ci.X)
	assert.Equal(t, int16(4), ci.Y)
}

func TestPollPushedAndTimeout(t *testing.T) {
	d := New(1, 1)
	d.Push(input.KeyDownSample(input.VKA, 'a', 0))

	s, ok, err := d.Poll(time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 'a', s.Char)

	_, ok, err = d.Poll(5 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResizeQueuesSample(t *testing.T) {
	d := New(2, 2)
	d.Resize(7, 3)

	w, h, err := d.Size()
	require.NoError(t, err)
	assert.Equal(t, int32(7), w)
	assert.Equal(t, int32(3), h)

	s, ok, err := d.Poll(time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, input.ResizeSample(7, 3), s)
}

func TestCloseStopsDevice(t *testing.T) {
	d := New(1, 1)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.True(t, d.Closed())

	assert.ErrorIs(t, d.Write(cellbuf.EmptyRect(), cellbuf.New(1, 1)), ErrClosed)
	_, _, err := d.Poll(time.Millisecond)
	assert.ErrorIs(t, err, ErrClosed)
	assert.True(t, d.PolledAfterClose())
}

func TestBeepCounts(t *testing.T) {
	d := New(1, 1)
	require.NoError(t, d.Beep())
	require.NoError(t, d.Beep())
	assert.Equal(t, 2, d.Beeps())
}
