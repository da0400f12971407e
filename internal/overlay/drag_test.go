package overlay

import (
	"testing"

	"github.com/easeaico/sticker-journal/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryWithStickers() journal.Entry {
	e := journal.NewEntry("2025-06-01", nil)
	e = journal.AddSticker(e, journal.Sticker{ID: "cat", X: 60, Y: 70, Rotation: 4, Scale: 1, Type: journal.KindSticker})
	e = journal.AddSticker(e, journal.Sticker{ID: "tape", X: 100, Y: 120, Rotation: -2, Scale: 1, Type: journal.KindWashi})
	return e
}

func TestDragState(t *testing.T) {
	_, ok := Idle().Active()
	assert.False(t, ok)
	assert.Equal(t, "idle", Idle().String())

	id, ok := Dragging("cat").Active()
	assert.True(t, ok)
	assert.Equal(t, "cat", id)

	_, ok = Dragging("").Active()
	assert.False(t, ok)

	var zero DragState
	assert.Equal(t, Idle(), zero)
}

func TestTracker_MoveComputesCenteredPosition(t *testing.T) {
	var tr Tracker
	e := entryWithStickers()

	tr.PointerDown(e, "cat")
	origin := Point{X: 200, Y: 150}
	pointer := Point{X: 480, Y: 390}

	moved, changed := tr.PointerMove(e, pointer, origin)
	require.True(t, changed)

	s, ok := moved.FindSticker("cat")
	require.True(t, ok)
	assert.Equal(t, pointer.X-origin.X-CenterOffset, s.X)
	assert.Equal(t, pointer.Y-origin.Y-CenterOffset, s.Y)
	assert.Equal(t, 4.0, s.Rotation)

	other, _ := moved.FindSticker("tape")
	assert.Equal(t, 100.0, other.X)
}

func TestTracker_ReleaseKeepsLastPosition(t *testing.T) {
	var tr Tracker
	e := entryWithStickers()

	tr.PointerDown(e, "tape")
	e, _ = tr.PointerMove(e, Point{X: 300, Y: 300}, Point{})
	tr.PointerUp()

	_, ok := tr.State().Active()
	assert.False(t, ok)

	after, changed := tr.PointerMove(e, Point{X: 999, Y: 999}, Point{})
	assert.False(t, changed)
	s, _ := after.FindSticker("tape")
	assert.Equal(t, 250.0, s.X)
	assert.Equal(t, 250.0, s.Y)
}

func TestTracker_LeaveEndsDrag(t *testing.T) {
	var tr Tracker
	e := entryWithStickers()

	tr.PointerDown(e, "cat")
	tr.PointerLeave()

	_, changed := tr.PointerMove(e, Point{X: 10, Y: 10}, Point{})
	assert.False(t, changed)
}

func TestTracker_NewDragReplacesActive(t *testing.T) {
	var tr Tracker
	e := entryWithStickers()

	tr.PointerDown(e, "cat")
	tr.PointerDown(e, "tape")

	id, ok := tr.State().Active()
	require.True(t, ok)
	assert.Equal(t, "tape", id)

	moved, _ := tr.PointerMove(e, Point{X: 150, Y: 150}, Point{})
	cat, _ := moved.FindSticker("cat")
	assert.Equal(t, 60.0, cat.X)
}

func TestTracker_UnknownStickerStaysIdle(t *testing.T) {
	var tr Tracker
	e := entryWithStickers()

	tr.PointerDown(e, "ghost")
	_, ok := tr.State().Active()
	assert.False(t, ok)
}

func TestTracker_StickerRemovedMidDrag(t *testing.T) {
	var tr Tracker
	e := entryWithStickers()

	tr.PointerDown(e, "cat")
	e = journal.RemoveSticker(e, "cat")

	out, changed := tr.PointerMove(e, Point{X: 10, Y: 10}, Point{})
	assert.False(t, changed)
	assert.True(t, e.Equal(out))
	_, ok := tr.State().Active()
	assert.False(t, ok)
}
