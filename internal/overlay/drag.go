// Package overlay tracks pointer drags that reposition stickers on the
// notebook canvas.
package overlay

import "github.com/easeaico/sticker-journal/internal/journal"

// CenterOffset is half of a sticker's nominal 100px footprint. The pointer
// grabs the sticker by its center, so the top-left corner sits this far up
// and to the left of the pointer.
const CenterOffset = 50.0

// Point is a position in client pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DragState is either Idle or Dragging a specific sticker. The zero value is Idle.
type DragState struct {
	stickerID string
}

// Idle returns the state with no active drag.
func Idle() DragState { return DragState{} }

// Dragging returns the state for an active drag of stickerID.
// An empty id yields Idle.
func Dragging(stickerID string) DragState { return DragState{stickerID: stickerID} }

// Active reports the sticker being dragged, if any.
func (s DragState) Active() (string, bool) {
	return s.stickerID, s.stickerID != ""
}

func (s DragState) String() string {
	if id, ok := s.Active(); ok {
		return "dragging(" + id + ")"
	}
	return "idle"
}

// Tracker holds the single active-drag slot. Only one sticker can be dragged
// at a time; pressing another sticker replaces the active drag.
type Tracker struct {
	state DragState
}

// State returns the current drag state.
func (t *Tracker) State() DragState { return t.state }

// PointerDown starts dragging the sticker if it exists in entry.
// Pressing an unknown id leaves the tracker idle.
func (t *Tracker) PointerDown(entry journal.Entry, stickerID string) DragState {
	if _, ok := entry.FindSticker(stickerID); !ok {
		t.state = Idle()
		return t.state
	}
	t.state = Dragging(stickerID)
	return t.state
}

// PointerMove repositions the dragged sticker so that it is centered under
// the pointer, relative to the canvas origin. It returns the updated entry and
// whether anything moved.
func (t *Tracker) PointerMove(entry journal.Entry, pointer, origin Point) (journal.Entry, bool) {
	id, ok := t.state.Active()
	if !ok {
		return entry, false
	}
	if _, found := entry.FindSticker(id); !found {
		// sticker was removed mid-drag
		t.state = Idle()
		return entry, false
	}
	x, y := Position(pointer, origin)
	return journal.MoveSticker(entry, id, x, y), true
}

// PointerUp ends any drag.
func (t *Tracker) PointerUp() { t.state = Idle() }

// PointerLeave ends any drag when the pointer exits the tracking surface,
// so a release outside the surface cannot leave a drag stuck.
func (t *Tracker) PointerLeave() { t.state = Idle() }

// Reset drops the active drag, e.g. when the page changes.
func (t *Tracker) Reset() { t.state = Idle() }

// Position converts a pointer position to a sticker's top-left corner.
func Position(pointer, origin Point) (x, y float64) {
	return pointer.X - origin.X - CenterOffset, pointer.Y - origin.Y - CenterOffset
}
