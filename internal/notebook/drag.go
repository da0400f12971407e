package notebook

import (
	"context"

	"github.com/easeaico/sticker-journal/internal/overlay"
)

// PointerDown starts dragging a sticker on the current page.
func (n *Notebook) PointerDown(stickerID string) overlay.DragState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.drag.PointerDown(n.entry, stickerID)
}

// PointerMove repositions the dragged sticker and saves the page.
// It reports whether a sticker moved.
func (n *Notebook) PointerMove(ctx context.Context, pointer, origin overlay.Point) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	next, moved := n.drag.PointerMove(n.entry, pointer, origin)
	if moved {
		n.replaceLocked(ctx, next)
	}
	return moved
}

// PointerUp ends the drag.
func (n *Notebook) PointerUp() {
	n.mu.Lock()
	n.drag.PointerUp()
	n.mu.Unlock()
}

// PointerLeave ends the drag when the pointer exits the notebook surface.
func (n *Notebook) PointerLeave() {
	n.mu.Lock()
	n.drag.PointerLeave()
	n.mu.Unlock()
}
