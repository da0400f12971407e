package notebook

import (
	"context"

	"github.com/easeaico/sticker-journal/internal/journal"
	"go.uber.org/zap"
)

// GeneratePrompts requests writing prompts for a mood and shows them on the
// current page. Only one generation may be in flight.
func (n *Notebook) GeneratePrompts(ctx context.Context, mood string) ([]string, error) {
	date, err := n.beginGeneration(mood)
	if err != nil {
		return nil, err
	}
	defer n.endGeneration()

	prompts, err := n.gen.GeneratePrompts(ctx, mood)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.date == date {
		n.prompts = append([]string(nil), prompts...)
	}
	return prompts, nil
}

// GenerateSticker asks for an image and, when one comes back, places it on
// the page that was open when the request started. added is false when the
// service returned no image; on error the entry is left untouched.
func (n *Notebook) GenerateSticker(ctx context.Context, description string, kind journal.StickerKind) (sticker journal.Sticker, added bool, err error) {
	date, err := n.beginGeneration(description)
	if err != nil {
		return journal.Sticker{}, false, err
	}
	defer n.endGeneration()

	uri, ok, err := n.gen.GenerateAsset(ctx, description, kind)
	if err != nil || !ok {
		return journal.Sticker{}, false, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	sticker = journal.NewSticker(uri, kind, n.rnd, n.newID)
	if n.date == date {
		n.replaceLocked(ctx, journal.AddSticker(n.entry, sticker))
		return sticker, true, nil
	}

	// the user moved to another page while the image was rendering
	entry, found, err := n.store.Load(ctx, date)
	if err != nil || !found {
		n.log.Warn("Original page unavailable, dropping generated sticker",
			zap.String("date", date), zap.Error(err))
		return journal.Sticker{}, false, nil
	}
	if err := n.store.Save(ctx, journal.AddSticker(entry, sticker)); err != nil {
		n.log.Error("Failed to save entry", zap.String("date", date), zap.Error(err))
	}
	return sticker, true, nil
}
