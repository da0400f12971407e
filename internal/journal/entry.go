package journal

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// DefaultTodos are seeded into every freshly created entry.
var DefaultTodos = []string{"Drink water", "Take a deep breath"}

// IDFunc produces identifiers for new entries and their children.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// NewEntry builds the default entry for a date that has no saved record:
// empty content, the two default to-dos and no stickers.
func NewEntry(date string, newID IDFunc) Entry {
	if newID == nil {
		newID = NewID
	}
	todos := make([]TodoItem, 0, len(DefaultTodos))
	for _, text := range DefaultTodos {
		todos = append(todos, TodoItem{ID: newID(), Text: text})
	}
	return Entry{
		ID:       newID(),
		Date:     date,
		Todos:    todos,
		Stickers: []Sticker{},
	}
}

// Initial sticker placement bounds, in canvas pixels.
const (
	placementMin   = 50
	placementRange = 200
	rotationRange  = 20
)

// NewSticker builds a sticker for a generated image at a random position in
// [50, 250) on both axes with a random tilt in [-10, 10) degrees.
func NewSticker(imageURL string, kind StickerKind, rnd *rand.Rand, newID IDFunc) Sticker {
	if newID == nil {
		newID = NewID
	}
	float := rand.Float64
	if rnd != nil {
		float = rnd.Float64
	}
	return Sticker{
		ID:       newID(),
		ImageURL: imageURL,
		X:        float()*placementRange + placementMin,
		Y:        float()*placementRange + placementMin,
		Rotation: float()*rotationRange - rotationRange/2,
		Scale:    1,
		Type:     kind,
	}
}

// Clone returns a deep copy so callers can mutate slices without aliasing.
func (e Entry) Clone() Entry {
	out := e
	out.Todos = slices.Clone(e.Todos)
	out.Stickers = slices.Clone(e.Stickers)
	if out.Todos == nil {
		out.Todos = []TodoItem{}
	}
	if out.Stickers == nil {
		out.Stickers = []Sticker{}
	}
	return out
}

// Equal reports whether two entries hold the same data. A nil slice and an
// empty slice compare equal.
func (e Entry) Equal(o Entry) bool {
	return e.ID == o.ID &&
		e.Date == o.Date &&
		e.Content == o.Content &&
		slices.Equal(e.Todos, o.Todos) &&
		slices.Equal(e.Stickers, o.Stickers)
}

// FindSticker returns the sticker with the given id.
func (e Entry) FindSticker(id string) (Sticker, bool) {
	i := slices.IndexFunc(e.Stickers, func(s Sticker) bool { return s.ID == id })
	if i < 0 {
		return Sticker{}, false
	}
	return e.Stickers[i], true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
