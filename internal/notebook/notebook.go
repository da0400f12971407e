// Package notebook holds the application state for the page being edited:
// the selected date, its entry, the suggested prompts, the generation busy
// flag and the drag tracker. Every change to the entry is saved in full.
package notebook

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/easeaico/sticker-journal/internal/journal"
	"github.com/easeaico/sticker-journal/internal/overlay"
	"github.com/easeaico/sticker-journal/internal/store"
	"go.uber.org/zap"
)

var (
	// ErrBusy is returned when a generation request is already outstanding.
	ErrBusy = errors.New("a generation request is already in progress")

	// ErrEmptyInput is returned for a blank mood or sticker description.
	ErrEmptyInput = errors.New("input must not be empty")
)

// Generator produces prompts and decorative images.
type Generator interface {
	GeneratePrompts(ctx context.Context, mood string) ([]string, error)
	GenerateAsset(ctx context.Context, description string, kind journal.StickerKind) (string, bool, error)
}

// Snapshot is a read-only copy of the notebook state.
type Snapshot struct {
	Date       string            `json:"date"`
	Entry      journal.Entry     `json:"entry"`
	Prompts    []string          `json:"prompts"`
	Generating bool              `json:"generating"`
	Drag       overlay.DragState `json:"-"`
}

// Notebook is the single state container. Methods are safe for concurrent
// use; mutations are serialized, and generation calls run outside the lock
// guarded by the busy flag.
type Notebook struct {
	mu         sync.Mutex
	store      store.Store
	gen        Generator
	log        *zap.Logger
	newID      journal.IDFunc
	rnd        *rand.Rand
	date       string
	entry      journal.Entry
	prompts    []string
	generating bool
	drag       overlay.Tracker
}

// Option customizes a Notebook.
type Option func(*Notebook)

// WithIDs overrides id generation.
func WithIDs(f journal.IDFunc) Option {
	return func(n *Notebook) { n.newID = f }
}

// WithRand sets the source used for initial sticker placement.
func WithRand(r *rand.Rand) Option {
	return func(n *Notebook) { n.rnd = r }
}

// New creates a notebook with no date selected. Call Open before use.
func New(s store.Store, gen Generator, log *zap.Logger, opts ...Option) *Notebook {
	if log == nil {
		log = zap.NewNop()
	}
	n := &Notebook{
		store:   s,
		gen:     gen,
		log:     log.Named("Notebook"),
		newID:   journal.NewID,
		prompts: []string{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Open selects date, loading its saved entry or creating the default one.
func (n *Notebook) Open(ctx context.Context, date string) (Snapshot, error) {
	date, err := journal.ParseDate(date)
	if err != nil {
		return Snapshot{}, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	entry, ok, err := n.store.Load(ctx, date)
	unreadable := err != nil
	if unreadable {
		n.log.Warn("Failed to read entry, starting a fresh page", zap.String("date", date), zap.Error(err))
		ok = false
	}
	if !ok {
		entry = journal.NewEntry(date, n.newID)
	}

	n.date = date
	n.entry = entry
	n.prompts = []string{}
	n.drag.Reset()
	// a record that failed to load may still exist; only a real edit replaces it
	if !ok && !unreadable {
		n.persistLocked(ctx)
	}
	return n.snapshotLocked(), nil
}

// Shift moves the selection by days, e.g. -1 for the previous page.
func (n *Notebook) Shift(ctx context.Context, days int) (Snapshot, error) {
	n.mu.Lock()
	current := n.date
	n.mu.Unlock()

	next, err := journal.ShiftDate(current, days)
	if err != nil {
		return Snapshot{}, err
	}
	return n.Open(ctx, next)
}

// Current returns a copy of the notebook state.
func (n *Notebook) Current() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshotLocked()
}

// SetContent replaces the page text.
func (n *Notebook) SetContent(ctx context.Context, text string) journal.Entry {
	return n.apply(ctx, func(e journal.Entry) journal.Entry { return journal.SetContent(e, text) })
}

// AddTodo appends a to-do; blank text leaves the entry unchanged.
func (n *Notebook) AddTodo(ctx context.Context, text string) journal.Entry {
	return n.apply(ctx, func(e journal.Entry) journal.Entry { return journal.AddTodo(e, text, n.newID) })
}

// ToggleTodo flips a to-do's completion.
func (n *Notebook) ToggleTodo(ctx context.Context, id string) journal.Entry {
	return n.apply(ctx, func(e journal.Entry) journal.Entry { return journal.ToggleTodo(e, id) })
}

// DeleteTodo removes a to-do.
func (n *Notebook) DeleteTodo(ctx context.Context, id string) journal.Entry {
	return n.apply(ctx, func(e journal.Entry) journal.Entry { return journal.DeleteTodo(e, id) })
}

// RemoveSticker removes a decoration.
func (n *Notebook) RemoveSticker(ctx context.Context, id string) journal.Entry {
	return n.apply(ctx, func(e journal.Entry) journal.Entry { return journal.RemoveSticker(e, id) })
}

// AppendPrompt writes a suggested prompt into the page text.
func (n *Notebook) AppendPrompt(ctx context.Context, prompt string) journal.Entry {
	return n.apply(ctx, func(e journal.Entry) journal.Entry { return journal.AppendPrompt(e, prompt) })
}

// apply runs a pure mutator on the current entry and saves the result if it changed.
func (n *Notebook) apply(ctx context.Context, mutate func(journal.Entry) journal.Entry) journal.Entry {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replaceLocked(ctx, mutate(n.entry))
	return n.entry.Clone()
}

func (n *Notebook) replaceLocked(ctx context.Context, next journal.Entry) {
	if next.Equal(n.entry) {
		return
	}
	n.entry = next
	n.persistLocked(ctx)
}

// persistLocked saves the whole entry. Write failures are logged and dropped.
func (n *Notebook) persistLocked(ctx context.Context) {
	if err := n.store.Save(ctx, n.entry); err != nil {
		n.log.Error("Failed to save entry", zap.String("date", n.entry.Date), zap.Error(err))
	}
}

func (n *Notebook) snapshotLocked() Snapshot {
	prompts := make([]string, len(n.prompts))
	copy(prompts, n.prompts)
	return Snapshot{
		Date:       n.date,
		Entry:      n.entry.Clone(),
		Prompts:    prompts,
		Generating: n.generating,
		Drag:       n.drag.State(),
	}
}

// beginGeneration claims the busy flag and returns the date it was claimed for.
func (n *Notebook) beginGeneration(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.generating {
		return "", ErrBusy
	}
	n.generating = true
	return n.date, nil
}

func (n *Notebook) endGeneration() {
	n.mu.Lock()
	n.generating = false
	n.mu.Unlock()
}
