// Package journal holds the notebook data model and the pure functions that
// update it. Nothing in this package performs I/O.
package journal

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for entry dates and storage keys.
const DateLayout = "2006-01-02"

// StickerKind governs how a decoration is rendered.
type StickerKind string

const (
	KindSticker StickerKind = "sticker"
	KindWashi   StickerKind = "washi"
)

// ParseKind validates a sticker kind string.
func ParseKind(s string) (StickerKind, error) {
	switch StickerKind(s) {
	case KindSticker, KindWashi:
		return StickerKind(s), nil
	default:
		return "", fmt.Errorf("unknown sticker kind %q", s)
	}
}

// Entry is the full journaling record for one calendar date.
type Entry struct {
	ID       string     `json:"id"`
	Date     string     `json:"date"`
	Content  string     `json:"content"`
	Todos    []TodoItem `json:"todos"`
	Stickers []Sticker  `json:"stickers"`
}

// TodoItem is a single to-do line. Text is never empty once created.
type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Sticker is a decorative image placed at an absolute position on the canvas.
// Rotation and Scale are fixed at creation; X and Y change only by dragging.
type Sticker struct {
	ID       string      `json:"id"`
	ImageURL string      `json:"imageUrl"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Rotation float64     `json:"rotation"`
	Scale    float64     `json:"scale"`
	Type     StickerKind `json:"type"`
}

// ParseDate checks that s is a valid YYYY-MM-DD date and returns it normalized.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.Format(DateLayout), nil
}

// ShiftDate moves an ISO date by the given number of days.
func ShiftDate(date string, days int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}

// Today formats now as an ISO date in UTC.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}
