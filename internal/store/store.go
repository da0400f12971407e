// Package store persists journal entries, one JSON snapshot per calendar date.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/easeaico/sticker-journal/internal/journal"
	"go.uber.org/zap"
)

// KeyPrefix is prepended to the ISO date to form a record's storage key.
const KeyPrefix = "journal-"

// Store defines the contract for entry persistence.
// Records are keyed by date; there are no transactions and no migrations.
type Store interface {
	// Load returns the entry saved for date. A missing or unreadable record
	// reports ok=false with a nil error.
	Load(ctx context.Context, date string) (entry journal.Entry, ok bool, err error)

	// Save writes the full entry under its date, replacing any prior record.
	Save(ctx context.Context, entry journal.Entry) error

	// Delete removes the record for date. Deleting a missing date is not an error.
	Delete(ctx context.Context, date string) error

	// ListDates returns the dates that have a saved record, oldest first.
	ListDates(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}

// Key returns the storage key for a date, e.g. "journal-2025-03-14".
func Key(date string) string {
	return KeyPrefix + date
}

func encodeEntry(e journal.Entry) ([]byte, error) {
	payload, err := json.Marshal(e.Clone())
	if err != nil {
		return nil, fmt.Errorf("failed to encode entry %s: %w", e.Date, err)
	}
	return payload, nil
}

// decodeEntry parses a stored payload. Corrupt records are logged and treated
// as absent so the caller falls back to a fresh entry.
func decodeEntry(log *zap.Logger, date string, payload []byte) (journal.Entry, bool) {
	var e journal.Entry
	if err := json.Unmarshal(payload, &e); err != nil {
		log.Warn("Discarding malformed journal record",
			zap.String("key", Key(date)), zap.Error(err))
		return journal.Entry{}, false
	}
	if e.Date != date || e.ID == "" {
		log.Warn("Discarding journal record with mismatched identity",
			zap.String("key", Key(date)), zap.String("recordDate", e.Date))
		return journal.Entry{}, false
	}
	return e.Clone(), true
}
