package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/easeaico/sticker-journal/internal/journal"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite file. It is the default
// backend: the notebook belongs to one user on one machine.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

// NewSQLiteStore opens the database at dbPath (a file path or ":memory:")
// and verifies connectivity with a ping.
func NewSQLiteStore(ctx context.Context, dbPath string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// single writer; also keeps ":memory:" on one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, log: log.Named("SQLiteStore")}, nil
}

// InitSchema creates the entries table if it doesn't exist.
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS journal_entries (
			storage_key TEXT PRIMARY KEY,
			entry_date TEXT NOT NULL,
			payload TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_entries_date ON journal_entries(entry_date);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Load reads the entry for date.
func (s *SQLiteStore) Load(ctx context.Context, date string) (journal.Entry, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM journal_entries WHERE storage_key = ?`, Key(date),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Entry{}, false, nil
	}
	if err != nil {
		return journal.Entry{}, false, fmt.Errorf("failed to load entry %s: %w", date, err)
	}

	entry, ok := decodeEntry(s.log, date, []byte(payload))
	return entry, ok, nil
}

// Save upserts the full entry snapshot.
func (s *SQLiteStore) Save(ctx context.Context, entry journal.Entry) error {
	payload, err := encodeEntry(entry)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO journal_entries (storage_key, entry_date, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		Key(entry.Date), entry.Date, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save entry %s: %w", entry.Date, err)
	}
	return nil
}

// Delete removes the record for date.
func (s *SQLiteStore) Delete(ctx context.Context, date string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE storage_key = ?`, Key(date)); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", date, err)
	}
	return nil
}

// ListDates returns all saved dates in ascending order.
func (s *SQLiteStore) ListDates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT entry_date FROM journal_entries ORDER BY entry_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry dates: %w", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan entry date: %w", err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry dates: %w", err)
	}
	return dates, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
