package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/easeaico/sticker-journal/internal/journal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	store, err := NewSQLiteStore(ctx, ":memory:", zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create SQLite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.InitSchema(ctx); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}
	return store
}

func decoratedEntry(date string) journal.Entry {
	e := journal.NewEntry(date, nil)
	e = journal.SetContent(e, "Dear Journal, today I ✨ baked bread.\nLine two.")
	e = journal.ToggleTodo(e, e.Todos[0].ID)
	e = journal.AddTodo(e, "Call grandma", nil)
	e = journal.AddSticker(e, journal.Sticker{
		ID: "s1", ImageURL: "data:image/png;base64,iVBORw0KGgo=",
		X: 112.25, Y: 64.5, Rotation: -7.125, Scale: 1, Type: journal.KindSticker,
	})
	e = journal.AddSticker(e, journal.Sticker{
		ID: "s2", ImageURL: "data:image/webp;base64,UklGRg==",
		X: 0, Y: 300, Rotation: 9.5, Scale: 1, Type: journal.KindWashi,
	})
	return e
}

// TestNewSQLiteStore tests SQLite store creation and initialization.
func TestNewSQLiteStore(t *testing.T) {
	newTestSQLiteStore(t)
}

// TestSQLiteStore_RoundTrip verifies load(save(e)) == e.
func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	entry := decoratedEntry("2025-03-14")
	if err := store.Save(ctx, entry); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}

	loaded, ok, err := store.Load(ctx, "2025-03-14")
	if err != nil {
		t.Fatalf("failed to load entry: %v", err)
	}
	if !ok {
		t.Fatal("expected entry to be present")
	}
	if !loaded.Equal(entry) {
		t.Errorf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", entry, loaded)
	}
}

// TestSQLiteStore_LoadMissing tests that an unknown date is absent, not an error.
func TestSQLiteStore_LoadMissing(t *testing.T) {
	store := newTestSQLiteStore(t)

	_, ok, err := store.Load(context.Background(), "1999-12-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected missing date to be absent")
	}
}

// TestSQLiteStore_SaveOverwrites tests that saving twice keeps only the latest snapshot.
func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	entry := journal.NewEntry("2025-03-14", nil)
	if err := store.Save(ctx, entry); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}

	updated := journal.SetContent(entry, "second draft")
	if err := store.Save(ctx, updated); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}

	loaded, _, err := store.Load(ctx, "2025-03-14")
	if err != nil {
		t.Fatalf("failed to load entry: %v", err)
	}
	if loaded.Content != "second draft" {
		t.Errorf("expected overwritten content, got %q", loaded.Content)
	}

	var count int
	if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM journal_entries").Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one record per date, got %d", count)
	}
}

// TestSQLiteStore_MalformedRecordIsAbsent tests that corrupt payloads are
// logged and treated as missing.
func TestSQLiteStore_MalformedRecordIsAbsent(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)

	store, err := NewSQLiteStore(ctx, ":memory:", zap.New(core))
	if err != nil {
		t.Fatalf("failed to create SQLite store: %v", err)
	}
	defer store.Close()
	if err := store.InitSchema(ctx); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	tests := []struct {
		name    string
		date    string
		payload string
	}{
		{name: "not json", date: "2025-01-01", payload: "{not json"},
		{name: "wrong date", date: "2025-01-02", payload: `{"id":"x","date":"2024-01-01","content":""}`},
		{name: "missing id", date: "2025-01-03", payload: `{"date":"2025-01-03"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.db.ExecContext(ctx,
				`INSERT INTO journal_entries (storage_key, entry_date, payload) VALUES (?, ?, ?)`,
				Key(tt.date), tt.date, tt.payload)
			if err != nil {
				t.Fatalf("failed to insert record: %v", err)
			}

			_, ok, err := store.Load(ctx, tt.date)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok {
				t.Error("expected malformed record to be absent")
			}
		})
	}

	if logs.Len() != len(tests) {
		t.Errorf("expected %d warnings, got %d", len(tests), logs.Len())
	}
}

// TestSQLiteStore_ListAndDelete tests the calendar index and deletion.
func TestSQLiteStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	for _, date := range []string{"2025-03-15", "2024-12-31", "2025-03-14"} {
		if err := store.Save(ctx, journal.NewEntry(date, nil)); err != nil {
			t.Fatalf("failed to save %s: %v", date, err)
		}
	}

	dates, err := store.ListDates(ctx)
	if err != nil {
		t.Fatalf("failed to list dates: %v", err)
	}
	want := []string{"2024-12-31", "2025-03-14", "2025-03-15"}
	if len(dates) != len(want) {
		t.Fatalf("expected %v, got %v", want, dates)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("date %d: expected %s, got %s", i, want[i], dates[i])
		}
	}

	if err := store.Delete(ctx, "2025-03-14"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if err := store.Delete(ctx, "2000-01-01"); err != nil {
		t.Fatalf("deleting a missing date should not fail: %v", err)
	}
	if _, ok, _ := store.Load(ctx, "2025-03-14"); ok {
		t.Error("expected deleted entry to be absent")
	}
}

// TestSQLiteStore_FilePersistence tests that entries survive reopening the file.
func TestSQLiteStore_FilePersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	s, err := Open(ctx, TypeSQLite, path, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	entry := decoratedEntry("2025-07-04")
	if err := s.Save(ctx, entry); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}
	s.Close()

	s, err = Open(ctx, TypeSQLite, path, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()

	loaded, ok, err := s.Load(ctx, "2025-07-04")
	if err != nil || !ok {
		t.Fatalf("expected entry after reopen, ok=%v err=%v", ok, err)
	}
	if !loaded.Equal(entry) {
		t.Errorf("entry changed across reopen")
	}
}

func TestOpen_UnknownType(t *testing.T) {
	if _, err := Open(context.Background(), "mongo", "x", zap.NewNop()); err == nil {
		t.Error("expected error for unsupported backend")
	}
}

func TestKey(t *testing.T) {
	if got := Key("2025-03-14"); got != "journal-2025-03-14" {
		t.Errorf("unexpected key %q", got)
	}
}
