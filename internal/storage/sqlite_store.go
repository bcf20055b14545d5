package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nmwangi/todoq/internal/model"
)

// DefaultSlot is the slot name the application stores its list under.
const DefaultSlot = "tasks"

const slotSchema = `
	CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	)`

// SQLiteStore keeps the serialized task list in one named slot.
type SQLiteStore struct {
	db   *sql.DB
	slot string
	now  func() time.Time
}

func NewSQLiteStore(db *sql.DB, slot string, now func() time.Time) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if slot == "" {
		slot = DefaultSlot
	}
	if now == nil {
		now = time.Now
	}
	if _, err := db.Exec(slotSchema); err != nil {
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &SQLiteStore{db: db, slot: slot, now: now}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := NewSQLiteStore(db, DefaultSlot, time.Now)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the slot. An absent slot or an unparsable payload both
// come back as an empty list, never as a fatal error.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Task, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM slots WHERE name = ?`, s.slot).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read slot %s: %w", s.slot, err)
	}
	return decodeTasks([]byte(payload), s.now()), nil
}

// Save serializes the full list and overwrites the slot.
func (s *SQLiteStore) Save(ctx context.Context, tasks []model.Task) error {
	payload, err := encodeTasks(tasks)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", s.slot, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO slots (name, payload) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
		s.slot, string(payload),
	)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", s.slot, err)
	}
	return nil
}
