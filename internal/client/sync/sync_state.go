package sync

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/daybook-hq/daybook/internal/db"
	"github.com/jmoiron/sqlx"
)

const stateSchema = `
CREATE TABLE IF NOT EXISTS sync_state (
    key TEXT PRIMARY KEY,
    remote_updated_at TEXT NOT NULL, -- RFC3339Nano
    digest TEXT NOT NULL
);
`

// StateRecord is the remote {timestamp, digest} pair recorded at the end of
// the last successful synchronization for a key. It is the only way the
// policy can tell "remote changed since last sync" from "remote still
// reflects what we last saw".
type StateRecord struct {
	Key       string
	UpdatedAt time.Time
	Digest    string
}

// StateStore persists StateRecords across runs. Load returns (nil, nil)
// when no record exists for the key.
type StateStore interface {
	Load(key string) (*StateRecord, error)
	Save(record *StateRecord) error
	Close() error
}

// SqliteStateStore keeps sync state in a SQLite table in the workspace.
type SqliteStateStore struct {
	db *sqlx.DB
	mu sync.RWMutex
}

// NewSqliteStateStore creates or opens the state database at dbPath.
func NewSqliteStateStore(dbPath string) (*SqliteStateStore, error) {
	database, err := db.NewSqliteDB(db.WithPath(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	return newSqliteStateStore(database)
}

// NewMemoryStateStore creates an in-memory store, handy for tests.
func NewMemoryStateStore() (*SqliteStateStore, error) {
	database, err := db.NewSqliteDB()
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	return newSqliteStateStore(database)
}

func newSqliteStateStore(database *sqlx.DB) (*SqliteStateStore, error) {
	if _, err := database.Exec(stateSchema); err != nil {
		database.Close()
		return nil, fmt.Errorf("initialize state schema: %w", err)
	}
	return &SqliteStateStore{db: database}, nil
}

func (s *SqliteStateStore) Load(key string) (*StateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var updatedAt, digest string
	err := s.db.QueryRow(
		"SELECT remote_updated_at, digest FROM sync_state WHERE key = ?", key,
	).Scan(&updatedAt, &digest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // no record yet; first sync for this key
		}
		return nil, fmt.Errorf("query state for %s: %w", key, err)
	}

	ts, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse stored timestamp for %s: %w", key, err)
	}

	return &StateRecord{Key: key, UpdatedAt: ts, Digest: digest}, nil
}

func (s *SqliteStateStore) Save(record *StateRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil state record")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO sync_state (key, remote_updated_at, digest) VALUES (?, ?, ?)",
		record.Key, record.UpdatedAt.Format(time.RFC3339Nano), record.Digest,
	)
	if err != nil {
		return fmt.Errorf("save state for %s: %w", record.Key, err)
	}
	return nil
}

func (s *SqliteStateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var _ StateStore = (*SqliteStateStore)(nil)
