package client

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// HistoryEntry is one local record of a link this machine produced or
// consumed. Links are capabilities, so the history never stores plaintext,
// only the link itself and enough metadata to recognize it.
type HistoryEntry struct {
	ID        int       `json:"id"`
	Kind      string    `json:"kind"`
	RemoteID  int       `json:"remote_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	HistoryKindShared    = "shared"
	HistoryKindViewed    = "viewed"
	HistoryKindRequested = "requested"
	HistoryKindFulfilled = "fulfilled"
	HistoryKindRevealed  = "revealed"
)

type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store := &HistoryStore{db: db}

	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history tables: %w", err)
	}

	return store, nil
}

func (s *HistoryStore) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			remote_id INTEGER NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_history_kind ON history(kind);
		CREATE INDEX IF NOT EXISTS idx_history_created ON history(created_at);
	`)

	return err
}

func (s *HistoryStore) Add(entry *HistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	result, err := s.db.Exec(`
		INSERT INTO history (kind, remote_id, name, link, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.Kind, entry.RemoteID, entry.Name, entry.Link, entry.CreatedAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("save history entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		entry.ID = int(id)
	}

	return nil
}

func (s *HistoryStore) List(kind string, limit int) ([]*HistoryEntry, error) {
	query := "SELECT id, kind, remote_id, name, link, created_at FROM history"
	args := []interface{}{}

	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []*HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var createdAt string

		if err := rows.Scan(&entry.ID, &entry.Kind, &entry.RemoteID,
			&entry.Name, &entry.Link, &createdAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}

		entry.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

func (s *HistoryStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}

	return count, nil
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}
