package main

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// NotifiedStore remembers which task ids already triggered an individual
// notification, so the new-request check never notifies twice. The default
// store is process-lifetime memory (resets on restart, which only matters
// inside the check's 2-hour lookback). An opt-in SQLite store survives
// restarts for deployments where duplicate notifications are unacceptable.
type NotifiedStore interface {
	Notified(taskID string) (bool, error)
	MarkNotified(taskID string) error
	Close() error
}

// memoryNotifiedStore is shared between the cron goroutines and the HTTP
// handlers; the mutex keeps concurrent triggers from corrupting the map.
// Overlapping runs may still notify a task twice (check before mark), which
// the new-request check accepts.
type memoryNotifiedStore struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewMemoryNotifiedStore() NotifiedStore {
	return &memoryNotifiedStore{ids: make(map[string]struct{})}
}

func (m *memoryNotifiedStore) Notified(taskID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.ids[taskID]
	return ok, nil
}

func (m *memoryNotifiedStore) MarkNotified(taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[taskID] = struct{}{}
	return nil
}

func (m *memoryNotifiedStore) Close() error { return nil }

type sqliteNotifiedStore struct {
	db *sql.DB
}

func OpenNotifiedDB(path string) (NotifiedStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS notified_tasks (
		task_id     TEXT PRIMARY KEY,
		notified_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteNotifiedStore{db: db}, nil
}

func (s *sqliteNotifiedStore) Notified(taskID string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM notified_tasks WHERE task_id = ?`, taskID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *sqliteNotifiedStore) MarkNotified(taskID string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO notified_tasks (task_id) VALUES (?)`, taskID)
	return err
}

func (s *sqliteNotifiedStore) Close() error {
	return s.db.Close()
}
