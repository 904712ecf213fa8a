// Package sqlite persists saved station configurations to an embedded
// SQLite file as JSON rows, mirroring the in-memory store semantics.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"stationforge/internal/persistence/memory"
	"stationforge/pkg/station"
)

// Compile-time contract assertion.
var _ station.SnapshotStore = (*Store)(nil)

// Store keeps the authoritative copy in memory and mirrors every mutation
// to a single SQLite table.
type Store struct {
	*memory.SnapshotStore
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (or creates) the SQLite file at path and hydrates the
// in-memory store from any existing rows.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "stationforge.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	s := &Store{SnapshotStore: memory.NewSnapshotStore(), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT payload FROM snapshots`)
	if err != nil {
		return fmt.Errorf("select snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cfgs []station.SavedConfiguration
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return fmt.Errorf("scan snapshot: %w", err)
		}
		var cfg station.SavedConfiguration
		if err := json.Unmarshal(payload, &cfg); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		cfgs = append(cfgs, cfg)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate snapshots: %w", err)
	}
	s.ImportState(cfgs)
	return nil
}

// Save stores cfg in memory and upserts its JSON payload.
func (s *Store) Save(cfg station.SavedConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.db.Exec(`INSERT INTO snapshots(id,payload) VALUES(?,?) ON CONFLICT(id) DO UPDATE SET payload=excluded.payload`, cfg.ID, payload); err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", cfg.ID, err)
	}
	return s.SnapshotStore.Save(cfg)
}

// Delete removes the configuration from memory and SQLite.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE id=?`, id); err != nil {
		return false, fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	return s.SnapshotStore.Delete(id)
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
