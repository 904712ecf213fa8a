// Package postgres provides a Postgres-backed snapshot store that mirrors
// the in-memory semantics, writing each saved configuration as a JSONB row.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"stationforge/internal/persistence/memory"
	"stationforge/pkg/station"
)

// Compile-time contract assertion.
var _ station.SnapshotStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/stationforge?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store keeps the authoritative copy in memory and mirrors every mutation
// to Postgres.
type Store struct {
	*memory.SnapshotStore
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back
// to defaultDSN), ensures the snapshots table exists, and hydrates the
// in-memory store from any existing rows.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("ensure snapshots table: %w", err)
	}
	s := &Store{SnapshotStore: memory.NewSnapshotStore(), db: db}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM snapshots`)
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
		if len(payload) == 0 {
			continue
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

// Save stores cfg in memory and upserts its JSONB payload.
func (s *Store) Save(cfg station.SavedConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.db.Exec(`INSERT INTO snapshots(id,payload) VALUES($1,$2) ON CONFLICT(id) DO UPDATE SET payload=EXCLUDED.payload`, cfg.ID, payload); err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", cfg.ID, err)
	}
	return s.SnapshotStore.Save(cfg)
}

// Delete removes the configuration from memory and Postgres.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE id=$1`, id); err != nil {
		return false, fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	return s.SnapshotStore.Delete(id)
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
