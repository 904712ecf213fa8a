// Package persistence selects a snapshot store backend from the
// environment.
package persistence

import (
	"fmt"
	"os"

	"stationforge/internal/persistence/memory"
	"stationforge/internal/persistence/postgres"
	"stationforge/internal/persistence/sqlite"
	"stationforge/pkg/station"
)

// StorageDriver identifies a concrete snapshot store implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// Open selects a backend using environment variables. Defaults to sqlite
// when unset.
//
//	STATIONFORGE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	STATIONFORGE_SQLITE_PATH: path to sqlite file (default ./stationforge.db)
//	STATIONFORGE_POSTGRES_DSN: postgres DSN when driver=postgres
func Open() (station.SnapshotStore, error) {
	driver := os.Getenv("STATIONFORGE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewSnapshotStore(), nil
	case StorageSQLite:
		path := os.Getenv("STATIONFORGE_SQLITE_PATH")
		return sqlite.NewStore(path)
	case StoragePostgres:
		dsn := os.Getenv("STATIONFORGE_POSTGRES_DSN")
		return postgres.NewStore(dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
