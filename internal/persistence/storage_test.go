package persistence

import (
	"path/filepath"
	"testing"

	"stationforge/internal/persistence/memory"
	"stationforge/internal/persistence/sqlite"
)

func TestOpenMemoryDriver(t *testing.T) {
	t.Setenv("STATIONFORGE_STORAGE_DRIVER", "memory")
	store, err := Open()
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	if _, ok := store.(*memory.SnapshotStore); !ok {
		t.Fatalf("expected in-memory store, got %T", store)
	}
}

func TestOpenSQLiteDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	t.Setenv("STATIONFORGE_STORAGE_DRIVER", "sqlite")
	t.Setenv("STATIONFORGE_SQLITE_PATH", path)
	store, err := Open()
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	ss, ok := store.(*sqlite.Store)
	if !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
	defer func() { _ = ss.Close() }()
	if ss.Path() != path {
		t.Fatalf("expected path %s, got %s", path, ss.Path())
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Setenv("STATIONFORGE_STORAGE_DRIVER", "cassette-tape")
	if _, err := Open(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
