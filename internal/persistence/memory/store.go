// Package memory provides the in-memory snapshot store used by default and
// embedded by the durable backends.
package memory

import (
	"sort"
	"sync"

	"stationforge/pkg/station"
)

// Compile-time contract assertion.
var _ station.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore keeps saved configurations in process memory. Values are
// cloned on the way in and out so callers cannot alias stored state.
type SnapshotStore struct {
	mu   sync.RWMutex
	byID map[string]station.SavedConfiguration
}

// NewSnapshotStore constructs an empty in-memory store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{byID: make(map[string]station.SavedConfiguration)}
}

// Save stores cfg, replacing any existing configuration with the same id.
func (s *SnapshotStore) Save(cfg station.SavedConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[cfg.ID] = cfg.Clone()
	return nil
}

// Get returns the configuration with the given id.
func (s *SnapshotStore) Get(id string) (station.SavedConfiguration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.byID[id]
	if !ok {
		return station.SavedConfiguration{}, false
	}
	return cfg.Clone(), true
}

// Delete removes the configuration with the given id and reports whether
// it existed.
func (s *SnapshotStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byID[id]
	delete(s.byID, id)
	return ok, nil
}

// List returns all saved configurations, newest first. Ties break on id so
// the order is stable.
func (s *SnapshotStore) List() []station.SavedConfiguration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]station.SavedConfiguration, 0, len(s.byID))
	for _, cfg := range s.byID {
		out = append(out, cfg.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ImportState replaces the store contents with the given configurations.
func (s *SnapshotStore) ImportState(cfgs []station.SavedConfiguration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]station.SavedConfiguration, len(cfgs))
	for _, cfg := range cfgs {
		s.byID[cfg.ID] = cfg.Clone()
	}
}

// ExportState returns every stored configuration in List order.
func (s *SnapshotStore) ExportState() []station.SavedConfiguration {
	return s.List()
}
