// Package snapshot archives saved station configurations to a blob store
// as JSON documents, one object per configuration.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"stationforge/internal/blob"
	"stationforge/pkg/station"
)

const (
	archivePrefix = "configurations/"
	contentType   = "application/json"
)

// Archiver writes and reads configuration documents in a blob store.
type Archiver struct {
	store blob.Store
}

// NewArchiver wraps the given blob store.
func NewArchiver(store blob.Store) *Archiver {
	return &Archiver{store: store}
}

func archiveKey(id string) string { return archivePrefix + id + ".json" }

// Archive stores the configuration as a JSON object keyed by its id.
// Archiving the same id twice fails; delete the old document first.
func (a *Archiver) Archive(ctx context.Context, cfg station.SavedConfiguration) (blob.Info, error) {
	if cfg.ID == "" {
		return blob.Info{}, fmt.Errorf("configuration id required")
	}
	payload, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return blob.Info{}, fmt.Errorf("encode configuration: %w", err)
	}
	info, err := a.store.Put(ctx, archiveKey(cfg.ID), bytes.NewReader(payload), blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"name": cfg.Name},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("archive configuration %s: %w", cfg.ID, err)
	}
	return info, nil
}

// Retrieve loads an archived configuration by id.
func (a *Archiver) Retrieve(ctx context.Context, id string) (station.SavedConfiguration, error) {
	_, rc, err := a.store.Get(ctx, archiveKey(id))
	if err != nil {
		return station.SavedConfiguration{}, fmt.Errorf("retrieve configuration %s: %w", id, err)
	}
	defer func() { _ = rc.Close() }()
	payload, err := io.ReadAll(rc)
	if err != nil {
		return station.SavedConfiguration{}, fmt.Errorf("read configuration %s: %w", id, err)
	}
	var cfg station.SavedConfiguration
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return station.SavedConfiguration{}, fmt.Errorf("decode configuration %s: %w", id, err)
	}
	return cfg, nil
}

// Remove deletes an archived configuration, reporting whether it existed.
func (a *Archiver) Remove(ctx context.Context, id string) (bool, error) {
	return a.store.Delete(ctx, archiveKey(id))
}

// List returns the ids of all archived configurations, ascending.
func (a *Archiver) List(ctx context.Context) ([]string, error) {
	infos, err := a.store.List(ctx, archivePrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		id := strings.TrimSuffix(strings.TrimPrefix(info.Key, archivePrefix), ".json")
		ids = append(ids, id)
	}
	return ids, nil
}
