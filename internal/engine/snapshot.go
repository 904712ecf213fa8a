package engine

import (
	"context"
	"fmt"
	"time"

	"stationforge/pkg/station"
)

// Snapshot operation identifiers.
const (
	OpSaveSnapshot   Op = "save_snapshot"
	OpDeleteSnapshot Op = "delete_snapshot"
)

// SaveSnapshot captures the current configuration under a fresh id and
// persists it in the configured snapshot store.
func (e *Engine) SaveSnapshot(ctx context.Context, name string) (cfg station.SavedConfiguration, err error) {
	started := e.nowFn()
	ctx, span := e.tracer.Start(ctx, string(OpSaveSnapshot))
	defer func() { span.End(err) }()
	e.mu.RLock()
	cfg = station.SavedConfiguration{
		ID:         e.newID(),
		Name:       name,
		CreatedAt:  e.nowFn().Truncate(time.Millisecond),
		Modules:    station.CloneModules(e.modules),
		Parameters: e.params,
		VehicleID:  e.vehicle.ID,
		Metrics:    e.metrics,
	}
	e.mu.RUnlock()

	if err = e.snapshots.Save(cfg); err != nil {
		e.observe(ctx, OpSaveSnapshot, false, started)
		return station.SavedConfiguration{}, fmt.Errorf("save snapshot: %w", err)
	}
	e.observe(ctx, OpSaveSnapshot, true, started)
	return cfg, nil
}

// DeleteSnapshot removes a saved configuration. Deleting an unknown id is
// a tolerated no-op.
func (e *Engine) DeleteSnapshot(ctx context.Context, id string) (err error) {
	started := e.nowFn()
	ctx, span := e.tracer.Start(ctx, string(OpDeleteSnapshot))
	defer func() { span.End(err) }()
	if _, err = e.snapshots.Delete(id); err != nil {
		e.observe(ctx, OpDeleteSnapshot, false, started)
		return fmt.Errorf("delete snapshot: %w", err)
	}
	e.observe(ctx, OpDeleteSnapshot, true, started)
	return nil
}

// LoadSnapshot restores the module set, financial parameters, and vehicle
// from a saved configuration, then rederives the metrics. Persisted metrics
// are treated as advisory and never trusted over a fresh computation.
func (e *Engine) LoadSnapshot(ctx context.Context, id string) (err error) {
	started := e.nowFn()
	ctx, span := e.tracer.Start(ctx, string(OpLoadSnapshot))
	defer func() { span.End(err) }()

	cfg, ok := e.snapshots.Get(id)
	if !ok {
		e.observe(ctx, OpLoadSnapshot, false, started)
		return fmt.Errorf("snapshot %q not found", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	previous := e.modules
	e.modules = station.CloneModules(cfg.Modules)
	e.params = cfg.Parameters
	e.vehicle = station.VehicleByID(cfg.VehicleID)
	if err := e.recompute(); err != nil {
		e.modules = previous
		e.observe(ctx, OpLoadSnapshot, false, started)
		return err
	}

	e.observe(ctx, OpLoadSnapshot, true, started)
	e.notify(OpLoadSnapshot)
	return nil
}

// Snapshots lists all saved configurations, newest first.
func (e *Engine) Snapshots() []station.SavedConfiguration {
	return e.snapshots.List()
}
