package engine

import (
	"context"
	"testing"
	"time"

	"stationforge/pkg/station"
)

func TestSnapshotRoundTrip(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 589_793_000, time.UTC)
	e := newTestEngine(t, WithNowFunc(func() time.Time { return fixed }))
	ctx := context.Background()

	if res, err := e.Install(ctx, 0, station.KindAirlock); err != nil || !res.Valid {
		t.Fatalf("install failed: %+v %v", res, err)
	}
	if res, err := e.Install(ctx, 1, station.KindLab); err != nil || !res.Valid {
		t.Fatalf("install failed: %+v %v", res, err)
	}
	if err := e.SetFinancialParameter(ctx, ParamRevenueMultiplier, 1.5); err != nil {
		t.Fatalf("set parameter: %v", err)
	}

	cfg, err := e.SaveSnapshot(ctx, "lab outpost")
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if cfg.ID == "" {
		t.Fatal("snapshot id missing")
	}
	if cfg.Name != "lab outpost" {
		t.Fatalf("name = %q", cfg.Name)
	}
	if !cfg.CreatedAt.Equal(fixed.Truncate(time.Millisecond)) {
		t.Fatalf("created at = %v", cfg.CreatedAt)
	}
	if len(cfg.Modules) != 2 {
		t.Fatalf("snapshot modules = %+v", cfg.Modules)
	}
	if cfg.Metrics.MonthlyRevenue != 150_000 {
		t.Fatalf("snapshot revenue = %v, want 150000", cfg.Metrics.MonthlyRevenue)
	}

	// Diverge, then restore.
	if err := e.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := e.SetFinancialParameter(ctx, ParamRevenueMultiplier, 1.0); err != nil {
		t.Fatalf("set parameter: %v", err)
	}

	if err := e.LoadSnapshot(ctx, cfg.ID); err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(e.Modules()) != 2 {
		t.Fatalf("restored modules = %+v", e.Modules())
	}
	if e.Parameters().RevenueMultiplier != 1.5 {
		t.Fatalf("restored multiplier = %v", e.Parameters().RevenueMultiplier)
	}
	// Metrics are recomputed on load, not trusted from the payload.
	if e.Metrics().MonthlyRevenue != 150_000 {
		t.Fatalf("restored revenue = %v", e.Metrics().MonthlyRevenue)
	}
}

func TestLoadSnapshotUnknownID(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadSnapshot(context.Background(), "no-such-snapshot"); err == nil {
		t.Fatal("expected error for unknown snapshot")
	}
}

func TestDeleteSnapshot(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	cfg, err := e.SaveSnapshot(ctx, "keeper")
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if got := len(e.Snapshots()); got != 1 {
		t.Fatalf("snapshots = %d, want 1", got)
	}

	if err := e.DeleteSnapshot(ctx, cfg.ID); err != nil {
		t.Fatalf("delete snapshot: %v", err)
	}
	if got := len(e.Snapshots()); got != 0 {
		t.Fatalf("snapshots = %d, want 0", got)
	}

	// Deleting again is tolerated.
	if err := e.DeleteSnapshot(ctx, cfg.ID); err != nil {
		t.Fatalf("delete missing snapshot: %v", err)
	}
}

func TestSnapshotEventNotifiesOnLoad(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	cfg, err := e.SaveSnapshot(ctx, "baseline")
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	var ops []Op
	defer e.Subscribe(func(ev Event) { ops = append(ops, ev.Op) })()

	if err := e.LoadSnapshot(ctx, cfg.ID); err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(ops) != 1 || ops[0] != OpLoadSnapshot {
		t.Fatalf("ops = %v, want [load_snapshot]", ops)
	}
}
