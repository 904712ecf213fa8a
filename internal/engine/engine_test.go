package engine

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"stationforge/internal/observability"
	"stationforge/pkg/station"
)

type captureRecorder struct {
	mu      sync.Mutex
	entries []captureEntry
}

type captureEntry struct {
	op      string
	success bool
}

func (r *captureRecorder) Observe(_ context.Context, operation string, success bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, captureEntry{op: operation, success: success})
}

func (r *captureRecorder) last(t *testing.T) captureEntry {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		t.Fatal("no observations recorded")
	}
	return r.entries[len(r.entries)-1]
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestNewHubOnlyBaseline(t *testing.T) {
	e := newTestEngine(t)

	m := e.Metrics()
	if m.TotalMass != 25_000 {
		t.Fatalf("mass = %v, want 25000", m.TotalMass)
	}
	if m.PowerGeneration != 60 || m.PowerContinuous != 2 {
		t.Fatalf("power = %v gen / %v draw", m.PowerGeneration, m.PowerContinuous)
	}
	if m.CapitalCost != 500_000_000 {
		t.Fatalf("capex = %v", m.CapitalCost)
	}
	// 25 t on a Falcon 9 takes two flights.
	if m.LaunchCost != 164_000_000 {
		t.Fatalf("launch cost = %v, want 164000000", m.LaunchCost)
	}
	if m.TotalInvestment != 664_000_000 {
		t.Fatalf("investment = %v, want 664000000", m.TotalInvestment)
	}
	if m.MonthlyRevenue != 0 {
		t.Fatalf("revenue = %v, want 0", m.MonthlyRevenue)
	}
	if !math.IsNaN(m.InternalRateOfReturn) {
		t.Fatalf("IRR = %v, want NaN for zero revenue", m.InternalRateOfReturn)
	}
	if m.BreakEvenMonths != station.BreakEvenNever {
		t.Fatalf("break-even = %d, want never", m.BreakEvenMonths)
	}
	if len(e.Modules()) != 0 {
		t.Fatalf("modules = %+v, want none", e.Modules())
	}
	if e.Vehicle().ID != station.DefaultVehicleID {
		t.Fatalf("vehicle = %s", e.Vehicle().ID)
	}
}

func TestInstallArgumentErrors(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if _, err := e.Install(ctx, -1, station.KindCargo); err == nil {
		t.Fatal("expected error for negative bay")
	}
	if _, err := e.Install(ctx, station.BayCount, station.KindCargo); err == nil {
		t.Fatal("expected error for bay past the grid")
	}
	if _, err := e.Install(ctx, 0, station.KindHub); err == nil {
		t.Fatal("expected error installing the hub")
	}
	if _, err := e.Install(ctx, 0, station.ModuleKind("warpdrive")); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if len(e.Modules()) != 0 {
		t.Fatalf("failed installs must not mutate state: %+v", e.Modules())
	}
}

func TestInstallMissingDependencyIsNotAnError(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Install(context.Background(), 0, station.KindLab)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if res.Valid {
		t.Fatal("lab without airlock must be rejected")
	}
	if res.Reason != station.ReasonMissingDependency {
		t.Fatalf("reason = %s, want MissingDependency", res.Reason)
	}
	if len(e.Modules()) != 0 {
		t.Fatal("rejected install must not place a module")
	}
}

func TestInstallBayOccupied(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if res, err := e.Install(ctx, 0, station.KindAirlock); err != nil || !res.Valid {
		t.Fatalf("airlock install failed: %+v %v", res, err)
	}
	res, err := e.Install(ctx, 0, station.KindCargo)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if res.Valid || res.Reason != station.ReasonBayOccupied {
		t.Fatalf("expected BayOccupied, got %+v", res)
	}
}

func TestInstallUpdatesMetrics(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if res, err := e.Install(ctx, 0, station.KindAirlock); err != nil || !res.Valid {
		t.Fatalf("airlock install failed: %+v %v", res, err)
	}
	if res, err := e.Install(ctx, 1, station.KindLab); err != nil || !res.Valid {
		t.Fatalf("lab install failed: %+v %v", res, err)
	}

	m := e.Metrics()
	if m.TotalMass != 43_000 {
		t.Fatalf("mass = %v, want 43000", m.TotalMass)
	}
	if m.MonthlyRevenue != 100_000 {
		t.Fatalf("revenue = %v, want 100000", m.MonthlyRevenue)
	}
	if m.CrewRequired != 2 {
		t.Fatalf("crew = %d, want 2", m.CrewRequired)
	}
	if !e.OPEX().Crewed {
		t.Fatal("station with crew must use the crewed OPEX model")
	}
}

func TestRemoveCascadeDeactivatesDependents(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if res, err := e.Install(ctx, 0, station.KindAirlock); err != nil || !res.Valid {
		t.Fatalf("airlock install failed: %+v %v", res, err)
	}
	if res, err := e.Install(ctx, 1, station.KindLab); err != nil || !res.Valid {
		t.Fatalf("lab install failed: %+v %v", res, err)
	}

	if err := e.Remove(ctx, 0); err != nil {
		t.Fatalf("remove: %v", err)
	}

	modules := e.Modules()
	if len(modules) != 1 {
		t.Fatalf("modules = %+v, want just the lab", modules)
	}
	if modules[0].Kind != station.KindLab || modules[0].Status != station.StatusInactive {
		t.Fatalf("lab should be inactive: %+v", modules[0])
	}

	m := e.Metrics()
	// Dormant hardware keeps its mass but stops earning and needing crew.
	if m.TotalMass != 37_000 {
		t.Fatalf("mass = %v, want 37000", m.TotalMass)
	}
	if m.MonthlyRevenue != 0 {
		t.Fatalf("revenue = %v, want 0", m.MonthlyRevenue)
	}
	if m.CrewRequired != 0 {
		t.Fatalf("crew = %d, want 0", m.CrewRequired)
	}
	// Inactive modules accrue half their catalog opex.
	if m.ModuleOperatingCost != 1_025_000 {
		t.Fatalf("module opex = %v, want 1025000", m.ModuleOperatingCost)
	}
}

func TestRemoveEmptyBayIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Remove(context.Background(), 5); err != nil {
		t.Fatalf("remove empty bay: %v", err)
	}
}

func TestResetRestoresBaseline(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if res, err := e.Install(ctx, 0, station.KindCargo); err != nil || !res.Valid {
		t.Fatalf("cargo install failed: %+v %v", res, err)
	}
	if err := e.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(e.Modules()) != 0 {
		t.Fatalf("modules after reset: %+v", e.Modules())
	}
	if e.Metrics().TotalMass != 25_000 {
		t.Fatalf("mass = %v, want hub baseline", e.Metrics().TotalMass)
	}
}

func TestSetFinancialParameter(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if res, err := e.Install(ctx, 0, station.KindCargo); err != nil || !res.Valid {
		t.Fatalf("cargo install failed: %+v %v", res, err)
	}
	before := e.Metrics().MonthlyRevenue

	if err := e.SetFinancialParameter(ctx, ParamRevenueMultiplier, 2.0); err != nil {
		t.Fatalf("set multiplier: %v", err)
	}
	if got := e.Metrics().MonthlyRevenue; got != before*2 {
		t.Fatalf("revenue = %v, want %v", got, before*2)
	}
	if e.Parameters().RevenueMultiplier != 2.0 {
		t.Fatalf("parameters = %+v", e.Parameters())
	}

	// With revenue below OPEX the net flow is negative, so a higher discount
	// rate shrinks the loss and raises NPV.
	if err := e.SetFinancialParameter(ctx, ParamDiscountRate, 0.05); err != nil {
		t.Fatalf("set rate: %v", err)
	}
	npvLow := e.Metrics().NetPresentValue
	if err := e.SetFinancialParameter(ctx, ParamDiscountRate, 0.20); err != nil {
		t.Fatalf("set rate: %v", err)
	}
	npvHigh := e.Metrics().NetPresentValue
	if npvHigh <= npvLow {
		t.Fatalf("npv at 20%% (%v) should exceed npv at 5%% (%v) for a loss-making station", npvHigh, npvLow)
	}

	if err := e.SetFinancialParameter(ctx, "warpFactor", 9); err == nil {
		t.Fatal("expected error for unknown parameter")
	}
}

func TestSetLaunchVehicle(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if err := e.SetLaunchVehicle(ctx, "falconHeavy"); err != nil {
		t.Fatalf("set vehicle: %v", err)
	}
	if e.Vehicle().ID != "falconHeavy" {
		t.Fatalf("vehicle = %s", e.Vehicle().ID)
	}
	// One Falcon Heavy flight lifts the hub.
	if got := e.Metrics().LaunchCost; got != 165_000_000 {
		t.Fatalf("launch cost = %v, want 165000000", got)
	}

	// Starship is not operational yet; selection falls back to the default.
	if err := e.SetLaunchVehicle(ctx, "starship"); err != nil {
		t.Fatalf("set vehicle: %v", err)
	}
	if e.Vehicle().ID != station.DefaultVehicleID {
		t.Fatalf("vehicle = %s, want fallback to %s", e.Vehicle().ID, station.DefaultVehicleID)
	}
}

func TestApplyPreset(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if err := e.ApplyPreset(ctx, "research"); err != nil {
		t.Fatalf("apply preset: %v", err)
	}
	modules := e.Modules()
	if len(modules) != 4 {
		t.Fatalf("modules = %+v, want 4", modules)
	}
	for _, m := range modules {
		if !m.Active() {
			t.Fatalf("preset module should hydrate active: %+v", m)
		}
	}
	if got := e.Metrics().CrewRequired; got != 4 {
		t.Fatalf("crew = %d, want 4", got)
	}

	if err := e.ApplyPreset(ctx, "megastructure"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	var events []Event
	unsubscribe := e.Subscribe(func(ev Event) { events = append(events, ev) })

	if res, err := e.Install(ctx, 0, station.KindAirlock); err != nil || !res.Valid {
		t.Fatalf("install failed: %+v %v", res, err)
	}
	if err := e.Remove(ctx, 0); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Op != OpInstall || events[1].Op != OpRemove {
		t.Fatalf("ops = %s, %s", events[0].Op, events[1].Op)
	}
	if len(events[0].Modules) != 1 {
		t.Fatalf("install event modules = %+v", events[0].Modules)
	}

	unsubscribe()
	if res, err := e.Install(ctx, 1, station.KindCargo); err != nil || !res.Valid {
		t.Fatalf("install failed: %+v %v", res, err)
	}
	if len(events) != 2 {
		t.Fatalf("unsubscribed listener still received events: %d", len(events))
	}
}

func TestOperationsAreObserved(t *testing.T) {
	rec := &captureRecorder{}
	e := newTestEngine(t, WithMetricsRecorder(rec))
	ctx := context.Background()

	if res, err := e.Install(ctx, 0, station.KindCargo); err != nil || !res.Valid {
		t.Fatalf("install failed: %+v %v", res, err)
	}
	if got := rec.last(t); got.op != string(OpInstall) || !got.success {
		t.Fatalf("observation = %+v", got)
	}

	if _, err := e.Install(ctx, -1, station.KindCargo); err == nil {
		t.Fatal("expected error")
	}
	if got := rec.last(t); got.op != string(OpInstall) || got.success {
		t.Fatalf("failed install should observe success=false: %+v", got)
	}
}

func TestOperationsAreTraced(t *testing.T) {
	tracer := observability.NewJSONTracer(nil)
	e := newTestEngine(t, WithTracer(tracer))
	ctx := context.Background()

	if res, err := e.Install(ctx, 0, station.KindCargo); err != nil || !res.Valid {
		t.Fatalf("install failed: %+v %v", res, err)
	}
	if err := e.SetFinancialParameter(ctx, "warpFactor", 2.0); err == nil {
		t.Fatal("expected error for unknown parameter")
	}

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("spans = %d, want 2", len(entries))
	}
	if entries[0].Operation != string(OpInstall) || entries[0].Status != "success" {
		t.Fatalf("install span = %+v", entries[0])
	}
	if entries[1].Operation != string(OpSetParameter) || entries[1].Status != "error" {
		t.Fatalf("set_parameter span = %+v", entries[1])
	}
	if entries[1].Error == "" {
		t.Fatal("failed span should carry the error message")
	}
}

type captureUpdater struct {
	mu      sync.Mutex
	metrics []station.Metrics
	counts  []int
}

func (u *captureUpdater) UpdateStation(m station.Metrics, moduleCount int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.metrics = append(u.metrics, m)
	u.counts = append(u.counts, moduleCount)
}

func TestAttachUpdaterTracksMutations(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	u := &captureUpdater{}

	detach := AttachUpdater(e, u)
	if len(u.counts) != 1 || u.counts[0] != 0 {
		t.Fatalf("initial push = %v, want hub-only count 0", u.counts)
	}
	if u.metrics[0].TotalMass != 25_000 {
		t.Fatalf("initial mass = %v, want 25000", u.metrics[0].TotalMass)
	}

	if res, err := e.Install(ctx, 0, station.KindCargo); err != nil || !res.Valid {
		t.Fatalf("install failed: %+v %v", res, err)
	}
	if len(u.counts) != 2 || u.counts[1] != 1 {
		t.Fatalf("post-install push = %v, want count 1", u.counts)
	}
	if u.metrics[1].TotalMass != 30_000 {
		t.Fatalf("post-install mass = %v, want 30000", u.metrics[1].TotalMass)
	}

	detach()
	if err := e.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(u.counts) != 2 {
		t.Fatalf("detached updater still called: %v", u.counts)
	}
}
