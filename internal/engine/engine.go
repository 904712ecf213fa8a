// Package engine owns the mutable station state: the installed module set,
// the financial parameters, and the launch vehicle choice. Every mutation
// runs validate-mutate-recompute as one indivisible step and then notifies
// subscribers with the fresh metrics.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"stationforge/internal/observability"
	"stationforge/internal/persistence/memory"
	"stationforge/pkg/station"
)

// Op identifies a state-changing engine operation in events and metrics.
type Op string

// Engine operations reported to subscribers and the metrics recorder.
const (
	OpInstall      Op = "install"
	OpRemove       Op = "remove"
	OpReset        Op = "reset"
	OpSetParameter Op = "set_parameter"
	OpSetVehicle   Op = "set_vehicle"
	OpApplyPreset  Op = "apply_preset"
	OpLoadSnapshot Op = "load_snapshot"
)

// Event is delivered to subscribers after every completed mutation.
type Event struct {
	Op      Op
	Metrics station.Metrics
	Modules []station.InstalledModule
}

// Engine is the state owner. It is safe for concurrent use, though the
// intended contract is single-threaded: operations run to completion before
// the next is accepted.
type Engine struct {
	mu sync.RWMutex

	rules   []station.InstallRule
	modules []station.InstalledModule
	params  station.FinancialParameters
	vehicle station.LaunchVehicle

	metrics station.Metrics
	opex    station.OPEXBreakdown

	snapshots station.SnapshotStore
	recorder  observability.MetricsRecorder
	tracer    observability.Tracer
	nowFn     func() time.Time
	newID     func() string

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// Option configures an Engine.
type Option func(*Engine)

// WithSnapshotStore routes snapshot operations to the provided store
// instead of the default in-memory one.
func WithSnapshotStore(store station.SnapshotStore) Option {
	return func(e *Engine) { e.snapshots = store }
}

// WithMetricsRecorder wires an operation recorder into the engine.
func WithMetricsRecorder(rec observability.MetricsRecorder) Option {
	return func(e *Engine) { e.recorder = rec }
}

// WithTracer wires a tracer that spans every engine operation.
func WithTracer(tracer observability.Tracer) Option {
	return func(e *Engine) { e.tracer = tracer }
}

// WithInstallRules overrides the built-in install precondition set.
func WithInstallRules(rules []station.InstallRule) Option {
	return func(e *Engine) { e.rules = rules }
}

// WithNowFunc overrides the clock used for snapshot timestamps.
func WithNowFunc(now func() time.Time) Option {
	return func(e *Engine) { e.nowFn = now }
}

// New constructs an engine at the hub-only baseline with default financial
// parameters and the default launch vehicle.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		rules:     station.DefaultInstallRules(),
		params:    station.DefaultFinancialParameters(),
		vehicle:   station.VehicleByID(station.DefaultVehicleID),
		snapshots: memory.NewSnapshotStore(),
		recorder:  observability.NopRecorder{},
		tracer:    observability.NopTracer{},
		nowFn:     func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
		subs:      make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.recompute(); err != nil {
		return nil, err
	}
	return e, nil
}

// recompute rederives metrics and the OPEX breakdown from the current
// module set, parameters, and vehicle. Callers must hold e.mu.
func (e *Engine) recompute() error {
	m, err := station.Aggregate(e.modules)
	if err != nil {
		return err
	}
	e.metrics, e.opex = station.EvaluateFinancials(m, e.params, e.vehicle)
	return nil
}

func (e *Engine) observe(ctx context.Context, op Op, success bool, started time.Time) {
	e.recorder.Observe(ctx, string(op), success, time.Since(started))
}

// Install validates and places a module of the given kind into bay.
// Constraint violations come back as a ValidationResult; an out-of-range
// bay, the hub kind, or a kind missing from the catalog is an error.
func (e *Engine) Install(ctx context.Context, bay int, kind station.ModuleKind) (res station.ValidationResult, err error) {
	started := e.nowFn()
	ctx, span := e.tracer.Start(ctx, string(OpInstall))
	defer func() { span.End(err) }()
	e.mu.Lock()
	defer e.mu.Unlock()

	if !station.ValidBay(bay) {
		e.observe(ctx, OpInstall, false, started)
		return station.ValidationResult{}, fmt.Errorf("bay %d out of range [0,%d)", bay, station.BayCount)
	}
	if kind == station.KindHub {
		e.observe(ctx, OpInstall, false, started)
		return station.ValidationResult{}, fmt.Errorf("the hub is fixed and cannot be installed")
	}
	def, err := station.Definition(kind)
	if err != nil {
		e.observe(ctx, OpInstall, false, started)
		return station.ValidationResult{}, err
	}

	res = station.ValidateInstall(e.rules, station.InstallContext{
		Bay:        bay,
		Definition: def,
		Metrics:    e.metrics,
		Modules:    e.modules,
	})
	if !res.Valid {
		e.observe(ctx, OpInstall, false, started)
		return res, nil
	}

	e.modules = append(e.modules, station.NewInstalledModule(bay, kind))
	if err := e.recompute(); err != nil {
		e.modules = e.modules[:len(e.modules)-1]
		e.observe(ctx, OpInstall, false, started)
		return station.ValidationResult{}, err
	}

	e.observe(ctx, OpInstall, true, started)
	e.notify(OpInstall)
	return res, nil
}

// Remove deletes the module in bay. An empty bay is a tolerated no-op.
// Remaining modules whose prerequisites include the removed kind are
// flipped inactive; the cascade is one level deep and does not re-check
// dependents of the newly inactive modules.
func (e *Engine) Remove(ctx context.Context, bay int) (err error) {
	started := e.nowFn()
	ctx, span := e.tracer.Start(ctx, string(OpRemove))
	defer func() { span.End(err) }()
	e.mu.Lock()
	defer e.mu.Unlock()

	removed, ok := station.ModuleAt(e.modules, bay)
	if !ok {
		e.observe(ctx, OpRemove, true, started)
		return nil
	}

	remaining := make([]station.InstalledModule, 0, len(e.modules)-1)
	for _, m := range e.modules {
		if m.Bay == bay {
			continue
		}
		remaining = append(remaining, m)
	}

	for i, m := range remaining {
		def, err := station.Definition(m.Kind)
		if err != nil {
			e.observe(ctx, OpRemove, false, started)
			return err
		}
		for _, req := range def.Requires {
			if req == removed.Kind {
				remaining[i].Status = station.StatusInactive
				break
			}
		}
	}

	e.modules = remaining
	if err := e.recompute(); err != nil {
		e.observe(ctx, OpRemove, false, started)
		return err
	}

	e.observe(ctx, OpRemove, true, started)
	e.notify(OpRemove)
	return nil
}

// Reset clears the station back to the hub-only baseline. Financial
// parameters and the vehicle choice are kept.
func (e *Engine) Reset(ctx context.Context) (err error) {
	started := e.nowFn()
	ctx, span := e.tracer.Start(ctx, string(OpReset))
	defer func() { span.End(err) }()
	e.mu.Lock()
	defer e.mu.Unlock()

	e.modules = nil
	if err := e.recompute(); err != nil {
		e.observe(ctx, OpReset, false, started)
		return err
	}

	e.observe(ctx, OpReset, true, started)
	e.notify(OpReset)
	return nil
}

// Financial parameter names accepted by SetFinancialParameter.
const (
	ParamDiscountRate      = "discountRate"
	ParamRevenueMultiplier = "revenueMultiplier"
)

// SetFinancialParameter updates one financial knob by name and recomputes
// the monetary metrics. The module set is untouched.
func (e *Engine) SetFinancialParameter(ctx context.Context, name string, value float64) (err error) {
	started := e.nowFn()
	ctx, span := e.tracer.Start(ctx, string(OpSetParameter))
	defer func() { span.End(err) }()
	e.mu.Lock()
	defer e.mu.Unlock()

	switch name {
	case ParamDiscountRate:
		e.params.DiscountRate = value
	case ParamRevenueMultiplier:
		e.params.RevenueMultiplier = value
	default:
		e.observe(ctx, OpSetParameter, false, started)
		return fmt.Errorf("unknown financial parameter %q", name)
	}

	if err := e.recompute(); err != nil {
		e.observe(ctx, OpSetParameter, false, started)
		return err
	}

	e.observe(ctx, OpSetParameter, true, started)
	e.notify(OpSetParameter)
	return nil
}

// SetLaunchVehicle selects the launch vehicle by id. Unknown or unavailable
// ids fall back to the default vehicle rather than failing.
func (e *Engine) SetLaunchVehicle(ctx context.Context, id string) (err error) {
	started := e.nowFn()
	ctx, span := e.tracer.Start(ctx, string(OpSetVehicle))
	defer func() { span.End(err) }()
	e.mu.Lock()
	defer e.mu.Unlock()

	e.vehicle = station.VehicleByID(id)
	if err := e.recompute(); err != nil {
		e.observe(ctx, OpSetVehicle, false, started)
		return err
	}

	e.observe(ctx, OpSetVehicle, true, started)
	e.notify(OpSetVehicle)
	return nil
}

// ApplyPreset replaces the module set with a curated configuration. Preset
// modules are hydrated directly, the way a snapshot load is: bay and
// catalog validity are enforced, resource constraints are not re-checked.
func (e *Engine) ApplyPreset(ctx context.Context, id string) (err error) {
	started := e.nowFn()
	ctx, span := e.tracer.Start(ctx, string(OpApplyPreset))
	defer func() { span.End(err) }()
	e.mu.Lock()
	defer e.mu.Unlock()

	preset, ok := station.PresetByID(id)
	if !ok {
		e.observe(ctx, OpApplyPreset, false, started)
		return fmt.Errorf("unknown preset %q", id)
	}

	modules := make([]station.InstalledModule, 0, len(preset.Modules))
	for _, pm := range preset.Modules {
		if !station.ValidBay(pm.Bay) {
			e.observe(ctx, OpApplyPreset, false, started)
			return fmt.Errorf("preset %q: bay %d out of range", id, pm.Bay)
		}
		if _, occupied := station.ModuleAt(modules, pm.Bay); occupied {
			e.observe(ctx, OpApplyPreset, false, started)
			return fmt.Errorf("preset %q: bay %d assigned twice", id, pm.Bay)
		}
		if _, err := station.Definition(pm.Kind); err != nil {
			e.observe(ctx, OpApplyPreset, false, started)
			return err
		}
		modules = append(modules, station.NewInstalledModule(pm.Bay, pm.Kind))
	}

	previous := e.modules
	e.modules = modules
	if err := e.recompute(); err != nil {
		e.modules = previous
		e.observe(ctx, OpApplyPreset, false, started)
		return err
	}

	e.observe(ctx, OpApplyPreset, true, started)
	e.notify(OpApplyPreset)
	return nil
}

// Metrics returns the current derived station metrics.
func (e *Engine) Metrics() station.Metrics {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.metrics
}

// OPEX returns the current operating-expenditure breakdown.
func (e *Engine) OPEX() station.OPEXBreakdown {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.opex
}

// Modules returns a copy of the installed module list.
func (e *Engine) Modules() []station.InstalledModule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return station.CloneModules(e.modules)
}

// Parameters returns the current financial parameters.
func (e *Engine) Parameters() station.FinancialParameters {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params
}

// Vehicle returns the currently selected launch vehicle.
func (e *Engine) Vehicle() station.LaunchVehicle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vehicle
}

// StationUpdater consumes the refreshed station state after each mutation.
// *observability.StationCollector satisfies it.
type StationUpdater interface {
	UpdateStation(m station.Metrics, moduleCount int)
}

// AttachUpdater pushes the current state to the updater immediately and
// again after every completed mutation, so state gauges track each
// recompute. The returned function detaches it.
func AttachUpdater(e *Engine, u StationUpdater) func() {
	u.UpdateStation(e.Metrics(), len(e.Modules()))
	return e.Subscribe(func(ev Event) {
		u.UpdateStation(ev.Metrics, len(ev.Modules))
	})
}

// Subscribe registers a listener invoked synchronously after every
// completed mutation. The returned function unsubscribes it.
func (e *Engine) Subscribe(fn func(Event)) func() {
	e.subMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.subMu.Unlock()

	return func() {
		e.subMu.Lock()
		delete(e.subs, id)
		e.subMu.Unlock()
	}
}

// notify delivers the current state to subscribers. Callers must hold e.mu.
func (e *Engine) notify(op Op) {
	event := Event{
		Op:      op,
		Metrics: e.metrics,
		Modules: station.CloneModules(e.modules),
	}

	e.subMu.Lock()
	listeners := make([]func(Event), 0, len(e.subs))
	for _, fn := range e.subs {
		listeners = append(listeners, fn)
	}
	e.subMu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
}
