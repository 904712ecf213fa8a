package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stationforge/pkg/station"
)

// StationCollector bundles Prometheus metrics for the engine: operation
// counters and latencies plus gauges mirroring the current station state.
// It fulfills MetricsRecorder.
type StationCollector struct {
	gatherer prometheus.Gatherer

	OpsTotal   *prometheus.CounterVec
	OpDuration *prometheus.HistogramVec

	TotalMass       prometheus.Gauge
	PowerGeneration prometheus.Gauge
	PowerDraw       prometheus.Gauge
	InstalledCount  prometheus.Gauge
	NetPresentValue prometheus.Gauge
}

// NewStationCollector registers the engine metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewStationCollector(reg prometheus.Registerer) (*StationCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "station_ops_total",
		Help: "Total number of engine operations, labeled by operation and status.",
	}, []string{"op", "status"})
	if err := reg.Register(ops); err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "station_op_duration_seconds",
		Help:    "Engine operation latency in seconds.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}, []string{"op"})
	if err := reg.Register(durations); err != nil {
		return nil, err
	}

	mass := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "station_total_mass_kg",
		Help: "Current station mass including the hub.",
	})
	if err := reg.Register(mass); err != nil {
		return nil, err
	}
	gen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "station_power_generation_kw",
		Help: "Current power generation capacity.",
	})
	if err := reg.Register(gen); err != nil {
		return nil, err
	}
	draw := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "station_power_continuous_kw",
		Help: "Current continuous power draw.",
	})
	if err := reg.Register(draw); err != nil {
		return nil, err
	}
	installed := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "station_installed_modules",
		Help: "Number of installed modules, excluding the hub.",
	})
	if err := reg.Register(installed); err != nil {
		return nil, err
	}
	npv := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "station_net_present_value",
		Help: "Ten-year net present value of the current configuration.",
	})
	if err := reg.Register(npv); err != nil {
		return nil, err
	}

	return &StationCollector{
		gatherer:        gatherer,
		OpsTotal:        ops,
		OpDuration:      durations,
		TotalMass:       mass,
		PowerGeneration: gen,
		PowerDraw:       draw,
		InstalledCount:  installed,
		NetPresentValue: npv,
	}, nil
}

// Observe implements MetricsRecorder.
func (c *StationCollector) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	status := "error"
	if success {
		status = "success"
	}
	c.OpsTotal.WithLabelValues(operation, status).Inc()
	c.OpDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateStation refreshes the state gauges from freshly derived metrics.
func (c *StationCollector) UpdateStation(m station.Metrics, moduleCount int) {
	c.TotalMass.Set(m.TotalMass)
	c.PowerGeneration.Set(m.PowerGeneration)
	c.PowerDraw.Set(m.PowerContinuous)
	c.InstalledCount.Set(float64(moduleCount))
	c.NetPresentValue.Set(m.NetPresentValue)
}

// Handler exposes the collector's gatherer over HTTP.
func (c *StationCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
