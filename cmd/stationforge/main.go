// Command stationforge evaluates a station configuration and prints the
// derived metrics, OPEX breakdown, and advisory report as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"stationforge/internal/analysis"
	"stationforge/internal/blob"
	"stationforge/internal/engine"
	"stationforge/internal/observability"
	"stationforge/internal/persistence"
	"stationforge/internal/snapshot"
	"stationforge/pkg/station"
)

var exitFunc = os.Exit

type options struct {
	preset     string
	vehicle    string
	discount   float64
	multiplier float64
	save       string
	archive    bool
	list       bool
	metricsOut string
}

type output struct {
	Modules []station.InstalledModule `json:"modules"`
	Metrics station.Metrics           `json:"metrics"`
	OPEX    station.OPEXBreakdown     `json:"opex"`
	Report  analysis.Report           `json:"report"`
}

// main runs the command-line interface using the program arguments and exits
// the process with the status code returned by cli.
func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("stationforge", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.preset, "preset", "", "apply a preset configuration (research, manufacturing, data, service, balanced)")
	fs.StringVar(&opts.vehicle, "vehicle", station.DefaultVehicleID, "launch vehicle id")
	fs.Float64Var(&opts.discount, "discount", 0.10, "annual discount rate")
	fs.Float64Var(&opts.multiplier, "multiplier", 1.0, "revenue multiplier")
	fs.StringVar(&opts.save, "save", "", "save the configuration as a named snapshot")
	fs.BoolVar(&opts.archive, "archive", false, "also archive the saved snapshot to the blob store")
	fs.BoolVar(&opts.list, "list-snapshots", false, "list saved snapshots instead of evaluating")
	fs.StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus metrics to this file before exiting")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := run(opts, stdout); err != nil {
		if _, writeErr := fmt.Fprintf(stderr, "stationforge: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	return 0
}

func run(opts options, stdout io.Writer) error {
	store, err := persistence.Open()
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}

	engineOpts := []engine.Option{engine.WithSnapshotStore(store)}
	var reg *prometheus.Registry
	var collector *observability.StationCollector
	if opts.metricsOut != "" {
		reg = prometheus.NewRegistry()
		collector, err = observability.NewStationCollector(reg)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		engineOpts = append(engineOpts, engine.WithMetricsRecorder(collector))
	}

	e, err := engine.New(engineOpts...)
	if err != nil {
		return err
	}
	if collector != nil {
		defer engine.AttachUpdater(e, collector)()
	}
	ctx := context.Background()

	if opts.list {
		return printJSON(stdout, e.Snapshots())
	}

	if err := e.SetLaunchVehicle(ctx, opts.vehicle); err != nil {
		return err
	}
	if err := e.SetFinancialParameter(ctx, engine.ParamDiscountRate, opts.discount); err != nil {
		return err
	}
	if err := e.SetFinancialParameter(ctx, engine.ParamRevenueMultiplier, opts.multiplier); err != nil {
		return err
	}
	if opts.preset != "" {
		if err := e.ApplyPreset(ctx, opts.preset); err != nil {
			return err
		}
	}
	if opts.save != "" {
		cfg, err := e.SaveSnapshot(ctx, opts.save)
		if err != nil {
			return err
		}
		if opts.archive {
			blobStore, err := blob.Open(ctx)
			if err != nil {
				return fmt.Errorf("open blob store: %w", err)
			}
			if _, err := snapshot.NewArchiver(blobStore).Archive(ctx, cfg); err != nil {
				return err
			}
		}
	}

	out := output{
		Modules: e.Modules(),
		Metrics: e.Metrics(),
		OPEX:    e.OPEX(),
		Report:  analysis.BuildReport(e.Modules(), e.Metrics(), e.OPEX()),
	}
	if err := printJSON(stdout, out); err != nil {
		return err
	}
	if reg != nil {
		if err := writeMetrics(opts.metricsOut, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// writeMetrics dumps the gathered registry in text exposition format, the
// way node_exporter textfile collectors are fed.
func writeMetrics(path string, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			_ = f.Close()
			return err
		}
	}
	return f.Close()
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
