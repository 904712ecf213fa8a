package analysis

import (
	"testing"

	"stationforge/pkg/station"
)

func findWarning(warnings []SystemWarning, id string) (SystemWarning, bool) {
	for _, w := range warnings {
		if w.ID == id {
			return w, true
		}
	}
	return SystemWarning{}, false
}

func TestAnalyzeWarningsOperatingAtLoss(t *testing.T) {
	m := station.Metrics{
		MonthlyRevenue:  500_000,
		PowerGeneration: 100,
		PowerContinuous: 40,
		ThermalCapacity: 100,
		ThermalLoad:     40,
	}
	opex := station.OPEXBreakdown{AnnualTotal: 20_000_000}

	warnings, err := AnalyzeWarnings(nil, m, opex)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	loss, ok := findWarning(warnings, "opex-exceeds-revenue")
	if !ok {
		t.Fatalf("expected opex-exceeds-revenue in %+v", warnings)
	}
	if loss.Severity != SeverityCritical || loss.Category != CategoryEconomics {
		t.Fatalf("unexpected classification: %+v", loss)
	}
	// 6M revenue vs 20M OPEX is also below 50% coverage.
	low, ok := findWarning(warnings, "revenue-critically-low")
	if !ok {
		t.Fatal("expected revenue-critically-low")
	}
	if low.Value != "30% coverage" {
		t.Fatalf("coverage value = %q", low.Value)
	}
}

func TestAnalyzeWarningsPowerDeficit(t *testing.T) {
	m := station.Metrics{
		PowerGeneration: 60,
		PowerContinuous: 75.5,
		ThermalCapacity: 100,
		ThermalLoad:     40,
	}
	warnings, err := AnalyzeWarnings(nil, m, station.OPEXBreakdown{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	deficit, ok := findWarning(warnings, "power-deficit")
	if !ok {
		t.Fatalf("expected power-deficit in %+v", warnings)
	}
	if deficit.Value != "-15.5 kW" {
		t.Fatalf("deficit value = %q", deficit.Value)
	}
	if _, ok := findWarning(warnings, "power-margin-low"); ok {
		t.Fatal("deficit and low-margin must not both fire")
	}
}

func TestAnalyzeWarningsPowerMarginLow(t *testing.T) {
	m := station.Metrics{
		PowerGeneration: 100,
		PowerContinuous: 90,
		ThermalCapacity: 100,
		ThermalLoad:     40,
	}
	warnings, err := AnalyzeWarnings(nil, m, station.OPEXBreakdown{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	margin, ok := findWarning(warnings, "power-margin-low")
	if !ok {
		t.Fatalf("expected power-margin-low in %+v", warnings)
	}
	if margin.Severity != SeverityWarning {
		t.Fatalf("severity = %s", margin.Severity)
	}
}

func TestAnalyzeWarningsCrewSafety(t *testing.T) {
	// Lab needs 2 crew; one airlock, no quarters.
	modules := []station.InstalledModule{
		station.NewInstalledModule(0, station.KindLab),
		station.NewInstalledModule(1, station.KindAirlock),
	}
	m := station.Metrics{
		PowerGeneration: 100,
		PowerContinuous: 40,
		ThermalCapacity: 100,
		ThermalLoad:     40,
	}
	warnings, err := AnalyzeWarnings(modules, m, station.OPEXBreakdown{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	single, ok := findWarning(warnings, "single-airlock")
	if !ok {
		t.Fatalf("expected single-airlock in %+v", warnings)
	}
	if single.Message != "Only one airlock for 2 crew. No redundancy for EVA." {
		t.Fatalf("unexpected message %q", single.Message)
	}
	if _, ok := findWarning(warnings, "no-quarters"); !ok {
		t.Fatal("expected no-quarters")
	}
	if _, ok := findWarning(warnings, "no-airlock"); ok {
		t.Fatal("no-airlock must not fire when an airlock exists")
	}
}

func TestAnalyzeWarningsNoAirlock(t *testing.T) {
	modules := []station.InstalledModule{
		station.NewInstalledModule(0, station.KindHydro),
	}
	m := station.Metrics{
		PowerGeneration: 100,
		PowerContinuous: 40,
		ThermalCapacity: 100,
		ThermalLoad:     40,
	}
	warnings, err := AnalyzeWarnings(modules, m, station.OPEXBreakdown{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if _, ok := findWarning(warnings, "no-airlock"); !ok {
		t.Fatalf("expected no-airlock in %+v", warnings)
	}
}

func TestAnalyzeWarningsThermalOverload(t *testing.T) {
	m := station.Metrics{
		PowerGeneration: 100,
		PowerContinuous: 40,
		ThermalCapacity: 50,
		ThermalLoad:     62.5,
	}
	warnings, err := AnalyzeWarnings(nil, m, station.OPEXBreakdown{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	overload, ok := findWarning(warnings, "thermal-overload")
	if !ok {
		t.Fatalf("expected thermal-overload in %+v", warnings)
	}
	if overload.Value != "-12.5 kW deficit" {
		t.Fatalf("overload value = %q", overload.Value)
	}
}

func TestAnalyzeWarningsSinglePowerSource(t *testing.T) {
	modules := []station.InstalledModule{
		station.NewInstalledModule(0, station.KindPower),
		station.NewInstalledModule(1, station.KindCargo),
		station.NewInstalledModule(2, station.KindData),
		station.NewInstalledModule(3, station.KindRepair),
	}
	m := station.Metrics{
		PowerGeneration: 200,
		PowerContinuous: 50,
		ThermalCapacity: 200,
		ThermalLoad:     50,
	}
	warnings, err := AnalyzeWarnings(modules, m, station.OPEXBreakdown{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if _, ok := findWarning(warnings, "single-power"); !ok {
		t.Fatalf("expected single-power in %+v", warnings)
	}
}

func TestAnalyzeWarningsSortedCriticalFirst(t *testing.T) {
	// Power deficit (critical) plus single-power (warning).
	modules := []station.InstalledModule{
		station.NewInstalledModule(0, station.KindPower),
		station.NewInstalledModule(1, station.KindCargo),
		station.NewInstalledModule(2, station.KindData),
		station.NewInstalledModule(3, station.KindRepair),
	}
	m := station.Metrics{
		PowerGeneration: 60,
		PowerContinuous: 80,
		ThermalCapacity: 200,
		ThermalLoad:     50,
	}
	warnings, err := AnalyzeWarnings(modules, m, station.OPEXBreakdown{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(warnings) < 2 {
		t.Fatalf("expected at least two warnings, got %+v", warnings)
	}
	for i := 1; i < len(warnings); i++ {
		if severityRank[warnings[i-1].Severity] > severityRank[warnings[i].Severity] {
			t.Fatalf("warnings not sorted by severity: %+v", warnings)
		}
	}

	counts := CountWarnings(warnings)
	if counts.Total != len(warnings) {
		t.Fatalf("total = %d, want %d", counts.Total, len(warnings))
	}
	if counts.Critical == 0 || counts.Warning == 0 {
		t.Fatalf("expected mixed severities: %+v", counts)
	}
}
