package analysis

import (
	"testing"

	"stationforge/pkg/station"
)

func TestBuildReportCoversAllPanels(t *testing.T) {
	modules := []station.InstalledModule{
		station.NewInstalledModule(0, station.KindAirlock),
		station.NewInstalledModule(1, station.KindLab),
		station.NewInstalledModule(2, station.KindPower),
	}
	m := station.Metrics{
		TotalMass:       80_000,
		PowerGeneration: 100,
		PowerContinuous: 40,
		ThermalCapacity: 120,
		ThermalLoad:     50,
		MonthlyRevenue:  100_000,
		CapitalCost:     500_000_000,
		LaunchCost:      100_000_000,
		NetPresentValue: -50_000_000,
	}
	opex := station.OPEXBreakdown{AnnualTotal: 30_000_000}

	report := BuildReport(modules, m, opex)

	if len(report.Reliability) != len(modules) {
		t.Fatalf("reliability rows = %d, want %d", len(report.Reliability), len(modules))
	}
	if report.StationReliability <= 0 || report.StationReliability >= 1 {
		t.Fatalf("station reliability = %v, want (0,1)", report.StationReliability)
	}
	if len(report.SolarDegradation) != 11 {
		t.Fatalf("solar degradation years = %d, want 11", len(report.SolarDegradation))
	}
	if report.RiskProfile.OverallDefense <= 0 {
		t.Fatalf("overall defense = %d", report.RiskProfile.OverallDefense)
	}
	if report.RiskLabel == "" {
		t.Fatal("risk label missing")
	}
	if report.WarningCounts.Total != len(report.Warnings) {
		t.Fatalf("warning counts %+v disagree with %d warnings", report.WarningCounts, len(report.Warnings))
	}
	// 1.2M annual revenue against 30M OPEX.
	if report.Viability.Verdict != VerdictNotViable {
		t.Fatalf("viability = %s, want not_viable", report.Viability.Verdict)
	}
	if report.Sustainability.Sustainable {
		t.Fatal("sustainability should be negative")
	}
	if report.StationKeeping.PropellantPerMonth <= 0 {
		t.Fatalf("station keeping propellant = %d", report.StationKeeping.PropellantPerMonth)
	}
	// Negative NPV should surface an optimization recommendation.
	if len(report.Recommendations) == 0 {
		t.Fatal("expected at least one recommendation")
	}
}

func TestBuildReportEmptyStation(t *testing.T) {
	report := BuildReport(nil, station.Metrics{PowerGeneration: 60, TotalMass: 25_000}, station.OPEXBreakdown{})
	if report.StationReliability != 1 {
		t.Fatalf("empty station reliability = %v, want 1", report.StationReliability)
	}
	if len(report.Redundancy) != 0 {
		t.Fatalf("unexpected redundancy issues: %+v", report.Redundancy)
	}
	if report.RiskLevel != RiskCritical {
		t.Fatalf("risk level = %s, want critical for hub-only defenses", report.RiskLevel)
	}
}
