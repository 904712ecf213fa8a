package analysis

import (
	"strings"
	"testing"

	"stationforge/pkg/station"
)

func TestCalculateRiskProfileHubBaseline(t *testing.T) {
	profile := CalculateRiskProfile(nil)
	if profile.ShieldingLevel != 20 || profile.RadiationResist != 10 || profile.RepairCapacity != 0 {
		t.Fatalf("unexpected hub baseline: %+v", profile)
	}
	if profile.OverallDefense != 11 {
		t.Fatalf("overall = %d, want 11", profile.OverallDefense)
	}
}

func TestCalculateRiskProfileSumsAndCaps(t *testing.T) {
	modules := []station.InstalledModule{
		station.NewInstalledModule(0, station.KindRepair),
		station.NewInstalledModule(1, station.KindRepair),
		station.NewInstalledModule(2, station.KindPower),
		station.NewInstalledModule(3, station.KindAirlock),
		station.NewInstalledModule(4, station.KindCargo),
	}
	profile := CalculateRiskProfile(modules)
	if profile.ShieldingLevel != 40 {
		t.Fatalf("shielding = %d, want 40", profile.ShieldingLevel)
	}
	if profile.RadiationResist != 30 {
		t.Fatalf("radiation = %d, want 30", profile.RadiationResist)
	}
	// 50+50+20+15 exceeds the cap.
	if profile.RepairCapacity != 100 {
		t.Fatalf("repair = %d, want 100", profile.RepairCapacity)
	}
	if profile.OverallDefense != 55 {
		t.Fatalf("overall = %d, want 55", profile.OverallDefense)
	}
}

func TestCalculateRiskProfileSkipsInactiveModules(t *testing.T) {
	inactive := station.NewInstalledModule(1, station.KindRepair)
	inactive.Status = station.StatusInactive
	modules := []station.InstalledModule{
		station.NewInstalledModule(0, station.KindRepair),
		inactive,
	}
	profile := CalculateRiskProfile(modules)
	if profile.ShieldingLevel != 30 {
		t.Fatalf("shielding = %d, want 30", profile.ShieldingLevel)
	}
	if profile.RepairCapacity != 50 {
		t.Fatalf("repair = %d, want 50", profile.RepairCapacity)
	}
}

func TestSimulateEventOutcomeTiers(t *testing.T) {
	sim := NewSimulatorWithNoise(func() float64 { return 0 })

	cases := []struct {
		name      string
		shielding int
		outcome   EventOutcome
		success   bool
		severity  string
	}{
		{"deflected", 95, OutcomeDeflected, true, "success"},
		{"mitigated", 65, OutcomeMitigated, true, "warning"},
		{"damaged", 45, OutcomeDamaged, false, "warning"},
		{"critical", 10, OutcomeCritical, false, "critical"},
	}
	for _, tc := range cases {
		res, err := sim.SimulateEvent(EventMeteor, RiskProfile{ShieldingLevel: tc.shielding})
		if err != nil {
			t.Fatalf("%s: simulate: %v", tc.name, err)
		}
		if res.Outcome != tc.outcome {
			t.Fatalf("%s: outcome = %s, want %s", tc.name, res.Outcome, tc.outcome)
		}
		if res.Success != tc.success {
			t.Fatalf("%s: success = %v, want %v", tc.name, res.Success, tc.success)
		}
		if res.Severity != tc.severity {
			t.Fatalf("%s: severity = %s, want %s", tc.name, res.Severity, tc.severity)
		}
	}
}

func TestSimulateEventUsesMatchingDefenseStat(t *testing.T) {
	sim := NewSimulatorWithNoise(func() float64 { return 0 })
	profile := RiskProfile{ShieldingLevel: 0, RadiationResist: 0, RepairCapacity: 70}

	res, err := sim.SimulateEvent(EventMalfunction, profile)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.Outcome != OutcomeDeflected {
		t.Fatalf("outcome = %s, want deflected", res.Outcome)
	}
	if !strings.Contains(res.Message, "Repair Capacity") {
		t.Fatalf("message should name repair capacity: %q", res.Message)
	}
	if !strings.Contains(res.Title, "DEFLECTED") {
		t.Fatalf("unexpected title %q", res.Title)
	}
}

func TestSimulateEventUnknownType(t *testing.T) {
	sim := NewSimulatorWithNoise(func() float64 { return 0 })
	if _, err := sim.SimulateEvent(EventType("alien_invasion"), RiskProfile{}); err == nil {
		t.Fatal("expected error for unknown event")
	}
}

func TestClassifyRiskBands(t *testing.T) {
	cases := []struct {
		defense int
		level   RiskLevel
		label   string
	}{
		{85, RiskLow, "Well Protected"},
		{70, RiskLow, "Well Protected"},
		{55, RiskMedium, "Moderate Risk"},
		{25, RiskHigh, "High Risk"},
		{10, RiskCritical, "Critical Vulnerability"},
	}
	for _, tc := range cases {
		level, label := ClassifyRisk(tc.defense)
		if level != tc.level || label != tc.label {
			t.Fatalf("ClassifyRisk(%d) = %s %q, want %s %q", tc.defense, level, label, tc.level, tc.label)
		}
	}
}
