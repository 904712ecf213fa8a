package analysis

import (
	"strings"
	"testing"

	"stationforge/pkg/station"
)

func findInsight(t *testing.T, insights []TradeOffInsight, category TradeOffCategory) TradeOffInsight {
	t.Helper()
	for _, in := range insights {
		if in.Category == category {
			return in
		}
	}
	t.Fatalf("no %s insight in %+v", category, insights)
	return TradeOffInsight{}
}

func TestCompareConfigurationsAllAxes(t *testing.T) {
	compact := ConfigSummary{
		Label: "Compact",
		Modules: []station.InstalledModule{
			station.NewInstalledModule(0, station.KindCargo),
			station.NewInstalledModule(1, station.KindAirlock),
		},
		Metrics: station.Metrics{
			CapitalCost:     1_000_000_000,
			NetPresentValue: 200_000_000,
			MonthlyRevenue:  600_000,
			PowerGeneration: 100,
			PowerContinuous: 50,
		},
	}
	sprawl := ConfigSummary{
		Label: "Sprawl",
		Modules: []station.InstalledModule{
			station.NewInstalledModule(0, station.KindData),
			station.NewInstalledModule(1, station.KindLab),
			station.NewInstalledModule(2, station.KindFab),
			station.NewInstalledModule(3, station.KindHealth),
			station.NewInstalledModule(4, station.KindHydro),
		},
		Metrics: station.Metrics{
			CapitalCost:     1_000_000_000,
			NetPresentValue: 50_000_000,
			MonthlyRevenue:  400_000,
			PowerGeneration: 100,
			PowerContinuous: 90,
		},
	}

	insights := CompareConfigurations(compact, sprawl)

	roi := findInsight(t, insights, TradeOffEfficiency)
	if !strings.Contains(roi.Comparison, "Compact has 15% better ROI") {
		t.Fatalf("unexpected ROI comparison %q", roi.Comparison)
	}

	revenue := findInsight(t, insights, TradeOffRevenue)
	if !strings.Contains(revenue.Comparison, "Compact") {
		t.Fatalf("unexpected revenue comparison %q", revenue.Comparison)
	}

	power := findInsight(t, insights, TradeOffCapacity)
	if !strings.Contains(power.Comparison, "Sprawl has tighter power margins") {
		t.Fatalf("unexpected power comparison %q", power.Comparison)
	}

	risk := findInsight(t, insights, TradeOffRisk)
	if !strings.Contains(risk.Comparison, "Compact") {
		t.Fatalf("unexpected reliability comparison %q", risk.Comparison)
	}
}

func TestCompareConfigurationsIdentical(t *testing.T) {
	cfg := ConfigSummary{
		Label: "A",
		Metrics: station.Metrics{
			CapitalCost:     1_000_000_000,
			NetPresentValue: 100_000_000,
			MonthlyRevenue:  500_000,
			PowerGeneration: 100,
			PowerContinuous: 50,
		},
	}
	other := cfg
	other.Label = "B"
	if insights := CompareConfigurations(cfg, other); len(insights) != 0 {
		t.Fatalf("identical configurations should yield no insights, got %+v", insights)
	}
}
