package analysis

import (
	"fmt"
	"math"

	"stationforge/pkg/station"
)

// TradeOffCategory groups a comparison insight.
type TradeOffCategory string

const (
	TradeOffEfficiency TradeOffCategory = "efficiency"
	TradeOffRisk       TradeOffCategory = "risk"
	TradeOffRevenue    TradeOffCategory = "revenue"
	TradeOffCapacity   TradeOffCategory = "capacity"
)

// TradeOffInsight is one observation from comparing two configurations.
type TradeOffInsight struct {
	Category       TradeOffCategory `json:"category"`
	Title          string           `json:"title"`
	Comparison     string           `json:"comparison"`
	Recommendation string           `json:"recommendation,omitempty"`
}

// ConfigSummary is the comparable slice of one configuration.
type ConfigSummary struct {
	Label   string
	Modules []station.InstalledModule
	Metrics station.Metrics
}

// CompareConfigurations derives trade-off insights between two saved or
// live configurations.
func CompareConfigurations(a, b ConfigSummary) []TradeOffInsight {
	var insights []TradeOffInsight

	if a.Metrics.CapitalCost > 0 && b.Metrics.CapitalCost > 0 {
		roiA := a.Metrics.NetPresentValue / a.Metrics.CapitalCost
		roiB := b.Metrics.NetPresentValue / b.Metrics.CapitalCost
		if math.Abs(roiA-roiB) > 0.1 {
			better := a.Label
			note := fmt.Sprintf("%s is more capital efficient", a.Label)
			if roiB > roiA {
				better = b.Label
				note = fmt.Sprintf("%s has better capital efficiency", b.Label)
			}
			insights = append(insights, TradeOffInsight{
				Category:       TradeOffEfficiency,
				Title:          "Return on Investment",
				Comparison:     fmt.Sprintf("%s has %.0f%% better ROI", better, math.Abs(roiA-roiB)*100),
				Recommendation: note,
			})
		}
	}

	perModuleA := a.Metrics.MonthlyRevenue / math.Max(float64(len(a.Modules)), 1)
	perModuleB := b.Metrics.MonthlyRevenue / math.Max(float64(len(b.Modules)), 1)
	if math.Abs(perModuleA-perModuleB) > 10_000 {
		better := a.Label
		if perModuleB > perModuleA {
			better = b.Label
		}
		insights = append(insights, TradeOffInsight{
			Category:   TradeOffRevenue,
			Title:      "Revenue Density",
			Comparison: fmt.Sprintf("%s generates more revenue per module", better),
		})
	}

	marginA := powerMarginFraction(a.Metrics)
	marginB := powerMarginFraction(b.Metrics)
	if marginA < 0.2 || marginB < 0.2 {
		tight := a.Label
		if marginB < marginA {
			tight = b.Label
		}
		insights = append(insights, TradeOffInsight{
			Category:       TradeOffCapacity,
			Title:          "Power Headroom",
			Comparison:     fmt.Sprintf("%s has tighter power margins", tight),
			Recommendation: "Consider adding Power Station before expansion",
		})
	}

	relA := StationReliability(a.Modules)
	relB := StationReliability(b.Modules)
	if math.Abs(relA-relB) > 0.05 {
		safer := a.Label
		if relB > relA {
			safer = b.Label
		}
		insights = append(insights, TradeOffInsight{
			Category:   TradeOffRisk,
			Title:      "10-Year Reliability",
			Comparison: fmt.Sprintf("%s has %.0f%% higher survival probability", safer, math.Abs(relA-relB)*100),
		})
	}

	return insights
}

func powerMarginFraction(m station.Metrics) float64 {
	if m.PowerGeneration <= 0 {
		return 0
	}
	return float64(m.PowerGeneration-m.PowerContinuous) / float64(m.PowerGeneration)
}
