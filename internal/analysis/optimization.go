// Package analysis provides read-only advisory views derived from the
// current station state: optimization recommendations, reliability and
// degradation projections, redundancy and risk analysis, the viability
// verdict, and user-facing warnings. Nothing in this package mutates the
// module set.
package analysis

import (
	"fmt"
	"math"

	"stationforge/pkg/station"
)

// RecommendationType ranks how urgent a recommendation is.
type RecommendationType string

const (
	RecommendationCritical   RecommendationType = "critical"
	RecommendationWarning    RecommendationType = "warning"
	RecommendationEfficiency RecommendationType = "efficiency"
)

// Recommendation is one entry of the optimization checklist. SuggestedKind,
// when set, names a module kind suitable for a one-click fix.
type Recommendation struct {
	ID            string             `json:"id"`
	Type          RecommendationType `json:"type"`
	Title         string             `json:"title"`
	Message       string             `json:"message"`
	Action        string             `json:"action"`
	Impact        string             `json:"impact"`
	SuggestedKind station.ModuleKind `json:"suggested_kind,omitempty"`
}

// lowUtilizationThreshold is the empty-bay count above which an
// under-utilized station is flagged.
const lowUtilizationThreshold = 4

// AnalyzeStation runs the ordered optimization checklist against the
// current module set and metrics.
func AnalyzeStation(modules []station.InstalledModule, m station.Metrics) []Recommendation {
	var recs []Recommendation

	if deficit := m.PowerContinuous - m.PowerGeneration; deficit > 0 {
		powerDef, err := station.Definition(station.KindPower)
		if err != nil {
			return nil
		}
		output := powerDef.Provides.PowerGenerated
		needed := 1
		if output > 0 {
			needed = int(math.Ceil(deficit / output))
		}
		recs = append(recs, Recommendation{
			ID:            "power-deficit",
			Type:          RecommendationCritical,
			Title:         "Power Deficit Detected",
			Message:       fmt.Sprintf("Station is consuming %.1f kW more than it generates. Systems may fail.", deficit),
			Action:        fmt.Sprintf("Install %dx Power Stations", needed),
			Impact:        fmt.Sprintf("+%.0f kW Power", float64(needed)*output),
			SuggestedKind: station.KindPower,
		})
	}

	if m.NetPresentValue < 0 {
		recs = append(recs, Recommendation{
			ID:            "negative-npv",
			Type:          RecommendationWarning,
			Title:         "Unprofitable Configuration",
			Message:       "Projected 10-year NPV is negative. Increase revenue to cover CAPEX.",
			Action:        "Add Manufacturing Lab",
			Impact:        "+$0.5M/mo Revenue",
			SuggestedKind: station.KindFab,
		})
	}

	if m.CrewHousing < m.CrewRequired {
		recs = append(recs, Recommendation{
			ID:            "crew-shortage",
			Type:          RecommendationCritical,
			Title:         "Insufficient Crew Quarters",
			Message:       fmt.Sprintf("Modules require %d crew, but capacity is only %d.", m.CrewRequired, m.CrewHousing),
			Action:        "Add Crew Quarters",
			Impact:        "+4 Crew Capacity",
			SuggestedKind: station.KindQuarters,
		})
	}

	emptyBays := station.BayCount - len(modules)
	if emptyBays > lowUtilizationThreshold && m.BreakEvenMonths == station.BreakEvenNever {
		recs = append(recs, Recommendation{
			ID:            "utilization-low",
			Type:          RecommendationEfficiency,
			Title:         "Low Utilization",
			Message:       "Station has significant empty space. Expand operations to maximize ROI.",
			Action:        "Add Lab Module",
			Impact:        "+$0.5M/mo Revenue",
			SuggestedKind: station.KindLab,
		})
	}

	return recs
}
