package analysis

import (
	"fmt"
	"sort"

	"stationforge/pkg/station"
)

// WarningSeverity ranks a system warning.
type WarningSeverity string

const (
	SeverityCritical WarningSeverity = "critical"
	SeverityWarning  WarningSeverity = "warning"
	SeverityInfo     WarningSeverity = "info"
)

// WarningCategory groups warnings for presentation.
type WarningCategory string

const (
	CategoryEconomics WarningCategory = "economics"
	CategoryPower     WarningCategory = "power"
	CategorySafety    WarningCategory = "safety"
	CategorySystems   WarningCategory = "systems"
)

// SystemWarning is one user-facing alert about the station design.
type SystemWarning struct {
	ID         string          `json:"id"`
	Severity   WarningSeverity `json:"severity"`
	Category   WarningCategory `json:"category"`
	Title      string          `json:"title"`
	Message    string          `json:"message"`
	Value      string          `json:"value,omitempty"`
	Suggestion string          `json:"suggestion,omitempty"`
}

var severityRank = map[WarningSeverity]int{
	SeverityCritical: 0,
	SeverityWarning:  1,
	SeverityInfo:     2,
}

// AnalyzeWarnings runs the warning checklist across economics, power,
// safety, and systems, sorted critical-first.
func AnalyzeWarnings(modules []station.InstalledModule, m station.Metrics, opex station.OPEXBreakdown) ([]SystemWarning, error) {
	var warnings []SystemWarning

	annualRevenue := m.MonthlyRevenue * 12
	annualCashFlow := annualRevenue - opex.AnnualTotal
	if annualCashFlow < 0 {
		warnings = append(warnings, SystemWarning{
			ID:         "opex-exceeds-revenue",
			Severity:   SeverityCritical,
			Category:   CategoryEconomics,
			Title:      "Operating at a Loss",
			Message:    "Station loses money every year. OPEX exceeds revenue.",
			Value:      fmt.Sprintf("-$%s/year", FormatMoney(-annualCashFlow)),
			Suggestion: "Add revenue-generating modules or reduce crew operations",
		})
	}
	if annualRevenue > 0 && opex.AnnualTotal > 0 && annualRevenue < opex.AnnualTotal*0.5 {
		warnings = append(warnings, SystemWarning{
			ID:         "revenue-critically-low",
			Severity:   SeverityCritical,
			Category:   CategoryEconomics,
			Title:      "Revenue Critically Low",
			Message:    "Revenue covers less than 50% of operating costs.",
			Value:      fmt.Sprintf("%.0f%% coverage", annualRevenue/opex.AnnualTotal*100),
			Suggestion: "Add Manufacturing Lab or Service Station for higher revenue",
		})
	}

	powerMargin := m.PowerGeneration - m.PowerContinuous
	switch {
	case powerMargin < 0:
		warnings = append(warnings, SystemWarning{
			ID:         "power-deficit",
			Severity:   SeverityCritical,
			Category:   CategoryPower,
			Title:      "Power Deficit",
			Message:    "Station consumes more power than it generates.",
			Value:      fmt.Sprintf("%.1f kW", powerMargin),
			Suggestion: "Add Power Station (+40 kW generation)",
		})
	case m.PowerGeneration > 0 && powerMargin/m.PowerGeneration*100 < 20:
		warnings = append(warnings, SystemWarning{
			ID:         "power-margin-low",
			Severity:   SeverityWarning,
			Category:   CategoryPower,
			Title:      "Low Power Margin",
			Message:    "Less than 20% power headroom for expansion or emergencies.",
			Value:      fmt.Sprintf("%.0f%% margin", powerMargin/m.PowerGeneration*100),
			Suggestion: "Add Power Station for expansion capacity",
		})
	}

	crewModules := 0
	totalCrew := 0
	for _, mod := range modules {
		def, err := station.Definition(mod.Kind)
		if err != nil {
			return nil, err
		}
		if def.Demands.CrewRequired > 0 {
			crewModules++
			totalCrew += def.Demands.CrewRequired
		}
	}

	airlockCount := station.CountKind(modules, station.KindAirlock)
	if airlockCount == 1 && totalCrew > 0 {
		warnings = append(warnings, SystemWarning{
			ID:         "single-airlock",
			Severity:   SeverityCritical,
			Category:   CategorySafety,
			Title:      "Single Emergency Egress",
			Message:    fmt.Sprintf("Only one airlock for %d crew. No redundancy for EVA.", totalCrew),
			Value:      "1 airlock",
			Suggestion: "Add second Crew Airlock for crew safety",
		})
	}
	if airlockCount == 0 && crewModules > 0 {
		warnings = append(warnings, SystemWarning{
			ID:         "no-airlock",
			Severity:   SeverityCritical,
			Category:   CategorySafety,
			Title:      "No Crew Access",
			Message:    "Crew modules installed but no airlock for crew transfer.",
			Suggestion: "Add Crew Airlock before operating crew modules",
		})
	}
	if station.CountKind(modules, station.KindQuarters) == 0 && totalCrew > 0 {
		warnings = append(warnings, SystemWarning{
			ID:         "no-quarters",
			Severity:   SeverityWarning,
			Category:   CategorySafety,
			Title:      "No Crew Quarters",
			Message:    fmt.Sprintf("%d crew required but no living quarters.", totalCrew),
			Suggestion: "Add Crew Quarters for crew accommodations",
		})
	}

	thermalMargin := m.ThermalCapacity - m.ThermalLoad
	switch {
	case thermalMargin < 0:
		warnings = append(warnings, SystemWarning{
			ID:         "thermal-overload",
			Severity:   SeverityCritical,
			Category:   CategorySystems,
			Title:      "Thermal Overload",
			Message:    "Heat generation exceeds cooling capacity.",
			Value:      fmt.Sprintf("%.1f kW deficit", thermalMargin),
			Suggestion: "Add Power Station (+20 kW cooling) or remove high-heat modules",
		})
	case m.ThermalCapacity > 0 && thermalMargin/m.ThermalCapacity*100 < 10:
		warnings = append(warnings, SystemWarning{
			ID:         "thermal-margin-low",
			Severity:   SeverityWarning,
			Category:   CategorySystems,
			Title:      "Thermal Margin Critical",
			Message:    "Less than 10% cooling headroom.",
			Value:      fmt.Sprintf("%.0f%% margin", thermalMargin/m.ThermalCapacity*100),
			Suggestion: "Add Power Station for additional cooling",
		})
	}

	if station.CountKind(modules, station.KindPower) == 1 && len(modules) > 3 {
		warnings = append(warnings, SystemWarning{
			ID:         "single-power",
			Severity:   SeverityWarning,
			Category:   CategorySystems,
			Title:      "Single Power Source",
			Message:    "Station relies on single power station. No redundancy.",
			Suggestion: "Add second Power Station for redundancy",
		})
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		return severityRank[warnings[i].Severity] < severityRank[warnings[j].Severity]
	})
	return warnings, nil
}

// WarningCounts tallies warnings by severity.
type WarningCounts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
	Total    int `json:"total"`
}

// CountWarnings tallies a warning list by severity.
func CountWarnings(warnings []SystemWarning) WarningCounts {
	counts := WarningCounts{Total: len(warnings)}
	for _, w := range warnings {
		switch w.Severity {
		case SeverityCritical:
			counts.Critical++
		case SeverityWarning:
			counts.Warning++
		case SeverityInfo:
			counts.Info++
		}
	}
	return counts
}
