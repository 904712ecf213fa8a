package analysis

import (
	"stationforge/pkg/station"
)

// Report bundles every advisory view over one station state. Panels that
// fail to derive are left empty rather than failing the whole report;
// these are non-critical enrichments.
type Report struct {
	Recommendations    []Recommendation    `json:"recommendations"`
	Warnings           []SystemWarning     `json:"warnings"`
	WarningCounts      WarningCounts       `json:"warning_counts"`
	Reliability        []ModuleReliability `json:"reliability"`
	StationReliability float64             `json:"station_reliability_10yr"`
	SolarDegradation   []SolarYear         `json:"solar_degradation"`
	Redundancy         []RedundancyIssue   `json:"redundancy"`
	RiskProfile        RiskProfile         `json:"risk_profile"`
	RiskLevel          RiskLevel           `json:"risk_level"`
	RiskLabel          string              `json:"risk_label"`
	Viability          ViabilityResult     `json:"viability"`
	Sustainability     Sustainability      `json:"sustainability"`
	StationKeeping     StationKeeping      `json:"station_keeping"`
}

// BuildReport derives the full advisory report from one station state.
func BuildReport(modules []station.InstalledModule, m station.Metrics, opex station.OPEXBreakdown) Report {
	report := Report{
		Recommendations:    AnalyzeStation(modules, m),
		StationReliability: StationReliability(modules),
		SolarDegradation:   SolarDegradation(m.PowerGeneration, DefaultAnnualDegradation),
		RiskProfile:        CalculateRiskProfile(modules),
		StationKeeping:     CalculateStationKeeping(m.TotalMass),
	}

	if warnings, err := AnalyzeWarnings(modules, m, opex); err == nil {
		report.Warnings = warnings
		report.WarningCounts = CountWarnings(warnings)
	}
	if reliability, err := ModuleReliabilities(modules); err == nil {
		report.Reliability = reliability
	}
	if redundancy, err := AnalyzeRedundancy(modules); err == nil {
		report.Redundancy = redundancy
	}

	report.RiskLevel, report.RiskLabel = ClassifyRisk(report.RiskProfile.OverallDefense)

	annualRevenue := m.MonthlyRevenue * 12
	report.Viability = AnalyzeViability(m.CapitalCost, m.LaunchCost, annualRevenue, opex.AnnualTotal)
	report.Sustainability = AnalyzeSustainability(opex.AnnualTotal, annualRevenue)

	return report
}
