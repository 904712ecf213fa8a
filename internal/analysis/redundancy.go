package analysis

import (
	"fmt"
	"sort"

	"stationforge/pkg/station"
)

// RedundancyIssueType classifies a flagged redundancy gap.
type RedundancyIssueType string

const (
	IssueSinglePointFailure RedundancyIssueType = "single_point_failure"
	IssueNoBackup           RedundancyIssueType = "no_backup"
	IssueCriticalDependency RedundancyIssueType = "critical_dependency"
)

// RedundancySeverity ranks a redundancy issue.
type RedundancySeverity string

const (
	RedundancyWarning  RedundancySeverity = "warning"
	RedundancyCritical RedundancySeverity = "critical"
)

// RedundancyIssue flags one single-point-of-failure condition with a
// remediation suggestion.
type RedundancyIssue struct {
	Type       RedundancyIssueType `json:"type"`
	Severity   RedundancySeverity  `json:"severity"`
	Module     string              `json:"module"`
	Message    string              `json:"message"`
	Suggestion string              `json:"suggestion"`
}

// AnalyzeRedundancy scans the module set for single points of failure,
// critical issues first.
func AnalyzeRedundancy(modules []station.InstalledModule) ([]RedundancyIssue, error) {
	var issues []RedundancyIssue

	powerCount := station.CountKind(modules, station.KindPower)
	switch {
	case powerCount == 1:
		issues = append(issues, RedundancyIssue{
			Type:       IssueSinglePointFailure,
			Severity:   RedundancyCritical,
			Module:     "Power Station",
			Message:    "Single power source - station-wide blackout risk",
			Suggestion: "Add second Power Station for redundancy",
		})
	case powerCount == 0 && len(modules) > 0:
		issues = append(issues, RedundancyIssue{
			Type:       IssueNoBackup,
			Severity:   RedundancyWarning,
			Module:     "Power",
			Message:    "Relying only on Hub power generation",
			Suggestion: "Consider adding Power Station for expansion",
		})
	}

	crewModules := 0
	airlockDependents := 0
	for _, m := range modules {
		def, err := station.Definition(m.Kind)
		if err != nil {
			return nil, err
		}
		if def.Demands.CrewRequired > 0 {
			crewModules++
		}
		for _, req := range def.Requires {
			if req == station.KindAirlock {
				airlockDependents++
				break
			}
		}
	}

	airlockCount := station.CountKind(modules, station.KindAirlock)
	if airlockCount == 1 && crewModules > 0 {
		issues = append(issues, RedundancyIssue{
			Type:       IssueSinglePointFailure,
			Severity:   RedundancyWarning,
			Module:     "Crew Airlock",
			Message:    "Single EVA access point - emergency egress limited",
			Suggestion: "Consider adding backup Airlock for crew safety",
		})
	}
	if airlockCount == 1 && airlockDependents >= 3 {
		issues = append(issues, RedundancyIssue{
			Type:       IssueCriticalDependency,
			Severity:   RedundancyWarning,
			Module:     "Crew Airlock",
			Message:    fmt.Sprintf("%d modules depend on single Airlock", airlockDependents),
			Suggestion: "Airlock failure would disable multiple revenue sources",
		})
	}

	if station.CountKind(modules, station.KindQuarters) == 0 && crewModules > 0 {
		issues = append(issues, RedundancyIssue{
			Type:       IssueNoBackup,
			Severity:   RedundancyWarning,
			Module:     "Crew Quarters",
			Message:    "Crew modules installed without crew quarters",
			Suggestion: "Add Crew Quarters to house station personnel",
		})
	}

	if station.CountKind(modules, station.KindData) == 1 && station.CountKind(modules, station.KindLab) > 0 {
		issues = append(issues, RedundancyIssue{
			Type:       IssueSinglePointFailure,
			Severity:   RedundancyWarning,
			Module:     "Data Center",
			Message:    "Single data center serving research operations",
			Suggestion: "Consider backup data storage capacity",
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity == RedundancyCritical && issues[j].Severity != RedundancyCritical
	})
	return issues, nil
}
