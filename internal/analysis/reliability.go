package analysis

import (
	"math"
	"sort"

	"stationforge/pkg/station"
)

// Mean time between failures in months, per module kind.
var moduleMTBF = map[station.ModuleKind]int{
	station.KindHub:      180, // proven design
	station.KindLab:      120, // complex equipment
	station.KindFab:      96,  // high-stress manufacturing
	station.KindData:     72,  // electronics intensive
	station.KindHydro:    84,  // biological systems
	station.KindRepair:   108, // robust robotics
	station.KindPower:    144, // simple solar arrays
	station.KindHealth:   96,  // medical equipment
	station.KindAirlock:  156, // mechanical simplicity
	station.KindCargo:    168, // passive structure
	station.KindQuarters: 132, // life support systems
}

const defaultMTBFMonths = 120

// Criticality buckets module failure impact.
type Criticality string

const (
	CriticalityLow      Criticality = "low"
	CriticalityMedium   Criticality = "medium"
	CriticalityHigh     Criticality = "high"
	CriticalityCritical Criticality = "critical"
)

// ModuleReliability describes one installed module's failure outlook over
// the 10-year horizon.
type ModuleReliability struct {
	Kind                   station.ModuleKind `json:"kind"`
	Name                   string             `json:"name"`
	MTBFMonths             int                `json:"mtbf_months"`
	MTBFYears              int                `json:"mtbf_years"`
	FailureProbability10Yr float64            `json:"failure_probability_10yr"`
	Criticality            Criticality        `json:"criticality"`
}

func mtbfFor(kind station.ModuleKind) int {
	if mtbf, ok := moduleMTBF[kind]; ok {
		return mtbf
	}
	return defaultMTBFMonths
}

// ModuleReliabilities projects the failure probability of each installed
// module over 10 years under an exponential model, worst MTBF first.
func ModuleReliabilities(modules []station.InstalledModule) ([]ModuleReliability, error) {
	out := make([]ModuleReliability, 0, len(modules))
	for _, m := range modules {
		def, err := station.Definition(m.Kind)
		if err != nil {
			return nil, err
		}
		mtbf := mtbfFor(m.Kind)

		crit := CriticalityLow
		switch {
		case def.MonthlyRevenue > 200_000 || m.Kind == station.KindPower:
			crit = CriticalityHigh
		case def.MonthlyRevenue > 50_000:
			crit = CriticalityMedium
		}
		if m.Kind == station.KindHub || m.Kind == station.KindAirlock {
			crit = CriticalityCritical
		}

		out = append(out, ModuleReliability{
			Kind:                   m.Kind,
			Name:                   def.Title,
			MTBFMonths:             mtbf,
			MTBFYears:              int(math.Round(float64(mtbf) / 12)),
			FailureProbability10Yr: 1 - math.Exp(-float64(station.HorizonMonths)/float64(mtbf)),
			Criticality:            crit,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MTBFMonths < out[j].MTBFMonths })
	return out, nil
}

// StationReliability returns the probability that no installed module
// fails over 10 years, assuming independent failures.
func StationReliability(modules []station.InstalledModule) float64 {
	reliability := 1.0
	for _, m := range modules {
		reliability *= math.Exp(-float64(station.HorizonMonths) / float64(mtbfFor(m.Kind)))
	}
	return reliability
}

// SolarYear projects power capacity and the cost of compensating for
// panel degradation at one year mark.
type SolarYear struct {
	Year               int     `json:"year"`
	PowerCapacity      float64 `json:"power_capacity_kw"`
	DegradationPercent float64 `json:"degradation_percent"`
	CostImpact         int     `json:"cost_impact"`
}

const (
	// DefaultAnnualDegradation is the reference panel degradation rate for
	// arrays in low earth orbit.
	DefaultAnnualDegradation = 0.025
	degradationCostPerKW     = 10_000 // $ per month per kW shortfall
)

// SolarDegradation projects generation capacity for years 0 through 10
// given the initial generation in kW.
func SolarDegradation(initialPower float64, annualDegradation float64) []SolarYear {
	if annualDegradation <= 0 {
		annualDegradation = DefaultAnnualDegradation
	}
	out := make([]SolarYear, 0, 11)
	for year := 0; year <= 10; year++ {
		factor := math.Pow(1-annualDegradation, float64(year))
		capacity := math.Round(initialPower*factor*10) / 10
		shortfall := initialPower - capacity
		out = append(out, SolarYear{
			Year:               year,
			PowerCapacity:      capacity,
			DegradationPercent: math.Round((1-factor)*1000) / 10,
			CostImpact:         int(math.Round(shortfall * degradationCostPerKW)),
		})
	}
	return out
}
