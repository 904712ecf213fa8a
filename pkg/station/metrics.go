package station

import (
	"encoding/json"
	"math"
)

// inactiveOpexFactor is the fraction of catalog operating cost a dormant
// module keeps accruing for minimal upkeep.
const inactiveOpexFactor = 0.5

// Metrics is the derived station-wide state. It is a pure function of the
// installed module set, the financial parameters, and the launch vehicle
// choice: Aggregate fills the physical and raw financial fields,
// EvaluateFinancials completes the monetary ones. Nothing may hold a Metrics
// value that diverges from that derivation.
type Metrics struct {
	// Physical totals. Demand figures include inactive modules: dormant
	// hardware still has mass, volume, draw, and heat. Crew is only needed
	// while a module operates.
	TotalMass       float64 `json:"total_mass_kg"`
	PowerContinuous float64 `json:"power_continuous_kw"`
	PowerPeak       float64 `json:"power_peak_kw"`
	ThermalLoad     float64 `json:"thermal_load_kw"`
	CrewRequired    int     `json:"crew_required"`
	TotalVolume     float64 `json:"total_volume_m3"`
	DataThroughput  float64 `json:"data_throughput_mbps"`

	// Capacities, contributed by active modules only.
	PowerGeneration float64 `json:"power_generation_kw"`
	ThermalCapacity float64 `json:"thermal_capacity_kw"`
	CrewHousing     int     `json:"crew_housing"`
	StorageCapacity float64 `json:"storage_capacity_kg"`

	// Financial aggregates. ModuleOperatingCost is the catalog-summed
	// per-module opex; MonthlyOperatingCost is the station OPEX model and is
	// the figure NPV/IRR/break-even consume. MonthlyRevenue is realized
	// revenue (nominal x multiplier) once the evaluator has run.
	CapitalCost          float64 `json:"capital_cost"`
	LaunchCost           float64 `json:"launch_cost"`
	TotalInvestment      float64 `json:"total_investment"`
	MonthlyRevenue       float64 `json:"monthly_revenue"`
	ModuleOperatingCost  float64 `json:"module_operating_cost"`
	MonthlyOperatingCost float64 `json:"monthly_operating_cost"`

	NetPresentValue      float64 `json:"net_present_value"`
	InternalRateOfReturn float64 `json:"internal_rate_of_return"`
	BreakEvenMonths      int     `json:"break_even_months"`
}

// PowerAvailable returns the continuous-power headroom.
func (m Metrics) PowerAvailable() float64 {
	return m.PowerGeneration - m.PowerContinuous
}

// ThermalAvailable returns the cooling headroom.
func (m Metrics) ThermalAvailable() float64 {
	return m.ThermalCapacity - m.ThermalLoad
}

type metricsAlias Metrics

type metricsPayload struct {
	metricsAlias
	InternalRateOfReturn *float64 `json:"internal_rate_of_return"`
}

// MarshalJSON emits null for an undefined IRR so snapshots stay valid JSON.
func (m Metrics) MarshalJSON() ([]byte, error) {
	payload := metricsPayload{metricsAlias: metricsAlias(m)}
	if !math.IsNaN(m.InternalRateOfReturn) {
		irr := m.InternalRateOfReturn
		payload.InternalRateOfReturn = &irr
	}
	return json.Marshal(payload)
}

// UnmarshalJSON restores the NaN sentinel for an absent IRR.
func (m *Metrics) UnmarshalJSON(data []byte) error {
	var payload metricsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	*m = Metrics(payload.metricsAlias)
	if payload.InternalRateOfReturn == nil {
		m.InternalRateOfReturn = math.NaN()
	} else {
		m.InternalRateOfReturn = *payload.InternalRateOfReturn
	}
	return nil
}

// Aggregate folds the catalog figures of the installed modules, plus the
// implicit hub, into station metrics. It is side-effect free: identical
// module lists produce identical metrics. The NPV, IRR, break-even, and
// launch fields are left at zero for EvaluateFinancials.
func Aggregate(modules []InstalledModule) (Metrics, error) {
	hub := Hub()

	m := Metrics{
		TotalMass:       hub.Demands.Mass,
		PowerContinuous: hub.Demands.PowerContinuous,
		PowerPeak:       hub.Demands.PowerPeak,
		ThermalLoad:     hub.Demands.ThermalLoad,
		CrewRequired:    hub.Demands.CrewRequired,
		TotalVolume:     hub.Demands.Volume,
		DataThroughput:  hub.Demands.DataThroughput,

		PowerGeneration: hub.Provides.PowerGenerated,
		ThermalCapacity: hub.Provides.ThermalCapacity,
		CrewHousing:     hub.Provides.CrewCapacity,
		StorageCapacity: hub.Provides.StorageCapacity,

		CapitalCost:         hub.CapitalCost,
		MonthlyRevenue:      hub.MonthlyRevenue,
		ModuleOperatingCost: hub.MonthlyOperatingCost,
	}

	for _, mod := range modules {
		def, err := Definition(mod.Kind)
		if err != nil {
			return Metrics{}, err
		}

		// Physical footprint and capital are spent whether or not the
		// module is running.
		m.TotalMass += def.Demands.Mass
		m.PowerContinuous += def.Demands.PowerContinuous
		m.PowerPeak += def.Demands.PowerPeak
		m.ThermalLoad += def.Demands.ThermalLoad
		m.TotalVolume += def.Demands.Volume
		m.DataThroughput += def.Demands.DataThroughput
		m.CapitalCost += def.CapitalCost

		if mod.Active() {
			m.CrewRequired += def.Demands.CrewRequired

			m.PowerGeneration += def.Provides.PowerGenerated
			m.ThermalCapacity += def.Provides.ThermalCapacity
			m.CrewHousing += def.Provides.CrewCapacity
			m.StorageCapacity += def.Provides.StorageCapacity

			m.MonthlyRevenue += def.MonthlyRevenue
			m.ModuleOperatingCost += def.MonthlyOperatingCost
		} else {
			m.ModuleOperatingCost += def.MonthlyOperatingCost * inactiveOpexFactor
		}
	}

	m.TotalInvestment = m.CapitalCost
	return m, nil
}
