// Package station defines the core domain types for the station
// configuration engine: the module catalog, installed-module state, metrics
// aggregation, install validation rules, and the financial evaluator.
package station

import "fmt"

// ModuleKind identifies a catalog entry.
type ModuleKind string

// Catalog module kinds. KindHub is the implicit base unit: it is always
// aggregated into station metrics and can never be installed or removed.
const (
	KindHub      ModuleKind = "hub"
	KindLab      ModuleKind = "lab"
	KindFab      ModuleKind = "fab"
	KindData     ModuleKind = "data"
	KindHydro    ModuleKind = "hydro"
	KindRepair   ModuleKind = "repair"
	KindPower    ModuleKind = "power"
	KindHealth   ModuleKind = "health"
	KindAirlock  ModuleKind = "airlock"
	KindCargo    ModuleKind = "cargo"
	KindQuarters ModuleKind = "quarters"
)

// Resources captures the physical demand figures of a module.
type Resources struct {
	Mass            float64 `json:"mass_kg"`
	PowerContinuous float64 `json:"power_continuous_kw"`
	PowerPeak       float64 `json:"power_peak_kw"`
	ThermalLoad     float64 `json:"thermal_load_kw"`
	CrewRequired    int     `json:"crew_required"`
	Volume          float64 `json:"volume_m3"`
	DataThroughput  float64 `json:"data_mbps"`
}

// Provision captures the capacities a module contributes while active.
type Provision struct {
	PowerGenerated  float64 `json:"power_generated_kw,omitempty"`
	ThermalCapacity float64 `json:"thermal_capacity_kw,omitempty"`
	CrewCapacity    int     `json:"crew_capacity,omitempty"`
	StorageCapacity float64 `json:"storage_capacity_kg,omitempty"`
}

// ModuleDefinition is an immutable catalog entry. Definitions are fixed at
// process start and shared by reference-free value copies.
type ModuleDefinition struct {
	Kind        ModuleKind `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description"`

	Demands Resources `json:"demands"`

	CapitalCost          float64 `json:"capital_cost"`
	MonthlyRevenue       float64 `json:"monthly_revenue"`
	RevenueAssumption    string  `json:"revenue_assumption,omitempty"`
	MonthlyOperatingCost float64 `json:"monthly_operating_cost"`

	Provides Provision    `json:"provides"`
	Requires []ModuleKind `json:"requires,omitempty"`
}

var catalog = map[ModuleKind]ModuleDefinition{
	KindHub: {
		Kind:        KindHub,
		Title:       "Vishwakarma Hub",
		Description: "Central command and utility node. Provides initial power, thermal, and docking capabilities.",
		Demands: Resources{
			Mass:            25000,
			PowerContinuous: 2,
			PowerPeak:       5,
			ThermalLoad:     5,
			CrewRequired:    0,
			Volume:          100,
			DataThroughput:  100,
		},
		CapitalCost:          500_000_000,
		MonthlyRevenue:       0,
		MonthlyOperatingCost: 1_000_000,
		Provides: Provision{
			PowerGenerated:  60,
			ThermalCapacity: 40,
			StorageCapacity: 5000,
		},
	},
	KindLab: {
		Kind:        KindLab,
		Title:       "Zero-G Laboratory",
		Description: "Equipped for microgravity research: pharmaceuticals, protein crystallization, and material science.",
		Demands: Resources{
			Mass:            12000,
			PowerContinuous: 8,
			PowerPeak:       15,
			ThermalLoad:     12,
			CrewRequired:    2,
			Volume:          45,
			DataThroughput:  50,
		},
		CapitalCost:          270_000_000,
		MonthlyRevenue:       100_000,
		RevenueAssumption:    "Conservative estimate given unproven early market demand for microgravity R&D.",
		MonthlyOperatingCost: 50_000,
		Requires:             []ModuleKind{KindAirlock},
	},
	KindFab: {
		Kind:        KindFab,
		Title:       "Manufacturing Lab",
		Description: "In-space manufacturing of high-value products like ZBLAN fibers and semiconductors.",
		Demands: Resources{
			Mass:            15000,
			PowerContinuous: 12,
			PowerPeak:       25,
			ThermalLoad:     20,
			CrewRequired:    0,
			Volume:          60,
			DataThroughput:  80,
		},
		CapitalCost:          330_000_000,
		MonthlyRevenue:       150_000,
		RevenueAssumption:    "Lowered to reflect logistic constraints and current market for ZBLAN fiber.",
		MonthlyOperatingCost: 80_000,
		Requires:             []ModuleKind{KindAirlock},
	},
	KindData: {
		Kind:        KindData,
		Title:       "Orbital Data Center",
		Description: "Secure off-planet edge computing and storage node.",
		Demands: Resources{
			Mass:            8000,
			PowerContinuous: 20,
			PowerPeak:       22,
			ThermalLoad:     25,
			CrewRequired:    0,
			Volume:          30,
			DataThroughput:  1000,
		},
		CapitalCost:          210_000_000,
		MonthlyRevenue:       40_000,
		RevenueAssumption:    "Limited by downlink bandwidth costs and latency for edge computing.",
		MonthlyOperatingCost: 30_000,
	},
	KindHydro: {
		Kind:        KindHydro,
		Title:       "Hydroponics Bay",
		Description: "Closed-loop agriculture for food research and life support supplementation.",
		Demands: Resources{
			Mass:            10000,
			PowerContinuous: 5,
			PowerPeak:       8,
			ThermalLoad:     4,
			CrewRequired:    1,
			Volume:          80,
			DataThroughput:  10,
		},
		CapitalCost:          240_000_000,
		MonthlyRevenue:       20_000,
		RevenueAssumption:    "Research grants only. Food production offsets OPEX but generates little direct revenue.",
		MonthlyOperatingCost: 20_000,
		Requires:             []ModuleKind{KindAirlock},
	},
	KindRepair: {
		Kind:        KindRepair,
		Title:       "Service Station",
		Description: "Robotic arms and fuel depot for satellite servicing and debris removal.",
		Demands: Resources{
			Mass:            14000,
			PowerContinuous: 4,
			PowerPeak:       10,
			ThermalLoad:     8,
			CrewRequired:    0,
			Volume:          40,
			DataThroughput:  20,
		},
		CapitalCost:          350_000_000,
		MonthlyRevenue:       500_000,
		RevenueAssumption:    "Satellite servicing market is nascent. Assumes ~1 major mission every 2 months.",
		MonthlyOperatingCost: 60_000,
	},
	KindPower: {
		Kind:        KindPower,
		Title:       "Power Station",
		Description: "Large solar array trusses and batteries to expand station capacity.",
		Demands: Resources{
			Mass:           11000,
			DataThroughput: 5,
		},
		CapitalCost:          180_000_000,
		MonthlyRevenue:       5_000,
		RevenueAssumption:    "Power sales to visiting vehicles only.",
		MonthlyOperatingCost: 10_000,
		Provides: Provision{
			PowerGenerated:  40,
			ThermalCapacity: 20,
		},
	},
	KindHealth: {
		Kind:        KindHealth,
		Title:       "Health Care",
		Description: "Medical bay for crew health monitoring and biological experiments.",
		Demands: Resources{
			Mass:            9000,
			PowerContinuous: 6,
			PowerPeak:       8,
			ThermalLoad:     6,
			CrewRequired:    1,
			Volume:          35,
			DataThroughput:  40,
		},
		CapitalCost:          290_000_000,
		MonthlyRevenue:       50_000,
		RevenueAssumption:    "Internal crew benefit primarily. Validation studies for pharma are intermittent.",
		MonthlyOperatingCost: 40_000,
		Requires:             []ModuleKind{KindAirlock},
	},
	KindAirlock: {
		Kind:        KindAirlock,
		Title:       "Crew Airlock",
		Description: "Required for EVA activities, maintenance, and crew transfer.",
		Demands: Resources{
			Mass:            6000,
			PowerContinuous: 2,
			PowerPeak:       4,
			ThermalLoad:     2,
			CrewRequired:    0,
			Volume:          15,
			DataThroughput:  5,
		},
		CapitalCost:          150_000_000,
		MonthlyRevenue:       0,
		MonthlyOperatingCost: 15_000,
	},
	KindCargo: {
		Kind:        KindCargo,
		Title:       "Cargo Bay",
		Description: "Pressurized and unpressurized storage for supplies and experiments.",
		Demands: Resources{
			Mass:            5000,
			PowerContinuous: 1,
			PowerPeak:       2,
			ThermalLoad:     1,
			CrewRequired:    0,
			Volume:          50,
		},
		CapitalCost:          100_000_000,
		MonthlyRevenue:       80_000,
		RevenueAssumption:    "Storage fees for experiments and 3rd party supplies.",
		MonthlyOperatingCost: 5_000,
		Provides: Provision{
			StorageCapacity: 10000,
		},
	},
	KindQuarters: {
		Kind:        KindQuarters,
		Title:       "Crew Quarters",
		Description: "Habitation module with private berths, galley, and life support for long-duration missions.",
		Demands: Resources{
			Mass:            14000,
			PowerContinuous: 6,
			PowerPeak:       8,
			ThermalLoad:     8,
			CrewRequired:    0,
			Volume:          60,
			DataThroughput:  20,
		},
		CapitalCost:          320_000_000,
		MonthlyRevenue:       100_000,
		RevenueAssumption:    "Space tourism or leased astronaut berths.",
		MonthlyOperatingCost: 30_000,
		Provides: Provision{
			CrewCapacity: 4,
		},
	},
}

// installableKinds lists every kind a caller may install, in palette order.
var installableKinds = []ModuleKind{
	KindLab, KindFab, KindData, KindHydro, KindRepair,
	KindPower, KindHealth, KindAirlock, KindCargo, KindQuarters,
}

// Definition returns the catalog entry for kind. An unknown kind is a broken
// invariant: the caller must abort the operation rather than substitute a
// default.
func Definition(kind ModuleKind) (ModuleDefinition, error) {
	def, ok := catalog[kind]
	if !ok {
		return ModuleDefinition{}, fmt.Errorf("module kind %q not in catalog", kind)
	}
	return def, nil
}

// Hub returns the base unit's definition.
func Hub() ModuleDefinition {
	return catalog[KindHub]
}

// InstallableKinds returns the kinds available for installation (the hub is
// excluded, it is part of the station from the start).
func InstallableKinds() []ModuleKind {
	out := make([]ModuleKind, len(installableKinds))
	copy(out, installableKinds)
	return out
}
