package station

import (
	"math"
	"sort"
)

// IntegrationCostPerLaunch covers payload prep and mission operations for
// each flight, on top of the vehicle's own price.
const IntegrationCostPerLaunch = 15_000_000

// DefaultVehicleID is the fallback when an unknown or unavailable vehicle is
// requested.
const DefaultVehicleID = "falcon9"

// LaunchVehicle describes a launcher the station can be lifted with.
type LaunchVehicle struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Provider      string  `json:"provider"`
	PayloadToLEO  float64 `json:"payload_to_leo_kg"`
	CostPerLaunch float64 `json:"cost_per_launch"`
	Reliability   float64 `json:"reliability"`
	Available     bool    `json:"available"`
}

var launchVehicles = map[string]LaunchVehicle{
	"falcon9": {
		ID:            "falcon9",
		Name:          "Falcon 9",
		Provider:      "SpaceX",
		PayloadToLEO:  22_800,
		CostPerLaunch: 67_000_000,
		Reliability:   0.98,
		Available:     true,
	},
	"falconHeavy": {
		ID:            "falconHeavy",
		Name:          "Falcon Heavy",
		Provider:      "SpaceX",
		PayloadToLEO:  63_800,
		CostPerLaunch: 150_000_000,
		Reliability:   0.95,
		Available:     true,
	},
	"starship": {
		ID:            "starship",
		Name:          "Starship",
		Provider:      "SpaceX",
		PayloadToLEO:  100_000,
		CostPerLaunch: 100_000_000,
		Reliability:   0.90,
		Available:     false, // not yet human-rated
	},
	"vulcan": {
		ID:            "vulcan",
		Name:          "Vulcan Centaur",
		Provider:      "ULA",
		PayloadToLEO:  27_200,
		CostPerLaunch: 110_000_000,
		Reliability:   0.95,
		Available:     true,
	},
}

// VehicleByID resolves a launch vehicle, falling back to the default when
// the id is unknown or the vehicle is not operational.
func VehicleByID(id string) LaunchVehicle {
	v, ok := launchVehicles[id]
	if !ok || !v.Available {
		return launchVehicles[DefaultVehicleID]
	}
	return v
}

// Vehicles returns every registered launch vehicle sorted by id.
func Vehicles() []LaunchVehicle {
	out := make([]LaunchVehicle, 0, len(launchVehicles))
	for _, v := range launchVehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LaunchCost breaks down the cost of lifting a station of the given mass.
type LaunchCost struct {
	Vehicle         LaunchVehicle `json:"vehicle"`
	TotalMass       float64       `json:"total_mass_kg"`
	LaunchesNeeded  int           `json:"launches_needed"`
	VehicleCost     float64       `json:"vehicle_cost"`
	IntegrationCost float64       `json:"integration_cost"`
	TotalCost       float64       `json:"total_cost"`
	CostPerKg       float64       `json:"cost_per_kg"`
}

// CalculateLaunchCost computes the launch bill for totalMass on the given
// vehicle: ceil(mass/payload) flights, each paying the vehicle price plus
// the fixed integration cost.
func CalculateLaunchCost(totalMass float64, vehicle LaunchVehicle) LaunchCost {
	launches := int(math.Ceil(totalMass / vehicle.PayloadToLEO))
	vehicleCost := float64(launches) * vehicle.CostPerLaunch
	integration := float64(launches) * IntegrationCostPerLaunch
	total := vehicleCost + integration

	costPerKg := 0.0
	if totalMass > 0 {
		costPerKg = math.Round(total / totalMass)
	}

	return LaunchCost{
		Vehicle:         vehicle,
		TotalMass:       totalMass,
		LaunchesNeeded:  launches,
		VehicleCost:     vehicleCost,
		IntegrationCost: integration,
		TotalCost:       total,
		CostPerKg:       costPerKg,
	}
}

// OptimalVehicle returns the cheapest launch plan among operational
// vehicles for the given mass.
func OptimalVehicle(totalMass float64) LaunchCost {
	options := LaunchOptions(totalMass)
	if len(options) == 0 {
		return CalculateLaunchCost(totalMass, VehicleByID(DefaultVehicleID))
	}
	return options[0]
}

// LaunchOptions returns a launch plan per operational vehicle, cheapest
// first.
func LaunchOptions(totalMass float64) []LaunchCost {
	var out []LaunchCost
	for _, v := range Vehicles() {
		if !v.Available {
			continue
		}
		out = append(out, CalculateLaunchCost(totalMass, v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalCost < out[j].TotalCost })
	return out
}
