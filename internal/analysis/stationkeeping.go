package analysis

import (
	"math"

	"stationforge/pkg/station"
)

// Station-keeping reference figures: the ISS burns roughly 200 kg of
// propellant per month at ~400 km to hold a ~420,000 kg station on orbit.
const (
	referenceStationMass      = 420_000
	referenceMonthlyPropelant = 200
	fuelCostPerKg             = 5_000
	orbitalAltitudeKm         = 400
	orbitalInclinationDeg     = 51.6
)

// StationKeeping estimates the reboost propellant budget for a station of
// the given mass.
type StationKeeping struct {
	PropellantPerMonth int     `json:"propellant_per_month_kg"`
	ReboostFrequency   string  `json:"reboost_frequency_days"`
	TenYearFuelMass    int     `json:"ten_year_fuel_mass_kg"`
	TenYearFuelCost    int     `json:"ten_year_fuel_cost"`
	OrbitalAltitude    int     `json:"orbital_altitude_km"`
	Inclination        float64 `json:"inclination_deg"`
}

// CalculateStationKeeping scales the reference propellant burn linearly
// with total station mass.
func CalculateStationKeeping(totalMass float64) StationKeeping {
	scale := totalMass / referenceStationMass
	monthly := int(math.Round(referenceMonthlyPropelant * scale))

	frequency := "45-60"
	if totalMass > 100_000 {
		frequency = "30-45"
	}

	tenYearMass := monthly * station.HorizonMonths
	return StationKeeping{
		PropellantPerMonth: monthly,
		ReboostFrequency:   frequency,
		TenYearFuelMass:    tenYearMass,
		TenYearFuelCost:    tenYearMass * fuelCostPerKg,
		OrbitalAltitude:    orbitalAltitudeKm,
		Inclination:        orbitalInclinationDeg,
	}
}
