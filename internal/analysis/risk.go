package analysis

import (
	"fmt"
	"math/rand"

	"stationforge/pkg/station"
)

// EventType identifies one of the simulated hazard kinds.
type EventType string

const (
	EventMeteor      EventType = "meteor"
	EventSolarFlare  EventType = "solar_flare"
	EventMalfunction EventType = "malfunction"
)

// RiskEvent describes a hazard and its base severity in [0,1].
type RiskEvent struct {
	ID          EventType `json:"id"`
	Name        string    `json:"name"`
	Severity    float64   `json:"severity"`
	Description string    `json:"description"`
}

var riskEvents = map[EventType]RiskEvent{
	EventMeteor: {
		ID:          EventMeteor,
		Name:        "Meteor Shower",
		Severity:    0.7,
		Description: "High-velocity debris field approaching. Shielding recommended.",
	},
	EventSolarFlare: {
		ID:          EventSolarFlare,
		Name:        "Solar Flare",
		Severity:    0.6,
		Description: "Elevated solar activity detected. Radiation levels increasing.",
	},
	EventMalfunction: {
		ID:          EventMalfunction,
		Name:        "System Malfunction",
		Severity:    0.4,
		Description: "Random component failure detected. Repair capacity critical.",
	},
}

// RiskProfile holds the station's defense stats, each in [0,100].
type RiskProfile struct {
	ShieldingLevel  int `json:"shielding_level"`
	RadiationResist int `json:"radiation_resist"`
	RepairCapacity  int `json:"repair_capacity"`
	OverallDefense  int `json:"overall_defense"`
}

type defenseContribution struct {
	shielding int
	radiation int
	repair    int
}

// Per-kind defense contributions; only active modules count.
var defenseModules = map[station.ModuleKind]defenseContribution{
	station.KindRepair:  {repair: 50, shielding: 10},
	station.KindCargo:   {repair: 15},
	station.KindHub:     {shielding: 20, radiation: 10},
	station.KindPower:   {radiation: 20},
	station.KindAirlock: {repair: 20},
}

// CalculateRiskProfile sums active-module defense contributions, capping
// each axis at 100. The hub always contributes.
func CalculateRiskProfile(modules []station.InstalledModule) RiskProfile {
	hub := defenseModules[station.KindHub]
	shielding, radiation, repair := hub.shielding, hub.radiation, hub.repair

	for _, m := range modules {
		if !m.Active() {
			continue
		}
		d, ok := defenseModules[m.Kind]
		if !ok {
			continue
		}
		shielding += d.shielding
		radiation += d.radiation
		repair += d.repair
	}

	shielding = min(shielding, 100)
	radiation = min(radiation, 100)
	repair = min(repair, 100)

	overall := int(float64(shielding)*0.4 + float64(radiation)*0.3 + float64(repair)*0.3 + 0.5)
	return RiskProfile{
		ShieldingLevel:  shielding,
		RadiationResist: radiation,
		RepairCapacity:  repair,
		OverallDefense:  overall,
	}
}

// Outcome tiers for a simulated event.
type EventOutcome string

const (
	OutcomeDeflected EventOutcome = "deflected"
	OutcomeMitigated EventOutcome = "mitigated"
	OutcomeDamaged   EventOutcome = "damaged"
	OutcomeCritical  EventOutcome = "critical_damage"
)

// EventResult reports the simulated outcome of one hazard event.
type EventResult struct {
	Event    EventType    `json:"event"`
	Outcome  EventOutcome `json:"outcome"`
	Success  bool         `json:"success"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Severity string       `json:"severity"` // critical|warning|success
}

// Simulator runs non-deterministic hazard simulations. The noise source is
// injectable so tests can pin outcomes.
type Simulator struct {
	noise func() float64 // returns a value in [-10, 10)
}

// NewSimulator seeds a simulator with the default random noise source.
func NewSimulator(rng *rand.Rand) *Simulator {
	if rng == nil {
		return &Simulator{noise: func() float64 { return rand.Float64()*20 - 10 }}
	}
	return &Simulator{noise: func() float64 { return rng.Float64()*20 - 10 }}
}

// NewSimulatorWithNoise pins the perturbation source, for tests.
func NewSimulatorWithNoise(noise func() float64) *Simulator {
	return &Simulator{noise: noise}
}

// SimulateEvent resolves one hazard against the profile. The outcome draws
// a bounded random perturbation and has no effect on station state.
func (s *Simulator) SimulateEvent(eventType EventType, profile RiskProfile) (EventResult, error) {
	event, ok := riskEvents[eventType]
	if !ok {
		return EventResult{}, fmt.Errorf("unknown risk event %q", eventType)
	}

	var defense int
	var defenseName string
	switch eventType {
	case EventMeteor:
		defense, defenseName = profile.ShieldingLevel, "Shielding"
	case EventSolarFlare:
		defense, defenseName = profile.RadiationResist, "Radiation Resistance"
	case EventMalfunction:
		defense, defenseName = profile.RepairCapacity, "Repair Capacity"
	}

	score := float64(defense) - event.Severity*100 + s.noise()

	res := EventResult{Event: eventType}
	switch {
	case score >= 20:
		res.Outcome = OutcomeDeflected
		res.Success = true
		res.Title = event.Name + " - DEFLECTED"
		res.Message = fmt.Sprintf("%s at %d%% held strong. No damage sustained.", defenseName, defense)
		res.Severity = "success"
	case score >= -10:
		res.Outcome = OutcomeMitigated
		res.Success = true
		res.Title = event.Name + " - MITIGATED"
		res.Message = fmt.Sprintf("Minor damage absorbed. %s reduced impact significantly.", defenseName)
		res.Severity = "warning"
	case score >= -30:
		res.Outcome = OutcomeDamaged
		res.Title = event.Name + " - DAMAGE SUSTAINED"
		res.Message = fmt.Sprintf("%s insufficient (%d%%). Station systems stressed.", defenseName, defense)
		res.Severity = "warning"
	default:
		res.Outcome = OutcomeCritical
		res.Title = event.Name + " - CRITICAL DAMAGE"
		res.Message = fmt.Sprintf("%s failed! Major system damage. Immediate repairs needed.", defenseName)
		res.Severity = "critical"
	}
	return res, nil
}

// RiskLevel buckets the overall defense score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ClassifyRisk maps an overall defense score to a risk level and label.
func ClassifyRisk(overallDefense int) (RiskLevel, string) {
	switch {
	case overallDefense >= 70:
		return RiskLow, "Well Protected"
	case overallDefense >= 40:
		return RiskMedium, "Moderate Risk"
	case overallDefense >= 20:
		return RiskHigh, "High Risk"
	default:
		return RiskCritical, "Critical Vulnerability"
	}
}
