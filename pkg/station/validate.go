package station

import "fmt"

// Reason classifies an install rejection.
type Reason string

// Install constraint failures. All are recoverable: the caller is expected
// to retry with a different bay, kind, or configuration.
const (
	ReasonBayOccupied       Reason = "BayOccupied"
	ReasonInsufficientPower Reason = "InsufficientPower"
	ReasonThermalLimit      Reason = "ThermalLimitExceeded"
	ReasonMissingDependency Reason = "MissingDependency"
)

// Constraint names the resource a failed check was about.
type Constraint string

// Constraint identifiers carried in validation details.
const (
	ConstraintBay        Constraint = "bay"
	ConstraintPower      Constraint = "power"
	ConstraintThermal    Constraint = "thermal"
	ConstraintDependency Constraint = "dependency"
)

// ValidationDetails quantifies a constraint failure for the caller.
type ValidationDetails struct {
	Constraint  Constraint `json:"constraint"`
	Current     float64    `json:"current"`
	Required    float64    `json:"required"`
	Available   float64    `json:"available"`
	Suggestions []string   `json:"suggestions"`
}

// ValidationResult is the structured outcome of an install attempt.
// Constraint violations are reported here, never as errors.
type ValidationResult struct {
	Valid   bool               `json:"valid"`
	Reason  Reason             `json:"reason,omitempty"`
	Message string             `json:"message,omitempty"`
	Details *ValidationDetails `json:"details,omitempty"`
}

// InstallContext is the read-only view an install rule evaluates against.
type InstallContext struct {
	Bay        int
	Definition ModuleDefinition
	Metrics    Metrics
	Modules    []InstalledModule
}

// InstallRule checks one precondition of an install. A nil result means the
// rule passes; otherwise the returned result describes the rejection.
type InstallRule interface {
	Name() string
	Check(ctx InstallContext) *ValidationResult
}

// DefaultInstallRules returns the built-in precondition set in evaluation
// order. The first failing rule wins.
func DefaultInstallRules() []InstallRule {
	return []InstallRule{
		bayOccupancyRule{},
		powerHeadroomRule{},
		thermalHeadroomRule{},
		dependencyRule{},
	}
}

// ValidateInstall runs the rules in order against the candidate install and
// returns the first failure, or a valid result when every rule passes.
func ValidateInstall(rules []InstallRule, ctx InstallContext) ValidationResult {
	for _, rule := range rules {
		if res := rule.Check(ctx); res != nil {
			return *res
		}
	}
	return ValidationResult{Valid: true}
}

type bayOccupancyRule struct{}

func (bayOccupancyRule) Name() string { return "bay_occupancy" }

func (bayOccupancyRule) Check(ctx InstallContext) *ValidationResult {
	occupant, occupied := ModuleAt(ctx.Modules, ctx.Bay)
	if !occupied {
		return nil
	}
	return &ValidationResult{
		Reason:  ReasonBayOccupied,
		Message: fmt.Sprintf("bay %d is already occupied by %s", ctx.Bay, occupant.Kind),
		Details: &ValidationDetails{
			Constraint: ConstraintBay,
			Current:    1,
			Required:   0,
			Suggestions: []string{
				"Choose an empty bay",
				fmt.Sprintf("Remove the %s module from bay %d first", occupant.Kind, ctx.Bay),
			},
		},
	}
}

type powerHeadroomRule struct{}

func (powerHeadroomRule) Name() string { return "power_headroom" }

func (powerHeadroomRule) Check(ctx InstallContext) *ValidationResult {
	need := ctx.Definition.Demands.PowerContinuous
	available := ctx.Metrics.PowerAvailable()
	if need <= available {
		return nil
	}
	powerDef := catalog[KindPower]
	return &ValidationResult{
		Reason: ReasonInsufficientPower,
		Message: fmt.Sprintf("insufficient power: need %.1f kW, have %.1f kW (short %.1f kW)",
			need, available, need-available),
		Details: &ValidationDetails{
			Constraint: ConstraintPower,
			Current:    ctx.Metrics.PowerContinuous,
			Required:   need,
			Available:  available,
			Suggestions: []string{
				fmt.Sprintf("Add %s (+%.0f kW generation)", powerDef.Title, powerDef.Provides.PowerGenerated),
				"Remove high-power modules (Data Center, Manufacturing)",
			},
		},
	}
}

type thermalHeadroomRule struct{}

func (thermalHeadroomRule) Name() string { return "thermal_headroom" }

func (thermalHeadroomRule) Check(ctx InstallContext) *ValidationResult {
	need := ctx.Definition.Demands.ThermalLoad
	available := ctx.Metrics.ThermalAvailable()
	if need <= available {
		return nil
	}
	powerDef := catalog[KindPower]
	return &ValidationResult{
		Reason: ReasonThermalLimit,
		Message: fmt.Sprintf("thermal limit: need %.1f kW cooling, have %.1f kW (short %.1f kW)",
			need, available, need-available),
		Details: &ValidationDetails{
			Constraint: ConstraintThermal,
			Current:    ctx.Metrics.ThermalLoad,
			Required:   need,
			Available:  available,
			Suggestions: []string{
				fmt.Sprintf("Add %s (+%.0f kW cooling)", powerDef.Title, powerDef.Provides.ThermalCapacity),
				"Remove high-heat modules (Data Center, Manufacturing)",
			},
		},
	}
}

type dependencyRule struct{}

func (dependencyRule) Name() string { return "dependency" }

func (dependencyRule) Check(ctx InstallContext) *ValidationResult {
	for _, req := range ctx.Definition.Requires {
		if HasActiveKind(ctx.Modules, req) {
			continue
		}
		title := string(req)
		if def, err := Definition(req); err == nil {
			title = def.Title
		}
		return &ValidationResult{
			Reason:  ReasonMissingDependency,
			Message: fmt.Sprintf("requires an active %s", title),
			Details: &ValidationDetails{
				Constraint: ConstraintDependency,
				Current:    0,
				Required:   1,
				Suggestions: []string{
					fmt.Sprintf("Install %s first", title),
					fmt.Sprintf("%s needs %s for crew access", ctx.Definition.Title, title),
				},
			},
		}
	}
	return nil
}
