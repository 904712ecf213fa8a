package station

import "math"

// HorizonMonths is the fixed evaluation horizon for every time-value
// computation: ten years.
const HorizonMonths = 120

// BreakEvenNever is the sentinel break-even value for configurations whose
// monthly net cash flow never recovers the investment.
const BreakEvenNever = -1

// OPEX model constants. Crewed stations carry materially heavier fixed
// costs; crew-dependent categories scale with crew size against a baseline
// crew of four. Insurance and maintenance are annual fractions of the total
// investment.
const (
	baselineCrewSize = 4

	insuranceRate   = 0.05
	maintenanceRate = 0.02

	crewedMissionControl = 50_000_000
	crewedGroundStaff    = 100_000_000
	crewedCrewRotation   = 150_000_000
	crewedCargoResupply  = 300_000_000
	crewedCrewTraining   = 50_000_000

	uncrewedMissionControl = 15_000_000
	uncrewedGroundStaff    = 30_000_000
	uncrewedCargoResupply  = 80_000_000
)

// FinancialParameters are the user-tunable knobs of the evaluator.
type FinancialParameters struct {
	// DiscountRate is annual and fractional (0.10 = 10%).
	DiscountRate float64 `json:"discount_rate"`
	// RevenueMultiplier scales realized revenue against catalog nominal
	// revenue for sensitivity analysis.
	RevenueMultiplier float64 `json:"revenue_multiplier"`
}

// DefaultFinancialParameters returns the starting parameter set.
func DefaultFinancialParameters() FinancialParameters {
	return FinancialParameters{DiscountRate: 0.10, RevenueMultiplier: 1.0}
}

// OPEXBreakdown decomposes annual operating expenditure by category.
type OPEXBreakdown struct {
	MissionControl float64 `json:"mission_control"`
	GroundStaff    float64 `json:"ground_staff"`
	Insurance      float64 `json:"insurance"`
	Maintenance    float64 `json:"maintenance"`

	CrewRotation  float64 `json:"crew_rotation"`
	CargoResupply float64 `json:"cargo_resupply"`
	CrewTraining  float64 `json:"crew_training"`

	AnnualTotal  float64 `json:"annual_total"`
	MonthlyTotal float64 `json:"monthly_total"`

	Crewed bool `json:"crewed"`
}

// CalculateAnnualOPEX models whole-station operating expenditure from the
// asset value (capex plus launch) and the crew complement. This model, not
// the catalog-summed per-module opex, is what the NPV, IRR, and break-even
// computations consume.
func CalculateAnnualOPEX(assetValue float64, crewSize int) OPEXBreakdown {
	crewed := crewSize > 0

	var b OPEXBreakdown
	b.Crewed = crewed
	if crewed {
		crewScale := math.Max(1, float64(crewSize)/baselineCrewSize)
		b.MissionControl = crewedMissionControl
		b.GroundStaff = crewedGroundStaff
		b.CrewRotation = math.Round(crewedCrewRotation * crewScale)
		b.CargoResupply = math.Round(crewedCargoResupply * crewScale)
		b.CrewTraining = math.Round(crewedCrewTraining * crewScale)
	} else {
		b.MissionControl = uncrewedMissionControl
		b.GroundStaff = uncrewedGroundStaff
		b.CargoResupply = uncrewedCargoResupply
	}

	b.Insurance = math.Round(assetValue * insuranceRate)
	b.Maintenance = math.Round(assetValue * maintenanceRate)

	b.AnnualTotal = b.MissionControl + b.GroundStaff + b.CrewRotation +
		b.CargoResupply + b.CrewTraining + b.Insurance + b.Maintenance
	b.MonthlyTotal = math.Round(b.AnnualTotal / 12)
	return b
}

// CalculateNPV discounts the constant monthly net cash flow over the
// horizon at the monthly-equivalent rate (annual/12) against the initial
// investment outflow, rounded to the nearest whole currency unit.
func CalculateNPV(investment, monthlyRevenue, monthlyOpex float64, months int, discountRate float64) float64 {
	monthlyRate := discountRate / 12
	net := monthlyRevenue - monthlyOpex

	npv := -investment
	for t := 1; t <= months; t++ {
		npv += net / math.Pow(1+monthlyRate, float64(t))
	}
	return math.Round(npv)
}

// CalculateIRR solves for the annual discount rate at which NPV over the
// horizon is zero, by bisection over [-50%, 200%]. It returns NaN when IRR
// is undefined: non-positive monthly net cash flow or non-positive
// investment.
func CalculateIRR(investment, monthlyRevenue, monthlyOpex float64, months int) float64 {
	net := monthlyRevenue - monthlyOpex
	if net <= 0 || investment <= 0 {
		return math.NaN()
	}

	low, high := -0.5, 2.0
	guess := 0.1
	for i := 0; i < 50; i++ {
		npv := CalculateNPV(investment, monthlyRevenue, monthlyOpex, months, guess)
		if math.Abs(npv) < 1000 {
			break
		}
		if npv > 0 {
			low = guess
		} else {
			high = guess
		}
		guess = (low + high) / 2
	}

	return math.Max(-0.5, math.Min(2.0, guess))
}

// CalculateBreakEven returns the month count in which cumulative net cash
// flow recovers the investment, or BreakEvenNever when the net flow is not
// positive.
func CalculateBreakEven(investment, monthlyRevenue, monthlyOpex float64) int {
	net := monthlyRevenue - monthlyOpex
	if net <= 0 {
		return BreakEvenNever
	}
	return int(math.Ceil(investment / net))
}

// EvaluateFinancials completes aggregated metrics with launch logistics,
// the station OPEX model, realized revenue, and the time-value outputs. It
// always recomputes from scratch; there is no incremental update.
func EvaluateFinancials(m Metrics, params FinancialParameters, vehicle LaunchVehicle) (Metrics, OPEXBreakdown) {
	launch := CalculateLaunchCost(m.TotalMass, vehicle)
	m.LaunchCost = launch.TotalCost
	m.TotalInvestment = m.CapitalCost + launch.TotalCost

	opex := CalculateAnnualOPEX(m.TotalInvestment, m.CrewRequired)
	m.MonthlyOperatingCost = opex.MonthlyTotal

	m.MonthlyRevenue = m.MonthlyRevenue * params.RevenueMultiplier

	m.NetPresentValue = CalculateNPV(m.TotalInvestment, m.MonthlyRevenue, m.MonthlyOperatingCost, HorizonMonths, params.DiscountRate)
	m.InternalRateOfReturn = CalculateIRR(m.TotalInvestment, m.MonthlyRevenue, m.MonthlyOperatingCost, HorizonMonths)
	m.BreakEvenMonths = CalculateBreakEven(m.TotalInvestment, m.MonthlyRevenue, m.MonthlyOperatingCost)

	return m, opex
}
