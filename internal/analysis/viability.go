package analysis

import (
	"fmt"
	"math"
)

// ViabilityVerdict classifies the station economics.
type ViabilityVerdict string

const (
	VerdictViable    ViabilityVerdict = "viable"
	VerdictMarginal  ViabilityVerdict = "marginal"
	VerdictNotViable ViabilityVerdict = "not_viable"
)

// PaybackNever marks a configuration that never recovers its investment.
const PaybackNever = -1.0

// Payback threshold in years beyond which a profitable station is still
// only marginal.
const paybackThresholdYears = 15.0

// launchCostShareThreshold is the launch-cost fraction of total investment
// above which launch logistics are called out as a contributing factor.
const launchCostShareThreshold = 0.4

// ViabilityResult is the verdict plus its supporting reasons.
type ViabilityResult struct {
	Verdict          ViabilityVerdict `json:"verdict"`
	AnnualProfitLoss float64          `json:"annual_profit_loss"`
	PaybackYears     float64          `json:"payback_years"` // PaybackNever if never
	ROI              float64          `json:"roi_percent"`
	Reasons          []string         `json:"reasons"`
	Suggestions      []string         `json:"suggestions,omitempty"`
}

// AnalyzeViability classifies station economics from the investment and
// annual cash flow figures.
func AnalyzeViability(capex, launchCost, annualRevenue, annualOpex float64) ViabilityResult {
	totalInvestment := capex + launchCost
	annualCashFlow := annualRevenue - annualOpex

	res := ViabilityResult{
		AnnualProfitLoss: annualCashFlow,
		PaybackYears:     PaybackNever,
	}
	if totalInvestment > 0 {
		res.ROI = annualCashFlow / totalInvestment * 100
	}
	if annualCashFlow > 0 {
		res.PaybackYears = totalInvestment / annualCashFlow
	}

	switch {
	case annualCashFlow < 0:
		res.Verdict = VerdictNotViable
		res.Reasons = append(res.Reasons,
			"Negative cash flow (losing money annually)",
			fmt.Sprintf("OPEX ($%s) exceeds Revenue ($%s)", FormatMoney(annualOpex), FormatMoney(annualRevenue)))
		res.Suggestions = append(res.Suggestions,
			"Add high-revenue modules (Manufacturing, Service Station)",
			"Reduce crew size (major OPEX driver)",
			"Check launch costs contribution to total investment")
	case res.PaybackYears == PaybackNever || res.PaybackYears > paybackThresholdYears:
		res.Verdict = VerdictMarginal
		payback := "Infinite"
		if res.PaybackYears != PaybackNever {
			payback = fmt.Sprintf("%.1f", res.PaybackYears)
		}
		res.Reasons = append(res.Reasons,
			fmt.Sprintf("Long payback period (%s years)", payback),
			"ROI is below market standards for space infrastructure")
		res.Suggestions = append(res.Suggestions,
			"Optimize module mix for better revenue/mass ratio",
			"Consider staged deployment to reduce initial CAPEX")
	default:
		res.Verdict = VerdictViable
		res.Reasons = append(res.Reasons,
			fmt.Sprintf("Healthy payback period (%.1f years)", res.PaybackYears),
			"Positive cash flow with sustainable margins")
	}

	if totalInvestment > 0 && launchCost > totalInvestment*launchCostShareThreshold {
		res.Reasons = append(res.Reasons, "Launch costs are very high (>40% of investment)")
		res.Suggestions = append(res.Suggestions, "Use more mass-efficient modules or cheaper launch provider")
	}

	return res
}

// FormatMoney renders a dollar amount compactly (1.2B, 340M, 25K).
func FormatMoney(value float64) string {
	if math.IsNaN(value) {
		return "0"
	}
	abs := math.Abs(value)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", value/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.0fM", value/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.0fK", value/1_000)
	default:
		return fmt.Sprintf("%g", value)
	}
}
