package analysis

// Sustainability compares annual OPEX to annual revenue.
type Sustainability struct {
	Sustainable    bool    `json:"sustainable"`
	AnnualCashFlow float64 `json:"annual_cash_flow"`
	CoverageRatio  float64 `json:"coverage_ratio"` // revenue / OPEX
	Message        string  `json:"message"`
}

// AnalyzeSustainability buckets the revenue-to-OPEX coverage ratio.
func AnalyzeSustainability(annualOpex, annualRevenue float64) Sustainability {
	s := Sustainability{AnnualCashFlow: annualRevenue - annualOpex}
	if annualOpex > 0 {
		s.CoverageRatio = annualRevenue / annualOpex
	}

	switch {
	case s.CoverageRatio >= 1.5:
		s.Sustainable = true
		s.Message = "Strong cash flow - OPEX well covered"
	case s.CoverageRatio >= 1.0:
		s.Sustainable = true
		s.Message = "Break-even - minimal margin for growth"
	case s.CoverageRatio >= 0.5:
		s.Message = "Cash burn - losing money annually"
	default:
		s.Message = "Critical - OPEX far exceeds revenue"
	}
	return s
}
