package projection

import (
	"bizplan_forecast/pkg/models"
)

// Fallbacks applied to unset plan assumptions.
const (
	DefaultProjectionYears    = 7
	DefaultCruiseYear         = 3
	DefaultDiscountRate       = 12.0
	DefaultLoanDurationMonths = 84
	DefaultLoanAnnualRate     = 10.0
)

// Normalize returns a copy of plan with defaults filled in and the cruise
// year clamped into [1, ProjectionYears]. The caller's plan is not modified.
func Normalize(plan models.BusinessPlanData) models.BusinessPlanData {
	out := plan

	if out.ProjectionYears <= 0 {
		out.ProjectionYears = DefaultProjectionYears
	}
	if out.CruiseYear == 0 {
		out.CruiseYear = DefaultCruiseYear
	}
	out.CruiseYear = clampInt(out.CruiseYear, 1, out.ProjectionYears)

	if out.DiscountRate == 0 {
		out.DiscountRate = DefaultDiscountRate
	}

	// Loan terms
	if out.Loan.Amount == 0 {
		out.Loan.Amount = out.Funding.BankLoan
	}
	if out.Loan.DurationMonths == 0 {
		out.Loan.DurationMonths = DefaultLoanDurationMonths
	}
	if out.Loan.AnnualRate == 0 {
		out.Loan.AnnualRate = DefaultLoanAnnualRate
	}

	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
