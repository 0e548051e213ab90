package valuation

import (
	"math"

	"bizplan_forecast/pkg/models"
)

// CalculatePayback walks cumulative cash flow until it covers the investment.
// Months are rounded up within the recovery year and carry into the next
// year at 12. Past the horizon, a positive final-year cash flow is
// extrapolated. Returns nil when the investment is never recovered.
func CalculatePayback(investment float64, cashFlows []float64) *models.Payback {
	if investment <= 0 {
		return &models.Payback{}
	}

	cumulative := 0.0
	for i, cf := range cashFlows {
		if cumulative+cf >= investment {
			needed := investment - cumulative
			fraction := 0.0
			if cf > 0 {
				fraction = needed / cf
			}
			p := carryMonths(i, int(math.Ceil(fraction*12)))
			return &p
		}
		cumulative += cf
	}

	if len(cashFlows) == 0 {
		return nil
	}
	lastCF := cashFlows[len(cashFlows)-1]
	if lastCF <= 0 {
		return nil
	}

	extraYears := (investment - cumulative) / lastCF
	whole := math.Floor(extraYears)
	p := carryMonths(len(cashFlows)+int(whole), int(math.Ceil((extraYears-whole)*12)))
	return &p
}

func carryMonths(years, months int) models.Payback {
	if months >= 12 {
		years++
		months = 0
	}
	return models.Payback{Years: years, Months: months}
}
