package valuation

import (
	"math"
)

// DiscountFactor returns 1/(1+rate)^period for a rate in percent.
func DiscountFactor(ratePercent float64, period int) float64 {
	return 1 / math.Pow(1+ratePercent/100, float64(period))
}

// NPV sums already-discounted cash flows and subtracts the initial investment.
func NPV(discountedCashFlows []float64, investment float64) float64 {
	total := 0.0
	for _, dcf := range discountedCashFlows {
		total += dcf
	}
	return total - investment
}

// NPVAt discounts a cash-flow series at a decimal rate, flows[0] being t=0.
func NPVAt(flows []float64, rate float64) float64 {
	npv := 0.0
	for t, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}
