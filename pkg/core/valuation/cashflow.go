package valuation

import (
	"bizplan_forecast/pkg/models"
)

// CumulativeCashFlow is the running sum of yearly cash flow, tagged with the
// investment line for charting.
func CumulativeCashFlow(cashFlows []float64, investment float64) []models.CumulativeCashFlowPoint {
	series := make([]models.CumulativeCashFlowPoint, 0, len(cashFlows))
	cumulative := 0.0
	for i, cf := range cashFlows {
		cumulative += cf
		series = append(series, models.CumulativeCashFlowPoint{
			Year:            i + 1,
			Cumulative:      cumulative,
			TotalInvestment: investment,
		})
	}
	return series
}
