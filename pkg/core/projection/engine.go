package projection

import (
	"bizplan_forecast/pkg/core/calc"
	"bizplan_forecast/pkg/core/valuation"
	"bizplan_forecast/pkg/models"
)

// Engine turns a business plan into its full operating model.
// It holds no state; one Engine may serve concurrent callers.
type Engine struct{}

// NewEngine creates a projection engine
func NewEngine() *Engine {
	return &Engine{}
}

// Run normalizes the plan and computes every year plus the cross-year
// indicators. The narrative section of the plan is ignored.
func (e *Engine) Run(input models.BusinessPlanData) *models.OperatingResults {
	plan := Normalize(input)
	horizon := plan.ProjectionYears

	// 1. Loan schedule over the whole horizon
	loanSchedule := calc.LoanSchedule(plan.Loan.Amount, plan.Loan.DurationMonths, plan.Loan.AnnualRate, horizon)

	// 2. Yearly income statements
	years := make([]models.YearlyResults, 0, horizon)
	cashFlows := make([]float64, 0, horizon)
	discounted := make([]float64, 0, horizon)
	for offset := 0; offset < horizon; offset++ {
		y := ComposeYear(plan, offset, calc.InterestForYear(loanSchedule, offset))
		years = append(years, y)
		cashFlows = append(cashFlows, y.CashFlow)
		discounted = append(discounted, y.DiscountedCashFlow)
	}

	// 3-6. Investment indicators
	investment := calc.TotalInvestment(plan.Equipments)
	irr := valuation.CalculateIRR(investment, cashFlows)

	// 7-8. Cruise year and break-even
	cruise := years[plan.CruiseYear-1]
	costs := valuation.Decompose(cruise)

	cruiseReturn := 0.0
	if investment > 0 {
		cruiseReturn = cruise.NetResult / investment * 100
	}

	return &models.OperatingResults{
		Years:                years,
		DetailedAmortization: calc.DetailedAmortization(plan.Equipments, horizon),
		LoanRepayment:        loanSchedule,
		Summary: models.Summary{
			NPV:                valuation.NPV(discounted, investment),
			Payback:            valuation.CalculatePayback(investment, cashFlows),
			IRR:                irr.Rate,
			IRRConverged:       irr.Converged,
			CruiseYearReturn:   cruiseReturn,
			BreakEvenPoint:     costs.BreakEvenPoint(),
			TotalInvestment:    investment,
			FixedCosts:         costs.FixedCosts,
			VariableCosts:      costs.VariableCosts,
			ContributionMargin: costs.ContributionMargin,
			CruiseYear:         plan.CruiseYear,
			CruiseYearData:     cruise,
		},
		// 9-11. Chart series
		CumulativeCashFlow: valuation.CumulativeCashFlow(cashFlows, investment),
		BreakEvenEvolution: valuation.BreakEvenEvolution(years),
		CVP:                valuation.CVPCurve(cruise),
	}
}

// Calculate is a convenience wrapper around a fresh Engine.
func Calculate(plan models.BusinessPlanData) *models.OperatingResults {
	return NewEngine().Run(plan)
}
