package calc

import (
	"math"

	"bizplan_forecast/pkg/models"
)

// financingTolerance absorbs cent-level rounding when checking the balance.
const financingTolerance = 0.005

// CalculateFinancingPlan checks funding resources against funding uses
// (investment TTC + startup costs + working capital).
func CalculateFinancingPlan(plan models.BusinessPlanData) models.FinancingPlan {
	investment := CalculateInvestment(plan.Equipments)
	uses := investment.TotalInclTax + plan.StartupCosts + plan.WorkingCapital

	f := plan.Funding
	resources := f.PersonalContribution + f.Grant + f.Dotation + f.BankLoan + f.Other
	gap := resources - uses

	return models.FinancingPlan{
		Uses:      uses,
		Resources: resources,
		Gap:       gap,
		Balanced:  math.Abs(gap) < financingTolerance,
	}
}
