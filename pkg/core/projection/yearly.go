package projection

import (
	"math"

	"bizplan_forecast/pkg/core/calc"
	"bizplan_forecast/pkg/core/valuation"
	"bizplan_forecast/pkg/models"
)

// ComposeYear builds the income statement of the zero-based year offset.
// loanInterest is that year's interest from the loan schedule.
func ComposeYear(plan models.BusinessPlanData, offset int, loanInterest float64) models.YearlyResults {
	year := offset + 1

	// 1. Growth multipliers
	turnoverGrowth := math.Pow(1+plan.TurnoverGrowthRate/100, float64(offset))
	expenseGrowth := math.Pow(1+plan.ExpensesGrowthRate/100, float64(offset))

	// 2. Turnover
	baseTurnover := 0.0
	for _, p := range plan.Products {
		baseTurnover += p.UnitPrice * p.AnnualQuantity
	}
	turnover := baseTurnover * turnoverGrowth

	// 3. Materials
	baseMaterials := 0.0
	for _, m := range plan.RawMaterials {
		baseMaterials += m.UnitCost * m.AnnualQuantity
	}
	materials := baseMaterials * expenseGrowth

	// 4. Personnel, every component scaled identically
	personnel := calc.CalculatePersonnelCost(plan.Personnel, calc.PersonnelRates{
		SocialCharges:      plan.SocialChargesRate,
		VocationalTraining: plan.VocationalTrainingRate,
		HousingFund:        plan.HousingFundRate,
	}, year).Scale(expenseGrowth)
	personnelCost := personnel.TotalCost

	// 5. External services
	coreServices := plan.ExternalCharges.CoreServices() * expenseGrowth
	otherServices := plan.ExternalCharges.OtherServices() * expenseGrowth

	// 6-7. Fixed schedules
	amortization := calc.AnnualAmortization(plan.Equipments, offset)
	financialCharges := loanInterest

	// 8. Manual overrides replace computed lines before tax
	if o, ok := plan.ManualOverrides[year]; ok {
		turnover = pick(o.Turnover, turnover)
		materials = pick(o.MaterialsCost, materials)
		personnelCost = pick(o.PersonnelCost, personnelCost)
		coreServices = pick(o.CoreServices, coreServices)
		otherServices = pick(o.OtherServices, otherServices)
		amortization = pick(o.Amortization, amortization)
		financialCharges = pick(o.FinancialCharges, financialCharges)
	}

	// 10-11. Expenses and pre-tax income
	totalExpenses := materials + personnelCost + coreServices + otherServices + amortization + financialCharges
	preTaxIncome := turnover - totalExpenses

	// 9, 12. Taxes
	taxes := calc.CalculateTaxes(calc.TaxInput{
		Regime:         plan.TaxRegime,
		LegalStructure: plan.LegalStructure,
		Turnover:       turnover,
		PreTaxIncome:   preTaxIncome,
		TaxRate:        plan.TaxRate,
		LocalTaxRate:   plan.LocalTaxRate,
		StampDuty:      plan.StampDuty,
		FixedTaxes:     plan.FixedTaxes,
	})

	// 13-15. Result and cash flow
	netResult := preTaxIncome - taxes.TotalTaxes
	cashFlow := netResult + amortization
	discounted := cashFlow * valuation.DiscountFactor(plan.DiscountRate, year)

	return models.YearlyResults{
		Year:                  year,
		Turnover:              turnover,
		MaterialsCost:         materials,
		PersonnelCost:         personnelCost,
		TotalGrossSalary:      personnel.TotalGrossSalary,
		SocialCharges:         personnel.SocialCharges,
		VocationalTrainingTax: personnel.VocationalTrainingTax,
		HousingFundLevy:       personnel.HousingFundLevy,
		CoreServices:          coreServices,
		OtherServices:         otherServices,
		ExternalChargesTotal:  coreServices + otherServices,
		Amortization:          amortization,
		FinancialCharges:      financialCharges,
		TotalExpenses:         totalExpenses,
		PreTaxIncome:          preTaxIncome,
		LocalTax:              taxes.LocalTax,
		ItemizedTaxes:         taxes.ItemizedTaxes,
		CorporateTax:          taxes.CorporateTax,
		TotalTaxes:            taxes.TotalTaxes,
		NetResult:             netResult,
		CashFlow:              cashFlow,
		DiscountedCashFlow:    discounted,
	}
}

func pick(override *float64, computed float64) float64 {
	if override != nil {
		return *override
	}
	return computed
}
