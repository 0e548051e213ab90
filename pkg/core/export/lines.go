package export

import (
	"strconv"

	"bizplan_forecast/pkg/models"
)

// incomeLine is one row of the yearly income statement table.
type incomeLine struct {
	Label string
	Value func(y models.YearlyResults) float64
	Total bool
}

var incomeLines = []incomeLine{
	{Label: "Turnover", Value: func(y models.YearlyResults) float64 { return y.Turnover }, Total: true},
	{Label: "Materials cost", Value: func(y models.YearlyResults) float64 { return y.MaterialsCost }},
	{Label: "Gross salaries", Value: func(y models.YearlyResults) float64 { return y.TotalGrossSalary }},
	{Label: "Social charges", Value: func(y models.YearlyResults) float64 { return y.SocialCharges }},
	{Label: "Vocational training tax", Value: func(y models.YearlyResults) float64 { return y.VocationalTrainingTax }},
	{Label: "Housing fund levy", Value: func(y models.YearlyResults) float64 { return y.HousingFundLevy }},
	{Label: "Personnel cost", Value: func(y models.YearlyResults) float64 { return y.PersonnelCost }, Total: true},
	{Label: "Core services", Value: func(y models.YearlyResults) float64 { return y.CoreServices }},
	{Label: "Other services", Value: func(y models.YearlyResults) float64 { return y.OtherServices }},
	{Label: "Amortization", Value: func(y models.YearlyResults) float64 { return y.Amortization }},
	{Label: "Financial charges", Value: func(y models.YearlyResults) float64 { return y.FinancialCharges }},
	{Label: "Total expenses", Value: func(y models.YearlyResults) float64 { return y.TotalExpenses }, Total: true},
	{Label: "Pre-tax income", Value: func(y models.YearlyResults) float64 { return y.PreTaxIncome }, Total: true},
	{Label: "Local tax", Value: func(y models.YearlyResults) float64 { return y.LocalTax }},
	{Label: "Itemized taxes", Value: func(y models.YearlyResults) float64 { return y.ItemizedTaxes }},
	{Label: "Corporate tax", Value: func(y models.YearlyResults) float64 { return y.CorporateTax }},
	{Label: "Total taxes", Value: func(y models.YearlyResults) float64 { return y.TotalTaxes }, Total: true},
	{Label: "Net result", Value: func(y models.YearlyResults) float64 { return y.NetResult }, Total: true},
	{Label: "Cash flow", Value: func(y models.YearlyResults) float64 { return y.CashFlow }, Total: true},
	{Label: "Discounted cash flow", Value: func(y models.YearlyResults) float64 { return y.DiscountedCashFlow }},
}

func paybackText(p *models.Payback) string {
	if p == nil {
		return "not recovered"
	}
	return pluralize(p.Years, "year") + " " + pluralize(p.Months, "month")
}

func pluralize(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}
