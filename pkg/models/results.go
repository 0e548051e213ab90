package models

import (
	"encoding/json"
	"math"
)

// YearlyResults is one year of the projected income statement.
type YearlyResults struct {
	Year int `json:"year"` // 1-based

	Turnover      float64 `json:"turnover"`
	MaterialsCost float64 `json:"materials_cost"`

	// Personnel (gross + statutory charges)
	PersonnelCost         float64 `json:"personnel_cost"`
	TotalGrossSalary      float64 `json:"total_gross_salary"`
	SocialCharges         float64 `json:"social_charges"`
	VocationalTrainingTax float64 `json:"vocational_training_tax"`
	HousingFundLevy       float64 `json:"housing_fund_levy"`

	// External services
	CoreServices         float64 `json:"core_services"`
	OtherServices        float64 `json:"other_services"`
	ExternalChargesTotal float64 `json:"external_charges_total"`

	Amortization     float64 `json:"amortization"`
	FinancialCharges float64 `json:"financial_charges"`
	TotalExpenses    float64 `json:"total_expenses"`
	PreTaxIncome     float64 `json:"pre_tax_income"`

	// Taxes
	LocalTax      float64 `json:"local_tax"`
	ItemizedTaxes float64 `json:"itemized_taxes"`
	CorporateTax  float64 `json:"corporate_tax"`
	TotalTaxes    float64 `json:"total_taxes"`

	NetResult          float64 `json:"net_result"`
	CashFlow           float64 `json:"cash_flow"`
	DiscountedCashFlow float64 `json:"discounted_cash_flow"`
}

// AmortizationRow is the multi-year depreciation schedule of one equipment item.
type AmortizationRow struct {
	Name         string    `json:"name"`
	ExclTaxValue float64   `json:"excl_tax_value"`
	Duration     int       `json:"duration"`
	YearlyValues []float64 `json:"yearly_values"`
}

// LoanRepaymentRow rolls twelve monthly annuity payments into one year.
type LoanRepaymentRow struct {
	Year             int     `json:"year"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	Total            float64 `json:"total"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// Payback is the time needed for cumulative cash flow to recover the investment.
type Payback struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// BreakEvenValue is a break-even turnover. +Inf marks an unreachable break-even
// (contribution margin <= 0) and is encoded as JSON null.
type BreakEvenValue float64

// Unreachable returns the undefined break-even marker.
func Unreachable() BreakEvenValue {
	return BreakEvenValue(math.Inf(1))
}

// Defined reports whether the break-even point is a finite amount.
func (b BreakEvenValue) Defined() bool {
	f := float64(b)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func (b BreakEvenValue) MarshalJSON() ([]byte, error) {
	if !b.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(b))
}

func (b *BreakEvenValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = Unreachable()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*b = BreakEvenValue(f)
	return nil
}

// Summary holds the cross-year profitability indicators.
type Summary struct {
	NPV          float64  `json:"npv"`
	Payback      *Payback `json:"payback"` // nil: not recovered
	IRR          float64  `json:"irr"`     // %, 0 when the solver fails
	IRRConverged bool     `json:"irr_converged"`

	// Cruise-year net result over total investment (%)
	CruiseYearReturn float64 `json:"cruise_year_return"`

	BreakEvenPoint     BreakEvenValue `json:"break_even_point"`
	TotalInvestment    float64        `json:"total_investment"`
	FixedCosts         float64        `json:"fixed_costs"`
	VariableCosts      float64        `json:"variable_costs"`
	ContributionMargin float64        `json:"contribution_margin"`
	CruiseYear         int            `json:"cruise_year"`
	CruiseYearData     YearlyResults  `json:"cruise_year_data"`
}

type CumulativeCashFlowPoint struct {
	Year            int     `json:"year"`
	Cumulative      float64 `json:"cumulative"`
	TotalInvestment float64 `json:"total_investment"`
}

type BreakEvenEvolutionPoint struct {
	Year           int     `json:"year"`
	Turnover       float64 `json:"turnover"`
	BreakEvenPoint float64 `json:"break_even_point"` // 0 when unreachable
}

type CVPPoint struct {
	Percentage int     `json:"percentage"`
	Revenue    float64 `json:"revenue"`
	FixedCosts float64 `json:"fixed_costs"`
	TotalCosts float64 `json:"total_costs"`
}

// OperatingResults is the full output of the projection engine.
type OperatingResults struct {
	Years                []YearlyResults           `json:"years"`
	DetailedAmortization []AmortizationRow         `json:"detailed_amortization"`
	LoanRepayment        []LoanRepaymentRow        `json:"loan_repayment"`
	Summary              Summary                   `json:"summary"`
	CumulativeCashFlow   []CumulativeCashFlowPoint `json:"cumulative_cash_flow"`
	BreakEvenEvolution   []BreakEvenEvolutionPoint `json:"break_even_evolution"`
	CVP                  []CVPPoint                `json:"cvp"`
}

// InvestmentTotals are the HT/VAT/TTC totals of the equipment list.
type InvestmentTotals struct {
	TotalExclTax float64 `json:"total_excl_tax"`
	TotalTax     float64 `json:"total_tax"`
	TotalInclTax float64 `json:"total_incl_tax"`
}

// FinancingPlan compares funding resources with funding uses.
type FinancingPlan struct {
	Uses      float64 `json:"uses"`
	Resources float64 `json:"resources"`
	Gap       float64 `json:"gap"` // resources - uses
	Balanced  bool    `json:"balanced"`
}
