package models

// TaxRegime selects how corporate/income tax is computed.
type TaxRegime string

const (
	TaxRegimeFlat TaxRegime = "flat" // forfaitaire: fixed base + % of turnover above a threshold
	TaxRegimeReal TaxRegime = "real" // réel: income-based, brackets for individual proprietors
)

// LegalStructure drives the income-tax schedule and the minimum-tax floor.
type LegalStructure string

const (
	LegalStructurePP    LegalStructure = "PP"    // individual proprietorship
	LegalStructureSUARL LegalStructure = "SUARL" // single-member limited liability
	LegalStructureSARL  LegalStructure = "SARL"  // limited liability
	LegalStructureSA    LegalStructure = "SA"    // public limited company
)

// IsCorporate reports whether the structure pays the corporate minimum tax.
func (s LegalStructure) IsCorporate() bool {
	switch s {
	case LegalStructureSUARL, LegalStructureSARL, LegalStructureSA:
		return true
	}
	return false
}

// EquipmentItem is a capital asset. VATRate is a percentage and
// DepreciationDuration a straight-line duration in years (0 disables amortization).
type EquipmentItem struct {
	Name                 string  `json:"name" yaml:"name"`
	UnitPriceExclTax     float64 `json:"unit_price_excl_tax" yaml:"unit_price_excl_tax"`
	Quantity             float64 `json:"quantity" yaml:"quantity"`
	VATRate              float64 `json:"vat_rate" yaml:"vat_rate"`
	DepreciationDuration int     `json:"depreciation_duration" yaml:"depreciation_duration"`
}

// ExclTaxValue is the line amount before VAT.
func (e EquipmentItem) ExclTaxValue() float64 {
	return e.UnitPriceExclTax * e.Quantity
}

// PersonnelYearOverride replaces headcount and salary for a single year.
type PersonnelYearOverride struct {
	Year               int     `json:"year" yaml:"year"`
	Headcount          float64 `json:"headcount" yaml:"headcount"`
	GrossMonthlySalary float64 `json:"gross_monthly_salary" yaml:"gross_monthly_salary"`
}

type PersonnelItem struct {
	Position            string  `json:"position" yaml:"position"`
	GrossMonthlySalary  float64 `json:"gross_monthly_salary" yaml:"gross_monthly_salary"`
	Headcount           float64 `json:"headcount" yaml:"headcount"`
	MonthsWorkedPerYear float64 `json:"months_worked_per_year" yaml:"months_worked_per_year"`

	// First year the position is staffed (1-based, 0 means 1).
	StartYear       int                     `json:"start_year,omitempty" yaml:"start_year,omitempty"`
	YearlyOverrides []PersonnelYearOverride `json:"yearly_overrides,omitempty" yaml:"yearly_overrides,omitempty"`
}

type RawMaterialItem struct {
	Name           string  `json:"name" yaml:"name"`
	UnitCost       float64 `json:"unit_cost" yaml:"unit_cost"`
	AnnualQuantity float64 `json:"annual_quantity" yaml:"annual_quantity"`
}

type ProductItem struct {
	Name           string  `json:"name" yaml:"name"`
	UnitPrice      float64 `json:"unit_price" yaml:"unit_price"`
	AnnualQuantity float64 `json:"annual_quantity" yaml:"annual_quantity"`
}

// ExternalCharges are the annual base amounts of external services.
type ExternalCharges struct {
	// Core services
	Rent        float64 `json:"rent" yaml:"rent"`
	Utilities   float64 `json:"utilities" yaml:"utilities"`
	Maintenance float64 `json:"maintenance" yaml:"maintenance"`
	Insurance   float64 `json:"insurance" yaml:"insurance"`
	Fuel        float64 `json:"fuel" yaml:"fuel"`

	// Other services
	Telecom     float64 `json:"telecom" yaml:"telecom"`
	Advertising float64 `json:"advertising" yaml:"advertising"`
	BankFees    float64 `json:"bank_fees" yaml:"bank_fees"`
	Other       float64 `json:"other" yaml:"other"`
}

// CoreServices sums rent, utilities, maintenance, insurance and fuel.
func (c ExternalCharges) CoreServices() float64 {
	return c.Rent + c.Utilities + c.Maintenance + c.Insurance + c.Fuel
}

// OtherServices sums telecom, advertising, bank fees and other.
func (c ExternalCharges) OtherServices() float64 {
	return c.Telecom + c.Advertising + c.BankFees + c.Other
}

// LoanTerms describes the bank loan amortized by annuity.
type LoanTerms struct {
	Amount         float64 `json:"amount" yaml:"amount"`
	DurationMonths int     `json:"duration_months" yaml:"duration_months"`
	AnnualRate     float64 `json:"annual_rate" yaml:"annual_rate"`
}

// Funding lists the financing-plan resources.
type Funding struct {
	PersonalContribution float64 `json:"personal_contribution" yaml:"personal_contribution"`
	Grant                float64 `json:"grant" yaml:"grant"`
	Dotation             float64 `json:"dotation" yaml:"dotation"`
	BankLoan             float64 `json:"bank_loan" yaml:"bank_loan"`
	Other                float64 `json:"other" yaml:"other"`
}

// YearOverride holds manual corrections for one projection year.
// A nil field keeps the computed value.
type YearOverride struct {
	Turnover         *float64 `json:"turnover,omitempty" yaml:"turnover,omitempty"`
	MaterialsCost    *float64 `json:"materials_cost,omitempty" yaml:"materials_cost,omitempty"`
	PersonnelCost    *float64 `json:"personnel_cost,omitempty" yaml:"personnel_cost,omitempty"`
	CoreServices     *float64 `json:"core_services,omitempty" yaml:"core_services,omitempty"`
	OtherServices    *float64 `json:"other_services,omitempty" yaml:"other_services,omitempty"`
	Amortization     *float64 `json:"amortization,omitempty" yaml:"amortization,omitempty"`
	FinancialCharges *float64 `json:"financial_charges,omitempty" yaml:"financial_charges,omitempty"`
}

// Narrative is free text produced by the assistants or typed by the user.
// It is carried with the plan but never read by the projection engine.
type Narrative struct {
	ExecutiveSummary      string `json:"executive_summary,omitempty" yaml:"executive_summary,omitempty"`
	ProjectDescription    string `json:"project_description,omitempty" yaml:"project_description,omitempty"`
	MarketStudy           string `json:"market_study,omitempty" yaml:"market_study,omitempty"`
	MarketingStrategy     string `json:"marketing_strategy,omitempty" yaml:"marketing_strategy,omitempty"`
	ProfitabilityAnalysis string `json:"profitability_analysis,omitempty" yaml:"profitability_analysis,omitempty"`
	Strengths             string `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	Weaknesses            string `json:"weaknesses,omitempty" yaml:"weaknesses,omitempty"`
	Opportunities         string `json:"opportunities,omitempty" yaml:"opportunities,omitempty"`
	Threats               string `json:"threats,omitempty" yaml:"threats,omitempty"`
	Conclusion            string `json:"conclusion,omitempty" yaml:"conclusion,omitempty"`
	EditorAdvice          string `json:"editor_advice,omitempty" yaml:"editor_advice,omitempty"`
}

// BusinessPlanData is the aggregate input of the projection engine.
type BusinessPlanData struct {
	ProjectTitle   string         `json:"project_title" yaml:"project_title"`
	Industry       string         `json:"industry,omitempty" yaml:"industry,omitempty"`
	LegalStructure LegalStructure `json:"legal_structure" yaml:"legal_structure"`

	Equipments      []EquipmentItem   `json:"equipments" yaml:"equipments"`
	Personnel       []PersonnelItem   `json:"personnel" yaml:"personnel"`
	RawMaterials    []RawMaterialItem `json:"raw_materials" yaml:"raw_materials"`
	Products        []ProductItem     `json:"products" yaml:"products"`
	ExternalCharges ExternalCharges   `json:"external_charges" yaml:"external_charges"`

	// Financing plan
	StartupCosts   float64 `json:"startup_costs" yaml:"startup_costs"`
	WorkingCapital float64 `json:"working_capital" yaml:"working_capital"`
	Funding        Funding `json:"funding" yaml:"funding"`

	Loan LoanTerms `json:"loan" yaml:"loan"`

	// Growth & valuation drivers (%)
	TurnoverGrowthRate float64 `json:"turnover_growth_rate" yaml:"turnover_growth_rate"`
	ExpensesGrowthRate float64 `json:"expenses_growth_rate" yaml:"expenses_growth_rate"`
	DiscountRate       float64 `json:"discount_rate" yaml:"discount_rate"`
	ProjectionYears    int     `json:"projection_years" yaml:"projection_years"`
	CruiseYear         int     `json:"cruise_year" yaml:"cruise_year"`

	// Taxation (%, except fixed amounts)
	TaxRegime              TaxRegime `json:"tax_regime" yaml:"tax_regime"`
	TaxRate                float64   `json:"tax_rate" yaml:"tax_rate"`
	SocialChargesRate      float64   `json:"social_charges_rate" yaml:"social_charges_rate"`
	VocationalTrainingRate float64   `json:"vocational_training_rate" yaml:"vocational_training_rate"`
	HousingFundRate        float64   `json:"housing_fund_rate" yaml:"housing_fund_rate"`
	LocalTaxRate           float64   `json:"local_tax_rate" yaml:"local_tax_rate"`
	FixedTaxes             float64   `json:"fixed_taxes" yaml:"fixed_taxes"`
	StampDuty              float64   `json:"stamp_duty" yaml:"stamp_duty"`

	// Manual corrections keyed by 1-based projection year
	ManualOverrides map[int]YearOverride `json:"manual_overrides,omitempty" yaml:"manual_overrides,omitempty"`

	Narrative Narrative `json:"narrative,omitempty" yaml:"narrative,omitempty"`
}
