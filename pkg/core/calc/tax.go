package calc

import (
	"math"

	"bizplan_forecast/pkg/models"
)

// Flat regime policy constants.
const (
	FlatTaxThreshold  = 10000.0
	FlatTaxBase       = 400.0
	FlatTaxExcessRate = 0.03
)

// Minimum tax floors of the real regime.
const (
	MinimumTaxProprietor = 300.0
	MinimumTaxCorporate  = 500.0
)

// TaxBracket taxes income up to Limit at Rate (marginal).
type TaxBracket struct {
	Limit float64
	Rate  float64
}

// ProgressiveBrackets is the personal income schedule for individual proprietors.
var ProgressiveBrackets = []TaxBracket{
	{Limit: 5000, Rate: 0},
	{Limit: 10000, Rate: 0.15},
	{Limit: 20000, Rate: 0.25},
	{Limit: 30000, Rate: 0.30},
	{Limit: 40000, Rate: 0.33},
	{Limit: 50000, Rate: 0.36},
	{Limit: 70000, Rate: 0.38},
	{Limit: math.Inf(1), Rate: 0.40},
}

// TaxInput gathers what the tax calculator needs for one year.
type TaxInput struct {
	Regime         models.TaxRegime
	LegalStructure models.LegalStructure
	Turnover       float64
	PreTaxIncome   float64
	TaxRate        float64 // %, corporate flat rate in the real regime
	LocalTaxRate   float64 // %, on turnover
	StampDuty      float64
	FixedTaxes     float64
}

// TaxBreakdown is the tax burden of one year.
type TaxBreakdown struct {
	CorporateTax  float64
	LocalTax      float64
	ItemizedTaxes float64 // local tax + stamp duty
	FixedTaxes    float64
	TotalTaxes    float64
}

// ProgressiveTax applies the marginal brackets; each bracket taxes only the
// income inside its band.
func ProgressiveTax(income float64) float64 {
	if income <= 0 {
		return 0
	}

	tax := 0.0
	remaining := income
	prevLimit := 0.0

	for _, b := range ProgressiveBrackets {
		inBracket := math.Min(remaining, b.Limit-prevLimit)
		if inBracket <= 0 {
			break
		}
		tax += inBracket * b.Rate
		remaining -= inBracket
		prevLimit = b.Limit
	}
	return tax
}

// FlatRegimeTax is the base tax up to the threshold plus 3% of the excess.
func FlatRegimeTax(turnover float64) float64 {
	if turnover <= FlatTaxThreshold {
		return FlatTaxBase
	}
	return FlatTaxBase + (turnover-FlatTaxThreshold)*FlatTaxExcessRate
}

// MinimumTax returns the real-regime floor for a legal structure.
func MinimumTax(structure models.LegalStructure) float64 {
	switch {
	case structure == models.LegalStructurePP:
		return MinimumTaxProprietor
	case structure.IsCorporate():
		return MinimumTaxCorporate
	}
	return 0
}

// CorporateTax computes income tax under the selected regime. Any regime
// other than flat is treated as real.
func CorporateTax(in TaxInput) float64 {
	if in.Regime == models.TaxRegimeFlat {
		return FlatRegimeTax(in.Turnover)
	}

	tax := 0.0
	if in.PreTaxIncome > 0 {
		if in.LegalStructure == models.LegalStructurePP {
			tax = ProgressiveTax(in.PreTaxIncome)
		} else {
			tax = in.PreTaxIncome * (in.TaxRate / 100)
		}
	}
	return math.Max(tax, MinimumTax(in.LegalStructure))
}

// CalculateTaxes returns corporate tax plus the regime-independent itemized
// and fixed taxes.
func CalculateTaxes(in TaxInput) TaxBreakdown {
	corporate := CorporateTax(in)
	localTax := in.Turnover * (in.LocalTaxRate / 100)
	itemized := localTax + in.StampDuty

	return TaxBreakdown{
		CorporateTax:  corporate,
		LocalTax:      localTax,
		ItemizedTaxes: itemized,
		FixedTaxes:    in.FixedTaxes,
		TotalTaxes:    corporate + itemized + in.FixedTaxes,
	}
}
