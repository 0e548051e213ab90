package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bizplan_forecast/pkg/models"
)

func TestFlatRegimeTax(t *testing.T) {
	assert.InDelta(t, 400.0, FlatRegimeTax(8000), 1e-9)
	assert.InDelta(t, 400.0, FlatRegimeTax(10000), 1e-9)
	assert.InDelta(t, 550.0, FlatRegimeTax(15000), 1e-9)
}

func TestProgressiveTax(t *testing.T) {
	tests := []struct {
		income   float64
		expected float64
	}{
		{-100, 0},
		{0, 0},
		{5000, 0},
		{10000, 750},                                  // 5000 * 15%
		{15000, 750 + 1250},                           // + 5000 * 25%
		{45000, 750 + 2500 + 3000 + 3300 + 5000*0.36}, // through the 36% band
		{100000, 750 + 2500 + 3000 + 3300 + 3600 + 7600 + 12000},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, ProgressiveTax(tt.income), 1e-6, "income %.0f", tt.income)
	}
}

func TestCorporateTax_RealRegimeFloor(t *testing.T) {
	tests := []struct {
		name      string
		structure models.LegalStructure
		preTax    float64
		expected  float64
	}{
		{"loss, proprietor", models.LegalStructurePP, -5000, 300},
		{"loss, SARL", models.LegalStructureSARL, -5000, 500},
		{"loss, SA", models.LegalStructureSA, 0, 500},
		{"loss, SUARL", models.LegalStructureSUARL, 0, 500},
		{"loss, other structure", models.LegalStructure("SNC"), -1, 0},
		{"small profit below floor", models.LegalStructureSARL, 1000, 500},
		{"profit above floor", models.LegalStructureSARL, 10000, 1500},
		{"proprietor brackets", models.LegalStructurePP, 10000, 750},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := CorporateTax(TaxInput{
				Regime:         models.TaxRegimeReal,
				LegalStructure: tt.structure,
				PreTaxIncome:   tt.preTax,
				TaxRate:        15,
			})
			assert.InDelta(t, tt.expected, tax, 1e-9)
			assert.GreaterOrEqual(t, tax, MinimumTax(tt.structure))
		})
	}
}

func TestCorporateTax_FlatRegimeIgnoresIncome(t *testing.T) {
	tax := CorporateTax(TaxInput{
		Regime:         models.TaxRegimeFlat,
		LegalStructure: models.LegalStructurePP,
		Turnover:       15000,
		PreTaxIncome:   -20000,
	})
	assert.InDelta(t, 550.0, tax, 1e-9)
}

func TestCalculateTaxes(t *testing.T) {
	b := CalculateTaxes(TaxInput{
		Regime:         models.TaxRegimeReal,
		LegalStructure: models.LegalStructureSARL,
		Turnover:       100000,
		PreTaxIncome:   20000,
		TaxRate:        15,
		LocalTaxRate:   0.2,
		StampDuty:      500,
		FixedTaxes:     150,
	})

	assert.InDelta(t, 3000.0, b.CorporateTax, 1e-9)
	assert.InDelta(t, 200.0, b.LocalTax, 1e-9)
	assert.InDelta(t, 700.0, b.ItemizedTaxes, 1e-9)
	assert.InDelta(t, 150.0, b.FixedTaxes, 1e-9)
	assert.InDelta(t, 3850.0, b.TotalTaxes, 1e-9)
}
