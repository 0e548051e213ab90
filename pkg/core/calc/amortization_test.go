package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizplan_forecast/pkg/models"
)

func TestAnnualAmortization_Cutoff(t *testing.T) {
	items := []models.EquipmentItem{
		{Name: "Press", UnitPriceExclTax: 1500, Quantity: 2, DepreciationDuration: 3},
	}

	tests := []struct {
		offset   int
		expected float64
	}{
		{0, 1000},
		{1, 1000},
		{2, 1000},
		{3, 0},
		{10, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, AnnualAmortization(items, tt.offset), 1e-9, "offset %d", tt.offset)
	}
}

func TestAnnualAmortization_ZeroDuration(t *testing.T) {
	items := []models.EquipmentItem{{UnitPriceExclTax: 900, Quantity: 1, DepreciationDuration: 0}}
	assert.Zero(t, AnnualAmortization(items, 0))

	rows := DetailedAmortization(items, 3)
	require.Len(t, rows, 1)
	assert.Equal(t, []float64{0, 0, 0}, rows[0].YearlyValues)
}

func TestDetailedAmortization(t *testing.T) {
	items := []models.EquipmentItem{
		{Name: "Van", UnitPriceExclTax: 20000, Quantity: 1, DepreciationDuration: 5},
		{Name: "Laptop", UnitPriceExclTax: 1500, Quantity: 2, DepreciationDuration: 3},
	}

	rows := DetailedAmortization(items, 4)
	require.Len(t, rows, 2)

	van := rows[0]
	assert.Equal(t, "Van", van.Name)
	assert.InDelta(t, 20000.0, van.ExclTaxValue, 1e-9)
	assert.Equal(t, 5, van.Duration)
	assert.Equal(t, []float64{4000, 4000, 4000, 4000}, van.YearlyValues)

	laptop := rows[1]
	assert.Equal(t, []float64{1000, 1000, 1000, 0}, laptop.YearlyValues)
}

func TestDetailedAmortization_SumMatchesValue(t *testing.T) {
	item := models.EquipmentItem{UnitPriceExclTax: 7000, Quantity: 1, DepreciationDuration: 7}

	sum := func(values []float64) float64 {
		s := 0.0
		for _, v := range values {
			s += v
		}
		return s
	}

	full := DetailedAmortization([]models.EquipmentItem{item}, 10)
	assert.InDelta(t, 7000.0, sum(full[0].YearlyValues), 1e-9)

	short := DetailedAmortization([]models.EquipmentItem{item}, 4)
	assert.InDelta(t, 4*7000.0/7, sum(short[0].YearlyValues), 1e-9)
}
