package calc

import (
	"bizplan_forecast/pkg/models"
)

// AnnualAmortization returns the straight-line depreciation charge for the
// zero-based yearOffset. Items whose duration is exhausted contribute nothing.
func AnnualAmortization(equipments []models.EquipmentItem, yearOffset int) float64 {
	total := 0.0
	for _, item := range equipments {
		if item.DepreciationDuration > yearOffset {
			total += item.ExclTaxValue() / float64(item.DepreciationDuration)
		}
	}
	return total
}

// DetailedAmortization builds one schedule row per item over the horizon.
// There is no salvage value and no partial final year.
func DetailedAmortization(equipments []models.EquipmentItem, horizon int) []models.AmortizationRow {
	if horizon < 0 {
		horizon = 0
	}
	rows := make([]models.AmortizationRow, 0, len(equipments))
	for _, item := range equipments {
		ht := item.ExclTaxValue()
		annualBase := 0.0
		if item.DepreciationDuration > 0 {
			annualBase = ht / float64(item.DepreciationDuration)
		}

		values := make([]float64, horizon)
		for y := 0; y < horizon; y++ {
			if y < item.DepreciationDuration {
				values[y] = annualBase
			}
		}

		rows = append(rows, models.AmortizationRow{
			Name:         item.Name,
			ExclTaxValue: ht,
			Duration:     item.DepreciationDuration,
			YearlyValues: values,
		})
	}
	return rows
}
