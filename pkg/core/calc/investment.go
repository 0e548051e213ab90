package calc

import (
	"bizplan_forecast/pkg/models"
)

// CalculateInvestment sums equipment lines into HT / VAT / TTC totals.
// An empty list yields all zeros.
func CalculateInvestment(equipments []models.EquipmentItem) models.InvestmentTotals {
	var totals models.InvestmentTotals
	for _, item := range equipments {
		ht := item.ExclTaxValue()
		tva := ht * (item.VATRate / 100)

		totals.TotalExclTax += ht
		totals.TotalTax += tva
		totals.TotalInclTax += ht + tva
	}
	return totals
}

// TotalInvestment is the excl.-tax capital base used for NPV, IRR and payback.
func TotalInvestment(equipments []models.EquipmentItem) float64 {
	total := 0.0
	for _, item := range equipments {
		total += item.ExclTaxValue()
	}
	return total
}
