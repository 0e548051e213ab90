package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bizplan_forecast/pkg/models"
)

var testRates = PersonnelRates{SocialCharges: 16.57, VocationalTraining: 2, HousingFund: 1}

func TestCalculatePersonnelCost_Basic(t *testing.T) {
	personnel := []models.PersonnelItem{
		{Position: "Baker", GrossMonthlySalary: 1000, Headcount: 2, MonthsWorkedPerYear: 12},
	}

	cost := CalculatePersonnelCost(personnel, testRates, 1)

	assert.InDelta(t, 24000.0, cost.TotalGrossSalary, 1e-9)
	assert.InDelta(t, 24000*0.1657, cost.SocialCharges, 1e-9)
	assert.InDelta(t, 480.0, cost.VocationalTrainingTax, 1e-9)
	assert.InDelta(t, 240.0, cost.HousingFundLevy, 1e-9)
	assert.InDelta(t, 24000*(1+0.1657+0.02+0.01), cost.TotalCost, 1e-9)
}

func TestCalculatePersonnelCost_StartYearGating(t *testing.T) {
	personnel := []models.PersonnelItem{
		{Position: "Sales rep", GrossMonthlySalary: 1500, Headcount: 1, MonthsWorkedPerYear: 12, StartYear: 3},
	}

	for year := 1; year < 3; year++ {
		assert.Zero(t, CalculatePersonnelCost(personnel, testRates, year).TotalCost, "year %d", year)
	}
	for year := 3; year <= 5; year++ {
		assert.InDelta(t, 18000.0, CalculatePersonnelCost(personnel, testRates, year).TotalGrossSalary, 1e-9, "year %d", year)
	}
}

func TestCalculatePersonnelCost_YearlyOverride(t *testing.T) {
	personnel := []models.PersonnelItem{
		{
			Position:            "Technician",
			GrossMonthlySalary:  1000,
			Headcount:           1,
			MonthsWorkedPerYear: 10,
			YearlyOverrides: []models.PersonnelYearOverride{
				{Year: 2, Headcount: 3, GrossMonthlySalary: 1100},
			},
		},
	}

	assert.InDelta(t, 10000.0, CalculatePersonnelCost(personnel, testRates, 1).TotalGrossSalary, 1e-9)
	assert.InDelta(t, 33000.0, CalculatePersonnelCost(personnel, testRates, 2).TotalGrossSalary, 1e-9)
	// Override applies to its own year only
	assert.InDelta(t, 10000.0, CalculatePersonnelCost(personnel, testRates, 3).TotalGrossSalary, 1e-9)
}

func TestPersonnelCost_Scale(t *testing.T) {
	cost := CalculatePersonnelCost([]models.PersonnelItem{
		{GrossMonthlySalary: 1000, Headcount: 1, MonthsWorkedPerYear: 12},
	}, testRates, 1)

	scaled := cost.Scale(1.1)
	assert.InDelta(t, cost.TotalCost*1.1, scaled.TotalCost, 1e-9)
	assert.InDelta(t, cost.SocialCharges*1.1, scaled.SocialCharges, 1e-9)
	assert.InDelta(t, cost.TotalGrossSalary*1.1, scaled.TotalGrossSalary, 1e-9)
}
