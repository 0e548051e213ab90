package calc

import (
	"bizplan_forecast/pkg/models"
)

// PersonnelRates are the statutory charge rates applied to gross payroll (%).
type PersonnelRates struct {
	SocialCharges      float64
	VocationalTraining float64
	HousingFund        float64
}

// PersonnelCost is one year of payroll and the charges assessed on it.
type PersonnelCost struct {
	TotalGrossSalary      float64
	SocialCharges         float64
	VocationalTrainingTax float64
	HousingFundLevy       float64
	TotalCost             float64
}

// Scale multiplies every component by factor (expense growth).
func (p PersonnelCost) Scale(factor float64) PersonnelCost {
	return PersonnelCost{
		TotalGrossSalary:      p.TotalGrossSalary * factor,
		SocialCharges:         p.SocialCharges * factor,
		VocationalTrainingTax: p.VocationalTrainingTax * factor,
		HousingFundLevy:       p.HousingFundLevy * factor,
		TotalCost:             p.TotalCost * factor,
	}
}

// CalculatePersonnelCost computes payroll for the 1-based targetYear.
// Positions starting after targetYear cost nothing; a yearly override for
// targetYear replaces headcount and salary.
func CalculatePersonnelCost(personnel []models.PersonnelItem, rates PersonnelRates, targetYear int) PersonnelCost {
	gross := 0.0
	for _, p := range personnel {
		startYear := p.StartYear
		if startYear == 0 {
			startYear = 1
		}
		if startYear > targetYear {
			continue
		}

		headcount, salary := p.Headcount, p.GrossMonthlySalary
		if o, ok := findPersonnelOverride(p.YearlyOverrides, targetYear); ok {
			headcount, salary = o.Headcount, o.GrossMonthlySalary
		}
		gross += salary * headcount * p.MonthsWorkedPerYear
	}

	social := gross * (rates.SocialCharges / 100)
	training := gross * (rates.VocationalTraining / 100)
	housing := gross * (rates.HousingFund / 100)

	return PersonnelCost{
		TotalGrossSalary:      gross,
		SocialCharges:         social,
		VocationalTrainingTax: training,
		HousingFundLevy:       housing,
		TotalCost:             gross + social + training + housing,
	}
}

func findPersonnelOverride(overrides []models.PersonnelYearOverride, year int) (models.PersonnelYearOverride, bool) {
	for _, o := range overrides {
		if o.Year == year {
			return o, true
		}
	}
	return models.PersonnelYearOverride{}, false
}
