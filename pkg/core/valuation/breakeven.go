package valuation

import (
	"math"

	"bizplan_forecast/pkg/models"
)

// CVPSteps is the number of equal steps between 0% and 120% of turnover.
const CVPSteps = 6

// cvpMaxScale is the upper bound of the CVP curve relative to actual turnover.
const cvpMaxScale = 1.2

// CostStructure is the fixed/variable split of a year.
type CostStructure struct {
	Turnover           float64
	FixedCosts         float64
	VariableCosts      float64
	ContributionMargin float64
}

// Decompose splits a year into fixed and variable costs. Materials are the
// only variable cost; corporate tax is excluded from fixed costs.
func Decompose(y models.YearlyResults) CostStructure {
	fixed := y.TotalExpenses - y.MaterialsCost + y.TotalTaxes - y.CorporateTax
	variable := y.MaterialsCost
	return CostStructure{
		Turnover:           y.Turnover,
		FixedCosts:         fixed,
		VariableCosts:      variable,
		ContributionMargin: y.Turnover - variable,
	}
}

// BreakEvenPoint is the turnover covering fixed costs, or the unreachable
// marker when the contribution margin is not positive.
func (c CostStructure) BreakEvenPoint() models.BreakEvenValue {
	if c.ContributionMargin <= 0 {
		return models.Unreachable()
	}
	return models.BreakEvenValue(c.FixedCosts * c.Turnover / c.ContributionMargin)
}

// VariableRatio is variable cost per unit of revenue (0 without turnover).
func (c CostStructure) VariableRatio() float64 {
	if c.Turnover <= 0 {
		return 0
	}
	return c.VariableCosts / c.Turnover
}

// BreakEvenEvolution computes the break-even independently for every year,
// using 0 where it is unreachable.
func BreakEvenEvolution(years []models.YearlyResults) []models.BreakEvenEvolutionPoint {
	points := make([]models.BreakEvenEvolutionPoint, 0, len(years))
	for i, y := range years {
		bep := Decompose(y).BreakEvenPoint()
		value := 0.0
		if bep.Defined() {
			value = float64(bep)
		}
		points = append(points, models.BreakEvenEvolutionPoint{
			Year:           i + 1,
			Turnover:       y.Turnover,
			BreakEvenPoint: value,
		})
	}
	return points
}

// CVPCurve samples revenue from 0% to 120% of the year's turnover with total
// costs = fixed + revenue × variable ratio.
func CVPCurve(y models.YearlyResults) []models.CVPPoint {
	c := Decompose(y)
	ratio := c.VariableRatio()

	points := make([]models.CVPPoint, 0, CVPSteps+1)
	for i := 0; i <= CVPSteps; i++ {
		revenue := c.Turnover * cvpMaxScale * float64(i) / CVPSteps
		points = append(points, models.CVPPoint{
			Percentage: int(math.Round(cvpMaxScale * 100 * float64(i) / CVPSteps)),
			Revenue:    revenue,
			FixedCosts: c.FixedCosts,
			TotalCosts: c.FixedCosts + revenue*ratio,
		})
	}
	return points
}
