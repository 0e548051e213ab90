package calc

import (
	"math"

	"bizplan_forecast/pkg/models"
)

// MonthlyPayment returns the fixed annuity payment of a loan.
// A zero rate degrades to straight division.
func MonthlyPayment(principal float64, durationMonths int, annualRate float64) float64 {
	if durationMonths <= 0 {
		return 0
	}
	r := annualRate / 100 / 12
	if r == 0 {
		return principal / float64(durationMonths)
	}
	growth := math.Pow(1+r, float64(durationMonths))
	return principal * r * growth / (growth - 1)
}

// LoanSchedule simulates the annuity month by month and rolls it up into
// `horizon` annual rows. The schedule truncates at the horizon, so the last
// row keeps a non-zero balance when the loan outlives the projection.
// Non-positive principal or duration yields an empty schedule.
func LoanSchedule(principal float64, durationMonths int, annualRate float64, horizon int) []models.LoanRepaymentRow {
	if principal <= 0 || durationMonths <= 0 || horizon <= 0 {
		return []models.LoanRepaymentRow{}
	}

	monthlyRate := annualRate / 100 / 12
	payment := MonthlyPayment(principal, durationMonths, annualRate)

	balance := principal
	schedule := make([]models.LoanRepaymentRow, 0, horizon)

	for year := 1; year <= horizon; year++ {
		var yearlyPrincipal, yearlyInterest float64

		for month := 1; month <= 12; month++ {
			if balance <= 0 {
				break
			}
			interest := balance * monthlyRate
			paid := math.Min(balance, payment-interest)

			yearlyInterest += interest
			yearlyPrincipal += paid
			balance -= paid
		}

		schedule = append(schedule, models.LoanRepaymentRow{
			Year:             year,
			Principal:        yearlyPrincipal,
			Interest:         yearlyInterest,
			Total:            yearlyPrincipal + yearlyInterest,
			RemainingBalance: math.Max(0, balance),
		})
	}

	return schedule
}

// InterestForYear returns the interest of the zero-based yearOffset, or 0
// when the schedule does not cover it.
func InterestForYear(schedule []models.LoanRepaymentRow, yearOffset int) float64 {
	if yearOffset < 0 || yearOffset >= len(schedule) {
		return 0
	}
	return schedule[yearOffset].Interest
}
