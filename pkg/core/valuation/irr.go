package valuation

import (
	"math"
)

// Newton–Raphson solver settings.
const (
	IRRInitialGuess  = 0.10
	IRRMaxIterations = 1000
	IRRTolerance     = 1e-5
	IRRDivergence    = 100.0
)

// IRRResult is the solved rate and whether the solver converged.
// Rate is a percentage and is 0 whenever Converged is false.
type IRRResult struct {
	Rate       float64
	Converged  bool
	Iterations int
}

// CalculateIRR solves NPV(r) = 0 for the series
// [-investment, cashFlows[0], cashFlows[1], ...] with Newton–Raphson.
// A zero derivative, a non-finite iterate or |r| > 100 stops the solver
// and returns the 0 fallback.
func CalculateIRR(investment float64, cashFlows []float64) IRRResult {
	flows := make([]float64, 0, len(cashFlows)+1)
	flows = append(flows, -investment)
	flows = append(flows, cashFlows...)
	return SolveIRR(flows)
}

// SolveIRR runs the solver on a raw series whose first element is t=0.
func SolveIRR(flows []float64) IRRResult {
	rate := IRRInitialGuess

	for i := 0; i < IRRMaxIterations; i++ {
		npv, derivative := npvAndDerivative(flows, rate)
		if math.IsNaN(npv) || math.IsInf(npv, 0) {
			return IRRResult{Iterations: i}
		}
		if math.Abs(npv) < IRRTolerance {
			return IRRResult{Rate: rate * 100, Converged: true, Iterations: i}
		}
		if derivative == 0 {
			return IRRResult{Iterations: i}
		}

		rate -= npv / derivative
		if math.IsNaN(rate) || math.IsInf(rate, 0) || math.Abs(rate) > IRRDivergence {
			return IRRResult{Iterations: i + 1}
		}
	}
	return IRRResult{Iterations: IRRMaxIterations}
}

// npvAndDerivative evaluates NPV(r) and dNPV/dr analytically.
func npvAndDerivative(flows []float64, rate float64) (float64, float64) {
	var npv, derivative float64
	base := 1 + rate
	for t, cf := range flows {
		ft := float64(t)
		npv += cf / math.Pow(base, ft)
		derivative -= ft * cf / math.Pow(base, ft+1)
	}
	return npv, derivative
}
