// Package refine: perturbation analysis. Near a boundary the driving
// integral I(p) = ∫₁^{n₀} g(u)/u^(p+1) du is expanded in a Taylor series
// around the solved critical exponent; the coefficient decay tells how
// sensitive the closed form is to the boundary, and the remainder bound
// quantifies the truncation.
package refine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/recurrence"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/integrate/quad"
)

// perturbN0 is the fixed evaluation point of the expansion and
// perturbNodes the quadrature order.
const (
	perturbN0    = 1024.0
	perturbNodes = 160
)

// perturb expands I(p+ε) to the configured Taylor order. The candidate
// solution is kept (the expansion is diagnostic); a nil return means the
// integrand could not be sampled.
func perturb(rec recurrence.DivideAndConquer, p float64, candidate expr.Expr, order int, threshold float64) *Perturbation {
	v := rec.Variable().Name
	g := rec.Work()
	env := make(map[string]float64, 1)

	// φ(ε) = ∫₁^{n₀} g(u)·u^{−(p+ε+1)} du by Gauss–Legendre quadrature.
	bad := false
	phi := func(eps float64) float64 {
		val := quad.Fixed(func(u float64) float64 {
			env[v] = u
			gu, err := expr.Evaluate(g, env)
			if err != nil {
				bad = true

				return 0
			}

			return gu * math.Pow(u, -(p+eps+1))
		}, 1, perturbN0, perturbNodes, nil, 0)
		if math.IsNaN(val) || math.IsInf(val, 0) {
			bad = true
		}

		return val
	}

	// Taylor coefficients cᵢ = φ⁽ⁱ⁾(0)/i! via central finite differences.
	settings := &fd.Settings{Formula: fd.Central}
	second := &fd.Settings{Formula: fd.Central2nd}
	coeffs := make([]float64, 0, order+1)
	coeffs = append(coeffs, phi(0))
	if order >= 1 {
		coeffs = append(coeffs, fd.Derivative(phi, 0, settings))
	}
	if order >= 2 {
		coeffs = append(coeffs, fd.Derivative(phi, 0, second)/2)
	}
	if order >= 3 {
		// Third derivative: central difference of the second.
		const h = 1e-3
		d2 := func(x float64) float64 { return fd.Derivative(phi, x, second) }
		coeffs = append(coeffs, (d2(h)-d2(-h))/(2*h)/6)
	}
	if bad {
		return nil
	}

	// Remainder estimate: the last computed term at the boundary
	// distance.
	last := coeffs[len(coeffs)-1]
	remainder := math.Abs(last) * math.Pow(threshold, float64(len(coeffs)-1))

	return &Perturbation{
		RefinedSolution: candidate,
		Terms:           coeffs,
		RemainderBound:  remainder,
	}
}

// describePerturbation renders the expansion for the stage trace.
func describePerturbation(p *Perturbation) string {
	if p == nil {
		return "perturbation skipped: integrand not sampleable"
	}

	return fmt.Sprintf("Taylor terms %v, remainder ≤ %.3g", p.Terms, p.RemainderBound)
}
