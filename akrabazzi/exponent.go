// Package akrabazzi: the critical-exponent solver.
//
// F(p) = Σ aᵢ·bᵢ^p − 1 is strictly monotone decreasing in p (every
// bᵢ ∈ (0,1) makes bᵢ^p·ln(bᵢ) < 0 with aᵢ > 0), so the real root is
// unique and bracketable; Newton from the geometric-mean seed finds it.
// The iteration stops and reports ErrSolverGaveUp when the derivative
// vanishes or a step is not finite; there is no bisection fallback.
package akrabazzi

import (
	"math"

	"github.com/katalvlaran/bigo/recurrence"
)

// SolveCriticalExponent finds the unique real p with Σ aᵢ·bᵢ^p = 1.
//
// Preconditions: every term has a > 0 and b ∈ (0,1) (checked here as
// well, since this entry point is exposed for cross-validation tests).
//
// Returns ErrSolverGaveUp (as a *GaveUpError) on non-convergence within
// the iteration budget — not observed on well-formed inputs.
func SolveCriticalExponent(terms []recurrence.Term, opts Options) (float64, error) {
	// 1) Validate options and terms.
	if err := opts.Validate(); err != nil {
		return 0, err
	}
	if len(terms) == 0 {
		return 0, ErrNoTerms
	}
	for _, t := range terms {
		if t.A <= 0 || t.B <= 0 || t.B >= 1 {
			return 0, ErrBadTerm
		}
	}

	// 2) Single-term fast path: a·b^p = 1 ⇒ p = log_{1/b}(a).
	if len(terms) == 1 {
		return math.Log(terms[0].A) / math.Log(1/terms[0].B), nil
	}

	// 3) Newton seed p₀ = log_{1/b̄}(Σaᵢ), b̄ the geometric mean of the
	//    1/bᵢ — exact when all bᵢ coincide, close otherwise.
	sumA, logInvB := 0.0, 0.0
	for _, t := range terms {
		sumA += t.A
		logInvB += math.Log(1 / t.B)
	}
	meanLogInvB := logInvB / float64(len(terms))
	p := math.Log(sumA) / meanLogInvB

	// 4) Newton iteration with the analytical derivative, memoized per
	//    invocation (each F(p) is needed by both the step and the
	//    convergence check).
	cache := newSumCache(terms)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		f := cache.f(p)
		if math.Abs(f) < opts.Tolerance {
			return p, nil
		}
		deriv := cache.fPrime(p)
		if deriv == 0 || math.IsNaN(deriv) || math.IsInf(deriv, 0) {
			break
		}
		next := p - f/deriv
		if math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		p = next
	}

	// 5) Report the diagnostics; callers treat this as recoverable.
	return 0, &GaveUpError{Iterations: opts.MaxIterations, LastP: p, Residual: math.Abs(cache.f(p))}
}

// sumCache memoizes F(p) and F′(p) per solver invocation, keyed by p.
// The cache is local to one call: no shared state escapes.
type sumCache struct {
	terms  []recurrence.Term
	values map[float64][2]float64
}

// newSumCache builds the per-invocation memo.
func newSumCache(terms []recurrence.Term) *sumCache {
	return &sumCache{terms: terms, values: make(map[float64][2]float64, 8)}
}

// pair computes (F(p), F′(p)) once per distinct p.
func (c *sumCache) pair(p float64) [2]float64 {
	if v, ok := c.values[p]; ok {
		return v
	}
	f, fp := -1.0, 0.0
	for _, t := range c.terms {
		bp := t.A * math.Pow(t.B, p)
		f += bp
		fp += bp * math.Log(t.B)
	}
	v := [2]float64{f, fp}
	c.values[p] = v

	return v
}

// f returns F(p) = Σ aᵢ·bᵢ^p − 1.
func (c *sumCache) f(p float64) float64 { return c.pair(p)[0] }

// fPrime returns F′(p) = Σ aᵢ·bᵢ^p·ln(bᵢ).
func (c *sumCache) fPrime(p float64) float64 { return c.pair(p)[1] }
