// Package recurrence: validated constructors. Validation is fail-fast
// and complete: a returned value satisfies every invariant of its shape,
// and a returned error is one of the sentinel taxonomy wrapped with the
// offending detail.
package recurrence

import (
	"fmt"

	"github.com/katalvlaran/bigo/expr"
)

// NewDivideAndConquer validates and builds T(n) = Σ aᵢ·T(bᵢ·n) + g(n).
//
// Well-formedness:
//   - at least one term; every a > 0; every b strictly in (0,1),
//   - g and base are expressions over the declared variable only,
//   - the base case and the work are not both zero (otherwise every
//     unrolling is identically zero).
func NewDivideAndConquer(terms []Term, g, base expr.Expr, v expr.Var) (DivideAndConquer, error) {
	// Nil work reads as zero, nil base as unit cost.
	if g == nil {
		g = expr.Constant{K: 0}
	}
	if base == nil {
		base = expr.Constant{K: 1}
	}

	// 1) Shape: at least one recursive term.
	if len(terms) == 0 {
		return DivideAndConquer{}, ErrEmptyRecurrence
	}

	// 2) Per-term coefficient and scale ranges.
	for i, t := range terms {
		if t.A <= 0 {
			return DivideAndConquer{}, fmt.Errorf("term %d: a=%v: %w", i, t.A, ErrZeroCoefficient)
		}
		if t.B <= 0 || t.B >= 1 {
			return DivideAndConquer{}, fmt.Errorf("term %d: b=%v: %w", i, t.B, ErrScaleOutOfRange)
		}
	}

	// 3) Work and base speak only the declared variable.
	if err := checkVariable(g, v); err != nil {
		return DivideAndConquer{}, err
	}
	if err := checkVariable(base, v); err != nil {
		return DivideAndConquer{}, err
	}

	// 4) Degeneracy guard: zero base and zero work make every unrolling
	//    identically zero, contradicting the a ≥ 1 homogeneous part the
	//    closed forms are computed from.
	if isZeroExpr(base) && isZeroExpr(g) {
		return DivideAndConquer{}, ErrDivergentBase
	}

	cp := make([]Term, len(terms))
	copy(cp, terms)

	return DivideAndConquer{terms: cp, g: g, base: base, v: v}, nil
}

// NewLinear validates and builds T(n) = Σ cⱼ·T(n−j) + f(n). The j-th
// entry of coeffs is the coefficient of T(n−j); trailing zeros are kept
// (they fix the order k). At least one coefficient must be non-zero.
func NewLinear(coeffs []float64, f, base expr.Expr, v expr.Var) (Linear, error) {
	// Nil work reads as zero, nil base as unit cost.
	if f == nil {
		f = expr.Constant{K: 0}
	}
	if base == nil {
		base = expr.Constant{K: 1}
	}

	// 1) Shape: k ≥ 1.
	if len(coeffs) == 0 {
		return Linear{}, ErrEmptyRecurrence
	}

	// 2) A recurrence whose coefficients are all zero has no recursive
	//    part at all.
	nonZero := false
	for _, c := range coeffs {
		if c != 0 {
			nonZero = true

			break
		}
	}
	if !nonZero {
		return Linear{}, ErrZeroCoefficient
	}

	// 3) Work and base speak only the declared variable.
	if err := checkVariable(f, v); err != nil {
		return Linear{}, err
	}
	if err := checkVariable(base, v); err != nil {
		return Linear{}, err
	}

	cp := make([]float64, len(coeffs))
	copy(cp, coeffs)

	return Linear{coeffs: cp, f: f, base: base, v: v}, nil
}

// NewMutual validates and builds a mutual cycle. Every component must
// carry a valid reduction descriptor, and at least one step must
// actually reduce (R ≥ 1 or B < 1); otherwise the cycle never
// terminates and is rejected with ErrNonReducingCycle.
func NewMutual(components []Component, v expr.Var) (Mutual, error) {
	// 1) Shape: a cycle needs at least one member.
	if len(components) == 0 {
		return Mutual{}, ErrEmptyRecurrence
	}

	// 2) Per-component descriptor validity and work variable check.
	reduces := false
	for i, c := range components {
		switch c.Step.Kind {
		case ReduceBySubtraction:
			if c.Step.R < 0 {
				return Mutual{}, fmt.Errorf("component %q: r=%d: %w", c.Name, c.Step.R, ErrBadReduction)
			}
			if c.Step.R > 0 {
				reduces = true
			}
		case ReduceByScale:
			if c.Step.B <= 0 || c.Step.B > 1 {
				return Mutual{}, fmt.Errorf("component %q: b=%v: %w", c.Name, c.Step.B, ErrBadReduction)
			}
			if c.Step.B < 1 {
				reduces = true
			}
		default:
			return Mutual{}, fmt.Errorf("component %q: unknown kind %d: %w", c.Name, c.Step.Kind, ErrBadReduction)
		}
		if c.Work != nil {
			if err := checkVariable(c.Work, v); err != nil {
				return Mutual{}, fmt.Errorf("component %d: %w", i, err)
			}
		}
	}

	// 3) Termination: at least one genuinely shrinking step.
	if !reduces {
		return Mutual{}, ErrNonReducingCycle
	}

	cp := make([]Component, len(components))
	copy(cp, components)

	return Mutual{components: cp, v: v}, nil
}

// checkVariable rejects expressions whose free variables stray from the
// declared recurrence variable. A nil expression reads as zero work.
func checkVariable(e expr.Expr, v expr.Var) error {
	if e == nil {
		return nil
	}
	for name := range expr.FreeVars(e) {
		if name != v.Name {
			return fmt.Errorf("free variable %q vs declared %q: %w", name, v.Name, ErrInconsistentVariable)
		}
	}

	return nil
}

// isZeroExpr reports a literal zero (after simplification).
func isZeroExpr(e expr.Expr) bool {
	if e == nil {
		return true
	}
	c, ok := expr.Simplify(e).(expr.Constant)

	return ok && c.K == 0
}
