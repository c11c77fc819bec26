// Package expr: the asymptotic order. The order is total over the growth
// equivalence classes O(1) < O(log log n) < O(log^j n) < O(n^d log^j n) <
// O(b^n) < O(n!), derived from the lexicographic key (tier, base,
// poly-degree, log-exponent). Special-function values compare by their
// recorded bound; without one they are Incomparable, never guessed.
package expr

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Ordering is the result of an asymptotic comparison.
type Ordering int

const (
	// OrderLess: l ∈ o(r).
	OrderLess Ordering = iota

	// OrderEqual: l ∈ Θ(r).
	OrderEqual

	// OrderGreater: l ∈ ω(r).
	OrderGreater

	// OrderIncomparable: neither dominates (disjoint variables,
	// special functions without bounds).
	OrderIncomparable
)

// String renders the ordering symbol.
func (o Ordering) String() string {
	switch o {
	case OrderLess:
		return "<"
	case OrderEqual:
		return "="
	case OrderGreater:
		return ">"
	default:
		return "incomparable"
	}
}

// reverse flips Less/Greater.
func (o Ordering) reverse() Ordering {
	switch o {
	case OrderLess:
		return OrderGreater
	case OrderGreater:
		return OrderLess
	default:
		return o
	}
}

// CompareAsymptotic orders l and r by growth. Two expressions over
// different free-variable sets are Incomparable unless one dominates on
// every shared variable and is constant in the rest; per-variable
// orderings that disagree also yield Incomparable.
func CompareAsymptotic(l, r Expr) Ordering {
	// 1) Collect the union of free variables.
	vars := FreeVars(l)
	for name := range FreeVars(r) {
		vars[name] = struct{}{}
	}

	// 2) Both constant: every constant is Θ(1).
	if len(vars) == 0 {
		return OrderEqual
	}

	// 3) Per-variable key comparison; all verdicts must agree.
	verdict := OrderEqual
	for name := range vars {
		ord := orderClasses(Classify(l, name), Classify(r, name))
		switch {
		case ord == OrderIncomparable:
			return OrderIncomparable
		case ord == OrderEqual:
			// keeps the running verdict
		case verdict == OrderEqual:
			verdict = ord
		case verdict != ord:
			return OrderIncomparable
		}
	}

	return verdict
}

// orderClasses compares two classification keys lexicographically:
// tier, then (per tier) exponential base, polynomial degree, log exponent.
func orderClasses(l, r Classification) Ordering {
	// Special without a bound cannot be placed in the order.
	if l.Form == FormSpecial || r.Form == FormSpecial {
		return OrderIncomparable
	}

	lt, rt := effectiveTier(l), effectiveTier(r)
	if lt != rt {
		if lt < rt {
			return OrderLess
		}

		return OrderGreater
	}

	switch lt {
	case 0, 1:
		// Constants and log-log terms are each a single Θ-class.
		return OrderEqual
	case -1:
		// Vanishing terms: the larger (closer-to-flat) key is greater.
		if ord := cmpFloat(l.PolyDegree, r.PolyDegree); ord != OrderEqual {
			return ord
		}

		return cmpFloat(l.LogExponent, r.LogExponent)
	case 3:
		// Exponentials: base dominates, polynomial factor breaks ties.
		if ord := cmpFloat(l.ExpBase, r.ExpBase); ord != OrderEqual {
			return ord
		}
		if ord := cmpFloat(l.PolyDegree, r.PolyDegree); ord != OrderEqual {
			return ord
		}

		return cmpFloat(l.LogExponent, r.LogExponent)
	case 4:
		// Factorials: n!·n^d ordering by the residual degree.
		if ord := cmpFloat(l.PolyDegree, r.PolyDegree); ord != OrderEqual {
			return ord
		}

		return cmpFloat(l.LogExponent, r.LogExponent)
	default:
		// Log and polynomial tier: degree then log exponent. Log bases
		// differ only by constant factors and never split Θ-classes.
		if ord := cmpFloat(l.PolyDegree, r.PolyDegree); ord != OrderEqual {
			return ord
		}

		return cmpFloat(l.LogExponent, r.LogExponent)
	}
}

// effectiveTier demotes negative-degree polynomial keys (n^-2, log^-1 n)
// below the constant tier: they vanish rather than grow.
func effectiveTier(c Classification) int {
	t := c.Form.tier()
	if t == 2 {
		if c.PolyDegree < -DefaultEpsilon {
			return -1
		}
		if math.Abs(c.PolyDegree) <= DefaultEpsilon && c.LogExponent < -DefaultEpsilon {
			return -1
		}
	}

	return t
}

// cmpFloat orders two key components under the package tolerance.
func cmpFloat(a, b float64) Ordering {
	if scalar.EqualWithinAbs(a, b, DefaultEpsilon) || (math.IsInf(a, 1) && math.IsInf(b, 1)) {
		return OrderEqual
	}
	if a < b {
		return OrderLess
	}

	return OrderGreater
}
