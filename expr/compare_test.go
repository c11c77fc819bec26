package expr_test

import (
	"testing"

	"github.com/katalvlaran/bigo/expr"
	"github.com/stretchr/testify/assert"
)

// TestCompareAsymptotic_TierLadder walks the growth ladder: 1 < log n <
// n^0.5 < n < n log n < n² < 2ⁿ < 3ⁿ < n!.
func TestCompareAsymptotic_TierLadder(t *testing.T) {
	ladder := []expr.Expr{
		expr.Constant{K: 5},
		expr.NewLogarithmic(1, n, 2),
		expr.PolyLog{K: 1, V: n, PolyDeg: 0.5, LogExp: 0, Base: 2},
		expr.NewLinear(1, n),
		expr.PolyLog{K: 1, V: n, PolyDeg: 1, LogExp: 1, Base: 2},
		expr.NewPolynomial(n, map[int]float64{2: 1}),
		expr.NewExponential(2, n, 1),
		expr.NewExponential(3, n, 1),
		expr.NewFactorial(n, 1),
	}
	for i := range ladder {
		for j := range ladder {
			got := expr.CompareAsymptotic(ladder[i], ladder[j])
			switch {
			case i < j:
				assert.Equal(t, expr.OrderLess, got, "%s vs %s", ladder[i], ladder[j])
			case i > j:
				assert.Equal(t, expr.OrderGreater, got, "%s vs %s", ladder[i], ladder[j])
			default:
				assert.Equal(t, expr.OrderEqual, got, "%s vs itself", ladder[i])
			}
		}
	}
}

// TestCompareAsymptotic_ConstantFactors verifies constant factors never
// split a Θ-class.
func TestCompareAsymptotic_ConstantFactors(t *testing.T) {
	got := expr.CompareAsymptotic(expr.NewLinear(300, n), expr.NewLinear(1, n))
	assert.Equal(t, expr.OrderEqual, got, "300n = Θ(n)")

	got = expr.CompareAsymptotic(
		expr.NewLogarithmic(1, n, 2),
		expr.NewLogarithmic(1, n, 10),
	)
	assert.Equal(t, expr.OrderEqual, got, "log bases differ by constant factors only")
}

// TestCompareAsymptotic_DisjointVariables verifies expressions over
// disjoint variables are incomparable unless one is constant in the rest.
func TestCompareAsymptotic_DisjointVariables(t *testing.T) {
	m := expr.NewVar("m", expr.KindSecondarySize)

	got := expr.CompareAsymptotic(expr.NewLinear(1, n), expr.NewLinear(1, m))
	assert.Equal(t, expr.OrderIncomparable, got, "n vs m has no order")

	// n·m vs n: dominates on m, equal on n → Greater.
	nm := expr.Product(expr.NewLinear(1, n), expr.NewLinear(1, m))
	got = expr.CompareAsymptotic(nm, expr.NewLinear(1, n))
	assert.Equal(t, expr.OrderGreater, got, "n·m dominates n")
}

// TestCompareAsymptotic_SpecialBound verifies special functions compare
// by their recorded asymptotic bound, and are incomparable without one.
func TestCompareAsymptotic_SpecialBound(t *testing.T) {
	bounded := expr.NewSpecial(
		expr.IncompleteGamma,
		[]expr.Expr{expr.Constant{K: 2}, expr.NewLinear(1, n)},
		expr.NewExponential(2, n, 1),
	)
	got := expr.CompareAsymptotic(bounded, expr.NewPolynomial(n, map[int]float64{5: 1}))
	assert.Equal(t, expr.OrderGreater, got, "bound Θ(2ⁿ) dominates n⁵")

	unbounded := expr.NewSpecial(
		expr.IncompleteGamma,
		[]expr.Expr{expr.Constant{K: 2}, expr.NewLinear(1, n)},
		nil,
	)
	got = expr.CompareAsymptotic(unbounded, expr.NewLinear(1, n))
	assert.Equal(t, expr.OrderIncomparable, got, "no bound, no verdict")
}

// TestClassify_CanonicalForms spot-checks the classification key across
// the variant set.
func TestClassify_CanonicalForms(t *testing.T) {
	cls := expr.Classify(expr.PolyLog{K: 4, V: n, PolyDeg: 2, LogExp: 3, Base: 2}, "n")
	assert.Equal(t, expr.FormPolyLog, cls.Form)
	assert.InDelta(t, 2.0, cls.PolyDegree, 1e-12)
	assert.InDelta(t, 3.0, cls.LogExponent, 1e-12)
	assert.InDelta(t, 4.0, cls.LeadingCoeff, 1e-12)

	cls = expr.Classify(expr.NewExponential(2, n, 3), "n")
	assert.Equal(t, expr.FormExponential, cls.Form)
	assert.InDelta(t, 2.0, cls.ExpBase, 1e-12)

	// log(n!) = Θ(n log n).
	cls = expr.Classify(expr.LogOf{Arg: expr.NewFactorial(n, 1), Base: 2}, "n")
	assert.Equal(t, expr.FormPolyLog, cls.Form)
	assert.InDelta(t, 1.0, cls.PolyDegree, 1e-12)
	assert.InDelta(t, 1.0, cls.LogExponent, 1e-12)

	// 2^(log₂ n) = n.
	cls = expr.Classify(expr.ExpOf{Base: 2, Arg: expr.NewLogarithmic(1, n, 2)}, "n")
	assert.Equal(t, expr.FormPolynomial, cls.Form)
	assert.InDelta(t, 1.0, cls.PolyDegree, 1e-12)

	// Classification along a foreign variable is constant.
	cls = expr.Classify(expr.NewLinear(1, n), "m")
	assert.Equal(t, expr.FormConstant, cls.Form)
}

// TestClassify_RoundTrip verifies the classification of a canonical
// PolyLog reproduces the input up to simplify.
func TestClassify_RoundTrip(t *testing.T) {
	for _, c := range []struct{ d, j float64 }{{1, 1}, {2, 0}, {0, 1}, {0.5, 2}, {3, 1.5}} {
		in := expr.PolyLog{K: 1, V: n, PolyDeg: c.d, LogExp: c.j, Base: 2}
		cls := expr.Classify(in, "n")
		back := cls.ToPolyLog(n)
		assert.True(t, expr.Equal(expr.Simplify(in), back),
			"round trip of d=%v j=%v: %s vs %s", c.d, c.j, expr.Simplify(in), back)
	}
}

// TestClassify_WorstCaseConventions verifies Conditional classifies as
// the dominant branch and Probabilistic as its worst member.
func TestClassify_WorstCaseConventions(t *testing.T) {
	cond := expr.Conditional{
		Label: "balanced",
		T:     expr.NewLinear(1, n),
		F:     expr.NewPolynomial(n, map[int]float64{2: 1}),
	}
	cls := expr.Classify(cond, "n")
	assert.Equal(t, expr.FormPolynomial, cls.Form)
	assert.InDelta(t, 2.0, cls.PolyDegree, 1e-12)

	prob := expr.NewProbabilistic(
		expr.PolyLog{K: 1, V: n, PolyDeg: 1, LogExp: 1, Base: 2},
		expr.NewPolynomial(n, map[int]float64{2: 1}),
		"quicksort", "uniform", nil,
	)
	cls = expr.Classify(prob, "n")
	assert.Equal(t, expr.FormPolynomial, cls.Form)
	assert.InDelta(t, 2.0, cls.PolyDegree, 1e-12)
}
