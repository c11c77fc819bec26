package akrabazzi_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/bigo/akrabazzi"
	"github.com/katalvlaran/bigo/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var n = expr.N("n")

// evaluate is the shared helper for table-row tests.
func evaluate(t *testing.T, g expr.Expr, p float64) akrabazzi.Evaluation {
	t.Helper()
	ev := akrabazzi.NewTableEvaluator(akrabazzi.DefaultOptions())
	res, err := ev.Evaluate(g, n, p)
	require.NoError(t, err)
	require.True(t, res.Success)

	return res
}

// TestEvaluate_ConstantRows covers the three constant-work rows of the
// dispatch table.
func TestEvaluate_ConstantRows(t *testing.T) {
	// p > 0: Θ(n^p).
	res := evaluate(t, expr.Constant{K: 1}, 1)
	assert.True(t, expr.Equal(expr.Linear{K: 1, V: n}, res.FullSolution), "got %s", res.FullSolution)
	assert.Equal(t, akrabazzi.FormClosed, res.Form)
	assert.InDelta(t, 1.0, res.Confidence, 1e-12)

	// p = 0: Θ(log n) — binary search.
	res = evaluate(t, expr.Constant{K: 1}, 0)
	assert.True(t, expr.Equal(expr.Logarithmic{K: 1, V: n, Base: 2}, res.FullSolution), "got %s", res.FullSolution)

	// p < 0: the integral term cancels n^p, Θ(1).
	res = evaluate(t, expr.Constant{K: 1}, -0.5)
	assert.True(t, expr.Equal(expr.Constant{K: 1}, res.FullSolution), "got %s", res.FullSolution)
}

// TestEvaluate_PolynomialRows covers k<p, k=p, k>p.
func TestEvaluate_PolynomialRows(t *testing.T) {
	// k=1 < p=log₂3: Θ(n^p) — Karatsuba.
	p := math.Log2(3)
	res := evaluate(t, expr.NewLinear(1, n), p)
	cls := expr.Classify(res.FullSolution, "n")
	assert.Equal(t, expr.FormPolynomial, cls.Form)
	assert.InDelta(t, p, cls.PolyDegree, 1e-9)

	// k=p=1: Θ(n log n) — mergesort.
	res = evaluate(t, expr.NewLinear(1, n), 1)
	cls = expr.Classify(res.FullSolution, "n")
	assert.Equal(t, expr.FormPolyLog, cls.Form)
	assert.InDelta(t, 1.0, cls.PolyDegree, 1e-9)
	assert.InDelta(t, 1.0, cls.LogExponent, 1e-9)

	// k=2 > p=1: Θ(n²).
	res = evaluate(t, expr.NewPolynomial(n, map[int]float64{2: 1}), 1)
	cls = expr.Classify(res.FullSolution, "n")
	assert.Equal(t, expr.FormPolynomial, cls.Form)
	assert.InDelta(t, 2.0, cls.PolyDegree, 1e-9)
}

// TestEvaluate_PolyLogRows covers the n^k·log^j n rows, including the
// exponent bump at k=p.
func TestEvaluate_PolyLogRows(t *testing.T) {
	g := expr.PolyLog{K: 1, V: n, PolyDeg: 1, LogExp: 1, Base: 2}

	// k=p: the log exponent rises by one.
	res := evaluate(t, g, 1)
	cls := expr.Classify(res.FullSolution, "n")
	assert.Equal(t, expr.FormPolyLog, cls.Form)
	assert.InDelta(t, 1.0, cls.PolyDegree, 1e-9)
	assert.InDelta(t, 2.0, cls.LogExponent, 1e-9)

	// k>p: the work wins with its log factor intact.
	res = evaluate(t, g, 0.5)
	cls = expr.Classify(res.FullSolution, "n")
	assert.InDelta(t, 1.0, cls.PolyDegree, 1e-9)
	assert.InDelta(t, 1.0, cls.LogExponent, 1e-9)
}

// TestEvaluate_FractionalExponents verifies the elementary rows hold for
// non-integer k.
func TestEvaluate_FractionalExponents(t *testing.T) {
	g := expr.PolyLog{K: 1, V: n, PolyDeg: 1.5, LogExp: 0, Base: 2}
	res := evaluate(t, g, 0.5)
	cls := expr.Classify(res.FullSolution, "n")
	assert.Equal(t, expr.FormPolynomial, cls.Form)
	assert.InDelta(t, 1.5, cls.PolyDegree, 1e-9)
	assert.Equal(t, akrabazzi.FormClosed, res.Form)
}

// TestEvaluate_ExponentialRow verifies exponential work dominates with
// an incomplete-gamma integral record.
func TestEvaluate_ExponentialRow(t *testing.T) {
	res := evaluate(t, expr.NewExponential(2, n, 1), 1)
	assert.Equal(t, akrabazzi.FormSpecialFunction, res.Form)
	assert.Equal(t, "IncompleteGamma", res.SpecialFunction)
	cls := expr.Classify(res.FullSolution, "n")
	assert.Equal(t, expr.FormExponential, cls.Form)
	assert.InDelta(t, 0.85, res.Confidence, 1e-9)
}

// TestEvaluate_RationalRow verifies n^a/(1+n^b)^c routes through the
// incomplete-beta family with the effective-exponent bound.
func TestEvaluate_RationalRow(t *testing.T) {
	// g = n³/(1+n)²: effective exponent 1.
	g := expr.Product(
		expr.NewPolynomial(n, map[int]float64{3: 1}),
		expr.Power{Base: expr.Sum(expr.Constant{K: 1}, expr.NewLinear(1, n)), Exp: -2},
	)
	ev := akrabazzi.NewTableEvaluator(akrabazzi.DefaultOptions())
	res, err := ev.Evaluate(g, n, 0.5)
	require.NoError(t, err)
	assert.Equal(t, akrabazzi.FormSpecialFunction, res.Form)
	assert.Equal(t, "IncompleteBeta", res.SpecialFunction)

	cls := expr.Classify(res.FullSolution, "n")
	assert.InDelta(t, 1.0, cls.PolyDegree, 1e-9, "n^(3-2) dominates p=0.5")
}

// TestEvaluate_SymbolicFallback verifies unknown shapes produce a
// SymbolicIntegral residue with a dominant-term bound and reduced
// confidence.
func TestEvaluate_SymbolicFallback(t *testing.T) {
	// A special function without a recorded bound defeats the table.
	m := expr.NewVar("m", expr.KindSecondarySize)
	weird := expr.NewSpecial(expr.Hypergeometric,
		[]expr.Expr{expr.Constant{K: 1}, expr.Constant{K: 1}, expr.Constant{K: 2}, expr.NewLinear(1, m)}, nil)

	ev := akrabazzi.NewTableEvaluator(akrabazzi.DefaultOptions())
	res, err := ev.Evaluate(weird, n, 1)
	require.NoError(t, err)
	assert.True(t, res.IsSymbolic())
	assert.LessOrEqual(t, res.Confidence, 0.7)
	assert.GreaterOrEqual(t, res.Confidence, 0.5)

	_, isSym := res.IntegralTerm.(expr.Special)
	assert.True(t, isSym, "integral term must be a symbolic residue")
}
