package expr_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/bigo/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEvaluate_Leaves checks numeric evaluation of every leaf form.
func TestEvaluate_Leaves(t *testing.T) {
	env := map[string]float64{"n": 8}

	cases := []struct {
		e    expr.Expr
		want float64
	}{
		{expr.Constant{K: 3.5}, 3.5},
		{n, 8},
		{expr.NewLinear(2, n), 16},
		{expr.NewPolynomial(n, map[int]float64{2: 1, 0: 4}), 68},
		{expr.NewLogarithmic(2, n, 2), 6},
		{expr.PolyLog{K: 2, V: n, PolyDeg: 1, LogExp: 1, Base: 2}, 48},
		{expr.NewExponential(2, n, 1), 256},
		{expr.NewFactorial(n, 1), 40320},
		{expr.Power{Base: expr.NewLinear(1, n), Exp: 2}, 64},
		{expr.LogOf{Arg: expr.NewLinear(2, n), Base: 2}, 4},
		{expr.ExpOf{Base: 2, Arg: expr.NewLogarithmic(1, n, 2)}, 8},
	}
	for _, c := range cases {
		got, err := expr.Evaluate(c.e, env)
		require.NoError(t, err, "evaluating %s", c.e)
		assert.InDelta(t, c.want, got, 1e-9, "value of %s", c.e)
	}
}

// TestEvaluate_WorstCaseConventions checks Conditional → max of branches
// and Probabilistic → worst member.
func TestEvaluate_WorstCaseConventions(t *testing.T) {
	env := map[string]float64{"n": 10}

	cond := expr.Conditional{Label: "hit", T: expr.NewLinear(1, n), F: expr.NewPolynomial(n, map[int]float64{2: 1})}
	got, err := expr.Evaluate(cond, env)
	require.NoError(t, err)
	assert.InDelta(t, 100, got, 1e-9, "worst branch wins")

	prob := expr.NewProbabilistic(expr.NewLinear(1, n), expr.NewPolynomial(n, map[int]float64{2: 1}), "qs", "uniform", nil)
	got, err = expr.Evaluate(prob, env)
	require.NoError(t, err)
	assert.InDelta(t, 100, got, 1e-9, "worst member wins")
}

// TestEvaluate_Errors checks the ⊥ conditions: unbound variables, domain
// violations and overflow all surface as sentinels.
func TestEvaluate_Errors(t *testing.T) {
	_, err := expr.Evaluate(expr.NewLinear(1, n), map[string]float64{})
	assert.ErrorIs(t, err, expr.ErrUnbound, "missing n must be ErrUnbound")

	_, err = expr.Evaluate(expr.NewLogarithmic(1, n, 2), map[string]float64{"n": -3})
	assert.ErrorIs(t, err, expr.ErrNumeric, "log of a negative is ErrNumeric")

	_, err = expr.Evaluate(expr.NewFactorial(n, 1), map[string]float64{"n": 200})
	assert.ErrorIs(t, err, expr.ErrNumeric, "200! overflows float64")
}

// TestEvaluate_SpecialFunctions sanity-checks the special-function
// numerics against closed-form values.
func TestEvaluate_SpecialFunctions(t *testing.T) {
	// Li_1(z) = -ln(1-z).
	li := expr.NewSpecial(expr.Polylogarithm, []expr.Expr{expr.Constant{K: 1}, expr.Constant{K: 0.5}}, nil)
	got, err := expr.Evaluate(li, nil)
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2, got, 1e-10, "Li₁(1/2) = ln 2")

	// γ(1, x) = 1 - e^{-x}.
	ig := expr.NewSpecial(expr.IncompleteGamma, []expr.Expr{expr.Constant{K: 1}, expr.Constant{K: 2}}, nil)
	got, err = expr.Evaluate(ig, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1-math.Exp(-2), got, 1e-10, "γ(1,2)")

	// B(x; 1, 1) = x.
	ib := expr.NewSpecial(expr.IncompleteBeta, []expr.Expr{expr.Constant{K: 0.25}, expr.Constant{K: 1}, expr.Constant{K: 1}}, nil)
	got, err = expr.Evaluate(ib, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 1e-10, "B(0.25;1,1)")

	// ₂F₁(1, 1; 2; z) = -ln(1-z)/z.
	hg := expr.NewSpecial(expr.Hypergeometric, []expr.Expr{
		expr.Constant{K: 1}, expr.Constant{K: 1}, expr.Constant{K: 2}, expr.Constant{K: 0.5},
	}, nil)
	got, err = expr.Evaluate(hg, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Ln2, got, 1e-10, "₂F₁(1,1;2;1/2)")
}

// TestEvaluate_SymbolicIntegral integrates ∫₁ⁿ u du numerically.
func TestEvaluate_SymbolicIntegral(t *testing.T) {
	u := expr.NewVar("u", expr.KindCustom)
	integral := expr.NewSymbolicIntegral(
		expr.NewLinear(1, u), u,
		expr.Constant{K: 1}, n,
		expr.NewPolynomial(n, map[int]float64{2: 1}),
	)

	got, err := expr.Evaluate(integral, map[string]float64{"n": 10})
	require.NoError(t, err)
	assert.InDelta(t, 49.5, got, 1e-6, "∫₁¹⁰ u du = 49.5")
}
