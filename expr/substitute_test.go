package expr_test

import (
	"testing"

	"github.com/katalvlaran/bigo/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubstitute_Identity verifies substitute(e, v, Var(v)) = e.
func TestSubstitute_Identity(t *testing.T) {
	cases := []expr.Expr{
		expr.NewLinear(3, n),
		expr.NewPolynomial(n, map[int]float64{2: 1, 0: 5}),
		expr.NewLogarithmic(1, n, 2),
		expr.PolyLog{K: 2, V: n, PolyDeg: 1, LogExp: 2, Base: 2},
		expr.NewExponential(2, n, 1),
		expr.NewFactorial(n, 1),
		expr.Sum(expr.NewLinear(1, n), expr.Constant{K: 7}),
	}
	for _, c := range cases {
		got := expr.Substitute(c, "n", n)
		assert.True(t, expr.Equal(c, got), "identity substitution changed %s into %s", c, got)
	}
}

// TestSubstitute_FreeVariableContract verifies
// free(result) = (free(e) \ {v}) ∪ free(replacement) when v occurs.
func TestSubstitute_FreeVariableContract(t *testing.T) {
	m := expr.NewVar("m", expr.KindSecondarySize)

	e := expr.Sum(expr.NewLinear(1, n), expr.NewLogarithmic(1, n, 2))
	got := expr.Substitute(e, "n", expr.NewLinear(2, m))

	free := expr.FreeVars(got)
	_, hasN := free["n"]
	_, hasM := free["m"]
	assert.False(t, hasN, "n must be gone")
	assert.True(t, hasM, "m must appear")

	// Substituting an absent variable is the identity.
	same := expr.Substitute(e, "q", m)
	assert.True(t, expr.Equal(e, same), "absent variable substitution must not rewrite")
}

// TestSubstitute_LiftsNonVarReplacements verifies leaves lift into
// composite forms when the replacement is not a variable: log₂(v)[v:=n/2]
// becomes log₂ of the replacement expression.
func TestSubstitute_LiftsNonVarReplacements(t *testing.T) {
	half := expr.NewLinear(0.5, n)

	got := expr.Substitute(expr.NewLogarithmic(1, expr.NewVar("v", expr.KindCustom), 2), "v", half)
	val, err := expr.Evaluate(got, map[string]float64{"n": 16})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, val, 1e-9, "log₂(16/2) = 3")

	sq := expr.Substitute(expr.NewPolynomial(expr.NewVar("v", expr.KindCustom), map[int]float64{2: 1}), "v", half)
	val, err = expr.Evaluate(sq, map[string]float64{"n": 10})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, val, 1e-9, "(n/2)² at n=10")
}

// TestSubstitute_IntegrationVariableIsBound verifies the integration
// variable of a symbolic integral shields the integrand.
func TestSubstitute_IntegrationVariableIsBound(t *testing.T) {
	u := expr.NewVar("u", expr.KindCustom)
	integral := expr.NewSymbolicIntegral(
		expr.NewLinear(1, u), u,
		expr.Constant{K: 1}, expr.NewLinear(1, n),
		nil,
	)

	got := expr.Substitute(integral, "u", expr.Constant{K: 99})
	sp, ok := got.(expr.Special)
	require.True(t, ok, "must stay a symbolic integral")
	assert.True(t, expr.Equal(expr.NewLinear(1, u), sp.Args[0]), "bound integrand must be untouched")

	free := expr.FreeVars(integral)
	_, hasU := free["u"]
	assert.False(t, hasU, "integration variable is not free")
}
