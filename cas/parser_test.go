package cas_test

import (
	"testing"

	"github.com/katalvlaran/bigo/cas"
	"github.com/katalvlaran/bigo/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseExpr_Canonical parses the common CAS answer shapes into
// canonical algebra values.
func TestParseExpr_Canonical(t *testing.T) {
	n := expr.N("n")

	e, err := cas.ParseExpr("n * log(n)")
	require.NoError(t, err)
	assert.True(t, expr.Equal(expr.PolyLog{K: 1, V: n, PolyDeg: 1, LogExp: 1, Base: 2}, e), "got %s", e)

	e, err = cas.ParseExpr("n^2 + 3*n + 1")
	require.NoError(t, err)
	cls := expr.Classify(e, "n")
	assert.Equal(t, expr.FormPolynomial, cls.Form)
	assert.InDelta(t, 2.0, cls.PolyDegree, 1e-12)

	e, err = cas.ParseExpr("2^n")
	require.NoError(t, err)
	assert.True(t, expr.Equal(expr.Exponential{Base: 2, V: n, K: 1}, e), "got %s", e)

	e, err = cas.ParseExpr("n!")
	require.NoError(t, err)
	assert.True(t, expr.Equal(expr.Factorial{V: n, K: 1}, e), "got %s", e)

	e, err = cas.ParseExpr("(n + 1) * n^0.5")
	require.NoError(t, err)
	cls = expr.Classify(e, "n")
	assert.InDelta(t, 1.5, cls.PolyDegree, 1e-12)
}

// TestParseExpr_RejectsForeignSyntax verifies the recognized-subset
// rule: everything outside the grammar is ErrBadSyntax, not a guess.
func TestParseExpr_RejectsForeignSyntax(t *testing.T) {
	for _, bad := range []string{
		"n - 1",          // subtraction is not in the grammar
		"sin(n)",         // unknown function call
		"n / 2",          // division is not in the grammar
		"n ^ m",          // non-numeric exponent on a variable
		"log n",          // log without parentheses
		"(n",             // unbalanced
		"n) + 1",         // trailing garbage
		"import os",      // anything programmatic
		"n; drop tables", // separators
	} {
		_, err := cas.ParseExpr(bad)
		assert.ErrorIs(t, err, cas.ErrBadSyntax, "input %q must be rejected", bad)
	}
}
