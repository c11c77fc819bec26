package recurrence_test

import (
	"testing"

	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/recurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var n = expr.N("n")

// TestNewDivideAndConquer_Validation exercises the rejectable taxonomy:
// empty term lists, non-positive coefficients, out-of-range scales and
// foreign variables are all refused with their sentinel.
func TestNewDivideAndConquer_Validation(t *testing.T) {
	g := expr.NewLinear(1, n)
	base := expr.Constant{K: 1}

	_, err := recurrence.NewDivideAndConquer(nil, g, base, n)
	assert.ErrorIs(t, err, recurrence.ErrEmptyRecurrence)

	_, err = recurrence.NewDivideAndConquer([]recurrence.Term{{A: 0, B: 0.5}}, g, base, n)
	assert.ErrorIs(t, err, recurrence.ErrZeroCoefficient)

	_, err = recurrence.NewDivideAndConquer([]recurrence.Term{{A: 2, B: 1.5}}, g, base, n)
	assert.ErrorIs(t, err, recurrence.ErrScaleOutOfRange)

	_, err = recurrence.NewDivideAndConquer([]recurrence.Term{{A: 2, B: 0.5}}, g, base, n)
	assert.NoError(t, err)

	m := expr.NewVar("m", expr.KindSecondarySize)
	_, err = recurrence.NewDivideAndConquer([]recurrence.Term{{A: 2, B: 0.5}}, expr.NewLinear(1, m), base, n)
	assert.ErrorIs(t, err, recurrence.ErrInconsistentVariable)

	_, err = recurrence.NewDivideAndConquer([]recurrence.Term{{A: 2, B: 0.5}}, expr.Constant{K: 0}, expr.Constant{K: 0}, n)
	assert.ErrorIs(t, err, recurrence.ErrDivergentBase)
}

// TestPredicates verifies the Master/Akra–Bazzi classification split.
func TestPredicates(t *testing.T) {
	g := expr.NewLinear(1, n)
	base := expr.Constant{K: 1}

	single, err := recurrence.NewDivideAndConquer([]recurrence.Term{{A: 2, B: 0.5}}, g, base, n)
	require.NoError(t, err)
	assert.True(t, single.FitsMaster(), "2T(n/2)+n is the Master shape")
	assert.True(t, single.FitsAkraBazzi(), "every well-formed d&c fits Akra–Bazzi")

	multi, err := recurrence.NewDivideAndConquer(
		[]recurrence.Term{{A: 1, B: 1.0 / 3}, {A: 1, B: 2.0 / 3}}, g, base, n)
	require.NoError(t, err)
	assert.False(t, multi.FitsMaster(), "two terms are out of Master scope")
	assert.True(t, multi.FitsAkraBazzi())

	// A fractional a < 1 fails Master but still fits Akra–Bazzi.
	frac, err := recurrence.NewDivideAndConquer([]recurrence.Term{{A: 0.5, B: 0.5}}, g, base, n)
	require.NoError(t, err)
	assert.False(t, frac.FitsMaster())
	assert.True(t, frac.FitsAkraBazzi())
}

// TestNewLinear_Validation covers k ≥ 1, the all-zero coefficient
// rejection, and accessor copying.
func TestNewLinear_Validation(t *testing.T) {
	f := expr.Constant{K: 1}
	base := expr.Constant{K: 1}

	_, err := recurrence.NewLinear(nil, f, base, n)
	assert.ErrorIs(t, err, recurrence.ErrEmptyRecurrence)

	_, err = recurrence.NewLinear([]float64{0, 0}, f, base, n)
	assert.ErrorIs(t, err, recurrence.ErrZeroCoefficient)

	fib, err := recurrence.NewLinear([]float64{1, 1}, expr.Constant{K: 0}, base, n)
	require.NoError(t, err)
	assert.True(t, fib.IsLinear())
	assert.Equal(t, 2, fib.Order())

	// Accessors return copies: mutating the copy must not leak inside.
	coeffs := fib.Coeffs()
	coeffs[0] = 99
	assert.Equal(t, []float64{1, 1}, fib.Coeffs(), "internal coefficients must be immutable")
}

// TestNewMutual_Validation covers descriptor validity and the
// non-reducing-cycle rejection.
func TestNewMutual_Validation(t *testing.T) {
	work := expr.NewLinear(1, n)

	_, err := recurrence.NewMutual(nil, n)
	assert.ErrorIs(t, err, recurrence.ErrEmptyRecurrence)

	_, err = recurrence.NewMutual([]recurrence.Component{
		{Name: "f", Work: work, Step: recurrence.Reduction{Kind: recurrence.ReduceBySubtraction, R: 0}},
		{Name: "g", Work: work, Step: recurrence.Reduction{Kind: recurrence.ReduceBySubtraction, R: 0}},
	}, n)
	assert.ErrorIs(t, err, recurrence.ErrNonReducingCycle, "no step shrinks: must reject")

	_, err = recurrence.NewMutual([]recurrence.Component{
		{Name: "f", Work: work, Step: recurrence.Reduction{Kind: recurrence.ReduceByScale, B: 1.5}},
	}, n)
	assert.ErrorIs(t, err, recurrence.ErrBadReduction)

	sys, err := recurrence.NewMutual([]recurrence.Component{
		{Name: "even", Work: work, Step: recurrence.Reduction{Kind: recurrence.ReduceBySubtraction, R: 1}},
		{Name: "odd", Work: work, Step: recurrence.Reduction{Kind: recurrence.ReduceBySubtraction, R: 1}},
	}, n)
	require.NoError(t, err)
	assert.True(t, sys.IsMutual())
	assert.Len(t, sys.Components(), 2)
}

// TestJSON_RoundTrip checks the wire schema for both shapes.
func TestJSON_RoundTrip(t *testing.T) {
	g := expr.NewLinear(1, n)
	rec, err := recurrence.NewDivideAndConquer(
		[]recurrence.Term{{A: 2, B: 0.5}, {A: 1, B: 1.0 / 3}}, g, expr.Constant{K: 1}, n)
	require.NoError(t, err)

	data, err := rec.EncodeJSON()
	require.NoError(t, err)
	back, err := recurrence.DecodeDivideAndConquer(data)
	require.NoError(t, err)
	assert.Equal(t, rec.Terms(), back.Terms())
	assert.True(t, expr.Equal(rec.Work(), back.Work()))
	assert.Equal(t, "n", back.Variable().Name)

	lin, err := recurrence.NewLinear([]float64{4, -4}, expr.Constant{K: 0}, expr.Constant{K: 1}, n)
	require.NoError(t, err)
	data, err = lin.EncodeJSON()
	require.NoError(t, err)
	backLin, err := recurrence.DecodeLinear(data)
	require.NoError(t, err)
	assert.Equal(t, lin.Coeffs(), backLin.Coeffs())
}

// TestDecode_RejectsMalformed verifies decoding funnels through the
// validating constructors.
func TestDecode_RejectsMalformed(t *testing.T) {
	_, err := recurrence.DecodeDivideAndConquer([]byte(`{"variable":"n","terms":[{"a":2,"b":1.5}]}`))
	assert.ErrorIs(t, err, recurrence.ErrScaleOutOfRange)

	_, err = recurrence.DecodeDivideAndConquer([]byte(`{"terms":[{"a":2,"b":0.5}]}`))
	assert.ErrorIs(t, err, recurrence.ErrInconsistentVariable)

	_, err = recurrence.DecodeLinear([]byte(`{"variable":"n","coeffs":[]}`))
	assert.ErrorIs(t, err, recurrence.ErrEmptyRecurrence)
}
