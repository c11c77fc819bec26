package akrabazzi_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/bigo/akrabazzi"
	"github.com/katalvlaran/bigo/recurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSolveCriticalExponent_SingleTermClosedForm verifies the fast path
// p = log_{1/b}(a) against the classic Master-shape recurrences.
func TestSolveCriticalExponent_SingleTermClosedForm(t *testing.T) {
	cases := []struct {
		a, b float64
		want float64
	}{
		{2, 0.5, 1},                   // mergesort
		{1, 0.5, 0},                   // binary search
		{3, 0.5, math.Log2(3)},        // Karatsuba shape
		{7, 0.5, math.Log2(7)},        // Strassen shape
		{4, 0.25, 1},                  // 4T(n/4)
		{2, 1.0 / 3, math.Log(2) / math.Log(3)}, // 2T(n/3)
	}
	for _, c := range cases {
		p, err := akrabazzi.SolveCriticalExponent(
			[]recurrence.Term{{A: c.a, B: c.b}}, akrabazzi.DefaultOptions())
		require.NoError(t, err, "a=%v b=%v", c.a, c.b)
		assert.InDelta(t, c.want, p, 1e-12, "a=%v b=%v", c.a, c.b)
	}
}

// TestSolveCriticalExponent_MultiTerm verifies Newton against known
// multi-term roots.
func TestSolveCriticalExponent_MultiTerm(t *testing.T) {
	// T(n)=T(n/3)+T(2n/3): (1/3)^p+(2/3)^p=1 at p=1.
	p, err := akrabazzi.SolveCriticalExponent(
		[]recurrence.Term{{A: 1, B: 1.0 / 3}, {A: 1, B: 2.0 / 3}},
		akrabazzi.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-9, "median-of-medians split has p=1")

	// 2·(1/2)^p + (1/4)^p = 1: with x=(1/2)^p, x²+2x−1=0, x=√2−1.
	p, err = akrabazzi.SolveCriticalExponent(
		[]recurrence.Term{{A: 2, B: 0.5}, {A: 1, B: 0.25}},
		akrabazzi.DefaultOptions())
	require.NoError(t, err)
	want := math.Log2(1 / (math.Sqrt2 - 1))
	assert.InDelta(t, want, p, 1e-9)
}

// TestSolveCriticalExponent_ResidualProperty verifies |F(p)| < ε at the
// returned root across a grid of random-ish recurrences.
func TestSolveCriticalExponent_ResidualProperty(t *testing.T) {
	opts := akrabazzi.DefaultOptions()
	grids := [][]recurrence.Term{
		{{A: 1, B: 0.2}, {A: 3, B: 0.7}},
		{{A: 0.5, B: 0.9}, {A: 0.5, B: 0.1}},
		{{A: 5, B: 0.5}, {A: 2, B: 0.25}, {A: 1, B: 0.125}},
		{{A: 1.5, B: 1.0 / 3}, {A: 1.5, B: 2.0 / 3}},
	}
	for _, terms := range grids {
		p, err := akrabazzi.SolveCriticalExponent(terms, opts)
		require.NoError(t, err, "terms %v", terms)

		residual := -1.0
		for _, tm := range terms {
			residual += tm.A * math.Pow(tm.B, p)
		}
		assert.Less(t, math.Abs(residual), opts.Tolerance, "terms %v: residual at p=%v", terms, p)
	}
}

// TestSolveCriticalExponent_Rejections covers option and term validation.
func TestSolveCriticalExponent_Rejections(t *testing.T) {
	_, err := akrabazzi.SolveCriticalExponent(nil, akrabazzi.DefaultOptions())
	assert.ErrorIs(t, err, akrabazzi.ErrNoTerms)

	_, err = akrabazzi.SolveCriticalExponent(
		[]recurrence.Term{{A: -1, B: 0.5}}, akrabazzi.DefaultOptions())
	assert.ErrorIs(t, err, akrabazzi.ErrBadTerm)

	bad := akrabazzi.DefaultOptions()
	bad.Tolerance = 0
	_, err = akrabazzi.SolveCriticalExponent([]recurrence.Term{{A: 2, B: 0.5}}, bad)
	assert.ErrorIs(t, err, akrabazzi.ErrBadOptions)
}
