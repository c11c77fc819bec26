package refine_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/bigo/cas"
	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/recurrence"
	"github.com/katalvlaran/bigo/refine"
	"github.com/katalvlaran/bigo/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var n = expr.N("n")

// mergesort builds T(n)=2T(n/2)+n.
func mergesort(t *testing.T) recurrence.DivideAndConquer {
	t.Helper()
	rec, err := recurrence.NewDivideAndConquer(
		[]recurrence.Term{{A: 2, B: 0.5}}, expr.NewLinear(1, n), expr.Constant{K: 1}, n)
	require.NoError(t, err)

	return rec
}

// solveAndRefine runs the full solve → refine pipeline.
func solveAndRefine(t *testing.T, rec recurrence.Recurrence) refine.Result {
	t.Helper()
	out, err := solver.New(solver.DefaultOptions()).Solve(context.Background(), rec)
	require.NoError(t, err)

	res, err := refine.New(refine.DefaultOptions()).Refine(context.Background(), rec, out)
	require.NoError(t, err)

	return res
}

// TestRefine_MergeSortAccepted verifies the full pipeline endorses a
// correct Θ(n log n) with high confidence and a complete stage trace.
func TestRefine_MergeSortAccepted(t *testing.T) {
	res := solveAndRefine(t, mergesort(t))

	assert.False(t, res.RequiresReview)
	assert.GreaterOrEqual(t, res.Confidence, 0.85, "consensus-backed clean result")
	assert.Empty(t, res.Boundary, "p=1 is an exact integer, not a near-boundary")

	require.NotNil(t, res.Induction)
	assert.True(t, res.Induction.BaseCaseOK)
	assert.True(t, res.Induction.AsymptoticOK, "ratio must stabilize: %s", res.Induction.Notes)
	assert.Nil(t, res.Induction.Symbolic, "no bridge configured")

	require.NotNil(t, res.Slack)
	assert.False(t, res.Slack.Loose, "constants must close within the ceiling: %v", res.Slack)
	assert.Less(t, res.Slack.Ratio, 2.0)

	// Stage order: BoundaryDetect, SlackVariableTighten, InductionVerify,
	// ConfidenceScore (no perturbation off-boundary).
	names := make([]string, 0, len(res.Stages))
	for _, s := range res.Stages {
		names = append(names, s.Stage)
	}
	assert.Equal(t, []string{"BoundaryDetect", "SlackVariableTighten", "InductionVerify", "ConfidenceScore"}, names)
}

// TestRefine_AllScenariosPassNumericInduction runs the S1/S2/S3/S5/S6/S7
// shapes through the verifier in numerical mode.
func TestRefine_AllScenariosPassNumericInduction(t *testing.T) {
	mk := func(terms []recurrence.Term, g expr.Expr) recurrence.Recurrence {
		rec, err := recurrence.NewDivideAndConquer(terms, g, expr.Constant{K: 1}, n)
		require.NoError(t, err)

		return rec
	}
	mkLin := func(coeffs []float64) recurrence.Recurrence {
		rec, err := recurrence.NewLinear(coeffs, expr.Constant{K: 0}, expr.Constant{K: 1}, n)
		require.NoError(t, err)

		return rec
	}

	cases := []recurrence.Recurrence{
		mk([]recurrence.Term{{A: 2, B: 0.5}}, expr.NewLinear(1, n)),                      // S1
		mk([]recurrence.Term{{A: 1, B: 0.5}}, expr.Constant{K: 1}),                       // S2
		mk([]recurrence.Term{{A: 3, B: 0.5}}, expr.NewLinear(1, n)),                      // S3
		mk([]recurrence.Term{{A: 1, B: 1.0 / 3}, {A: 1, B: 2.0 / 3}}, expr.NewLinear(1, n)), // S5
		mkLin([]float64{1, 1}), // S6
		mkLin([]float64{4, -4}), // S7
	}
	for i, rec := range cases {
		res := solveAndRefine(t, rec)
		require.NotNil(t, res.Induction, "scenario %d", i)
		assert.True(t, res.Induction.AsymptoticOK, "scenario %d: %s", i, res.Induction.Notes)
		assert.False(t, res.RequiresReview, "scenario %d", i)
		assert.GreaterOrEqual(t, res.Confidence, 0.5, "scenario %d", i)
	}
}

// TestRefine_BoundaryDetection flags a near-integer critical exponent
// and runs the perturbation stage.
func TestRefine_BoundaryDetection(t *testing.T) {
	// a=2.1, b=1/2: p = log₂(2.1) ≈ 1.07, within 0.1 of 1.
	rec, err := recurrence.NewDivideAndConquer(
		[]recurrence.Term{{A: 2.1, B: 0.5}}, expr.NewLinear(1, n), expr.Constant{K: 1}, n)
	require.NoError(t, err)

	res := solveAndRefine(t, rec)
	assert.Contains(t, res.Boundary, refine.FlagNearIntegerP)
	require.NotNil(t, res.Perturbation, "perturbation must run near a boundary")
	assert.NotEmpty(t, res.Perturbation.Terms)
	assert.GreaterOrEqual(t, res.Perturbation.RemainderBound, 0.0)
	assert.LessOrEqual(t, res.Confidence, 0.70+1e-9, "boundary cases cap at the documented weight")

	found := false
	for _, s := range res.Stages {
		if s.Stage == "Perturbation" {
			found = true
		}
	}
	assert.True(t, found, "the trace must include the perturbation stage")
}

// TestRefine_DivergentBoundCollapses verifies a wrong candidate (log n
// for a Θ(n log n) recurrence) drops below 0.5 and demands review.
func TestRefine_DivergentBoundCollapses(t *testing.T) {
	rec := mergesort(t)
	wrong := solver.Output{
		Solution:    expr.Logarithmic{K: 1, V: n, Base: 2},
		Theorem:     "Master:Case2",
		State:       solver.StateMasterApplied,
		P:           1,
		Confidence:  1.0,
		Explanation: "deliberately wrong candidate",
	}

	res, err := refine.New(refine.DefaultOptions()).Refine(context.Background(), rec, wrong)
	require.NoError(t, err)

	assert.True(t, res.RequiresReview)
	assert.Less(t, res.Confidence, 0.5, "divergent samples must collapse confidence")
	require.NotNil(t, res.Induction)
	assert.False(t, res.Induction.AsymptoticOK)
	assert.Greater(t, res.Induction.MaxDivergence, 0.30)
}

// TestRefine_Cancellation verifies cooperative cancellation discards
// partial results.
func TestRefine_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := solver.New(solver.DefaultOptions()).Solve(context.Background(), mergesort(t))
	require.NoError(t, err)

	_, err = refine.New(refine.DefaultOptions()).Refine(ctx, mergesort(t), out)
	assert.ErrorIs(t, err, solver.ErrCancelled)
}

// TestVerify_Directions checks the standalone verifier on correct and
// incorrect bounds in all three directions.
func TestVerify_Directions(t *testing.T) {
	rec := mergesort(t)
	r := refine.New(refine.DefaultOptions())
	ctx := context.Background()

	nLogN := expr.PolyLog{K: 1, V: n, PolyDeg: 1, LogExp: 1, Base: 2}
	square := expr.NewPolynomial(n, map[int]float64{2: 1})
	linear := expr.NewLinear(1, n)

	v, err := r.Verify(ctx, rec, nLogN, cas.BoundTheta)
	require.NoError(t, err)
	assert.True(t, v.Holds, "n log n is the tight bound: %s", v.Notes)

	v, err = r.Verify(ctx, rec, square, cas.BoundO)
	require.NoError(t, err)
	assert.True(t, v.Holds, "n² is a valid upper bound: %s", v.Notes)

	v, err = r.Verify(ctx, rec, square, cas.BoundTheta)
	require.NoError(t, err)
	assert.False(t, v.Holds, "n² is not tight: %s", v.Notes)

	v, err = r.Verify(ctx, rec, linear, cas.BoundOmega)
	require.NoError(t, err)
	assert.True(t, v.Holds, "n is a valid lower bound: %s", v.Notes)

	v, err = r.Verify(ctx, rec, linear, cas.BoundO)
	require.NoError(t, err)
	assert.False(t, v.Holds, "n is not an upper bound: %s", v.Notes)
}

// stubBridge confirms every bound; it stands in for a real CAS.
type stubBridge struct{}

func (stubBridge) SolveLinear(context.Context, []float64, []float64, expr.Expr) (expr.Expr, error) {
	return nil, cas.ErrBridgeUnavailable
}

func (stubBridge) SolveDivideAndConquer(context.Context, float64, float64, expr.Expr) (expr.Expr, error) {
	return nil, cas.ErrBridgeUnavailable
}

func (stubBridge) Verify(context.Context, expr.Expr, recurrence.Recurrence, []float64) (cas.Verdict, error) {
	return cas.Verdict{Holds: true, Reasoning: "stub accepts"}, nil
}

func (stubBridge) CompareAsymptotic(context.Context, expr.Expr, expr.Expr, cas.BoundKind) (cas.Verdict, error) {
	return cas.Verdict{Holds: true}, nil
}

// TestRefine_SymbolicPathLiftsNumericalPenalty verifies a configured
// bridge records a symbolic verdict and avoids the numerical-only
// penalty.
func TestRefine_SymbolicPathLiftsNumericalPenalty(t *testing.T) {
	rec := mergesort(t)
	out, err := solver.New(solver.DefaultOptions()).Solve(context.Background(), rec)
	require.NoError(t, err)

	numeric, err := refine.New(refine.DefaultOptions()).Refine(context.Background(), rec, out)
	require.NoError(t, err)
	symbolic, err := refine.New(refine.DefaultOptions()).WithBridge(stubBridge{}).Refine(context.Background(), rec, out)
	require.NoError(t, err)

	require.NotNil(t, symbolic.Induction.Symbolic)
	assert.True(t, *symbolic.Induction.Symbolic)
	assert.GreaterOrEqual(t, symbolic.Confidence, numeric.Confidence,
		"the symbolic path must never score below the numerical one")
}
