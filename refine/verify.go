// Package refine: standalone bound verification. Verify answers "is the
// proposed expression an O / Ω / Θ bound of this recurrence?" by the
// same sampling machinery the induction stage uses.
package refine

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/bigo/cas"
	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/recurrence"
)

// Verification is the result of a Verify call.
type Verification struct {
	// Holds reports whether the proposed bound is consistent with the
	// sampled data in the requested direction.
	Holds bool

	// Kind echoes the requested bound direction.
	Kind cas.BoundKind

	// MaxDivergence is the worst relative ratio deviation observed.
	MaxDivergence float64

	// Ratios are the sampled T(n)/proposed(n) values, in grid order.
	Ratios []float64

	// Notes explains the verdict.
	Notes string
}

// Verify checks the proposed bound numerically. An O-bound needs the
// ratio T/f bounded above (non-exploding), an Ω-bound bounded away from
// zero, a Θ-bound both plus ratio stability.
func (r Refiner) Verify(ctx context.Context, rec recurrence.Recurrence, proposed expr.Expr, kind cas.BoundKind) (Verification, error) {
	if err := cancelledErr(ctx); err != nil {
		return Verification{}, err
	}

	smp, err := newSampler(rec)
	if err != nil {
		return Verification{}, err
	}

	v := variableOf(rec)
	_, grid := sampleGrids(expr.Classify(proposed, v))

	// 1) Sample the ratio across the large-n grid.
	ratios := make([]float64, 0, len(grid))
	for _, n := range grid {
		tn, sampleErr := smp.eval(n)
		if sampleErr != nil {
			continue
		}
		fn, boundErr := boundAt(proposed, v, n)
		if boundErr != nil {
			continue
		}
		ratios = append(ratios, math.Abs(tn)/fn)
	}
	if len(ratios) < 3 {
		return Verification{Kind: kind, Notes: "insufficient samples for a verdict"}, nil
	}

	// 2) Trend and spread.
	med := median(ratios)
	maxDev := 0.0
	for _, ratio := range ratios {
		dev := math.Abs(ratio-med) / math.Max(med, 1e-300)
		if dev > maxDev {
			maxDev = dev
		}
	}
	growing := ratios[len(ratios)-1] > ratios[0]*(1+ratioStabilityTol)
	shrinking := ratios[len(ratios)-1] < ratios[0]*(1-ratioStabilityTol)

	out := Verification{Kind: kind, MaxDivergence: maxDev, Ratios: ratios}

	// 3) Verdict per direction.
	switch kind {
	case cas.BoundO:
		out.Holds = !growing
		out.Notes = fmt.Sprintf("ratio trend %s: O-bound %s", trendWord(growing, shrinking), holdsWord(out.Holds))
	case cas.BoundOmega:
		out.Holds = !shrinking
		out.Notes = fmt.Sprintf("ratio trend %s: Ω-bound %s", trendWord(growing, shrinking), holdsWord(out.Holds))
	default:
		out.Holds = !growing && !shrinking && maxDev <= divergenceTol
		out.Notes = fmt.Sprintf("ratio spread %.1f%%: Θ-bound %s", maxDev*100, holdsWord(out.Holds))
	}

	return out, nil
}

// trendWord renders the ratio trend.
func trendWord(growing, shrinking bool) string {
	switch {
	case growing:
		return "increasing"
	case shrinking:
		return "decreasing"
	default:
		return "stable"
	}
}

// holdsWord renders a verdict.
func holdsWord(ok bool) string {
	if ok {
		return "holds"
	}

	return "rejected"
}
