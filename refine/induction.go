// Package refine: induction-style verification of the candidate bound.
//
// The numerical path is always available: base cases at small n, ratio
// stability at large n. The symbolic path poses the inductive inequality
// to the external CAS bridge when one is configured; its verdict is
// recorded next to, never instead of, the numerical one.
package refine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/bigo/cas"
	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/recurrence"
)

// bridgeTimeout is the per-call deadline of the symbolic path; expiry
// degrades to the numerical verdict.
const bridgeTimeout = 2 * time.Second

// verifyInduction runs the numerical induction and, when available, the
// symbolic one.
func verifyInduction(ctx context.Context, s *sampler, rec recurrence.Recurrence, bound expr.Expr, v string, largeN []float64, bridge cas.Bridge) *Induction {
	out := &Induction{}

	// 1) Base cases: T(n) must be finite and positive at small n.
	out.BaseCaseOK = true
	for _, n := range inductionSmallN {
		if _, err := s.eval(n); err != nil {
			out.BaseCaseOK = false
			out.Notes += fmt.Sprintf("base case at n=%g not sampleable; ", n)

			break
		}
	}

	// 2) Large-n ratio stability: T(n)/f(n) within the tolerance band
	//    around its median.
	ratios := make([]float64, 0, len(largeN))
	for _, n := range largeN {
		tn, err := s.eval(n)
		if err != nil {
			continue
		}
		fn, err := boundAt(bound, v, n)
		if err != nil {
			continue
		}
		ratios = append(ratios, math.Abs(tn)/fn)
	}
	if len(ratios) >= 3 {
		med := median(ratios)
		maxDev := 0.0
		for _, r := range ratios {
			dev := math.Abs(r-med) / math.Max(med, 1e-300)
			if dev > maxDev {
				maxDev = dev
			}
		}
		out.MaxDivergence = maxDev
		out.AsymptoticOK = maxDev <= ratioStabilityTol
		// The inductive step holds numerically when the ratio does not
		// drift upward across the grid.
		out.InductiveStepOK = ratios[len(ratios)-1] <= ratios[0]*(1+ratioStabilityTol)
		out.Notes += fmt.Sprintf("large-n ratios %.4g..%.4g (median %.4g, max dev %.1f%%); ",
			ratios[0], ratios[len(ratios)-1], med, maxDev*100)
	} else {
		out.Notes += "large-n sampling too sparse for a verdict; "
	}

	// 3) Symbolic path, bridge permitting.
	if bridge != nil {
		bctx, cancel := context.WithTimeout(ctx, bridgeTimeout)
		defer cancel()
		verdict, err := bridge.Verify(bctx, bound, rec, nil)
		if err == nil {
			holds := verdict.Holds
			out.Symbolic = &holds
			out.Notes += "symbolic verdict: " + verdict.Reasoning + "; "
		} else {
			out.Notes += "bridge unavailable, numerical verdict only; "
		}
	}

	return out
}

// median of a small positive sample.
func median(xs []float64) float64 {
	cp := make([]float64, len(xs))
	copy(cp, xs)
	sort.Float64s(cp)

	return cp[len(cp)/2]
}
