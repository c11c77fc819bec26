// Package refine: slack-variable tightening. Samples the recurrence and
// the candidate bound, fits the smallest sandwich constants, and flags
// bounds whose constants spread beyond the configured ratio.
package refine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bigo/expr"
)

// tightenSlack fits c₁, c₂ with c₁·f(n) ≤ T(n) ≤ c₂·f(n) over the
// sample grid. A nil return means sampling failed (the stage is skipped,
// not fatal).
func tightenSlack(s *sampler, bound expr.Expr, v string, grid []float64, ratioMax float64) *Slack {
	c1, c2 := math.Inf(1), 0.0
	used := make([]float64, 0, len(grid))

	// 1) Probe every grid point; the ratio T(n)/f(n) pins both constants.
	for _, n := range grid {
		tn, err := s.eval(n)
		if err != nil {
			continue
		}
		fn, err := boundAt(bound, v, n)
		if err != nil {
			continue
		}
		// The bound tracks magnitude; alternating-sign homogeneous
		// solutions still grow in |T|.
		ratio := math.Abs(tn) / fn
		if ratio <= 0 {
			continue
		}
		c1 = math.Min(c1, ratio)
		c2 = math.Max(c2, ratio)
		used = append(used, n)
	}
	if len(used) == 0 || math.IsInf(c1, 1) || c2 == 0 {
		return nil
	}

	// 2) Tight iff the sandwich closes within the ratio ceiling.
	out := &Slack{C1: c1, C2: c2, Ratio: c2 / c1, Samples: used}
	out.Loose = out.Ratio >= ratioMax

	return out
}

// describeSlack renders the fit for the stage trace.
func describeSlack(s *Slack, ratioMax float64) string {
	if s == nil {
		return "slack tightening skipped: sampling failed"
	}
	if s.Loose {
		return fmt.Sprintf("c₁=%.4g, c₂=%.4g: ratio %.4g ≥ %.3g, LooseBound", s.C1, s.C2, s.Ratio, ratioMax)
	}

	return fmt.Sprintf("c₁=%.4g, c₂=%.4g: ratio %.4g, bound is tight", s.C1, s.C2, s.Ratio)
}
