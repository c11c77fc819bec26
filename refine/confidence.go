// Package refine: the confidence combiner. Source weights come from the
// theorem driver; this stage applies the documented penalties, the
// boundary floor after perturbation, the consensus bonus, and the
// divergence collapse.
package refine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bigo/solver"
)

// combineConfidence folds the stage records into the final score and
// the review flag.
func combineConfidence(out solver.Output, boundary []BoundaryFlag, pert *Perturbation, slack *Slack, ind *Induction) (float64, bool, string) {
	conf := out.Confidence
	notes := fmt.Sprintf("source weight %.2f (%s)", conf, out.Theorem)
	review := false

	// 1) Consensus bonus: two independent agreeing analyses compound as
	//    1 − (1−c₁)(1−c₂), capped.
	if out.CrossValidated {
		conf = 1 - (1-conf)*(1-solver.ConfidenceAkraBazziClosed)
		if conf > confidenceCap {
			conf = confidenceCap
		}
		notes += fmt.Sprintf("; Master/Akra–Bazzi consensus bonus → %.3g", conf)
	}

	// 2) Boundary regimes that survived perturbation analysis settle at
	//    the documented 0.70 weight — never higher on a gap.
	if len(boundary) > 0 && pert != nil {
		if conf > confidenceBoundary {
			conf = confidenceBoundary
			notes += "; boundary case after perturbation: capped at 0.70"
		} else if conf < confidenceBoundary {
			conf = confidenceBoundary
			notes += "; perturbation supports the bound: raised to 0.70"
		}
	}

	// 3) Penalties.
	if ind != nil && ind.Symbolic == nil {
		conf -= penaltyNumericalOnly
		notes += "; numerical induction only −0.05"
	}
	if slack != nil && slack.Ratio > slackPenaltyRatio {
		conf -= penaltySlackRatio
		notes += fmt.Sprintf("; slack ratio %.3g > 1.5 −0.05", slack.Ratio)
	}
	if out.Integral != nil && out.Integral.IsSymbolic() {
		conf -= penaltySymbolic
		notes += "; symbolic residue −0.10"
		review = true
	}

	// 4) Divergence collapse: contradicted samples force review.
	if ind != nil && ind.MaxDivergence > divergenceTol {
		conf = math.Min(conf, 0.49)
		review = true
		notes += fmt.Sprintf("; samples diverge %.0f%% > 30%%: confidence collapsed, review required", ind.MaxDivergence*100)
	}
	if slack != nil && slack.Loose {
		review = review || (out.Integral != nil && out.Integral.IsSymbolic())
	}

	return clamp01(conf), review, notes
}

// clamp01 clips into [0,1].
func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
