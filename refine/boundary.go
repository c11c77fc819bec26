// Package refine: boundary detection. A solution is "near a boundary"
// when the quantity deciding its theorem case sits within NearThreshold
// of a critical value — the regime where a closed form may be off by a
// log factor and deserves perturbation analysis.
package refine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/solver"
)

// detectBoundaries flags the boundary regimes of a raw solution.
func detectBoundaries(out solver.Output, v string, threshold float64) ([]BoundaryFlag, string) {
	var flags []BoundaryFlag
	notes := ""

	// 1) A Master gap is a boundary by definition.
	if out.Case == solver.MasterGap {
		flags = append(flags, FlagMasterGap)
		notes += "Master separation condition failed; "
	}

	// 2) Critical exponent near an integer: the k=p equality rule of the
	//    integral table is within reach of perturbations of g.
	if !math.IsNaN(out.P) && nearInteger(out.P, threshold) {
		flags = append(flags, FlagNearIntegerP)
		notes += fmt.Sprintf("critical exponent %.6g is within %.2g of an integer; ", out.P, threshold)
	}

	// 3) Log exponent of the solution near an integer (non-integer log
	//    powers arise from perturbed boundaries).
	if out.Solution != nil {
		cls := expr.Classify(out.Solution, v)
		if cls.LogExponent != 0 && !isInteger(cls.LogExponent) && nearInteger(cls.LogExponent, threshold) {
			flags = append(flags, FlagNearIntegerLogExp)
			notes += fmt.Sprintf("log exponent %.6g is near an integer; ", cls.LogExponent)
		}
	}

	if len(flags) == 0 {
		notes = "no boundary regime detected"
	}

	return flags, notes
}

// nearInteger reports |x − round(x)| < threshold with x not already an
// exact integer beyond tolerance.
func nearInteger(x, threshold float64) bool {
	dist := math.Abs(x - math.Round(x))

	return dist > 1e-12 && dist < threshold
}

// isInteger reports an exact integer within the numeric policy.
func isInteger(x float64) bool {
	return math.Abs(x-math.Round(x)) <= 1e-12
}
