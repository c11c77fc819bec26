// Package mutual: cycle classification and reduction.
package mutual

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/recurrence"
)

// mixedRefSize is the reference recursion size at which a subtraction
// step n → n−r reads as the local scale factor (mixedRefSize−r)/mixedRefSize
// for the mixed-cycle average.
const mixedRefSize = 1_000.0

// Confidence factors per cycle kind (pure vs mixed approximation).
const (
	ConfidencePure  = 0.85
	ConfidenceMixed = 0.65
)

// CycleKind classifies a mutual cycle by its reduction steps.
type CycleKind int

const (
	// CycleSubtraction: every step subtracts a constant.
	CycleSubtraction CycleKind = iota

	// CycleDivision: every step scales by a factor in (0,1).
	CycleDivision

	// CycleMixed: both step kinds occur; reduction is approximate.
	CycleMixed
)

// String names the cycle kind.
func (k CycleKind) String() string {
	switch k {
	case CycleSubtraction:
		return "subtraction"
	case CycleDivision:
		return "division"
	default:
		return "mixed"
	}
}

// Reduced is the collapsed form of a mutual system. Exactly one of
// Linear/DivideAndConquer is meaningful, per Kind: subtraction cycles
// reduce onto the linear solver, division and mixed cycles onto the
// theorem driver.
type Reduced struct {
	Kind             CycleKind
	Linear           recurrence.Linear
	DivideAndConquer recurrence.DivideAndConquer

	// Members lists the component names the solution applies to (every
	// member of the SCC shares the class).
	Members []string

	// Confidence is the reduction's own factor (pure 0.85, mixed 0.65);
	// the refinement engine folds it into the final score.
	Confidence float64

	// Explanation is the human-readable reduction trace.
	Explanation string
}

// IsLinear reports whether the reduction targets the linear solver.
func (r Reduced) IsLinear() bool { return r.Kind == CycleSubtraction }

// Reduce collapses sys into a single recurrence per the cycle kind.
func Reduce(sys recurrence.Mutual) (Reduced, error) {
	components := sys.Components()
	v := sys.Variable()

	// 1) Classify the cycle and accumulate totals. Every step also
	//    contributes a local shrink factor for the mixed-cycle average:
	//    a scale step contributes bᵢ directly, a subtraction step the
	//    equivalent factor (N₀−rᵢ)/N₀ at the reference size.
	subs, scales := 0, 0
	totalR := 0
	compoundInvB := 1.0
	factorSum := 0.0
	workTerms := make([]expr.Expr, 0, len(components))
	members := make([]string, 0, len(components))
	for _, c := range components {
		members = append(members, c.Name)
		if c.Work != nil {
			workTerms = append(workTerms, c.Work)
		}
		switch c.Step.Kind {
		case recurrence.ReduceBySubtraction:
			subs++
			totalR += c.Step.R
			factorSum += subtractionFactor(c.Step.R)
		case recurrence.ReduceByScale:
			scales++
			factorSum += c.Step.B
			if c.Step.B > 0 && c.Step.B < 1 {
				compoundInvB *= 1 / c.Step.B
			}
		}
	}

	kind := CycleMixed
	switch {
	case scales == 0:
		kind = CycleSubtraction
	case subs == 0:
		kind = CycleDivision
	}

	// 2) Total per-cycle work G = Σ workᵢ.
	g := expr.Simplify(expr.Sum(workTerms...))

	// 3) Emit the reduced recurrence.
	switch kind {
	case CycleSubtraction:
		// T(n) = T(n − R) + G(n): coefficient 1 at lag R.
		coeffs := make([]float64, totalR)
		coeffs[totalR-1] = 1
		lin, err := recurrence.NewLinear(coeffs, g, expr.Constant{K: 1}, v)
		if err != nil {
			return Reduced{}, fmt.Errorf("mutual: reduced linear form: %w", err)
		}

		return Reduced{
			Kind:       CycleSubtraction,
			Linear:     lin,
			Members:    members,
			Confidence: ConfidencePure,
			Explanation: fmt.Sprintf("subtraction cycle of %d components, total reduction R=%d: T(n)=T(n−%d)+G(n)",
				len(components), totalR, totalR),
		}, nil
	case CycleDivision:
		dnc, err := divisionForm(compoundInvB, g, v)
		if err != nil {
			return Reduced{}, err
		}

		return Reduced{
			Kind:             CycleDivision,
			DivideAndConquer: dnc,
			Members:          members,
			Confidence:       ConfidencePure,
			Explanation: fmt.Sprintf("division cycle of %d components, compound scale B=%.6g: T(n)=T(n/%.6g)+G(n)",
				len(components), compoundInvB, compoundInvB),
		}, nil
	default:
		// Mixed: average the per-step shrink factors (arithmetic mean of
		// the scale factors and the subtraction-equivalent factors) and
		// compound the mean over the cycle length. At least one step
		// genuinely shrinks (enforced at construction), so mean < 1 and
		// the compounded scale stays in (0,1).
		mean := factorSum / float64(len(components))
		cycleB := math.Pow(mean, float64(len(components)))
		dnc, err := divisionForm(1/cycleB, g, v)
		if err != nil {
			return Reduced{}, err
		}

		return Reduced{
			Kind:             CycleMixed,
			DivideAndConquer: dnc,
			Members:          members,
			Confidence:       ConfidenceMixed,
			Explanation: fmt.Sprintf("mixed cycle (%d subtraction, %d scaling steps): averaged per-step shrink %.6g, compound scale B=%.6g",
				subs, scales, mean, cycleB),
		}, nil
	}
}

// subtractionFactor converts a subtraction step into its equivalent
// local scale factor at the reference size, clamped away from zero for
// reductions larger than the reference itself.
func subtractionFactor(r int) float64 {
	f := (mixedRefSize - float64(r)) / mixedRefSize
	if f <= 0 {
		return 1 / mixedRefSize
	}

	return f
}

// divisionForm builds T(n) = T(n/B) + G(n) as a divide-and-conquer
// recurrence with the single term (a=1, b=1/B).
func divisionForm(invB float64, g expr.Expr, v expr.Var) (recurrence.DivideAndConquer, error) {
	dnc, err := recurrence.NewDivideAndConquer(
		[]recurrence.Term{{A: 1, B: 1 / invB}}, g, expr.Constant{K: 1}, v)
	if err != nil {
		return recurrence.DivideAndConquer{}, fmt.Errorf("mutual: reduced division form: %w", err)
	}

	return dnc, nil
}
