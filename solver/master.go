// Package solver: the Master Theorem case analysis.
package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/recurrence"
	"gonum.org/v1/gonum/floats/scalar"
)

// masterResult is the internal outcome of the case analysis.
type masterResult struct {
	caseTag    MasterCase
	solution   expr.Expr
	regularity *Report
	reason     string
}

// applyMaster decides the Master case for the single-term recurrence
// T(n) = a·T(b·n) + f(n) against d = log_{1/b}(a).
func (s Solver) applyMaster(rec recurrence.DivideAndConquer) masterResult {
	term := rec.Terms()[0]
	v := rec.Variable()
	f := expr.Simplify(rec.Work())
	d := math.Log(term.A) / math.Log(1/term.B)
	cls := expr.Classify(f, v.Name)

	// Non-elementary work cannot be placed against n^d: that is the gap.
	switch cls.Form {
	case expr.FormConstant, expr.FormLogarithmic, expr.FormPolynomial, expr.FormPolyLog:
		// elementary: decided below
	case expr.FormExponential, expr.FormFactorial:
		// f ∈ Ω(n^{d+ε}) trivially; only regularity is in question.
		reg := checkRegularity(term.A, term.B, f, v, s.opts.RegularityTol)
		if reg.Holds {
			return masterResult{
				caseTag:    MasterCase3,
				solution:   expr.BigO(f),
				regularity: &reg,
				reason:     fmt.Sprintf("f grows super-polynomially and is regular: T(n)=Θ(f(n)); %s", reg.Reasoning),
			}
		}

		return masterResult{caseTag: MasterGap, regularity: &reg,
			reason: "super-polynomial f without regularity: no Master case"}
	default:
		return masterResult{caseTag: MasterGap,
			reason: "work is not comparable against n^d: no Master case"}
	}

	k, j := cls.PolyDegree, cls.LogExponent

	switch {
	case scalar.EqualWithinAbs(k, d, s.opts.EpsilonMin) && j >= 0:
		// Case 2: f ∈ Θ(n^d·log^j n) → Θ(n^d·log^{j+1} n).
		return masterResult{
			caseTag: MasterCase2,
			solution: expr.Simplify(expr.PolyLog{
				K: 1, V: v, PolyDeg: d, LogExp: j + 1, Base: 2,
			}),
			reason: fmt.Sprintf("Case 2: k=%.6g matches d=%.6g (log exponent %.6g): Θ(n^%.6g·log^%.6g n)", k, d, j, d, j+1),
		}
	case k < d-s.opts.EpsilonMin:
		// Case 1: f ∈ O(n^{d−ε}) → Θ(n^d).
		return masterResult{
			caseTag:  MasterCase1,
			solution: expr.Simplify(expr.PolyLog{K: 1, V: v, PolyDeg: d, LogExp: 0, Base: 2}),
			reason:   fmt.Sprintf("Case 1: k=%.6g < d−ε=%.6g: Θ(n^%.6g)", k, d-s.opts.EpsilonMin, d),
		}
	case k > d+s.opts.EpsilonMin:
		// Case 3: f ∈ Ω(n^{d+ε}), subject to regularity.
		reg := checkRegularity(term.A, term.B, f, v, s.opts.RegularityTol)
		if reg.Holds {
			return masterResult{
				caseTag:    MasterCase3,
				solution:   expr.BigO(f),
				regularity: &reg,
				reason:     fmt.Sprintf("Case 3: k=%.6g > d+ε=%.6g and regularity holds (c=%.6g): Θ(f(n))", k, d+s.opts.EpsilonMin, reg.BestC),
			}
		}

		return masterResult{
			caseTag:    MasterGap,
			regularity: &reg,
			reason:     fmt.Sprintf("k=%.6g > d but regularity fails: gap", k),
		}
	default:
		// Inside the ε band without matching: the separation condition
		// fails on both sides.
		return masterResult{
			caseTag: MasterGap,
			reason:  fmt.Sprintf("k=%.6g within ε of d=%.6g but no case matches: gap", k, d),
		}
	}
}
