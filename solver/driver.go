// Package solver: the dispatch driver over the sealed recurrence union.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/bigo/akrabazzi"
	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/linear"
	"github.com/katalvlaran/bigo/mutual"
	"github.com/katalvlaran/bigo/progress"
	"github.com/katalvlaran/bigo/recurrence"
)

// Solver applies the right theorem to a normalized recurrence. The zero
// value is not usable; construct via New.
type Solver struct {
	opts      Options
	evaluator akrabazzi.Evaluator
	reporter  progress.Reporter
}

// New builds a Solver with the table-driven integral evaluator and a
// no-op progress sink.
func New(opts Options) Solver {
	return Solver{
		opts:      opts,
		evaluator: akrabazzi.NewTableEvaluator(opts.Akra),
		reporter:  progress.Nop{},
	}
}

// WithEvaluator substitutes the integral evaluator (table, CAS-backed or
// special-function implementations all conform).
func (s Solver) WithEvaluator(ev akrabazzi.Evaluator) Solver {
	s.evaluator = ev

	return s
}

// WithReporter substitutes the progress sink.
func (s Solver) WithReporter(r progress.Reporter) Solver {
	s.reporter = progress.OrNop(r)

	return s
}

// Solve dispatches on the recurrence shape. Cancellations surface as
// ErrCancelled with no partial output; an unknown shape outside the
// sealed union is an internal invariant violation.
func (s Solver) Solve(ctx context.Context, rec recurrence.Recurrence) (Output, error) {
	if err := s.opts.Validate(); err != nil {
		return Output{}, err
	}
	if err := cancelled(ctx); err != nil {
		return Output{}, err
	}
	s.reporter.RecurrenceDetected(rec.Describe())

	var out Output
	var err error
	switch r := rec.(type) {
	case recurrence.DivideAndConquer:
		out, err = s.solveDivideAndConquer(ctx, r)
	case recurrence.Linear:
		out, err = s.solveLinear(ctx, r)
	case recurrence.Mutual:
		out, err = s.solveMutual(ctx, r)
	default:
		return Output{}, ErrUnknownShape
	}
	if err != nil {
		return Output{}, err
	}

	if out.Solution != nil {
		s.reporter.RecurrenceSolved(rec.Describe(), out.Solution.String())
	}

	return out, nil
}

// solveDivideAndConquer runs the Master → Akra–Bazzi ladder.
func (s Solver) solveDivideAndConquer(ctx context.Context, rec recurrence.DivideAndConquer) (Output, error) {
	// 1) Master, when the shape fits.
	if rec.FitsMaster() {
		s.reporter.PhaseStarted("master")
		m := s.applyMaster(rec)
		s.reporter.PhaseCompleted("master")
		if err := cancelled(ctx); err != nil {
			return Output{}, err
		}

		if m.caseTag != MasterGap {
			out := Output{
				Solution:    m.solution,
				Theorem:     m.caseTag.String(),
				State:       StateMasterApplied,
				Case:        m.caseTag,
				P:           math.Log(rec.Terms()[0].A) / math.Log(1/rec.Terms()[0].B),
				Regularity:  m.regularity,
				Confidence:  ConfidenceMasterExact,
				Explanation: m.reason,
			}

			// Cross-validate against Akra–Bazzi; agreement feeds the
			// consensus bonus downstream.
			if ab, abErr := s.akraBazzi(ctx, rec); abErr == nil {
				out.CrossValidated = expr.CompareAsymptotic(ab.Solution, out.Solution) == expr.OrderEqual
				if !out.CrossValidated {
					out.Warnings = append(out.Warnings,
						fmt.Sprintf("Akra–Bazzi cross-check disagrees: %s vs %s", ab.Solution, out.Solution))
				}
			}

			return out, nil
		}

		// Gap: fall through with the gap reason preserved.
		out, err := s.akraBazzi(ctx, rec)
		if err != nil {
			return Output{}, err
		}
		out.Case = MasterGap
		out.Warnings = append(out.Warnings, "Master gap: "+m.reason)

		return out, nil
	}

	// 2) Multi-term or fractional-coefficient shapes go straight to
	//    Akra–Bazzi.
	return s.akraBazzi(ctx, rec)
}

// akraBazzi solves via the critical exponent and the integral table.
func (s Solver) akraBazzi(ctx context.Context, rec recurrence.DivideAndConquer) (Output, error) {
	s.reporter.PhaseStarted("akra-bazzi")
	defer s.reporter.PhaseCompleted("akra-bazzi")

	// 1) Critical exponent. Non-convergence is recoverable: the driver
	//    terminates in NotApplicable with suggestions instead of aborting.
	p, err := akrabazzi.SolveCriticalExponent(rec.Terms(), s.opts.Akra)
	if err != nil {
		if errors.Is(err, akrabazzi.ErrSolverGaveUp) {
			return Output{
				Theorem:     "NotApplicable",
				State:       StateNotApplicable,
				P:           nan(),
				Suggestions: NotApplicableSuggestions(),
				Warnings:    []string{err.Error()},
				Explanation: "the critical-exponent solver did not converge; no theorem applied",
			}, nil
		}

		return Output{}, fmt.Errorf("critical exponent: %w", err)
	}
	if err = cancelled(ctx); err != nil {
		return Output{}, err
	}

	// 2) Driving integral.
	eval, err := s.evaluator.Evaluate(rec.Work(), rec.Variable(), p)
	if err != nil {
		return Output{}, fmt.Errorf("integral evaluation: %w", err)
	}
	if err = cancelled(ctx); err != nil {
		return Output{}, err
	}

	out := Output{
		Solution:    expr.BigO(eval.FullSolution),
		Theorem:     "AkraBazzi",
		State:       StateAkraBazziApplied,
		P:           p,
		Integral:    &eval,
		Confidence:  akraBazziConfidence(eval),
		Explanation: fmt.Sprintf("critical exponent p=%.10g; %s", p, eval.Explanation),
	}
	if eval.IsSymbolic() {
		out.Warnings = append(out.Warnings, "driving integral left symbolic: confidence reduced")
	}

	return out, nil
}

// akraBazziConfidence maps the integral resolution onto the source
// weights.
func akraBazziConfidence(eval akrabazzi.Evaluation) float64 {
	switch eval.Form {
	case akrabazzi.FormClosed:
		return ConfidenceAkraBazziClosed
	case akrabazzi.FormSpecialFunction:
		return ConfidenceAkraBazziSpecial
	default:
		return ConfidenceAkraBazziSymbol
	}
}

// solveLinear delegates to the characteristic-polynomial solver.
func (s Solver) solveLinear(ctx context.Context, rec recurrence.Linear) (Output, error) {
	s.reporter.PhaseStarted("linear")
	defer s.reporter.PhaseCompleted("linear")

	sol, err := linear.Solve(rec)
	if err != nil {
		return Output{}, err
	}
	if err = cancelled(ctx); err != nil {
		return Output{}, err
	}

	return Output{
		Solution:    sol.Bound,
		Theorem:     "Linear",
		State:       StateLinearApplied,
		P:           nan(),
		Confidence:  sol.Confidence,
		Explanation: sol.Explanation,
	}, nil
}

// solveMutual reduces the SCC and re-dispatches; the reduction's own
// confidence caps the result (pure 0.85, mixed 0.65).
func (s Solver) solveMutual(ctx context.Context, sys recurrence.Mutual) (Output, error) {
	s.reporter.PhaseStarted("mutual-reduction")
	red, err := mutual.Reduce(sys)
	s.reporter.PhaseCompleted("mutual-reduction")
	if err != nil {
		return Output{}, err
	}
	if err = cancelled(ctx); err != nil {
		return Output{}, err
	}

	var out Output
	if red.IsLinear() {
		out, err = s.solveLinear(ctx, red.Linear)
	} else {
		out, err = s.solveDivideAndConquer(ctx, red.DivideAndConquer)
	}
	if err != nil {
		return Output{}, err
	}

	out.Theorem = "Mutual:" + red.Kind.String()
	out.Confidence = math.Min(out.Confidence, red.Confidence)
	out.Explanation = red.Explanation + "; " + out.Explanation
	if red.Kind == mutual.CycleMixed {
		out.Warnings = append(out.Warnings, "mixed mutual cycle approximated by averaging: confidence reduced")
	}

	return out, nil
}

// NotApplicableSuggestions are the driver's stock suggestions for
// recurrences no theorem accepts.
func NotApplicableSuggestions() []string {
	return []string{
		"try Akra–Bazzi directly, even for single-term recurrences",
		"refine g(n): simplify or bound the non-recursive work",
		"check for mutual recursion and reduce the cycle first",
	}
}

// cancelled maps a context error onto the solver taxonomy.
func cancelled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}

	return nil
}
