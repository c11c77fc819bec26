// Package refine: the pipeline engine. Stages run strictly in order,
// each consuming only immutable inputs and the outputs of earlier
// stages; every stage appends its trace row. Cancellation is checked
// between stages and surfaces as solver.ErrCancelled with partial
// results discarded.
package refine

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/bigo/cas"
	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/progress"
	"github.com/katalvlaran/bigo/recurrence"
	"github.com/katalvlaran/bigo/solver"
)

// Refiner owns one refinement pipeline configuration. The engine owns
// its stage list and confidence assessment; results leave by value.
type Refiner struct {
	opts     Options
	bridge   cas.Bridge
	reporter progress.Reporter
}

// New builds a Refiner without a bridge (numerical verification only).
func New(opts Options) Refiner {
	return Refiner{opts: opts, reporter: progress.Nop{}}
}

// WithBridge attaches an external CAS bridge; only confidence and the
// symbolic verification path change.
func (r Refiner) WithBridge(b cas.Bridge) Refiner {
	r.bridge = b

	return r
}

// WithReporter substitutes the progress sink.
func (r Refiner) WithReporter(rep progress.Reporter) Refiner {
	r.reporter = progress.OrNop(rep)

	return r
}

// Refine runs BoundaryDetect → Perturbation? → SlackTighten →
// InductionVerify → ConfidenceScore over a raw theorem solution.
func (r Refiner) Refine(ctx context.Context, rec recurrence.Recurrence, initial solver.Output) (Result, error) {
	if err := r.opts.Validate(); err != nil {
		return Result{}, err
	}
	if initial.Solution == nil {
		// NotApplicable input: nothing to refine.
		return Result{
			Confidence:     0,
			RequiresReview: true,
			Explanation:    "no solution to refine (theorem not applicable)",
			Warnings:       initial.Warnings,
		}, nil
	}

	v := variableOf(rec)
	out := Result{Solution: initial.Solution, Warnings: initial.Warnings}
	candidate := initial.Solution

	// 1) BoundaryDetect.
	r.reporter.PhaseStarted("BoundaryDetect")
	start := now()
	flags, note := detectBoundaries(initial, v, r.opts.NearThreshold)
	out.Boundary = flags
	out.Stages = append(out.Stages, StageTrace{
		Stage: "BoundaryDetect", Input: candidate, Output: candidate, Took: since(start), Notes: note,
	})
	r.reporter.PhaseCompleted("BoundaryDetect")
	if err := cancelledErr(ctx); err != nil {
		return Result{}, err
	}

	// 2) Perturbation, only near a boundary and only for
	//    divide-and-conquer shapes (the integral is what gets expanded).
	if len(flags) > 0 {
		if dnc, ok := rec.(recurrence.DivideAndConquer); ok && !isNaN(initial.P) {
			r.reporter.PhaseStarted("Perturbation")
			start = now()
			out.Perturbation = perturb(dnc, initial.P, candidate, r.opts.TaylorOrder, r.opts.NearThreshold)
			out.Stages = append(out.Stages, StageTrace{
				Stage: "Perturbation", Input: candidate, Output: candidate,
				Took: since(start), Notes: describePerturbation(out.Perturbation),
			})
			r.reporter.PhaseCompleted("Perturbation")
			if err := cancelledErr(ctx); err != nil {
				return Result{}, err
			}
		}
	}

	// 3) SlackVariableTighten.
	cls := expr.Classify(candidate, v)
	slackGrid, largeGrid := sampleGrids(cls)
	smp, err := newSampler(rec)
	if err == nil {
		r.reporter.PhaseStarted("SlackVariableTighten")
		start = now()
		out.Slack = tightenSlack(smp, candidate, v, slackGrid, r.opts.SlackRatioMax)
		out.Stages = append(out.Stages, StageTrace{
			Stage: "SlackVariableTighten", Input: candidate, Output: candidate,
			Took: since(start), Notes: describeSlack(out.Slack, r.opts.SlackRatioMax),
		})
		r.reporter.PhaseCompleted("SlackVariableTighten")
		if cerr := cancelledErr(ctx); cerr != nil {
			return Result{}, cerr
		}
		if out.Slack != nil && out.Slack.Loose {
			out.Warnings = append(out.Warnings, "LooseBound: sandwich constants spread beyond the ceiling; original expression kept")
		}

		// 4) InductionVerify.
		r.reporter.PhaseStarted("InductionVerify")
		start = now()
		out.Induction = verifyInduction(ctx, smp, rec, candidate, v, largeGrid, r.bridge)
		out.Stages = append(out.Stages, StageTrace{
			Stage: "InductionVerify", Input: candidate, Output: candidate,
			Took: since(start), Notes: out.Induction.Notes,
		})
		r.reporter.PhaseCompleted("InductionVerify")
		if cerr := cancelledErr(ctx); cerr != nil {
			return Result{}, cerr
		}
	} else {
		out.Warnings = append(out.Warnings, "recurrence not sampleable: slack and induction stages skipped")
	}

	// 5) ConfidenceScore.
	r.reporter.PhaseStarted("ConfidenceScore")
	start = now()
	conf, review, confNote := combineConfidence(initial, flags, out.Perturbation, out.Slack, out.Induction)
	out.Confidence = conf
	out.RequiresReview = review
	out.Stages = append(out.Stages, StageTrace{
		Stage: "ConfidenceScore", Input: candidate, Output: candidate, Took: since(start), Notes: confNote,
	})
	r.reporter.PhaseCompleted("ConfidenceScore")

	out.Explanation = fmt.Sprintf("%s; refinement: %s", initial.Explanation, confNote)
	if conf < 0.5 {
		r.reporter.Warning(progress.Warning, "low-confidence", "refined confidence below 0.5", "")
	}

	return out, nil
}

// variableOf extracts the recurrence variable name.
func variableOf(rec recurrence.Recurrence) string {
	switch r := rec.(type) {
	case recurrence.DivideAndConquer:
		return r.Variable().Name
	case recurrence.Linear:
		return r.Variable().Name
	case recurrence.Mutual:
		return r.Variable().Name
	default:
		return "n"
	}
}

// cancelledErr maps context state onto the solver taxonomy.
func cancelledErr(ctx context.Context) error {
	if ctx != nil && ctx.Err() != nil {
		return fmt.Errorf("%w: %w", solver.ErrCancelled, ctx.Err())
	}

	return nil
}

// now/since isolate the trace clock.
func now() time.Time { return time.Now() }

func since(t time.Time) time.Duration { return time.Since(t) }

// isNaN avoids importing math for one call site.
func isNaN(x float64) bool { return x != x }
