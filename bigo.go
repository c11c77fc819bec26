// Package bigo: the end-to-end facade. Analyze runs solve → refine and
// assembles the wire-level result record; it exists as a convenience
// over the solver and refine packages, which remain the real surface.
package bigo

import (
	"context"
	"encoding/json"

	"github.com/katalvlaran/bigo/akrabazzi"
	"github.com/katalvlaran/bigo/cas"
	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/progress"
	"github.com/katalvlaran/bigo/recurrence"
	"github.com/katalvlaran/bigo/refine"
	"github.com/katalvlaran/bigo/solver"
)

// Options bundles the per-stage configuration.
type Options struct {
	Solver solver.Options
	Refine refine.Options

	// Bridge is the optional external CAS; nil keeps every verification
	// numerical.
	Bridge cas.Bridge

	// Reporter receives pipeline events; nil means no reporting.
	Reporter progress.Reporter
}

// DefaultOptions returns the documented defaults of every stage.
func DefaultOptions() Options {
	return Options{
		Solver: solver.DefaultOptions(),
		Refine: refine.DefaultOptions(),
	}
}

// Result is the assembled analysis record external callers consume.
type Result struct {
	// Solution is the refined bound.
	Solution expr.Expr

	// Theorem is the wire tag of the applied theorem.
	Theorem string

	// P is the critical exponent when meaningful (NaN otherwise).
	P float64

	// Integral is the driving-integral record for Akra–Bazzi paths.
	Integral *akrabazzi.Evaluation

	// Confidence is the refined score in [0,1].
	Confidence float64

	// RequiresReview marks results a human should inspect.
	RequiresReview bool

	// Stages is the ordered refinement trace.
	Stages []refine.StageTrace

	// Explanation is the combined human-readable derivation.
	Explanation string

	// Warnings collects every recoverable diagnostic of both stages.
	Warnings []string
}

// Analyze solves and refines one recurrence.
func Analyze(ctx context.Context, rec recurrence.Recurrence, opts Options) (Result, error) {
	s := solver.New(opts.Solver).WithReporter(opts.Reporter)
	out, err := s.Solve(ctx, rec)
	if err != nil {
		return Result{}, err
	}

	r := refine.New(opts.Refine).WithReporter(opts.Reporter)
	if opts.Bridge != nil {
		r = r.WithBridge(opts.Bridge)
	}
	refined, err := r.Refine(ctx, rec, out)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Solution:       refined.Solution,
		Theorem:        out.Theorem,
		P:              out.P,
		Integral:       out.Integral,
		Confidence:     refined.Confidence,
		RequiresReview: refined.RequiresReview,
		Stages:         refined.Stages,
		Explanation:    refined.Explanation,
		Warnings:       refined.Warnings,
	}, nil
}

// wireResult is the JSON shape of a Result.
type wireResult struct {
	Solution       json.RawMessage `json:"solution"`
	Theorem        string          `json:"theorem"`
	P              *float64        `json:"p,omitempty"`
	Integral       *wireIntegral   `json:"integral,omitempty"`
	Confidence     float64         `json:"confidence"`
	RequiresReview bool            `json:"requiresReview"`
	Stages         []wireStage     `json:"stages"`
	Explanation    string          `json:"explanation"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// wireIntegral is the JSON shape of the integral record.
type wireIntegral struct {
	Form            string  `json:"form"`
	Confidence      float64 `json:"confidence"`
	SpecialFunction string  `json:"specialFunction,omitempty"`
	Explanation     string  `json:"explanation"`
}

// wireStage is the JSON shape of one trace row.
type wireStage struct {
	Stage  string `json:"stage"`
	TookNs int64  `json:"tookNs"`
	Notes  string `json:"notes"`
}

// EncodeJSON renders the result in the wire schema.
func (r Result) EncodeJSON() ([]byte, error) {
	var solution json.RawMessage
	if r.Solution != nil {
		data, err := expr.EncodeJSON(r.Solution)
		if err != nil {
			return nil, err
		}
		solution = data
	}

	w := wireResult{
		Solution:       solution,
		Theorem:        r.Theorem,
		Confidence:     r.Confidence,
		RequiresReview: r.RequiresReview,
		Explanation:    r.Explanation,
		Warnings:       r.Warnings,
	}
	if r.P == r.P { // NaN never equals itself
		p := r.P
		w.P = &p
	}
	if r.Integral != nil {
		w.Integral = &wireIntegral{
			Form:            r.Integral.Form.String(),
			Confidence:      r.Integral.Confidence,
			SpecialFunction: r.Integral.SpecialFunction,
			Explanation:     r.Integral.Explanation,
		}
	}
	for _, s := range r.Stages {
		w.Stages = append(w.Stages, wireStage{Stage: s.Stage, TookNs: s.Took.Nanoseconds(), Notes: s.Notes})
	}

	return json.Marshal(w)
}
