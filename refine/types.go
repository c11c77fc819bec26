// Package refine: options, stage records and the result type.
package refine

import (
	"errors"
	"time"

	"github.com/katalvlaran/bigo/expr"
)

// Defaults — single source of truth for the refinement thresholds.
const (
	// DefaultNearThreshold flags a quantity within this distance of a
	// critical value as a boundary case.
	DefaultNearThreshold = 0.1

	// DefaultTaylorOrder is the perturbation expansion order.
	DefaultTaylorOrder = 3

	// DefaultSlackRatioMax is the c₂/c₁ ceiling below which a bound
	// counts as tight.
	DefaultSlackRatioMax = 2.0

	// ratioStabilityTol is the relative spread of large-n ratios the
	// numerical induction accepts as "stable".
	ratioStabilityTol = 0.10

	// divergenceTol is the per-sample deviation beyond which the bound
	// is considered contradicted and confidence collapses.
	divergenceTol = 0.30

	// Penalties and caps of the confidence combiner.
	penaltyNumericalOnly = 0.05
	penaltySlackRatio    = 0.05
	penaltySymbolic      = 0.10
	slackPenaltyRatio    = 1.5
	confidenceCap        = 0.99
	confidenceBoundary   = 0.70
)

// ErrBadOptions indicates out-of-range refinement options.
var ErrBadOptions = errors.New("refine: invalid options")

// slackSamples and inductionLargeN are the documented sampling grids.
var (
	slackSamples    = []float64{10, 100, 1_000, 10_000}
	inductionSmallN = []float64{1, 2, 3, 4, 5}
	inductionLargeN = []float64{1_024, 2_048, 4_096, 8_192, 16_384}
)

// Options configures the engine.
//
//	NearThreshold - boundary flag distance (0 < t < 1).
//	TaylorOrder   - perturbation expansion order (≥ 1).
//	SlackRatioMax - c₂/c₁ tightness ceiling (> 1).
type Options struct {
	NearThreshold float64
	TaylorOrder   int
	SlackRatioMax float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		NearThreshold: DefaultNearThreshold,
		TaylorOrder:   DefaultTaylorOrder,
		SlackRatioMax: DefaultSlackRatioMax,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.NearThreshold <= 0 || o.NearThreshold >= 1 || o.TaylorOrder < 1 || o.SlackRatioMax <= 1 {
		return ErrBadOptions
	}

	return nil
}

// StageTrace is one row of the derivation trace.
type StageTrace struct {
	Stage  string
	Input  expr.Expr
	Output expr.Expr
	Took   time.Duration
	Notes  string
}

// BoundaryFlag names a detected boundary regime.
type BoundaryFlag string

// The boundary regimes the detector reports.
const (
	FlagMasterGap         BoundaryFlag = "Master-gap"
	FlagNearIntegerP      BoundaryFlag = "AkraBazzi-near-integer-p"
	FlagNearIntegerLogExp BoundaryFlag = "log-exponent-near-integer"
)

// Perturbation is the tagged Taylor-expansion record.
type Perturbation struct {
	// RefinedSolution is the candidate after expansion (unchanged when
	// the expansion only confirms the closed form).
	RefinedSolution expr.Expr

	// Terms are the Taylor coefficients in order (c₀, c₁, …).
	Terms []float64

	// RemainderBound estimates the truncation error magnitude.
	RemainderBound float64
}

// Slack is the constant-tightening record.
type Slack struct {
	// C1, C2 are the fitted constants with c₁·f(n) ≤ T(n) ≤ c₂·f(n).
	C1, C2 float64

	// Ratio is c₂/c₁; Loose marks ratio ≥ the configured ceiling.
	Ratio float64
	Loose bool

	// Samples are the probed n values.
	Samples []float64
}

// Induction is the verification record of the numerical (and, when a
// bridge is present, symbolic) induction.
type Induction struct {
	BaseCaseOK      bool
	InductiveStepOK bool
	AsymptoticOK    bool

	// MaxDivergence is the worst relative deviation of the large-n
	// ratios from their median.
	MaxDivergence float64

	// Symbolic reports whether the bridge confirmed the bound; nil when
	// no bridge ran.
	Symbolic *bool

	// Notes carries per-path diagnostics.
	Notes string
}

// Result is the engine's annotated output.
type Result struct {
	// Solution is the refined bound in Big-O canonical form.
	Solution expr.Expr

	// Confidence is the combined score in [0,1].
	Confidence float64

	// RequiresReview marks results a human should inspect (divergent
	// samples, symbolic residues in the driving integral).
	RequiresReview bool

	// Boundary, Perturbation, Slack, Induction expose the stage records;
	// pointers are nil for stages that did not run.
	Boundary     []BoundaryFlag
	Perturbation *Perturbation
	Slack        *Slack
	Induction    *Induction

	// Stages is the full ordered trace.
	Stages []StageTrace

	// Explanation summarizes the refinement for humans.
	Explanation string

	// Warnings collects recoverable diagnostics.
	Warnings []string
}
