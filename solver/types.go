// Package solver: options, sentinel errors, terminal states and the
// result record.
package solver

import (
	"errors"
	"math"

	"github.com/katalvlaran/bigo/akrabazzi"
	"github.com/katalvlaran/bigo/expr"
)

// Defaults — single source of truth for driver thresholds.
const (
	// DefaultEpsilonMin is the polynomial-separation threshold of the
	// Master Theorem case analysis.
	DefaultEpsilonMin = 0.01

	// DefaultRegularityTol is the margin below 1 the regularity ratio
	// must clear: holds iff r < 1 − tol.
	DefaultRegularityTol = 1e-9
)

// Source confidence weights per applied theorem (the refinement engine
// combines these with its own penalties and bonuses).
const (
	ConfidenceMasterExact      = 1.0
	ConfidenceAkraBazziClosed  = 0.95
	ConfidenceAkraBazziSpecial = 0.85
	ConfidenceAkraBazziSymbol  = 0.60
)

// Sentinel errors (the wire-stable taxonomy of the solving surface).
var (
	// ErrCancelled reports cooperative cancellation; partial results are
	// discarded.
	ErrCancelled = errors.New("solver: cancelled")

	// ErrNotApplicable reports that no theorem fits; the wrapped
	// NotApplicableError carries suggestions.
	ErrNotApplicable = errors.New("solver: no theorem applicable")

	// ErrBadOptions indicates out-of-range thresholds.
	ErrBadOptions = errors.New("solver: invalid options")

	// ErrUnknownShape indicates Solve received a recurrence type outside
	// the sealed union (an internal invariant violation).
	ErrUnknownShape = errors.New("solver: internal invariant violated: unknown recurrence shape")
)

// NotApplicableError carries the driver's suggestions; it unwraps to
// ErrNotApplicable.
type NotApplicableError struct {
	Suggestions []string
}

// Error implements the error interface.
func (e *NotApplicableError) Error() string {
	return "solver: no theorem applicable (see suggestions)"
}

// Unwrap ties the suggestions to the sentinel.
func (e *NotApplicableError) Unwrap() error { return ErrNotApplicable }

// State is the driver's terminal state.
type State int

const (
	// StateClassified is the initial (non-terminal) state.
	StateClassified State = iota

	// StateMasterApplied terminates via the Master Theorem.
	StateMasterApplied

	// StateAkraBazziApplied terminates via Akra–Bazzi.
	StateAkraBazziApplied

	// StateLinearApplied terminates via the characteristic-polynomial
	// solver.
	StateLinearApplied

	// StateNotApplicable terminates with suggestions only.
	StateNotApplicable
)

// String names the state.
func (s State) String() string {
	switch s {
	case StateClassified:
		return "Classified"
	case StateMasterApplied:
		return "MasterApplied"
	case StateAkraBazziApplied:
		return "AkraBazziApplied"
	case StateLinearApplied:
		return "LinearApplied"
	default:
		return "NotApplicable"
	}
}

// MasterCase is the Master Theorem case tag.
type MasterCase int

const (
	// MasterNone: Master was not applied.
	MasterNone MasterCase = iota

	// MasterCase1: f ∈ O(n^{d−ε}) → Θ(n^d).
	MasterCase1

	// MasterCase2: f ∈ Θ(n^d·log^k n) → Θ(n^d·log^{k+1} n).
	MasterCase2

	// MasterCase3: f ∈ Ω(n^{d+ε}) with regularity → Θ(f).
	MasterCase3

	// MasterGap: the separation condition fails; fall through to
	// Akra–Bazzi.
	MasterGap
)

// String names the case in the wire "Master:CaseN" style.
func (c MasterCase) String() string {
	switch c {
	case MasterCase1:
		return "Master:Case1"
	case MasterCase2:
		return "Master:Case2"
	case MasterCase3:
		return "Master:Case3"
	case MasterGap:
		return "Master:Gap"
	default:
		return "Master:None"
	}
}

// Options configures the driver.
//
//	EpsilonMin    - Master polynomial-separation threshold (> 0).
//	RegularityTol - regularity margin below 1 (> 0).
//	Akra          - options forwarded to the critical-exponent solver.
type Options struct {
	EpsilonMin    float64
	RegularityTol float64
	Akra          akrabazzi.Options
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		EpsilonMin:    DefaultEpsilonMin,
		RegularityTol: DefaultRegularityTol,
		Akra:          akrabazzi.DefaultOptions(),
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.EpsilonMin <= 0 || o.RegularityTol <= 0 {
		return ErrBadOptions
	}

	return o.Akra.Validate()
}

// Output is the solve result handed to the refinement engine and, via
// the JSON layer, to external callers.
type Output struct {
	// Solution is the Big-Θ bound in Big-O canonical form.
	Solution expr.Expr

	// Theorem is the wire tag: "Master:Case2", "AkraBazzi", "Linear",
	// "Mutual:subtraction", ...
	Theorem string

	// State is the terminal state of the driver's state machine.
	State State

	// Case is the Master case when State == StateMasterApplied, and
	// MasterGap when a Master gap fell through to Akra–Bazzi.
	Case MasterCase

	// P is the critical exponent (Master's d or Akra–Bazzi's root);
	// NaN when not meaningful (linear recurrences).
	P float64

	// Integral is the driving-integral record for Akra–Bazzi results.
	Integral *akrabazzi.Evaluation

	// Regularity is the Case-3 check report, when one ran.
	Regularity *Report

	// CrossValidated records Master/Akra–Bazzi agreement.
	CrossValidated bool

	// Confidence is the source weight of the applied theorem.
	Confidence float64

	// Explanation is the human-readable derivation.
	Explanation string

	// Warnings collects recoverable diagnostics (never fatal).
	Warnings []string

	// Suggestions is populated for StateNotApplicable.
	Suggestions []string
}

// nan is the not-meaningful critical exponent.
func nan() float64 { return math.NaN() }
