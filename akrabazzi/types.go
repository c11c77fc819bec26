// Package akrabazzi: options, sentinel errors and result records shared
// by the critical-exponent solver and the integral evaluator.
package akrabazzi

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/bigo/expr"
)

// Defaults — single source of truth for solver and evaluator behavior.
const (
	// DefaultTolerance is the residual |F(p)| at which Newton stops.
	DefaultTolerance = 1e-10

	// DefaultMaxIterations bounds the Newton loop.
	DefaultMaxIterations = 100

	// DefaultEqualityTol is the |k−p| threshold below which the dispatch
	// table treats the work exponent as equal to the critical exponent.
	DefaultEqualityTol = 1e-9
)

// Sentinel errors.
var (
	// ErrBadOptions indicates a non-positive tolerance or iteration budget.
	ErrBadOptions = errors.New("akrabazzi: invalid options")

	// ErrNoTerms indicates an empty term list.
	ErrNoTerms = errors.New("akrabazzi: no recurrence terms")

	// ErrBadTerm indicates a ≤ 0 or b outside (0,1).
	ErrBadTerm = errors.New("akrabazzi: term out of range")

	// ErrSolverGaveUp indicates Newton failed to converge within the
	// iteration budget. Wrapped by a GaveUpError carrying diagnostics.
	ErrSolverGaveUp = errors.New("akrabazzi: critical-exponent solver gave up")
)

// GaveUpError carries non-convergence diagnostics; it unwraps to
// ErrSolverGaveUp for errors.Is matching.
type GaveUpError struct {
	Iterations int
	LastP      float64
	Residual   float64
}

// Error implements the error interface.
func (e *GaveUpError) Error() string {
	return fmt.Sprintf("akrabazzi: no convergence after %d iterations (p=%g, |F(p)|=%g)",
		e.Iterations, e.LastP, e.Residual)
}

// Unwrap ties the diagnostics to the sentinel.
func (e *GaveUpError) Unwrap() error { return ErrSolverGaveUp }

// Options configures the critical-exponent solver.
//
//	Tolerance     - residual threshold for convergence (> 0).
//	MaxIterations - Newton iteration budget (≥ 1).
//	EqualityTol   - |k−p| equality rule used by the dispatch table.
type Options struct {
	Tolerance     float64
	MaxIterations int
	EqualityTol   float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		EqualityTol:   DefaultEqualityTol,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.Tolerance <= 0 || o.MaxIterations < 1 || o.EqualityTol <= 0 {
		return ErrBadOptions
	}

	return nil
}

// IntegralForm tags how the driving integral was resolved.
type IntegralForm int

const (
	// FormClosed is a table hit with an elementary closed form.
	FormClosed IntegralForm = iota

	// FormSpecialFunction is a known special-function asymptotic.
	FormSpecialFunction

	// FormSymbolic is an unevaluated residue with a heuristic bound.
	FormSymbolic
)

// String renders the form tag for result records.
func (f IntegralForm) String() string {
	switch f {
	case FormClosed:
		return "closed"
	case FormSpecialFunction:
		return "special"
	default:
		return "symbolic"
	}
}

// Evaluation is the record every integral evaluation returns.
type Evaluation struct {
	// Success is false only when even the symbolic fallback failed.
	Success bool

	// IntegralTerm is Θ(1 + I(n)) — the factor next to n^p.
	IntegralTerm expr.Expr

	// FullSolution is Θ(n^p · (1 + I(n))) simplified.
	FullSolution expr.Expr

	// Explanation is the human-readable derivation of the table row.
	Explanation string

	// Confidence ∈ [0,1]: 1.0 table hit, 0.8–0.9 special function,
	// 0.5–0.7 symbolic residue.
	Confidence float64

	// Form tags the resolution path; IsSymbolic is Form == FormSymbolic.
	Form IntegralForm

	// SpecialFunction names the special function used, when any.
	SpecialFunction string
}

// IsSymbolic reports whether the result carries an unevaluated residue.
func (e Evaluation) IsSymbolic() bool { return e.Form == FormSymbolic }

// Evaluator is the pluggable integral-evaluation contract. Table-driven,
// CAS-backed and special-function implementations all conform.
type Evaluator interface {
	// Evaluate resolves ∫₁ⁿ g(u)/u^(p+1) du for the given critical
	// exponent and combines it into the full Akra–Bazzi solution.
	Evaluate(g expr.Expr, v expr.Var, p float64) (Evaluation, error)
}
