// Package recurrence: sentinel errors and the recurrence value types.
// All construction goes through the New* functions in construct.go; the
// structs here are immutable after that and safe to share.
package recurrence

import (
	"errors"

	"github.com/katalvlaran/bigo/expr"
)

// Sentinel errors for recurrence construction (the rejectable taxonomy).
var (
	// ErrZeroCoefficient indicates a term coefficient a ≤ 0 or a linear
	// coefficient list whose entries are all zero.
	ErrZeroCoefficient = errors.New("recurrence: coefficient must be positive")

	// ErrScaleOutOfRange indicates a scale factor b outside (0,1).
	ErrScaleOutOfRange = errors.New("recurrence: scale must lie strictly in (0,1)")

	// ErrEmptyRecurrence indicates a recurrence with no recursive terms.
	ErrEmptyRecurrence = errors.New("recurrence: at least one recursive term required")

	// ErrInconsistentVariable indicates g(n) or the base case mentions a
	// variable other than the declared recurrence variable.
	ErrInconsistentVariable = errors.New("recurrence: work expression uses an undeclared variable")

	// ErrDivergentBase indicates a zero base case together with zero
	// work, where every unrolling of the homogeneous part is zero.
	ErrDivergentBase = errors.New("recurrence: zero base case with non-zero homogeneous part")

	// ErrNonReducingCycle indicates a mutual cycle with no reduction step
	// anywhere; such a system never terminates.
	ErrNonReducingCycle = errors.New("recurrence: mutual cycle has no reducing step")

	// ErrBadReduction indicates a mutual component whose reduction
	// descriptor is a negative subtraction, a scale outside (0,1], or of
	// unknown kind.
	ErrBadReduction = errors.New("recurrence: invalid reduction descriptor")
)

// Term is one recursive call of a divide-and-conquer recurrence:
// coefficient A > 0 occurrences of T(B·n), 0 < B < 1.
type Term struct {
	A float64
	B float64
}

// DivideAndConquer is the normalized T(n) = Σᵢ Aᵢ·T(Bᵢ·n) + G(n) with a
// base-case expression. Terms keep their construction order.
type DivideAndConquer struct {
	terms []Term
	g     expr.Expr
	base  expr.Expr
	v     expr.Var
}

// Terms returns a copy of the recursive terms in order.
func (r DivideAndConquer) Terms() []Term {
	cp := make([]Term, len(r.terms))
	copy(cp, r.terms)

	return cp
}

// Work returns the non-recursive work expression g(n).
func (r DivideAndConquer) Work() expr.Expr { return r.g }

// Base returns the base-case expression.
func (r DivideAndConquer) Base() expr.Expr { return r.base }

// Variable returns the recurrence variable.
func (r DivideAndConquer) Variable() expr.Var { return r.v }

// FitsMaster reports the Master Theorem shape: exactly one term with
// a ≥ 1 and 1/b > 1.
func (r DivideAndConquer) FitsMaster() bool {
	return len(r.terms) == 1 && r.terms[0].A >= 1 && 1/r.terms[0].B > 1
}

// FitsAkraBazzi reports the Akra–Bazzi shape: at least one term, every
// aᵢ > 0 and every bᵢ ∈ (0,1). Construction already guarantees this, so
// any well-formed divide-and-conquer recurrence fits.
func (r DivideAndConquer) FitsAkraBazzi() bool {
	return len(r.terms) >= 1
}

// Linear is the normalized T(n) = Σⱼ Cⱼ·T(n−j) + F(n); Coeffs()[j-1] is
// the coefficient of T(n−j).
type Linear struct {
	coeffs []float64
	f      expr.Expr
	base   expr.Expr
	v      expr.Var
}

// Coeffs returns a copy of [c₁, …, cₖ].
func (r Linear) Coeffs() []float64 {
	cp := make([]float64, len(r.coeffs))
	copy(cp, r.coeffs)

	return cp
}

// Order returns k, the depth of the recurrence.
func (r Linear) Order() int { return len(r.coeffs) }

// Work returns the non-recursive work expression f(n).
func (r Linear) Work() expr.Expr { return r.f }

// Base returns the base-case expression.
func (r Linear) Base() expr.Expr { return r.base }

// Variable returns the recurrence variable.
func (r Linear) Variable() expr.Var { return r.v }

// IsLinear reports the linear predicate; true for every well-formed
// Linear value (k ≥ 1 is enforced at construction).
func (r Linear) IsLinear() bool { return len(r.coeffs) >= 1 }

// ReductionKind discriminates a mutual component's step descriptor.
type ReductionKind int

const (
	// ReduceBySubtraction is a step T(n) → callee(n − R).
	ReduceBySubtraction ReductionKind = iota

	// ReduceByScale is a step T(n) → callee(B·n).
	ReduceByScale
)

// Reduction describes how one mutual component shrinks its argument
// before calling the next component in the cycle.
type Reduction struct {
	Kind ReductionKind
	// R is the subtraction amount (Kind == ReduceBySubtraction).
	R int
	// B is the scale factor in (0,1) (Kind == ReduceByScale).
	B float64
}

// Component is one member of a mutual cycle: its name, its own
// non-recursive work, and the reduction applied on the call to the next
// component.
type Component struct {
	Name string
	Work expr.Expr
	Step Reduction
}

// Mutual is an ordered cycle of mutually recursive components
// M₁ → M₂ → … → Mₖ → M₁ over one recurrence variable. Every component
// knows its (single) callee: the next component in cycle order.
type Mutual struct {
	components []Component
	v          expr.Var
}

// Components returns a copy of the cycle in order.
func (m Mutual) Components() []Component {
	cp := make([]Component, len(m.components))
	copy(cp, m.components)

	return cp
}

// Variable returns the recurrence variable shared by the cycle.
func (m Mutual) Variable() expr.Var { return m.v }

// IsMutual reports the mutual predicate; true for every well-formed
// system (cycles of length ≥ 1 are enforced at construction).
func (m Mutual) IsMutual() bool { return len(m.components) >= 1 }
