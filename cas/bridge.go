// Package cas: the bridge contract.
package cas

import (
	"context"
	"errors"

	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/recurrence"
)

// Sentinel errors of the bridge surface.
var (
	// ErrBridgeUnavailable reports a missing, timed-out or failed
	// bridge; callers fall back to the numerical path.
	ErrBridgeUnavailable = errors.New("cas: bridge unavailable")

	// ErrBadSyntax reports a CAS response outside the accepted grammar.
	ErrBadSyntax = errors.New("cas: response outside the accepted grammar")
)

// BoundKind selects the comparison a verification asks for.
type BoundKind int

const (
	// BoundO asks for an upper bound (O).
	BoundO BoundKind = iota

	// BoundOmega asks for a lower bound (Ω).
	BoundOmega

	// BoundTheta asks for a tight bound (Θ).
	BoundTheta
)

// String renders the bound symbol.
func (k BoundKind) String() string {
	switch k {
	case BoundO:
		return "O"
	case BoundOmega:
		return "Ω"
	default:
		return "Θ"
	}
}

// Verdict is a bridge verification answer.
type Verdict struct {
	// Holds reports whether the posed inequality was established.
	Holds bool

	// Reasoning carries the CAS's own trace, when it provides one.
	Reasoning string
}

// Bridge is the conforming contract: four operations, all taking a
// context whose deadline is the per-call budget. An expired deadline or
// any transport failure must surface as ErrBridgeUnavailable.
type Bridge interface {
	// SolveLinear asks for a closed form of T(n)=Σ cⱼ·T(n−j)+f(n) with
	// the given initial values.
	SolveLinear(ctx context.Context, coeffs []float64, initial []float64, f expr.Expr) (expr.Expr, error)

	// SolveDivideAndConquer asks for a closed form of T(n)=a·T(b·n)+f(n).
	SolveDivideAndConquer(ctx context.Context, a, b float64, f expr.Expr) (expr.Expr, error)

	// Verify poses the inductive inequality T(n) ≤ c·proposed(n) for the
	// recurrence and reports the verdict.
	Verify(ctx context.Context, proposed expr.Expr, rec recurrence.Recurrence, initial []float64) (Verdict, error)

	// CompareAsymptotic asks whether f is within the given bound of g.
	CompareAsymptotic(ctx context.Context, f, g expr.Expr, kind BoundKind) (Verdict, error)
}
