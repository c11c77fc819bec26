// Package recurrence models the normalized recurrences the solver
// consumes: divide-and-conquer, linear, and mutual systems.
//
// 🚀 Shapes:
//
//	Divide-and-conquer:  T(n) = Σᵢ aᵢ·T(bᵢ·n) + g(n)
//	Linear:              T(n) = Σⱼ cⱼ·T(n−j) + f(n)
//	Mutual system:       a cycle M₁ → M₂ → … → Mₖ → M₁, each step either
//	                     subtracting a constant or scaling by b ∈ (0,1)
//
// ✨ Guarantees:
//   - Constructors validate well-formedness and return taxonomized
//     sentinel errors (ErrZeroCoefficient, ErrScaleOutOfRange,
//     ErrEmptyRecurrence, ErrInconsistentVariable, ErrNonReducingCycle);
//     callers never see a partially valid recurrence.
//   - Values are immutable after construction; accessors return copies.
//   - The predicates FitsMaster / FitsAkraBazzi / IsLinear / IsMutual are
//     the single classification point for theorem dispatch.
//
// ⚙️ Usage:
//
//	n := expr.N("n")
//	rec, err := recurrence.NewDivideAndConquer(
//	    []recurrence.Term{{A: 2, B: 0.5}},
//	    expr.NewLinear(1, n),        // g(n) = n
//	    expr.Constant{K: 1},         // base case
//	    n,
//	)
//	if err != nil { ... }
//	rec.FitsMaster() // true: mergesort shape
//
// The JSON wire form consumed from upstream extractors round-trips
// through EncodeJSON / DecodeDivideAndConquer / DecodeLinear.
package recurrence
