// Package mutual collapses a cycle of mutually recursive relations
// (one SCC of the call graph) into a single recurrence.
//
// 🚀 Reduction rules, for a cycle M₁ → M₂ → … → Mₖ → M₁:
//
//	subtraction cycle (every step reduces by a constant rᵢ):
//	    T(n) = T(n − R) + G(n),   R = Σ rᵢ,  G = Σ workᵢ   → linear solver
//	division cycle (every step scales by bᵢ ∈ (0,1)):
//	    T(n) = T(n / B) + G(n),   B = Π 1/bᵢ               → theorem driver
//	mixed cycle:
//	    approximated by averaging: every step contributes a local shrink
//	    factor (bᵢ for a scale step, (N₀−rᵢ)/N₀ at the reference size
//	    for a subtraction step); the arithmetic mean b̄ compounds over
//	    the cycle length into T(n) = T(b̄ᵏ·n) + G(n), with reduced
//	    confidence.
//
// All members of an SCC share one asymptotic class (they differ only by
// constants), so the single reduced solution applies to every component.
//
// Non-terminating cycles (no reducing step anywhere) are rejected at
// construction by the recurrence package (ErrNonReducingCycle).
package mutual
