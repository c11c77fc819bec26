// Package solver is the theorem driver: it classifies a normalized
// recurrence, selects and applies the right theorem, and returns a
// tagged, explained result.
//
// 🚀 Dispatch order:
//
//	1. Master Theorem       — single-term T(n)=a·T(b·n)+f(n) that fits;
//	                          cases decided against d = log_{1/b}(a)
//	                          with the ε_min = 0.01 separation threshold.
//	2. Akra–Bazzi           — every other divide-and-conquer shape, and
//	                          Master gaps: critical exponent (akrabazzi)
//	                          plus the driving-integral table.
//	3. Linear solver        — T(n)=Σ cⱼ·T(n−j)+f(n) (package linear).
//	4. Mutual reduction     — SCC collapse (package mutual), then 1–3.
//
// The four terminal states are MasterApplied(case), AkraBazziApplied,
// LinearApplied and NotApplicable (with suggestions).
//
// ✨ Extras the driver performs on the way:
//   - Master Case 3 regularity a·f(b·n) ≤ c·f(n) via the analytical fast
//     path with a sampled fallback (regularity.go).
//   - Cross-validation: when Master applies cleanly, Akra–Bazzi runs too
//     and agreement is recorded (the refinement engine turns it into a
//     consensus confidence bonus).
//   - Progress reporting between stages and cooperative cancellation via
//     context.Context; a cancelled solve returns ErrCancelled with no
//     partial output.
//
// ⚙️ Usage:
//
//	s := solver.New(solver.DefaultOptions())
//	out, err := s.Solve(ctx, rec)
//	// out.Solution, out.Theorem, out.P, out.Confidence, out.Explanation
package solver
