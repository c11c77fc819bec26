// Package bigo infers the asymptotic time complexity of recursive
// algorithmic recurrences and refines the result toward a tight,
// verified bound.
//
// 🚀 What is bigo?
//
//	Give it T(n) = Σᵢ aᵢ·T(bᵢ·n) + g(n) (divide-and-conquer) or
//	T(n) = Σⱼ cⱼ·T(n−j) + f(n) (linear) — or a whole cycle of mutually
//	recursive relations — and it returns a closed-form asymptotic bound
//	(Big-Θ where possible, Big-O otherwise), a confidence score and a
//	human-readable derivation trace.
//
// ✨ The pipeline:
//
//	raw recurrence → recurrence (normalize) → solver (classify & apply
//	Master / Akra–Bazzi / characteristic polynomial / mutual reduction)
//	→ refine (boundary detection, perturbation, slack tightening,
//	induction verification, confidence) → annotated result
//
// Everything is organized under flat topic packages:
//
//	expr/       — the complexity-expression algebra (the value type)
//	recurrence/ — normalized recurrences and their invariants
//	akrabazzi/  — critical-exponent solver + driving-integral table
//	solver/     — theorem driver and regularity checker
//	linear/     — characteristic-polynomial solver (companion matrix)
//	mutual/     — SCC reduction of mutual recursion
//	refine/     — the refinement and verification engine
//	cas/        — optional external-CAS bridge contract + strict parser
//	progress/   — pipeline progress reporting contract
//
// ⚙️ Quick start:
//
//	n := expr.N("n")
//	rec, _ := recurrence.NewDivideAndConquer(
//	    []recurrence.Term{{A: 2, B: 0.5}}, expr.NewLinear(1, n),
//	    expr.Constant{K: 1}, n)
//	res, _ := bigo.Analyze(context.Background(), rec, bigo.DefaultOptions())
//	fmt.Println(res.Solution, res.Theorem, res.Confidence)
//	// n·log₂(n) Master:Case2 0.9…
//
// The core is pure and single-threaded: all values are immutable, no
// global state, no I/O. Concurrent callers may solve independent
// recurrences in parallel; the optional CAS bridge is the only boundary
// that performs I/O, and every long-running stage accepts a
// context.Context for cooperative cancellation.
package bigo
