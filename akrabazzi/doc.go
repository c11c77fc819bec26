// Package akrabazzi implements the analytic core of the Akra–Bazzi
// theorem: the critical-exponent solver and the driving-integral
// evaluator.
//
// 🚀 What it computes:
//
//	For T(n) = Σᵢ aᵢ·T(bᵢ·n) + g(n), the theorem gives
//
//	    T(n) ∈ Θ( n^p · (1 + ∫₁ⁿ g(u)/u^(p+1) du) )
//
//	where p is the unique real root of F(p) = Σᵢ aᵢ·bᵢ^p − 1.
//
// ✨ Two pieces:
//   - SolveCriticalExponent — Newton's method with the analytical
//     derivative F′(p) = Σ aᵢ·bᵢ^p·ln(bᵢ). F is strictly decreasing
//     (every ln bᵢ < 0, aᵢ > 0), so the root is unique and Newton from
//     the geometric-mean seed converges in a handful of iterations.
//     Single-term recurrences skip iteration: p = log_{1/b}(a).
//   - Evaluator / TableEvaluator — a dispatch table over the
//     classification of g that produces closed forms for constants,
//     polynomials and poly-logs, special functions (incomplete gamma,
//     incomplete beta, ₂F₁, Li) for exponential and rational shapes, and
//     a SymbolicIntegral residue with a heuristic bound when nothing
//     matches. Table hits are cross-checked numerically with
//     Gauss–Legendre quadrature.
//
// ⚙️ Usage:
//
//	p, err := akrabazzi.SolveCriticalExponent(rec.Terms(), akrabazzi.DefaultOptions())
//	ev := akrabazzi.NewTableEvaluator(akrabazzi.DefaultOptions())
//	res, err := ev.Evaluate(rec.Work(), rec.Variable(), p)
//	// res.FullSolution is Θ(n^p·(1+I(n))) with confidence attached
//
// The |k − p| < EqualityTol rule (default 1e-9) is the documented
// equality threshold of the dispatch table.
package akrabazzi
