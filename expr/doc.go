// Package expr is the complexity-expression algebra: an immutable AST
// over the standard growth classes, with substitution, numeric
// evaluation, simplification, asymptotic comparison and classification
// into a canonical form.
//
// 🚀 What is expr?
//
//	The value type every other package of bigo speaks. A recurrence's
//	non-recursive work, a theorem's answer, an integral's residue — all
//	of them are expr.Expr values:
//
//	  • Leaves: Constant, Var, Linear, Polynomial, Logarithmic, PolyLog,
//	    Exponential, Factorial
//	  • Lifted functions: Power, LogOf, ExpOf, FactOf
//	  • Combinators: BinOp (Plus/Mul/Max/Min), Conditional
//	  • Escape hatches: Special (Li, γ, B, ₂F₁, symbolic integrals),
//	    Probabilistic, Amortized
//
// ✨ Guarantees:
//   - Deep immutability — every operation returns a new value; structural
//     equality (Equal) defines AST identity.
//   - Simplify is idempotent and never changes the Big-Θ class.
//   - CompareAsymptotic returns Incomparable rather than guessing.
//   - Evaluate reports unbound variables and numeric failure as errors,
//     never as silent NaN.
//
// ⚙️ Usage:
//
//	n := expr.NewVar("n", expr.KindInputSize)
//	f := expr.NewBinOp(expr.NewPolyLog(1, n, 1, 1, 2), expr.Plus, expr.NewLinear(3, n))
//	fmt.Println(expr.Simplify(f))                    // n·log₂(n) + 3·n
//	cls := expr.Classify(f, "n")                      // PolyLog, degree 1, log exponent 1
//	ord := expr.CompareAsymptotic(f, expr.NewLinear(1, n)) // Greater
//
// Worst-case convention: Conditional evaluates as the max of its branches,
// Probabilistic as its worst member, Amortized as its amortized member.
//
// See classify.go for the canonical form and compare.go for the
// lexicographic growth order.
package expr
