// Package expr: normalization into Big-O canonical form. Two passes that
// compose with Simplify: DropConstantFactors erases multiplicative
// constants (Θ(3n log n) → Θ(n log n)), DropLowerOrderTerms keeps only
// the maxima of a sum under the asymptotic order (n² + n → n²). Both are
// class-preserving by construction.
package expr

// DropConstantFactors returns e with every multiplicative constant
// coefficient replaced by 1. Additive constant terms become Constant(1)
// (the Θ(1) representative), and are then subject to lower-order-term
// dropping by the caller.
func DropConstantFactors(e Expr) Expr {
	switch x := e.(type) {
	case Constant:
		if x.K == 0 {
			return x
		}

		return Constant{K: 1}
	case Var:
		return x
	case Linear:
		return Linear{K: 1, V: x.V}
	case Polynomial:
		terms := make([]PolyTerm, len(x.Terms))
		for i, t := range x.Terms {
			terms[i] = PolyTerm{Deg: t.Deg, Coef: 1}
		}

		return Polynomial{V: x.V, Terms: terms}
	case Logarithmic:
		return Logarithmic{K: 1, V: x.V, Base: x.Base}
	case PolyLog:
		return PolyLog{K: 1, V: x.V, PolyDeg: x.PolyDeg, LogExp: x.LogExp, Base: x.Base}
	case Exponential:
		return Exponential{Base: x.Base, V: x.V, K: 1}
	case Factorial:
		return Factorial{V: x.V, K: 1}
	case Power:
		return Power{Base: DropConstantFactors(x.Base), Exp: x.Exp}
	case LogOf:
		return LogOf{Arg: DropConstantFactors(x.Arg), Base: x.Base}
	case ExpOf:
		return ExpOf{Base: x.Base, Arg: DropConstantFactors(x.Arg)}
	case FactOf:
		return FactOf{Arg: DropConstantFactors(x.Arg)}
	case BinOp:
		if x.Op == Mul {
			// Constants vanish from products entirely.
			if c, ok := x.L.(Constant); ok && c.K != 0 {
				return DropConstantFactors(x.R)
			}
			if c, ok := x.R.(Constant); ok && c.K != 0 {
				return DropConstantFactors(x.L)
			}
		}

		return BinOp{L: DropConstantFactors(x.L), Op: x.Op, R: DropConstantFactors(x.R)}
	case Conditional:
		return Conditional{Label: x.Label, T: DropConstantFactors(x.T), F: DropConstantFactors(x.F)}
	case Special:
		if x.Bound == nil {
			return x
		}

		return Special{Kind: x.Kind, Args: x.Args, V: x.V, Bound: DropConstantFactors(x.Bound)}
	case Probabilistic:
		return Probabilistic{
			Expected:     DropConstantFactors(x.Expected),
			Worst:        DropConstantFactors(x.Worst),
			Best:         dropConstOrNil(x.Best),
			Source:       x.Source,
			Distribution: x.Distribution,
			Variance:     x.Variance,
			HighProb:     x.HighProb,
			Assumptions:  x.Assumptions,
		}
	case Amortized:
		return Amortized{
			Amortized: DropConstantFactors(x.Amortized),
			WorstCase: DropConstantFactors(x.WorstCase),
			Method:    x.Method,
			Potential: x.Potential,
		}
	default:
		return e
	}
}

// dropConstOrNil extends DropConstantFactors to optional subexpressions.
func dropConstOrNil(e Expr) Expr {
	if e == nil {
		return nil
	}

	return DropConstantFactors(e)
}

// DropLowerOrderTerms keeps only the asymptotic maxima of every Plus/Max
// level in e. Incomparable terms are all kept; comparable dominated terms
// are removed. Polynomials collapse to their leading term.
func DropLowerOrderTerms(e Expr) Expr {
	switch x := e.(type) {
	case Polynomial:
		if len(x.Terms) <= 1 {
			return x
		}
		lead := x.Terms[len(x.Terms)-1]

		return canonPolynomial(Polynomial{V: x.V, Terms: []PolyTerm{lead}})
	case BinOp:
		if x.Op != Plus && x.Op != Max {
			return BinOp{L: DropLowerOrderTerms(x.L), Op: x.Op, R: DropLowerOrderTerms(x.R)}
		}
		// 1) Flatten the whole Plus/Max level and normalize each term.
		var terms []Expr
		for _, t := range flattenPlus(x.L, x.R) {
			terms = append(terms, DropLowerOrderTerms(t))
		}

		// 2) Keep a term iff no other term strictly dominates it; among
		//    Θ-equal terms keep the first occurrence only.
		var kept []Expr
		for i, t := range terms {
			dominated := false
			for j, u := range terms {
				if i == j {
					continue
				}
				switch CompareAsymptotic(t, u) {
				case OrderLess:
					dominated = true
				case OrderEqual:
					if j < i {
						dominated = true
					}
				}
				if dominated {
					break
				}
			}
			if !dominated {
				kept = append(kept, t)
			}
		}

		// 3) Rebuild under the original operator.
		acc := kept[0]
		for _, t := range kept[1:] {
			acc = BinOp{L: acc, Op: x.Op, R: t}
		}

		return acc
	case Conditional:
		return Conditional{Label: x.Label, T: DropLowerOrderTerms(x.T), F: DropLowerOrderTerms(x.F)}
	default:
		return e
	}
}

// BigO returns the Big-O canonical form of e: simplified, constants
// dropped, lower-order terms dropped, simplified again. This is the shape
// solutions are reported in.
func BigO(e Expr) Expr {
	return Simplify(DropLowerOrderTerms(DropConstantFactors(Simplify(e))))
}
