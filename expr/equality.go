// Package expr: structural equality. Equal is the AST identity relation:
// two expressions are the same node iff they have identical shape and
// identical scalar payloads. No tolerance is applied — canonicalization
// (simplify.go) is responsible for folding near-duplicates first.
package expr

// Equal reports deep structural equality of a and b.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case Constant:
		y, ok := b.(Constant)

		return ok && x.K == y.K
	case Var:
		y, ok := b.(Var)

		return ok && x.Name == y.Name && x.Kind == y.Kind
	case Linear:
		y, ok := b.(Linear)

		return ok && x.K == y.K && x.V == y.V
	case Polynomial:
		y, ok := b.(Polynomial)
		if !ok || x.V != y.V || len(x.Terms) != len(y.Terms) {
			return false
		}
		for i := range x.Terms {
			if x.Terms[i] != y.Terms[i] {
				return false
			}
		}

		return true
	case Logarithmic:
		y, ok := b.(Logarithmic)

		return ok && x == y
	case PolyLog:
		y, ok := b.(PolyLog)

		return ok && x == y
	case Exponential:
		y, ok := b.(Exponential)

		return ok && x == y
	case Factorial:
		y, ok := b.(Factorial)

		return ok && x == y
	case Power:
		y, ok := b.(Power)

		return ok && x.Exp == y.Exp && Equal(x.Base, y.Base)
	case LogOf:
		y, ok := b.(LogOf)

		return ok && x.Base == y.Base && Equal(x.Arg, y.Arg)
	case ExpOf:
		y, ok := b.(ExpOf)

		return ok && x.Base == y.Base && Equal(x.Arg, y.Arg)
	case FactOf:
		y, ok := b.(FactOf)

		return ok && Equal(x.Arg, y.Arg)
	case BinOp:
		y, ok := b.(BinOp)

		return ok && x.Op == y.Op && Equal(x.L, y.L) && Equal(x.R, y.R)
	case Conditional:
		y, ok := b.(Conditional)

		return ok && x.Label == y.Label && Equal(x.T, y.T) && Equal(x.F, y.F)
	case Special:
		y, ok := b.(Special)
		if !ok || x.Kind != y.Kind || x.V != y.V || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}

		return equalOrNil(x.Bound, y.Bound)
	case Probabilistic:
		y, ok := b.(Probabilistic)
		if !ok || x.Source != y.Source || x.Distribution != y.Distribution {
			return false
		}
		if len(x.Assumptions) != len(y.Assumptions) {
			return false
		}
		for i := range x.Assumptions {
			if x.Assumptions[i] != y.Assumptions[i] {
				return false
			}
		}

		return Equal(x.Expected, y.Expected) && Equal(x.Worst, y.Worst) &&
			equalOrNil(x.Best, y.Best) && equalOrNil(x.Variance, y.Variance) &&
			equalOrNil(x.HighProb, y.HighProb)
	case Amortized:
		y, ok := b.(Amortized)

		return ok && x.Method == y.Method &&
			Equal(x.Amortized, y.Amortized) && Equal(x.WorstCase, y.WorstCase) &&
			equalOrNil(x.Potential, y.Potential)
	default:
		return false
	}
}

// equalOrNil extends Equal to optional subexpressions.
func equalOrNil(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return Equal(a, b)
}
