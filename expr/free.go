// Package expr: free variables and capture-free substitution.
//
// The algebra has no binder except the integration variable of a
// SymbolicIntegral: inside it, occurrences of the integration variable are
// bound and substitution must not touch them. Everything else is free.
package expr

// FreeVars returns the set of variable names free in e.
func FreeVars(e Expr) map[string]struct{} {
	out := make(map[string]struct{})
	collectFree(e, out)

	return out
}

// collectFree accumulates free variable names of e into out.
func collectFree(e Expr, out map[string]struct{}) {
	switch x := e.(type) {
	case Constant:
		// no variables
	case Var:
		out[x.Name] = struct{}{}
	case Linear:
		out[x.V.Name] = struct{}{}
	case Polynomial:
		if len(x.Terms) > 0 {
			out[x.V.Name] = struct{}{}
		}
	case Logarithmic:
		out[x.V.Name] = struct{}{}
	case PolyLog:
		out[x.V.Name] = struct{}{}
	case Exponential:
		out[x.V.Name] = struct{}{}
	case Factorial:
		out[x.V.Name] = struct{}{}
	case Power:
		collectFree(x.Base, out)
	case LogOf:
		collectFree(x.Arg, out)
	case ExpOf:
		collectFree(x.Arg, out)
	case FactOf:
		collectFree(x.Arg, out)
	case BinOp:
		collectFree(x.L, out)
		collectFree(x.R, out)
	case Conditional:
		collectFree(x.T, out)
		collectFree(x.F, out)
	case Special:
		if x.Kind == SymbolicIntegral {
			// Integration variable is bound inside the integrand; bounds
			// and the recorded asymptotic bound are ordinary expressions.
			inner := make(map[string]struct{})
			collectFree(x.Args[0], inner)
			delete(inner, x.V.Name)
			for name := range inner {
				out[name] = struct{}{}
			}
			collectFree(x.Args[1], out)
			collectFree(x.Args[2], out)
			if x.Bound != nil {
				collectFree(x.Bound, out)
			}

			return
		}
		for _, a := range x.Args {
			collectFree(a, out)
		}
		if x.Bound != nil {
			collectFree(x.Bound, out)
		}
	case Probabilistic:
		collectFree(x.Expected, out)
		collectFree(x.Worst, out)
		for _, opt := range []Expr{x.Best, x.Variance, x.HighProb} {
			if opt != nil {
				collectFree(opt, out)
			}
		}
	case Amortized:
		collectFree(x.Amortized, out)
		collectFree(x.WorstCase, out)
		if x.Potential != nil {
			collectFree(x.Potential, out)
		}
	}
}

// Substitute replaces every free occurrence of variable name v in e by
// repl, capture-free. Leaves whose variable slot is a Var (Linear,
// Polynomial, ...) are rewritten into the lifted form when repl is not
// itself a Var: e.g. Logarithmic(k, v, b)[v := f] becomes k·LogOf(f, b).
func Substitute(e Expr, v string, repl Expr) Expr {
	switch x := e.(type) {
	case Constant:
		return x
	case Var:
		if x.Name == v {
			return repl
		}

		return x
	case Linear:
		if x.V.Name != v {
			return x
		}
		if rv, ok := repl.(Var); ok {
			return Linear{K: x.K, V: rv}
		}

		return BinOp{L: Constant{K: x.K}, Op: Mul, R: repl}
	case Polynomial:
		if x.V.Name != v {
			return x
		}
		if rv, ok := repl.(Var); ok {
			return Polynomial{V: rv, Terms: copyTerms(x.Terms)}
		}
		// Rebuild as Σ coef·repl^deg.
		var acc Expr = Constant{K: 0}
		for _, t := range x.Terms {
			term := Expr(BinOp{L: Constant{K: t.Coef}, Op: Mul, R: Power{Base: repl, Exp: float64(t.Deg)}})
			acc = BinOp{L: acc, Op: Plus, R: term}
		}

		return acc
	case Logarithmic:
		if x.V.Name != v {
			return x
		}
		if rv, ok := repl.(Var); ok {
			return Logarithmic{K: x.K, V: rv, Base: x.Base}
		}

		return BinOp{L: Constant{K: x.K}, Op: Mul, R: LogOf{Arg: repl, Base: x.Base}}
	case PolyLog:
		if x.V.Name != v {
			return x
		}
		if rv, ok := repl.(Var); ok {
			return PolyLog{K: x.K, V: rv, PolyDeg: x.PolyDeg, LogExp: x.LogExp, Base: x.Base}
		}
		poly := Expr(Power{Base: repl, Exp: x.PolyDeg})
		lg := Expr(Power{Base: LogOf{Arg: repl, Base: x.Base}, Exp: x.LogExp})

		return Product(Constant{K: x.K}, poly, lg)
	case Exponential:
		if x.V.Name != v {
			return x
		}
		if rv, ok := repl.(Var); ok {
			return Exponential{Base: x.Base, V: rv, K: x.K}
		}

		return BinOp{L: Constant{K: x.K}, Op: Mul, R: ExpOf{Base: x.Base, Arg: repl}}
	case Factorial:
		if x.V.Name != v {
			return x
		}
		if rv, ok := repl.(Var); ok {
			return Factorial{V: rv, K: x.K}
		}

		return BinOp{L: Constant{K: x.K}, Op: Mul, R: FactOf{Arg: repl}}
	case Power:
		return Power{Base: Substitute(x.Base, v, repl), Exp: x.Exp}
	case LogOf:
		return LogOf{Arg: Substitute(x.Arg, v, repl), Base: x.Base}
	case ExpOf:
		return ExpOf{Base: x.Base, Arg: Substitute(x.Arg, v, repl)}
	case FactOf:
		return FactOf{Arg: Substitute(x.Arg, v, repl)}
	case BinOp:
		return BinOp{L: Substitute(x.L, v, repl), Op: x.Op, R: Substitute(x.R, v, repl)}
	case Conditional:
		return Conditional{Label: x.Label, T: Substitute(x.T, v, repl), F: Substitute(x.F, v, repl)}
	case Special:
		if x.Kind == SymbolicIntegral && x.V.Name == v {
			// v is bound inside the integrand; only bounds and the
			// recorded bound see the substitution.
			return Special{
				Kind: x.Kind,
				Args: []Expr{
					x.Args[0],
					Substitute(x.Args[1], v, repl),
					Substitute(x.Args[2], v, repl),
				},
				V:     x.V,
				Bound: substituteOrNil(x.Bound, v, repl),
			}
		}
		if x.Kind == SymbolicIntegral && len(x.Args) == 3 {
			// Rename a bound variable that repl mentions, avoiding capture.
			replFree, bodyFree := FreeVars(repl), FreeVars(x.Args[0])
			if _, clash := replFree[x.V.Name]; clash {
				fresh := x.V
				for taken := true; taken; {
					fresh.Name += "'"
					_, inRepl := replFree[fresh.Name]
					_, inBody := bodyFree[fresh.Name]
					taken = inRepl || inBody || fresh.Name == v
				}
				x.Args = []Expr{Substitute(x.Args[0], x.V.Name, fresh), x.Args[1], x.Args[2]}
				x.V = fresh
			}
		}
		args := make([]Expr, len(x.Args))
		for i, a := range x.Args {
			args[i] = Substitute(a, v, repl)
		}

		return Special{Kind: x.Kind, Args: args, V: x.V, Bound: substituteOrNil(x.Bound, v, repl)}
	case Probabilistic:
		return Probabilistic{
			Expected:     Substitute(x.Expected, v, repl),
			Worst:        Substitute(x.Worst, v, repl),
			Best:         substituteOrNil(x.Best, v, repl),
			Source:       x.Source,
			Distribution: x.Distribution,
			Variance:     substituteOrNil(x.Variance, v, repl),
			HighProb:     substituteOrNil(x.HighProb, v, repl),
			Assumptions:  x.Assumptions,
		}
	case Amortized:
		return Amortized{
			Amortized: Substitute(x.Amortized, v, repl),
			WorstCase: Substitute(x.WorstCase, v, repl),
			Method:    x.Method,
			Potential: substituteOrNil(x.Potential, v, repl),
		}
	default:
		return e
	}
}

// substituteOrNil extends Substitute to optional subexpressions.
func substituteOrNil(e Expr, v string, repl Expr) Expr {
	if e == nil {
		return nil
	}

	return Substitute(e, v, repl)
}

// copyTerms clones a polynomial term slice.
func copyTerms(ts []PolyTerm) []PolyTerm {
	cp := make([]PolyTerm, len(ts))
	copy(cp, ts)

	return cp
}
