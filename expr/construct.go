// Package expr: validated constructors. Constructors copy every incoming
// map/slice so callers can never alias into a constructed node, and they
// normalize the representations the invariants require (sparse sorted
// polynomial terms, non-negative constants, bases > 1).
package expr

import "sort"

// NewConstant returns Constant(k). Negative k is clamped by contract at
// the call site; constructors panic on programmer error the way invalid
// option values do elsewhere in this module.
func NewConstant(k float64) Constant {
	if k < 0 {
		panic(ErrBadConstant)
	}

	return Constant{K: k}
}

// NewVar returns a named symbol of the given kind.
func NewVar(name string, kind VarKind) Var {
	return Var{Name: name, Kind: kind}
}

// N is shorthand for the conventional input-size variable.
func N(name string) Var { return NewVar(name, KindInputSize) }

// NewLinear returns k·v.
func NewLinear(k float64, v Var) Linear {
	return Linear{K: k, V: v}
}

// NewPolynomial builds a sparse polynomial over v from a degree→coefficient
// map. Zero coefficients are dropped; terms are stored sorted by ascending
// degree. An all-zero map yields the zero polynomial (no terms).
func NewPolynomial(v Var, coeffs map[int]float64) Polynomial {
	// 1) Collect non-zero entries.
	terms := make([]PolyTerm, 0, len(coeffs))
	for deg, c := range coeffs {
		if c != 0 {
			terms = append(terms, PolyTerm{Deg: deg, Coef: c})
		}
	}

	// 2) Canonical order: ascending degree.
	sort.Slice(terms, func(i, j int) bool { return terms[i].Deg < terms[j].Deg })

	return Polynomial{V: v, Terms: terms}
}

// Degree returns the polynomial's degree, or 0 for the zero polynomial.
func (p Polynomial) Degree() int {
	if len(p.Terms) == 0 {
		return 0
	}

	return p.Terms[len(p.Terms)-1].Deg
}

// Leading returns the coefficient of the highest-degree term, or 0.
func (p Polynomial) Leading() float64 {
	if len(p.Terms) == 0 {
		return 0
	}

	return p.Terms[len(p.Terms)-1].Coef
}

// Coefficient returns the coefficient at deg (0 when absent).
func (p Polynomial) Coefficient(deg int) float64 {
	for _, t := range p.Terms {
		if t.Deg == deg {
			return t.Coef
		}
	}

	return 0
}

// NewLogarithmic returns k·log_base(v). Base must be > 1.
func NewLogarithmic(k float64, v Var, base float64) Logarithmic {
	if base <= 1 {
		panic(ErrBadBase)
	}

	return Logarithmic{K: k, V: v, Base: base}
}

// NewPolyLog returns k·v^polyDeg·log_base(v)^logExp. Base must be > 1.
func NewPolyLog(k float64, v Var, polyDeg, logExp, base float64) PolyLog {
	if base <= 1 {
		panic(ErrBadBase)
	}

	return PolyLog{K: k, V: v, PolyDeg: polyDeg, LogExp: logExp, Base: base}
}

// NewExponential returns k·base^v. Base must be > 1.
func NewExponential(base float64, v Var, k float64) Exponential {
	if base <= 1 {
		panic(ErrBadBase)
	}

	return Exponential{Base: base, V: v, K: k}
}

// NewFactorial returns k·v!.
func NewFactorial(v Var, k float64) Factorial {
	return Factorial{V: v, K: k}
}

// NewBinOp combines l and r under op.
func NewBinOp(l Expr, op Op, r Expr) BinOp {
	return BinOp{L: l, Op: op, R: r}
}

// Sum folds a non-empty term list under Plus.
func Sum(terms ...Expr) Expr {
	if len(terms) == 0 {
		return Constant{K: 0}
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		acc = BinOp{L: acc, Op: Plus, R: t}
	}

	return acc
}

// Product folds a non-empty factor list under Mul.
func Product(factors ...Expr) Expr {
	if len(factors) == 0 {
		return Constant{K: 1}
	}
	acc := factors[0]
	for _, f := range factors[1:] {
		acc = BinOp{L: acc, Op: Mul, R: f}
	}

	return acc
}

// NewSymbolicIntegral returns the unevaluated ∫_{lower}^{upper} integrand dV
// with its heuristic asymptotic bound attached.
func NewSymbolicIntegral(integrand Expr, v Var, lower, upper, bound Expr) Special {
	return Special{
		Kind:  SymbolicIntegral,
		Args:  []Expr{integrand, lower, upper},
		V:     v,
		Bound: bound,
	}
}

// NewSpecial returns a special-function node of the given kind with its
// arguments and recorded asymptotic bound. Args are copied.
func NewSpecial(kind SpecialKind, args []Expr, bound Expr) Special {
	cp := make([]Expr, len(args))
	copy(cp, args)

	return Special{Kind: kind, Args: cp, Bound: bound}
}

// NewProbabilistic returns a distribution-annotated cost; assumptions are
// copied. Worst must be non-nil (worst-case evaluation falls through to it).
func NewProbabilistic(expected, worst Expr, source, distribution string, assumptions []string) Probabilistic {
	cp := make([]string, len(assumptions))
	copy(cp, assumptions)

	return Probabilistic{
		Expected:     expected,
		Worst:        worst,
		Source:       source,
		Distribution: distribution,
		Assumptions:  cp,
	}
}

// NewAmortized pairs an amortized bound with its worst case.
func NewAmortized(amortized, worstCase Expr, method AmortMethod) Amortized {
	return Amortized{Amortized: amortized, WorstCase: worstCase, Method: method}
}
