// Package expr: algebraic simplification and Big-O normalization.
//
// Simplify applies local rewrites bottom-up until a fixpoint:
//   - constant folding and identity elements (0 under Plus, 1 under Mul),
//   - flattening of nested Plus/Mul chains,
//   - like-term combination a·f + b·f → (a+b)·f on structurally equal f,
//   - merging of polynomial/log factors under Mul into canonical PolyLog,
//   - PolyLog collapse rules (→ Constant / Polynomial / Logarithmic),
//   - Max/Min collapse when the asymptotic order decides the winner.
//
// The contract is: idempotent (a second pass is a no-op) and monotone in
// asymptotic class (the Big-Θ class of the input is never raised nor
// lowered). Simplify never fails; nodes it does not understand are
// returned with simplified children.
package expr

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// maxSimplifyPasses bounds the fixpoint loop; in practice two passes
// suffice, the cap only guards against rewrite cycles.
const maxSimplifyPasses = 8

// Simplify rewrites e to its canonical simplified form.
func Simplify(e Expr) Expr {
	out := e
	for i := 0; i < maxSimplifyPasses; i++ {
		next := simplifyNode(out)
		if Equal(next, out) {
			return out
		}
		out = next
	}

	return out
}

// simplifyNode simplifies children first, then rewrites the node itself.
func simplifyNode(e Expr) Expr {
	switch x := e.(type) {
	case Constant, Var, Linear, Polynomial, Logarithmic, PolyLog, Exponential, Factorial:
		return canonLeaf(x)
	case Power:
		return canonPower(Power{Base: simplifyNode(x.Base), Exp: x.Exp})
	case LogOf:
		return canonLogOf(LogOf{Arg: simplifyNode(x.Arg), Base: x.Base})
	case ExpOf:
		return canonExpOf(ExpOf{Base: x.Base, Arg: simplifyNode(x.Arg)})
	case FactOf:
		return canonFactOf(FactOf{Arg: simplifyNode(x.Arg)})
	case BinOp:
		l, r := simplifyNode(x.L), simplifyNode(x.R)
		switch x.Op {
		case Plus:
			return rebuildSum(flattenPlus(l, r))
		case Mul:
			return rebuildProduct(flattenMul(l, r))
		default:
			return canonMaxMin(BinOp{L: l, Op: x.Op, R: r})
		}
	case Conditional:
		t, f := simplifyNode(x.T), simplifyNode(x.F)
		if Equal(t, f) {
			return t
		}

		return Conditional{Label: x.Label, T: t, F: f}
	case Special:
		args := make([]Expr, len(x.Args))
		for i, a := range x.Args {
			args[i] = simplifyNode(a)
		}

		return Special{Kind: x.Kind, Args: args, V: x.V, Bound: simplifyOrNil(x.Bound)}
	case Probabilistic:
		return Probabilistic{
			Expected:     simplifyNode(x.Expected),
			Worst:        simplifyNode(x.Worst),
			Best:         simplifyOrNil(x.Best),
			Source:       x.Source,
			Distribution: x.Distribution,
			Variance:     simplifyOrNil(x.Variance),
			HighProb:     simplifyOrNil(x.HighProb),
			Assumptions:  x.Assumptions,
		}
	case Amortized:
		return Amortized{
			Amortized: simplifyNode(x.Amortized),
			WorstCase: simplifyNode(x.WorstCase),
			Method:    x.Method,
			Potential: simplifyOrNil(x.Potential),
		}
	default:
		return e
	}
}

// simplifyOrNil extends simplifyNode to optional subexpressions.
func simplifyOrNil(e Expr) Expr {
	if e == nil {
		return nil
	}

	return simplifyNode(e)
}

// canonLeaf applies the leaf collapse invariants.
func canonLeaf(e Expr) Expr {
	switch x := e.(type) {
	case Linear:
		if x.K == 0 {
			return Constant{K: 0}
		}

		return x
	case Polynomial:
		return canonPolynomial(x)
	case Logarithmic:
		if x.K == 0 {
			return Constant{K: 0}
		}

		return x
	case PolyLog:
		return canonPolyLog(x)
	case Exponential:
		if x.K == 0 {
			return Constant{K: 0}
		}

		return x
	case Factorial:
		if x.K == 0 {
			return Constant{K: 0}
		}

		return x
	default:
		return e
	}
}

// canonPolynomial drops zero coefficients and demotes degenerate shapes.
func canonPolynomial(p Polynomial) Expr {
	terms := make([]PolyTerm, 0, len(p.Terms))
	for _, t := range p.Terms {
		if t.Coef != 0 {
			terms = append(terms, t)
		}
	}
	switch {
	case len(terms) == 0:
		return Constant{K: 0}
	case len(terms) == 1 && terms[0].Deg == 0:
		return Constant{K: terms[0].Coef}
	case len(terms) == 1 && terms[0].Deg == 1:
		return Linear{K: terms[0].Coef, V: p.V}
	default:
		return Polynomial{V: p.V, Terms: terms}
	}
}

// canonPolyLog applies the PolyLog collapse rules from the data-model
// invariants: (0,0) → Constant, logExp=0 → Polynomial (integer degree),
// polyDeg=0 ∧ logExp=1 → Logarithmic.
func canonPolyLog(p PolyLog) Expr {
	if p.K == 0 {
		return Constant{K: 0}
	}
	zeroDeg := scalar.EqualWithinAbs(p.PolyDeg, 0, DefaultEpsilon)
	zeroLog := scalar.EqualWithinAbs(p.LogExp, 0, DefaultEpsilon)
	switch {
	case zeroDeg && zeroLog:
		return Constant{K: p.K}
	case zeroLog && p.PolyDeg == math.Trunc(p.PolyDeg) && p.PolyDeg > 0:
		if p.PolyDeg == 1 {
			return Linear{K: p.K, V: p.V}
		}

		return Polynomial{V: p.V, Terms: []PolyTerm{{Deg: int(p.PolyDeg), Coef: p.K}}}
	case zeroDeg && scalar.EqualWithinAbs(p.LogExp, 1, DefaultEpsilon):
		return Logarithmic{K: p.K, V: p.V, Base: p.Base}
	default:
		return p
	}
}

// canonPower lowers lifted powers onto leaf forms where possible.
func canonPower(p Power) Expr {
	if p.Exp == 0 {
		return Constant{K: 1}
	}
	if p.Exp == 1 {
		return p.Base
	}
	switch b := p.Base.(type) {
	case Constant:
		v := math.Pow(b.K, p.Exp)
		if v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return Constant{K: v}
		}

		return p
	case Var:
		return canonPolyLog(PolyLog{K: 1, V: b, PolyDeg: p.Exp, LogExp: 0, Base: 2})
	case Linear:
		if b.K > 0 {
			return canonPolyLog(PolyLog{K: math.Pow(b.K, p.Exp), V: b.V, PolyDeg: p.Exp, LogExp: 0, Base: 2})
		}

		return p
	case PolyLog:
		if b.K > 0 {
			return canonPolyLog(PolyLog{
				K:       math.Pow(b.K, p.Exp),
				V:       b.V,
				PolyDeg: b.PolyDeg * p.Exp,
				LogExp:  b.LogExp * p.Exp,
				Base:    b.Base,
			})
		}

		return p
	case Logarithmic:
		if b.K > 0 {
			return canonPolyLog(PolyLog{K: math.Pow(b.K, p.Exp), V: b.V, PolyDeg: 0, LogExp: p.Exp, Base: b.Base})
		}

		return p
	case Polynomial:
		if len(b.Terms) == 1 && b.Terms[0].Coef > 0 {
			t := b.Terms[0]

			return canonPolyLog(PolyLog{K: math.Pow(t.Coef, p.Exp), V: b.V, PolyDeg: float64(t.Deg) * p.Exp, LogExp: 0, Base: 2})
		}

		return p
	default:
		return p
	}
}

// canonLogOf lowers lifted logarithms onto leaf forms where possible.
func canonLogOf(l LogOf) Expr {
	switch a := l.Arg.(type) {
	case Constant:
		if a.K > 0 {
			v := math.Log(a.K) / math.Log(l.Base)
			if v >= 0 {
				return Constant{K: v}
			}
		}

		return l
	case Var:
		return Logarithmic{K: 1, V: a, Base: l.Base}
	case Linear:
		if a.K == 1 {
			return Logarithmic{K: 1, V: a.V, Base: l.Base}
		}

		return l
	case Polynomial:
		// log(n^d) = d·log n for a monic single term.
		if len(a.Terms) == 1 && a.Terms[0].Coef == 1 {
			return Logarithmic{K: float64(a.Terms[0].Deg), V: a.V, Base: l.Base}
		}

		return l
	case Exponential:
		// log_c(b^n) = n·log_c b for a unit coefficient.
		if a.K == 1 {
			return Linear{K: math.Log(a.Base) / math.Log(l.Base), V: a.V}
		}

		return l
	default:
		return l
	}
}

// canonExpOf lowers lifted exponentials onto leaf forms where possible.
func canonExpOf(e ExpOf) Expr {
	switch a := e.Arg.(type) {
	case Constant:
		return Constant{K: math.Pow(e.Base, a.K)}
	case Var:
		return Exponential{Base: e.Base, V: a, K: 1}
	case Linear:
		// b^(k·n) = (b^k)^n, valid as an Exponential only while b^k > 1.
		nb := math.Pow(e.Base, a.K)
		if nb > 1 {
			return Exponential{Base: nb, V: a.V, K: 1}
		}

		return e
	case Logarithmic:
		// b^(k·log_c n) = n^(k·log_c b).
		return canonPolyLog(PolyLog{K: 1, V: a.V, PolyDeg: a.K * math.Log(e.Base) / math.Log(a.Base), LogExp: 0, Base: 2})
	default:
		return e
	}
}

// canonFactOf lowers lifted factorials onto leaf forms where possible.
func canonFactOf(f FactOf) Expr {
	switch a := f.Arg.(type) {
	case Constant:
		if a.K == math.Trunc(a.K) && a.K >= 0 && a.K <= 20 {
			return Constant{K: math.Gamma(a.K + 1)}
		}

		return f
	case Var:
		return Factorial{V: a, K: 1}
	default:
		return f
	}
}

// ---------- Plus ----------

// flattenPlus linearizes a Plus tree into its term list.
func flattenPlus(l, r Expr) []Expr {
	var out []Expr
	var walk func(Expr)
	walk = func(e Expr) {
		if b, ok := e.(BinOp); ok && b.Op == Plus {
			walk(b.L)
			walk(b.R)

			return
		}
		out = append(out, e)
	}
	walk(l)
	walk(r)

	return out
}

// rebuildSum folds constants, merges like terms and polynomial bodies,
// drops zeros, and reassembles the term list left-associatively in
// first-seen order (deterministic, hence idempotent).
func rebuildSum(terms []Expr) Expr {
	constSum := 0.0
	type group struct {
		coef float64
		unit Expr
	}
	var groups []group
	var polys []Polynomial

	// 1) Bucket every term: constants fold, polynomials merge by variable,
	//    everything else groups by its unit factor.
	for _, t := range terms {
		if c, ok := t.(Constant); ok {
			constSum += c.K

			continue
		}
		if p, ok := t.(Polynomial); ok {
			merged := false
			for i := range polys {
				if polys[i].V == p.V {
					polys[i] = addPolynomials(polys[i], p)
					merged = true

					break
				}
			}
			if !merged {
				polys = append(polys, Polynomial{V: p.V, Terms: copyTerms(p.Terms)})
			}

			continue
		}
		k, unit := splitCoef(t)
		placed := false
		for i := range groups {
			if Equal(groups[i].unit, unit) {
				groups[i].coef += k
				placed = true

				break
			}
		}
		if !placed {
			groups = append(groups, group{coef: k, unit: unit})
		}
	}

	// 2) Fold Linear groups into same-variable polynomials when present.
	//    (n² + n style sums canonicalize into one Polynomial.)
	rest := groups[:0]
	for _, g := range groups {
		if lin, ok := g.unit.(Var); ok && g.coef != 0 {
			merged := false
			for i := range polys {
				if polys[i].V == lin {
					polys[i] = addPolynomials(polys[i], Polynomial{V: lin, Terms: []PolyTerm{{Deg: 1, Coef: g.coef}}})
					merged = true

					break
				}
			}
			if merged {
				continue
			}
		}
		rest = append(rest, g)
	}

	// 3) Reassemble: polynomials, grouped units, trailing constant.
	var out []Expr
	for _, p := range polys {
		if cp := canonPolynomial(p); !isZero(cp) {
			out = append(out, cp)
		}
	}
	for _, g := range rest {
		if g.coef == 0 {
			continue
		}
		out = append(out, scaleUnit(g.coef, g.unit))
	}
	if constSum != 0 {
		out = append(out, Constant{K: constSum})
	}

	switch len(out) {
	case 0:
		return Constant{K: 0}
	case 1:
		return out[0]
	default:
		acc := out[0]
		for _, t := range out[1:] {
			acc = BinOp{L: acc, Op: Plus, R: t}
		}

		return acc
	}
}

// addPolynomials merges two sparse polynomials over the same variable.
func addPolynomials(a, b Polynomial) Polynomial {
	coeffs := make(map[int]float64, len(a.Terms)+len(b.Terms))
	for _, t := range a.Terms {
		coeffs[t.Deg] += t.Coef
	}
	for _, t := range b.Terms {
		coeffs[t.Deg] += t.Coef
	}

	return NewPolynomial(a.V, coeffs)
}

// isZero reports the additive identity.
func isZero(e Expr) bool {
	c, ok := e.(Constant)

	return ok && c.K == 0
}

// isOne reports the multiplicative identity.
func isOne(e Expr) bool {
	c, ok := e.(Constant)

	return ok && c.K == 1
}

// splitCoef strips a leading multiplicative constant from e, returning
// (k, unit) with e ≡ k·unit and unit carrying coefficient 1.
func splitCoef(e Expr) (float64, Expr) {
	switch x := e.(type) {
	case Constant:
		return x.K, Constant{K: 1}
	case Linear:
		return x.K, x.V
	case Logarithmic:
		return x.K, Logarithmic{K: 1, V: x.V, Base: x.Base}
	case PolyLog:
		return x.K, PolyLog{K: 1, V: x.V, PolyDeg: x.PolyDeg, LogExp: x.LogExp, Base: x.Base}
	case Exponential:
		return x.K, Exponential{Base: x.Base, V: x.V, K: 1}
	case Factorial:
		return x.K, Factorial{V: x.V, K: 1}
	case Polynomial:
		if len(x.Terms) == 1 {
			t := x.Terms[0]

			return t.Coef, Polynomial{V: x.V, Terms: []PolyTerm{{Deg: t.Deg, Coef: 1}}}
		}

		return 1, x
	case BinOp:
		if x.Op == Mul {
			if c, ok := x.L.(Constant); ok {
				k, unit := splitCoef(x.R)

				return c.K * k, unit
			}
			if c, ok := x.R.(Constant); ok {
				k, unit := splitCoef(x.L)

				return c.K * k, unit
			}
		}

		return 1, x
	default:
		return 1, e
	}
}

// scaleUnit reattaches a coefficient onto a unit factor.
func scaleUnit(k float64, unit Expr) Expr {
	if k == 1 {
		return unit
	}
	switch u := unit.(type) {
	case Constant:
		return Constant{K: k * u.K}
	case Var:
		return Linear{K: k, V: u}
	case Logarithmic:
		return Logarithmic{K: k * u.K, V: u.V, Base: u.Base}
	case PolyLog:
		return PolyLog{K: k * u.K, V: u.V, PolyDeg: u.PolyDeg, LogExp: u.LogExp, Base: u.Base}
	case Exponential:
		return Exponential{Base: u.Base, V: u.V, K: k * u.K}
	case Factorial:
		return Factorial{V: u.V, K: k * u.K}
	case Polynomial:
		if len(u.Terms) == 1 {
			t := u.Terms[0]

			return canonPolynomial(Polynomial{V: u.V, Terms: []PolyTerm{{Deg: t.Deg, Coef: k * t.Coef}}})
		}

		return BinOp{L: Constant{K: k}, Op: Mul, R: unit}
	default:
		return BinOp{L: Constant{K: k}, Op: Mul, R: unit}
	}
}

// ---------- Mul ----------

// flattenMul linearizes a Mul tree into its factor list.
func flattenMul(l, r Expr) []Expr {
	var out []Expr
	var walk func(Expr)
	walk = func(e Expr) {
		if b, ok := e.(BinOp); ok && b.Op == Mul {
			walk(b.L)
			walk(b.R)

			return
		}
		out = append(out, e)
	}
	walk(l)
	walk(r)

	return out
}

// polyKey accumulates same-variable polynomial/log factors under Mul.
type polyKey struct {
	v       Var
	polyDeg float64
	logExp  float64
	base    float64
}

// rebuildProduct folds constants, merges polynomial/log factors of the
// same variable into one canonical PolyLog, and reassembles the rest.
func rebuildProduct(factors []Expr) Expr {
	constProd := 1.0
	var merged []polyKey
	var rest []Expr

	// 1) Bucket factors.
	for _, f := range factors {
		if isZero(f) {
			return Constant{K: 0}
		}
		switch x := f.(type) {
		case Constant:
			constProd *= x.K
		case Var:
			merged = mergePolyFactor(merged, polyKey{v: x, polyDeg: 1, base: 2})
		case Linear:
			constProd *= x.K
			merged = mergePolyFactor(merged, polyKey{v: x.V, polyDeg: 1, base: 2})
		case Logarithmic:
			constProd *= x.K
			merged = mergePolyFactor(merged, polyKey{v: x.V, logExp: 1, base: x.Base})
		case PolyLog:
			constProd *= x.K
			merged = mergePolyFactor(merged, polyKey{v: x.V, polyDeg: x.PolyDeg, logExp: x.LogExp, base: x.Base})
		case Polynomial:
			if len(x.Terms) == 1 {
				constProd *= x.Terms[0].Coef
				merged = mergePolyFactor(merged, polyKey{v: x.V, polyDeg: float64(x.Terms[0].Deg), base: 2})
			} else {
				rest = append(rest, x)
			}
		default:
			rest = append(rest, f)
		}
	}
	if constProd == 0 {
		return Constant{K: 0}
	}

	// 2) Reassemble merged polylog factors.
	var out []Expr
	for _, m := range merged {
		pl := canonPolyLog(PolyLog{K: 1, V: m.v, PolyDeg: m.polyDeg, LogExp: m.logExp, Base: m.base})
		if !isOne(pl) {
			out = append(out, pl)
		}
	}
	out = append(out, rest...)

	// 3) Attach the constant product.
	switch {
	case len(out) == 0:
		return Constant{K: constProd}
	case constProd != 1:
		// Fold the coefficient into the first factor when it has a slot.
		if k, unit := splitCoef(out[0]); k == 1 {
			out[0] = scaleUnit(constProd, unit)
		} else {
			out[0] = scaleUnit(constProd*k, unit)
		}
	}

	acc := out[0]
	for _, f := range out[1:] {
		acc = BinOp{L: acc, Op: Mul, R: f}
	}

	return acc
}

// mergePolyFactor adds a polylog factor into the same-variable slot.
func mergePolyFactor(acc []polyKey, k polyKey) []polyKey {
	for i := range acc {
		if acc[i].v == k.v {
			acc[i].polyDeg += k.polyDeg
			acc[i].logExp += k.logExp
			if acc[i].base == 2 && k.base != 2 {
				acc[i].base = k.base
			}

			return acc
		}
	}
	if k.base == 0 {
		k.base = 2
	}

	return append(acc, k)
}

// ---------- Max / Min ----------

// canonMaxMin collapses a Max/Min whose winner the asymptotic order can
// decide; Θ-equal arms collapse to the larger (smaller) coefficient when
// their unit factors coincide.
func canonMaxMin(b BinOp) Expr {
	if Equal(b.L, b.R) {
		return b.L
	}
	ord := CompareAsymptotic(b.L, b.R)
	pickL := ord == OrderGreater
	pickR := ord == OrderLess
	if b.Op == Min {
		pickL, pickR = pickR, pickL
	}
	switch {
	case pickL:
		return b.L
	case pickR:
		return b.R
	case ord == OrderEqual:
		lk, lu := splitCoef(b.L)
		rk, ru := splitCoef(b.R)
		if Equal(lu, ru) {
			if (b.Op == Max) == (lk >= rk) {
				return b.L
			}

			return b.R
		}

		return b
	default:
		return b
	}
}
