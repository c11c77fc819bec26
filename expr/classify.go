// Package expr: classification of an expression into its dominant growth
// form along one variable. Classify is the single point downstream stages
// (theorem selection, integral dispatch, refinement) call to decide cases;
// its output is the lexicographic key the asymptotic order is built on.
package expr

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Form enumerates the growth families of the canonical classification.
type Form int

const (
	// FormConstant is Θ(1) along the classified variable.
	FormConstant Form = iota

	// FormLogLog covers log log n and slower-than-log factors.
	FormLogLog

	// FormLogarithmic is Θ(log^j n) with no polynomial factor.
	FormLogarithmic

	// FormPolynomial is Θ(n^d), integer or real d > 0, no log factor.
	FormPolynomial

	// FormPolyLog is Θ(n^d · log^j n) with d > 0 and j ≠ 0.
	FormPolyLog

	// FormExponential is Θ(b^n·n^d·log^j n), b > 1.
	FormExponential

	// FormFactorial is Θ(n!·…).
	FormFactorial

	// FormSpecial is a special-function value without a usable recorded
	// bound; it compares as incomparable.
	FormSpecial
)

// String names the form for explanations.
func (f Form) String() string {
	switch f {
	case FormConstant:
		return "constant"
	case FormLogLog:
		return "log-log"
	case FormLogarithmic:
		return "logarithmic"
	case FormPolynomial:
		return "polynomial"
	case FormPolyLog:
		return "poly-log"
	case FormExponential:
		return "exponential"
	case FormFactorial:
		return "factorial"
	default:
		return "special"
	}
}

// tier maps a form onto the outer level of the lexicographic growth key.
// FormPolynomial and FormPolyLog share a tier (ordered by degree, then
// log exponent); FormLogarithmic is the same tier at degree 0.
func (f Form) tier() int {
	switch f {
	case FormConstant:
		return 0
	case FormLogLog:
		return 1
	case FormLogarithmic, FormPolynomial, FormPolyLog:
		return 2
	case FormExponential:
		return 3
	case FormFactorial:
		return 4
	default:
		return 5
	}
}

// Classification is the canonical growth description of an expression
// along one variable: the lexicographic key (tier, ExpBase, PolyDegree,
// LogExponent) plus the leading coefficient and a confidence in the
// classification itself (reduced for symbolic residues and conditionals).
type Classification struct {
	Form        Form
	PolyDegree  float64
	LogExponent float64
	// ExpBase is the exponential base (1 for sub-exponential forms;
	// +Inf marks super-exponential b^(n^d), d > 1).
	ExpBase      float64
	LogBase      float64
	LeadingCoeff float64
	Confidence   float64
}

// ToPolyLog reconstructs the canonical PolyLog expression of a
// polynomial/logarithmic classification over v. Exponential and factorial
// classifications have no PolyLog form and return their dominant factor
// as an expression too (Exponential / Factorial node).
func (c Classification) ToPolyLog(v Var) Expr {
	base := c.LogBase
	if base <= 1 {
		base = 2
	}
	k := c.LeadingCoeff
	if k == 0 {
		k = 1
	}
	switch c.Form {
	case FormConstant:
		return Constant{K: math.Abs(k)}
	case FormExponential:
		return Exponential{Base: c.ExpBase, V: v, K: k}
	case FormFactorial:
		return Factorial{V: v, K: k}
	default:
		return Simplify(PolyLog{K: k, V: v, PolyDeg: c.PolyDegree, LogExp: c.LogExponent, Base: base})
	}
}

// constantClass is the Θ(1) classification with the given lead.
func constantClass(k float64) Classification {
	return Classification{Form: FormConstant, ExpBase: 1, LogBase: 2, LeadingCoeff: k, Confidence: 1}
}

// polyLogClass normalizes a (degree, logExp) pair into the right form.
func polyLogClass(k, deg, logExp, logBase float64) Classification {
	c := Classification{PolyDegree: deg, LogExponent: logExp, ExpBase: 1, LogBase: logBase, LeadingCoeff: k, Confidence: 1}
	switch {
	case scalar.EqualWithinAbs(deg, 0, DefaultEpsilon) && scalar.EqualWithinAbs(logExp, 0, DefaultEpsilon):
		c.Form, c.PolyDegree, c.LogExponent = FormConstant, 0, 0
	case scalar.EqualWithinAbs(deg, 0, DefaultEpsilon):
		c.Form, c.PolyDegree = FormLogarithmic, 0
	case scalar.EqualWithinAbs(logExp, 0, DefaultEpsilon):
		c.Form, c.LogExponent = FormPolynomial, 0
	default:
		c.Form = FormPolyLog
	}

	return c
}

// Classify determines the dominant growth form of e along variable v.
// Variables other than v are treated as constants of unknown magnitude;
// they affect only the leading coefficient, never the form.
func Classify(e Expr, v string) Classification {
	switch x := e.(type) {
	case Constant:
		return constantClass(x.K)
	case Var:
		if x.Name != v {
			return constantClass(1)
		}

		return polyLogClass(1, 1, 0, 2)
	case Linear:
		if x.V.Name != v {
			return constantClass(x.K)
		}

		return polyLogClass(x.K, 1, 0, 2)
	case Polynomial:
		if x.V.Name != v || len(x.Terms) == 0 {
			return constantClass(x.Leading())
		}

		return polyLogClass(x.Leading(), float64(x.Degree()), 0, 2)
	case Logarithmic:
		if x.V.Name != v {
			return constantClass(x.K)
		}

		return polyLogClass(x.K, 0, 1, x.Base)
	case PolyLog:
		if x.V.Name != v {
			return constantClass(x.K)
		}

		return polyLogClass(x.K, x.PolyDeg, x.LogExp, x.Base)
	case Exponential:
		if x.V.Name != v {
			return constantClass(x.K)
		}

		return Classification{Form: FormExponential, ExpBase: x.Base, LogBase: 2, LeadingCoeff: x.K, Confidence: 1}
	case Factorial:
		if x.V.Name != v {
			return constantClass(x.K)
		}

		return Classification{Form: FormFactorial, ExpBase: 1, LogBase: 2, LeadingCoeff: x.K, Confidence: 1}
	case Power:
		return classifyPower(x, v)
	case LogOf:
		return classifyLogOf(x, v)
	case ExpOf:
		return classifyExpOf(x, v)
	case FactOf:
		inner := Classify(x.Arg, v)
		if inner.Form == FormConstant {
			return constantClass(1)
		}

		return Classification{Form: FormFactorial, ExpBase: 1, LogBase: 2, LeadingCoeff: 1, Confidence: inner.Confidence}
	case BinOp:
		return classifyBinOp(x, v)
	case Conditional:
		// Worst case: dominant branch, with a note of uncertainty.
		c := dominantClass(Classify(x.T, v), Classify(x.F, v))
		c.Confidence = math.Min(c.Confidence, 0.9)

		return c
	case Special:
		if x.Bound != nil {
			c := Classify(x.Bound, v)
			c.Confidence = math.Min(c.Confidence, 0.85)

			return c
		}

		return Classification{Form: FormSpecial, ExpBase: 1, LogBase: 2, LeadingCoeff: 1, Confidence: 0.5}
	case Probabilistic:
		return Classify(x.Worst, v)
	case Amortized:
		return Classify(x.Amortized, v)
	default:
		return Classification{Form: FormSpecial, ExpBase: 1, LogBase: 2, Confidence: 0}
	}
}

// classifyPower classifies base^r by scaling the base's key.
func classifyPower(x Power, v string) Classification {
	inner := Classify(x.Base, v)
	r := x.Exp
	switch inner.Form {
	case FormConstant:
		return constantClass(math.Pow(math.Abs(inner.LeadingCoeff), r))
	case FormLogarithmic, FormPolynomial, FormPolyLog:
		// Negative r yields a vanishing (negative-degree) class; the
		// order handles those below the constant tier.
		c := polyLogClass(math.Pow(math.Abs(inner.LeadingCoeff), r), inner.PolyDegree*r, inner.LogExponent*r, inner.LogBase)
		c.Confidence = inner.Confidence

		return c
	case FormExponential:
		// (b^n)^r = (b^r)^n.
		c := inner
		c.ExpBase = math.Pow(inner.ExpBase, r)
		if c.ExpBase <= 1 {
			return constantClass(1)
		}

		return c
	default:
		c := inner
		c.Confidence = math.Min(inner.Confidence, 0.7)

		return c
	}
}

// classifyLogOf classifies log_b(arg): logs of polynomials collapse to a
// single log, logs of exponentials to a polynomial.
func classifyLogOf(x LogOf, v string) Classification {
	inner := Classify(x.Arg, v)
	switch inner.Form {
	case FormConstant:
		return constantClass(1)
	case FormLogarithmic:
		// log of a log factor: the log-log tier.
		return Classification{Form: FormLogLog, ExpBase: 1, LogBase: x.Base, LeadingCoeff: 1, Confidence: inner.Confidence}
	case FormPolynomial, FormPolyLog:
		// log(n^d·log^j n) = d·log n + j·log log n → Θ(log n).
		return polyLogClass(inner.PolyDegree, 0, 1, x.Base)
	case FormExponential:
		// log(b^n) = n·log b → Θ(n).
		return polyLogClass(math.Log(inner.ExpBase)/math.Log(x.Base), 1, 0, 2)
	case FormFactorial:
		// log(n!) = Θ(n log n).
		return polyLogClass(1, 1, 1, x.Base)
	default:
		return Classification{Form: FormSpecial, ExpBase: 1, LogBase: x.Base, Confidence: 0.5}
	}
}

// classifyExpOf classifies b^arg: exponentials of logs are polynomials,
// exponentials of linear arguments are plain exponentials, anything
// faster is marked super-exponential (ExpBase = +Inf).
func classifyExpOf(x ExpOf, v string) Classification {
	inner := Classify(x.Arg, v)
	switch inner.Form {
	case FormConstant:
		return constantClass(math.Pow(x.Base, inner.LeadingCoeff))
	case FormLogLog:
		// b^(log log n) = (log n)^(log b): a poly-log factor.
		return polyLogClass(1, 0, math.Log(x.Base), 2)
	case FormLogarithmic:
		// b^(j·log_c n) = n^(j·log_c b).
		exp := inner.LeadingCoeff * math.Log(x.Base) / math.Log(inner.LogBase)
		if inner.LogExponent > 1 {
			// Quasi-polynomial n^(log^{j-1} n): super-polynomial but
			// sub-exponential; approximate to the exponential tier floor.
			return Classification{Form: FormExponential, ExpBase: 1 + DefaultEpsilon, LogBase: 2, LeadingCoeff: 1, Confidence: 0.6}
		}

		return polyLogClass(1, exp, 0, 2)
	case FormPolynomial, FormPolyLog:
		if scalar.EqualWithinAbs(inner.PolyDegree, 1, DefaultEpsilon) && inner.LogExponent == 0 {
			return Classification{Form: FormExponential, ExpBase: math.Pow(x.Base, inner.LeadingCoeff), LogBase: 2, LeadingCoeff: 1, Confidence: inner.Confidence}
		}
		if inner.PolyDegree < 1 {
			// Sub-exponential 2^(n^d), d<1: above every polynomial.
			return Classification{Form: FormExponential, ExpBase: 1 + DefaultEpsilon, LogBase: 2, LeadingCoeff: 1, Confidence: 0.6}
		}

		return Classification{Form: FormExponential, ExpBase: math.Inf(1), LogBase: 2, LeadingCoeff: 1, Confidence: 0.7}
	default:
		return Classification{Form: FormExponential, ExpBase: math.Inf(1), LogBase: 2, LeadingCoeff: 1, Confidence: 0.5}
	}
}

// classifyBinOp combines child classifications per operator.
func classifyBinOp(x BinOp, v string) Classification {
	l, r := Classify(x.L, v), Classify(x.R, v)
	switch x.Op {
	case Plus, Max:
		c := dominantClass(l, r)
		if x.Op == Plus && orderClasses(l, r) == OrderEqual {
			c.LeadingCoeff = l.LeadingCoeff + r.LeadingCoeff
		}

		return c
	case Min:
		if orderClasses(l, r) == OrderGreater {
			return r
		}

		return l
	default:
		return mulClasses(l, r)
	}
}

// dominantClass picks the asymptotically larger classification; on a tie
// it keeps the larger leading coefficient.
func dominantClass(l, r Classification) Classification {
	switch orderClasses(l, r) {
	case OrderLess:
		return r
	case OrderGreater:
		return l
	case OrderEqual:
		if r.LeadingCoeff > l.LeadingCoeff {
			return r
		}

		return l
	default:
		// Incomparable forms: keep the left, flag low confidence.
		l.Confidence = math.Min(l.Confidence, 0.5)

		return l
	}
}

// mulClasses multiplies growth keys: degrees and log exponents add,
// exponential bases multiply, factorial absorbs everything below it.
func mulClasses(l, r Classification) Classification {
	if l.Form == FormSpecial || r.Form == FormSpecial {
		return Classification{Form: FormSpecial, ExpBase: 1, LogBase: 2, Confidence: 0.5}
	}
	out := Classification{
		PolyDegree:   l.PolyDegree + r.PolyDegree,
		LogExponent:  l.LogExponent + r.LogExponent,
		ExpBase:      1,
		LogBase:      math.Max(l.LogBase, r.LogBase),
		LeadingCoeff: l.LeadingCoeff * r.LeadingCoeff,
		Confidence:   math.Min(l.Confidence, r.Confidence),
	}
	if out.LogBase <= 1 {
		out.LogBase = 2
	}
	switch {
	case l.Form == FormFactorial || r.Form == FormFactorial:
		out.Form = FormFactorial
	case l.Form == FormExponential || r.Form == FormExponential:
		out.Form = FormExponential
		out.ExpBase = expBaseOrOne(l) * expBaseOrOne(r)
	case l.Form == FormLogLog || r.Form == FormLogLog:
		if out.PolyDegree > 0 || out.LogExponent > 0 {
			return polyLogClass(out.LeadingCoeff, out.PolyDegree, out.LogExponent, out.LogBase)
		}
		out.Form = FormLogLog
	default:
		return polyLogClass(out.LeadingCoeff, out.PolyDegree, out.LogExponent, out.LogBase)
	}

	return out
}

// expBaseOrOne treats sub-exponential factors as base 1 under Mul.
func expBaseOrOne(c Classification) float64 {
	if c.Form == FormExponential {
		return c.ExpBase
	}

	return 1
}
