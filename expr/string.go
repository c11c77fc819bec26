// Package expr: human-readable rendering. String output feeds the
// derivation explanations, so it favors the conventional math notation
// (n^2, log₂(n), 2^n, n!) over Go syntax.
package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// fmtNum renders a float without trailing zero noise (2 not 2.000000).
func fmtNum(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}

	return strconv.FormatFloat(v, 'g', 10, 64)
}

// coefPrefix renders a multiplicative coefficient, eliding 1.
func coefPrefix(k float64) string {
	if k == 1 {
		return ""
	}

	return fmtNum(k) + "·"
}

// logPart renders log_base(arg), using the common subscript digits.
func logPart(base float64, arg string) string {
	switch base {
	case 2:
		return "log₂(" + arg + ")"
	case math.E:
		return "ln(" + arg + ")"
	case 10:
		return "log₁₀(" + arg + ")"
	default:
		return fmt.Sprintf("log_%s(%s)", fmtNum(base), arg)
	}
}

func (c Constant) String() string { return fmtNum(c.K) }

func (v Var) String() string { return v.Name }

func (l Linear) String() string { return coefPrefix(l.K) + l.V.Name }

func (p Polynomial) String() string {
	if len(p.Terms) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(p.Terms))
	// Render highest degree first, the conventional reading order.
	for i := len(p.Terms) - 1; i >= 0; i-- {
		t := p.Terms[i]
		switch t.Deg {
		case 0:
			parts = append(parts, fmtNum(t.Coef))
		case 1:
			parts = append(parts, coefPrefix(t.Coef)+p.V.Name)
		default:
			parts = append(parts, fmt.Sprintf("%s%s^%d", coefPrefix(t.Coef), p.V.Name, t.Deg))
		}
	}

	return strings.Join(parts, " + ")
}

func (l Logarithmic) String() string {
	return coefPrefix(l.K) + logPart(l.Base, l.V.Name)
}

func (p PolyLog) String() string {
	var b strings.Builder
	b.WriteString(coefPrefix(p.K))
	wrote := false
	if p.PolyDeg != 0 {
		if p.PolyDeg == 1 {
			b.WriteString(p.V.Name)
		} else {
			fmt.Fprintf(&b, "%s^%s", p.V.Name, fmtNum(p.PolyDeg))
		}
		wrote = true
	}
	if p.LogExp != 0 {
		if wrote {
			b.WriteString("·")
		}
		lg := logPart(p.Base, p.V.Name)
		if p.LogExp == 1 {
			b.WriteString(lg)
		} else {
			fmt.Fprintf(&b, "%s^%s", lg, fmtNum(p.LogExp))
		}
		wrote = true
	}
	if !wrote {
		return fmtNum(p.K)
	}

	return b.String()
}

func (e Exponential) String() string {
	return fmt.Sprintf("%s%s^%s", coefPrefix(e.K), fmtNum(e.Base), e.V.Name)
}

func (f Factorial) String() string { return coefPrefix(f.K) + f.V.Name + "!" }

func (p Power) String() string {
	return fmt.Sprintf("(%s)^%s", p.Base, fmtNum(p.Exp))
}

func (l LogOf) String() string { return logPart(l.Base, l.Arg.String()) }

func (e ExpOf) String() string {
	return fmt.Sprintf("%s^(%s)", fmtNum(e.Base), e.Arg)
}

func (f FactOf) String() string { return "(" + f.Arg.String() + ")!" }

func (b BinOp) String() string {
	switch b.Op {
	case Plus:
		return fmt.Sprintf("%s + %s", b.L, b.R)
	case Mul:
		return fmt.Sprintf("%s · %s", paren(b.L), paren(b.R))
	case Max:
		return fmt.Sprintf("max(%s, %s)", b.L, b.R)
	default:
		return fmt.Sprintf("min(%s, %s)", b.L, b.R)
	}
}

// paren wraps sums so products read unambiguously.
func paren(e Expr) string {
	if b, ok := e.(BinOp); ok && b.Op == Plus {
		return "(" + b.String() + ")"
	}

	return e.String()
}

func (c Conditional) String() string {
	label := c.Label
	if label == "" {
		label = "cond"
	}

	return fmt.Sprintf("if[%s](%s, %s)", label, c.T, c.F)
}

func (s Special) String() string {
	switch s.Kind {
	case Polylogarithm:
		return fmt.Sprintf("Li_%s(%s)", s.Args[0], s.Args[1])
	case IncompleteGamma:
		return fmt.Sprintf("γ(%s, %s)", s.Args[0], s.Args[1])
	case IncompleteBeta:
		return fmt.Sprintf("B(%s; %s, %s)", s.Args[0], s.Args[1], s.Args[2])
	case Hypergeometric:
		return fmt.Sprintf("₂F₁(%s, %s; %s; %s)", s.Args[0], s.Args[1], s.Args[2], s.Args[3])
	default:
		return fmt.Sprintf("∫[%s..%s] %s d%s", s.Args[1], s.Args[2], s.Args[0], s.V.Name)
	}
}

func (p Probabilistic) String() string {
	return fmt.Sprintf("E[%s] (worst %s)", p.Expected, p.Worst)
}

func (a Amortized) String() string {
	return fmt.Sprintf("amortized[%s] %s (worst %s)", a.Method, a.Amortized, a.WorstCase)
}
