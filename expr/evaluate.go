// Package expr: numeric evaluation under an environment.
//
// Evaluate is total over well-formed inputs in the sense that it always
// returns either a finite float64 or a sentinel error — never NaN/Inf.
// Worst-case conventions: Conditional → max of branches, Probabilistic →
// worst member, Amortized → amortized member.
package expr

import (
	"fmt"
	"math"
)

// Evaluate computes the numeric value of e with every free variable bound
// by env. It returns ErrUnbound when a free variable is missing and
// ErrNumeric on overflow, NaN/±Inf, or a non-representable
// special-function value.
func Evaluate(e Expr, env map[string]float64) (float64, error) {
	v, err := eval(e, env)
	if err != nil {
		return 0, err
	}
	if !finite(v) {
		return 0, ErrNumeric
	}

	return v, nil
}

// finite reports whether v is a representable, in-policy value.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) <= MaxEvalMagnitude
}

// lookup resolves a variable or reports ErrUnbound with the name attached.
func lookup(name string, env map[string]float64) (float64, error) {
	val, ok := env[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnbound)
	}

	return val, nil
}

// eval is the recursive worker behind Evaluate.
func eval(e Expr, env map[string]float64) (float64, error) {
	switch x := e.(type) {
	case Constant:
		return x.K, nil
	case Var:
		return lookup(x.Name, env)
	case Linear:
		v, err := lookup(x.V.Name, env)
		if err != nil {
			return 0, err
		}

		return x.K * v, nil
	case Polynomial:
		v, err := lookup(x.V.Name, env)
		if err != nil {
			return 0, err
		}
		sum := 0.0
		for _, t := range x.Terms {
			sum += t.Coef * math.Pow(v, float64(t.Deg))
		}

		return sum, nil
	case Logarithmic:
		v, err := lookup(x.V.Name, env)
		if err != nil {
			return 0, err
		}
		if v <= 0 {
			return 0, ErrNumeric
		}

		return x.K * math.Log(v) / math.Log(x.Base), nil
	case PolyLog:
		v, err := lookup(x.V.Name, env)
		if err != nil {
			return 0, err
		}
		if v <= 0 {
			return 0, ErrNumeric
		}
		lg := math.Log(v) / math.Log(x.Base)
		if lg < 0 && x.LogExp != math.Trunc(x.LogExp) {
			return 0, ErrNumeric
		}

		return x.K * math.Pow(v, x.PolyDeg) * math.Pow(lg, x.LogExp), nil
	case Exponential:
		v, err := lookup(x.V.Name, env)
		if err != nil {
			return 0, err
		}

		return x.K * math.Pow(x.Base, v), nil
	case Factorial:
		v, err := lookup(x.V.Name, env)
		if err != nil {
			return 0, err
		}

		return factorialValue(x.K, v)
	case Power:
		base, err := eval(x.Base, env)
		if err != nil {
			return 0, err
		}
		if base < 0 && x.Exp != math.Trunc(x.Exp) {
			return 0, ErrNumeric
		}

		return math.Pow(base, x.Exp), nil
	case LogOf:
		arg, err := eval(x.Arg, env)
		if err != nil {
			return 0, err
		}
		if arg <= 0 {
			return 0, ErrNumeric
		}

		return math.Log(arg) / math.Log(x.Base), nil
	case ExpOf:
		arg, err := eval(x.Arg, env)
		if err != nil {
			return 0, err
		}

		return math.Pow(x.Base, arg), nil
	case FactOf:
		arg, err := eval(x.Arg, env)
		if err != nil {
			return 0, err
		}

		return factorialValue(1, arg)
	case BinOp:
		l, err := eval(x.L, env)
		if err != nil {
			return 0, err
		}
		r, err := eval(x.R, env)
		if err != nil {
			return 0, err
		}
		switch x.Op {
		case Plus:
			return l + r, nil
		case Mul:
			return l * r, nil
		case Max:
			return math.Max(l, r), nil
		default:
			return math.Min(l, r), nil
		}
	case Conditional:
		// Worst case: the more expensive branch wins.
		t, err := eval(x.T, env)
		if err != nil {
			return 0, err
		}
		f, err := eval(x.F, env)
		if err != nil {
			return 0, err
		}

		return math.Max(t, f), nil
	case Special:
		return evalSpecial(x, env)
	case Probabilistic:
		return eval(x.Worst, env)
	case Amortized:
		return eval(x.Amortized, env)
	default:
		return 0, ErrNumeric
	}
}

// factorialValue computes k·v! through the gamma function, guarding the
// overflow edge (171! already exceeds float64).
func factorialValue(k, v float64) (float64, error) {
	if v < 0 {
		return 0, ErrNumeric
	}
	if v > 170 {
		return 0, ErrNumeric
	}

	return k * math.Gamma(v+1), nil
}
