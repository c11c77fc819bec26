// Package expr: numeric evaluation of special-function nodes.
//
// Incomplete gamma/beta go through gonum's mathext; the polylogarithm and
// Gauss hypergeometric use their defining series with convergence guards;
// a SymbolicIntegral is integrated numerically with Gauss–Legendre
// quadrature. Non-representable points surface as ErrNumeric.
package expr

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mathext"
)

// Series evaluation limits.
const (
	// seriesMaxTerms caps Li and ₂F₁ series length.
	seriesMaxTerms = 10_000

	// seriesTol is the relative term size at which a series is converged.
	seriesTol = 1e-14

	// quadNodes is the Gauss–Legendre node count for symbolic integrals.
	quadNodes = 120
)

// evalSpecial evaluates a Special node at a concrete environment.
func evalSpecial(s Special, env map[string]float64) (float64, error) {
	switch s.Kind {
	case Polylogarithm:
		return evalPolylog(s, env)
	case IncompleteGamma:
		return evalIncGamma(s, env)
	case IncompleteBeta:
		return evalIncBeta(s, env)
	case Hypergeometric:
		return evalHypergeometric(s, env)
	default:
		return evalSymbolicIntegral(s, env)
	}
}

// evalArgs evaluates every argument of s under env.
func evalArgs(s Special, env map[string]float64) ([]float64, error) {
	out := make([]float64, len(s.Args))
	for i, a := range s.Args {
		v, err := eval(a, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// evalPolylog computes Li_s(z) = Σ_{k≥1} z^k / k^s for |z| ≤ 1.
// Li_s(1) = ζ(s) for s > 1 is delegated to mathext.Zeta.
func evalPolylog(sp Special, env map[string]float64) (float64, error) {
	args, err := evalArgs(sp, env)
	if err != nil {
		return 0, err
	}
	s, z := args[0], args[1]

	// 1) Boundary z=1 is the Riemann zeta for s>1, divergent otherwise.
	if z == 1 {
		if s <= 1 {
			return 0, ErrNumeric
		}

		return mathext.Zeta(s, 1), nil
	}
	// 2) The defining series only converges on |z| < 1.
	if math.Abs(z) >= 1 {
		return 0, ErrNumeric
	}

	// 3) Direct series with relative-tolerance stop.
	sum, zk := 0.0, 1.0
	for k := 1; k <= seriesMaxTerms; k++ {
		zk *= z
		term := zk / math.Pow(float64(k), s)
		sum += term
		if math.Abs(term) < seriesTol*(math.Abs(sum)+1) {
			return sum, nil
		}
	}

	return 0, ErrNumeric
}

// evalIncGamma computes the lower incomplete gamma γ(s, x) through the
// regularized P(s, x) = γ(s,x)/Γ(s).
func evalIncGamma(sp Special, env map[string]float64) (float64, error) {
	args, err := evalArgs(sp, env)
	if err != nil {
		return 0, err
	}
	s, x := args[0], args[1]
	if s <= 0 || x < 0 {
		return 0, ErrNumeric
	}
	lg, sign := math.Lgamma(s)
	if sign < 0 {
		return 0, ErrNumeric
	}
	val := mathext.GammaIncReg(s, x) * math.Exp(lg)
	if !finite(val) {
		return 0, ErrNumeric
	}

	return val, nil
}

// evalIncBeta computes the incomplete beta B(x; a, b) through the
// regularized I_x(a, b) and the complete beta B(a, b).
func evalIncBeta(sp Special, env map[string]float64) (float64, error) {
	args, err := evalArgs(sp, env)
	if err != nil {
		return 0, err
	}
	x, a, b := args[0], args[1], args[2]
	if a <= 0 || b <= 0 || x < 0 || x > 1 {
		return 0, ErrNumeric
	}
	la, s1 := math.Lgamma(a)
	lb, s2 := math.Lgamma(b)
	lab, s3 := math.Lgamma(a + b)
	if s1 < 0 || s2 < 0 || s3 < 0 {
		return 0, ErrNumeric
	}
	complete := math.Exp(la + lb - lab)
	val := mathext.RegIncBeta(a, b, x) * complete
	if !finite(val) {
		return 0, ErrNumeric
	}

	return val, nil
}

// evalHypergeometric computes ₂F₁(a, b; c; z) by the Gauss series for
// |z| < 1, with the Euler transform for z in (-1, 0) left to callers.
func evalHypergeometric(sp Special, env map[string]float64) (float64, error) {
	args, err := evalArgs(sp, env)
	if err != nil {
		return 0, err
	}
	a, b, c, z := args[0], args[1], args[2], args[3]
	if math.Abs(z) >= 1 {
		return 0, ErrNumeric
	}
	// c at a non-positive integer pole makes the series undefined.
	if c <= 0 && c == math.Trunc(c) {
		return 0, ErrNumeric
	}

	sum, term := 1.0, 1.0
	for k := 0; k < seriesMaxTerms; k++ {
		fk := float64(k)
		term *= (a + fk) * (b + fk) / (c + fk) * z / (fk + 1)
		sum += term
		if math.Abs(term) < seriesTol*(math.Abs(sum)+1) {
			return sum, nil
		}
	}

	return 0, ErrNumeric
}

// evalSymbolicIntegral integrates the integrand numerically over
// [lower, upper] with fixed-order Gauss–Legendre quadrature. Points where
// the integrand itself fails to evaluate poison the whole integral.
func evalSymbolicIntegral(sp Special, env map[string]float64) (float64, error) {
	lower, err := eval(sp.Args[1], env)
	if err != nil {
		return 0, err
	}
	upper, err := eval(sp.Args[2], env)
	if err != nil {
		return 0, err
	}
	if upper < lower {
		return 0, ErrNumeric
	}
	if upper == lower {
		return 0, nil
	}

	// Bind the integration variable on a copied environment; the closure
	// below is the only writer of its slot.
	inner := make(map[string]float64, len(env)+1)
	for k, v := range env {
		inner[k] = v
	}

	bad := false
	f := func(u float64) float64 {
		inner[sp.V.Name] = u
		val, evalErr := eval(sp.Args[0], inner)
		if evalErr != nil || !finite(val) {
			bad = true

			return 0
		}

		return val
	}

	val := quad.Fixed(f, lower, upper, quadNodes, nil, 0)
	if bad || !finite(val) {
		return 0, ErrNumeric
	}

	return val, nil
}
