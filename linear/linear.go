// Package linear: the characteristic-polynomial solver.
package linear

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/recurrence"
	"gonum.org/v1/gonum/mat"
)

// Numeric policy of the root analysis.
const (
	// RootGroupTol is the proximity at which two eigenvalues count as
	// one root with raised multiplicity.
	RootGroupTol = 1e-7

	// unitModulusTol separates |r|>1 growth from the |r|=1 polynomial
	// regime.
	unitModulusTol = 1e-9

	// Confidence per dominant-root shape.
	confidenceRealDominant    = 0.95
	confidenceComplexDominant = 0.85
)

// ErrEigenFailed indicates the companion-matrix eigendecomposition did
// not converge; practically unreachable for the small orders seen here.
var ErrEigenFailed = errors.New("linear: eigendecomposition failed")

// Root is one distinct characteristic root with its multiplicity.
type Root struct {
	Value        complex128
	Multiplicity int
}

// Solution is the solver's result record.
type Solution struct {
	// Bound is the Big-Θ bound of T, in Big-O canonical form.
	Bound expr.Expr

	// Roots are the distinct characteristic roots, dominant first.
	Roots []Root

	// DominantReal reports whether the dominant root is (numerically)
	// real; complex dominants lower Confidence.
	DominantReal bool

	// Summation marks the pure-summation fast path T(n)=T(n-1)+f(n).
	Summation bool

	// Explanation is the human-readable derivation.
	Explanation string

	// Confidence per the dominant-root shape.
	Confidence float64
}

// Solve bounds T(n) = Σ cⱼ·T(n−j) + f(n).
func Solve(rec recurrence.Linear) (Solution, error) {
	coeffs := rec.Coeffs()
	f := expr.Simplify(rec.Work())
	v := rec.Variable()

	// 1) Pure summation: T(n) = T(n−1) + f(n) = Σ f(i).
	if len(coeffs) == 1 && coeffs[0] == 1 {
		return solveSummation(f, v), nil
	}

	// 2) Characteristic roots.
	roots, err := characteristicRoots(coeffs)
	if err != nil {
		return Solution{}, err
	}

	// 3) Group into distinct roots with multiplicities, dominant first.
	grouped := groupRoots(roots)

	// 4) Homogeneous bound from the dominant root.
	dominant := grouped[0]
	homog, note := homogeneousBound(dominant, v)

	// 5) Max-combine with the particular bound induced by f.
	bound := homog
	if !isZero(f) {
		particular := expr.BigO(f)
		if expr.CompareAsymptotic(particular, homog) == expr.OrderGreater {
			bound = particular
			note += "; the non-recursive work dominates the homogeneous solution"
		}
	}

	isReal := math.Abs(imag(dominant.Value)) <= RootGroupTol
	conf := confidenceRealDominant
	if !isReal {
		conf = confidenceComplexDominant
		note += "; dominant root is complex, bound follows its modulus"
	}

	return Solution{
		Bound:        expr.BigO(bound),
		Roots:        grouped,
		DominantReal: isReal,
		Explanation: fmt.Sprintf("characteristic roots %s; dominant |r|=%.6g with multiplicity %d: %s",
			formatRoots(grouped), cmplx.Abs(dominant.Value), dominant.Multiplicity, note),
		Confidence: conf,
	}, nil
}

// solveSummation bounds Σ f(i) by n·f(n) (tight for monotone f).
func solveSummation(f expr.Expr, v expr.Var) Solution {
	if isZero(f) {
		return Solution{
			Bound:       expr.Constant{K: 1},
			Summation:   true,
			Explanation: "T(n)=T(n-1) with zero work stays at the base case: Θ(1)",
			Confidence:  confidenceRealDominant,
		}
	}

	bound := expr.BigO(expr.Product(expr.NewLinear(1, v), f))

	return Solution{
		Bound:       bound,
		Roots:       []Root{{Value: 1, Multiplicity: 1}},
		DominantReal: true,
		Summation:   true,
		Explanation: "pure summation T(n)=T(n-1)+f(n): Σ f(i) is bounded by n·f(n) for monotone f",
		Confidence:  confidenceRealDominant,
	}
}

// characteristicRoots finds all roots of x^k − c₁x^{k−1} − … − cₖ.
func characteristicRoots(coeffs []float64) ([]complex128, error) {
	k := len(coeffs)
	switch k {
	case 1:
		return []complex128{complex(coeffs[0], 0)}, nil
	case 2:
		// Quadratic fast path: x² − c₁x − c₂ by the discriminant.
		c1, c2 := coeffs[0], coeffs[1]
		disc := complex(c1*c1+4*c2, 0)
		sq := cmplx.Sqrt(disc)
		half := complex(0.5, 0)

		return []complex128{half * (complex(c1, 0) + sq), half * (complex(c1, 0) - sq)}, nil
	default:
		return companionEigenvalues(coeffs)
	}
}

// companionEigenvalues builds the k×k companion matrix of the
// characteristic polynomial and returns its eigenvalues.
//
//	⎡ c₁ c₂ … cₖ ⎤
//	⎢ 1  0 …  0 ⎥
//	⎢    ⋱      ⎥
//	⎣ 0 …  1  0 ⎦
func companionEigenvalues(coeffs []float64) ([]complex128, error) {
	k := len(coeffs)
	companion := mat.NewDense(k, k, nil)
	for j, c := range coeffs {
		companion.Set(0, j, c)
	}
	for i := 1; i < k; i++ {
		companion.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return nil, ErrEigenFailed
	}

	return eig.Values(nil), nil
}

// groupRoots merges eigenvalues within RootGroupTol into multiplicity
// groups and sorts descending by modulus (dominant first).
func groupRoots(values []complex128) []Root {
	var groups []Root
	for _, val := range values {
		placed := false
		for i := range groups {
			if cmplx.Abs(groups[i].Value-val) < RootGroupTol {
				groups[i].Multiplicity++
				placed = true

				break
			}
		}
		if !placed {
			groups = append(groups, Root{Value: val, Multiplicity: 1})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return cmplx.Abs(groups[i].Value) > cmplx.Abs(groups[j].Value)
	})

	return groups
}

// homogeneousBound turns the dominant root into the asymptotic bound of
// the homogeneous solution.
func homogeneousBound(dominant Root, v expr.Var) (expr.Expr, string) {
	modulus := cmplx.Abs(dominant.Value)
	m := dominant.Multiplicity

	switch {
	case modulus > 1+unitModulusTol:
		// Θ(n^{m−1}·|r|ⁿ).
		var b expr.Expr = expr.Exponential{Base: modulus, V: v, K: 1}
		if m > 1 {
			b = expr.Simplify(expr.Product(
				expr.PolyLog{K: 1, V: v, PolyDeg: float64(m - 1), LogExp: 0, Base: 2}, b))
		}

		return b, fmt.Sprintf("exponential growth Θ(n^%d·%.6g^n)", m-1, modulus)
	case modulus >= 1-unitModulusTol:
		// Θ(n^m).
		return expr.Simplify(expr.PolyLog{K: 1, V: v, PolyDeg: float64(m), LogExp: 0, Base: 2}),
			fmt.Sprintf("unit-modulus root of multiplicity %d gives polynomial growth Θ(n^%d)", m, m)
	default:
		// |r| < 1: the homogeneous part decays.
		return expr.Constant{K: 1}, "dominant root inside the unit disk: homogeneous part is Θ(1)"
	}
}

// isZero reports a literal zero after simplification.
func isZero(e expr.Expr) bool {
	c, ok := e.(expr.Constant)

	return ok && c.K == 0
}

// formatRoots renders the distinct roots for explanations.
func formatRoots(roots []Root) string {
	out := ""
	for i, r := range roots {
		if i > 0 {
			out += ", "
		}
		if math.Abs(imag(r.Value)) <= RootGroupTol {
			out += fmt.Sprintf("%.6g", real(r.Value))
		} else {
			out += fmt.Sprintf("%.4g%+.4gi", real(r.Value), imag(r.Value))
		}
		if r.Multiplicity > 1 {
			out += fmt.Sprintf(" (×%d)", r.Multiplicity)
		}
	}

	return out
}
