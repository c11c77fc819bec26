// Package refine: numeric sampling of recurrences. The slack and
// induction stages compare the candidate bound against actual values of
// T(n), obtained by direct memoized unrolling from the base case.
package refine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/mutual"
	"github.com/katalvlaran/bigo/recurrence"
)

// errSample marks a failed probe; sampling failures degrade stages to
// "skipped" rather than failing the pipeline.
var errSample = fmt.Errorf("refine: sampling failed")

// sampler evaluates T(n) for one recurrence, memoizing sub-calls.
type sampler struct {
	eval func(n float64) (float64, error)
}

// newSampler builds the evaluator for any member of the sealed union.
// Mutual systems are reduced first; the reduced form carries the class.
func newSampler(rec recurrence.Recurrence) (*sampler, error) {
	switch r := rec.(type) {
	case recurrence.DivideAndConquer:
		return divideSampler(r), nil
	case recurrence.Linear:
		return linearSampler(r), nil
	case recurrence.Mutual:
		red, err := mutual.Reduce(r)
		if err != nil {
			return nil, err
		}
		if red.IsLinear() {
			return linearSampler(red.Linear), nil
		}

		return divideSampler(red.DivideAndConquer), nil
	default:
		return nil, errSample
	}
}

// divideSampler unrolls T(n) = Σ a·T(b·n) + g(n) down to n ≤ 1.
func divideSampler(rec recurrence.DivideAndConquer) *sampler {
	v := rec.Variable().Name
	terms := rec.Terms()
	g, base := rec.Work(), rec.Base()
	memo := make(map[float64]float64, 256)
	env := make(map[string]float64, 1)

	var walk func(x float64) (float64, error)
	walk = func(x float64) (float64, error) {
		if x <= 1 {
			env[v] = 1
			val, err := expr.Evaluate(base, env)
			if err != nil {
				return 0, errSample
			}

			return val, nil
		}
		if cached, ok := memo[x]; ok {
			return cached, nil
		}

		env[v] = x
		total, err := expr.Evaluate(g, env)
		if err != nil {
			return 0, errSample
		}
		for _, t := range terms {
			sub, subErr := walk(t.B * x)
			if subErr != nil {
				return 0, subErr
			}
			total += t.A * sub
		}
		if math.IsNaN(total) || math.IsInf(total, 0) {
			return 0, errSample
		}
		memo[x] = total

		return total, nil
	}

	return &sampler{eval: walk}
}

// linearSampler fills T(1..n) iteratively from the base case.
func linearSampler(rec recurrence.Linear) *sampler {
	v := rec.Variable().Name
	coeffs := rec.Coeffs()
	f, base := rec.Work(), rec.Base()
	table := make([]float64, 1, 1024)
	env := make(map[string]float64, 1)

	// Base value at n=1 seeds T(j) for every j ≤ order.
	env[v] = 1
	baseVal, baseErr := expr.Evaluate(base, env)

	return &sampler{eval: func(n float64) (float64, error) {
		if baseErr != nil {
			return 0, errSample
		}
		target := int(math.Round(n))
		if target < 1 {
			return baseVal, nil
		}
		for i := len(table); i <= target; i++ {
			if i <= len(coeffs) {
				table = append(table, baseVal)

				continue
			}
			env[v] = float64(i)
			total, err := expr.Evaluate(f, env)
			if err != nil {
				return 0, errSample
			}
			for j, c := range coeffs {
				if c != 0 {
					total += c * table[i-(j+1)]
				}
			}
			if math.IsNaN(total) || math.IsInf(total, 0) {
				return 0, errSample
			}
			table = append(table, total)
		}

		return table[target], nil
	}}
}

// boundAt evaluates the candidate bound at n, rejecting non-positive
// values (a bound must eventually dominate from above zero).
func boundAt(bound expr.Expr, v string, n float64) (float64, error) {
	val, err := expr.Evaluate(bound, map[string]float64{v: n})
	if err != nil || val <= 0 {
		return 0, errSample
	}

	return val, nil
}

// sampleGrids picks sampling grids that keep T(n) inside float64 for
// the candidate's growth class: exponential and factorial bounds get
// small n, everything else the documented decades.
func sampleGrids(cls expr.Classification) (slack, large []float64) {
	switch cls.Form {
	case expr.FormFactorial:
		return []float64{4, 6, 8, 10}, []float64{8, 10, 12, 14, 16}
	case expr.FormExponential:
		return []float64{8, 12, 16, 20}, []float64{20, 24, 28, 32, 36}
	default:
		return slackSamples, inductionLargeN
	}
}
