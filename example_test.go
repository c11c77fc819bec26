package bigo_test

import (
	"context"
	"fmt"

	bigo "github.com/katalvlaran/bigo"
	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/recurrence"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleAnalyze_mergesort
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	The canonical divide-and-conquer recurrence of mergesort:
//	  T(n) = 2·T(n/2) + n
//
// Expectation:
//
//	Master Theorem Case 2 fires (k = d = 1), giving Θ(n log n); the
//	refinement pipeline verifies the bound numerically and keeps the
//	confidence high.
func ExampleAnalyze_mergesort() {
	n := expr.N("n")
	rec, err := recurrence.NewDivideAndConquer(
		[]recurrence.Term{{A: 2, B: 0.5}},
		expr.NewLinear(1, n),
		expr.Constant{K: 1},
		n,
	)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	res, err := bigo.Analyze(context.Background(), rec, bigo.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("solution=%s\ntheorem=%s\nreview=%v\n", res.Solution, res.Theorem, res.RequiresReview)
	// Output:
	// solution=n·log₂(n)
	// theorem=Master:Case2
	// review=false
}

// ExampleAnalyze_fibonacci solves the linear recurrence of naive
// Fibonacci, whose bound is the golden-ratio exponential.
func ExampleAnalyze_fibonacci() {
	n := expr.N("n")
	rec, err := recurrence.NewLinear(
		[]float64{1, 1},
		expr.Constant{K: 0},
		expr.Constant{K: 1},
		n,
	)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	res, err := bigo.Analyze(context.Background(), rec, bigo.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	cls := expr.Classify(res.Solution, "n")
	fmt.Printf("theorem=%s\nbase=%.4f\n", res.Theorem, cls.ExpBase)
	// Output:
	// theorem=Linear
	// base=1.6180
}
