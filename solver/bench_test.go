package solver_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/bigo/expr"
	"github.com/katalvlaran/bigo/recurrence"
	"github.com/katalvlaran/bigo/solver"
)

// BenchmarkSolve_Master measures the single-term Master path including
// the Akra–Bazzi cross-validation.
func BenchmarkSolve_Master(b *testing.B) {
	v := expr.N("n")
	rec, err := recurrence.NewDivideAndConquer(
		[]recurrence.Term{{A: 2, B: 0.5}}, expr.NewLinear(1, v), expr.Constant{K: 1}, v)
	if err != nil {
		b.Fatal(err)
	}
	s := solver.New(solver.DefaultOptions())
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = s.Solve(ctx, rec); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSolve_AkraBazzi measures the multi-term Newton + integral
// path.
func BenchmarkSolve_AkraBazzi(b *testing.B) {
	v := expr.N("n")
	rec, err := recurrence.NewDivideAndConquer(
		[]recurrence.Term{{A: 1, B: 1.0 / 3}, {A: 1, B: 2.0 / 3}},
		expr.NewLinear(1, v), expr.Constant{K: 1}, v)
	if err != nil {
		b.Fatal(err)
	}
	s := solver.New(solver.DefaultOptions())
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = s.Solve(ctx, rec); err != nil {
			b.Fatal(err)
		}
	}
}
