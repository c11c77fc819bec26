package expr_test

import (
	"fmt"

	"github.com/katalvlaran/bigo/expr"
)

// ExampleSimplify demonstrates like-term combination and the canonical
// PolyLog form produced by a product of a linear and a log factor.
func ExampleSimplify() {
	n := expr.N("n")

	sum := expr.Sum(expr.NewLinear(2, n), expr.NewLinear(3, n))
	fmt.Println(expr.Simplify(sum))

	prod := expr.Product(expr.NewLinear(1, n), expr.NewLogarithmic(1, n, 2))
	fmt.Println(expr.Simplify(prod))
	// Output:
	// 5·n
	// n·log₂(n)
}

// ExampleCompareAsymptotic demonstrates the growth order on a classic
// pair: n log n grows faster than n, slower than n².
func ExampleCompareAsymptotic() {
	n := expr.N("n")
	nLogN := expr.PolyLog{K: 1, V: n, PolyDeg: 1, LogExp: 1, Base: 2}

	fmt.Println(expr.CompareAsymptotic(nLogN, expr.NewLinear(1, n)))
	fmt.Println(expr.CompareAsymptotic(nLogN, expr.NewPolynomial(n, map[int]float64{2: 1})))
	// Output:
	// >
	// <
}

// ExampleBigO demonstrates normalization to the Big-O canonical form.
func ExampleBigO() {
	n := expr.N("n")
	cost := expr.Sum(
		expr.PolyLog{K: 3, V: n, PolyDeg: 1, LogExp: 1, Base: 2},
		expr.NewLinear(14, n),
		expr.Constant{K: 100},
	)

	fmt.Println(expr.BigO(cost))
	// Output:
	// n·log₂(n)
}
