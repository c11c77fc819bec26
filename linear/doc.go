// Package linear solves constant-coefficient linear recurrences
// T(n) = Σⱼ cⱼ·T(n−j) + f(n) by the characteristic-polynomial method.
//
// 🚀 Pipeline:
//
//	1. Pure-summation fast path: T(n) = T(n−1) + f(n) is Σ f(i),
//	   bounded by Θ(n·f(n)) for monotone f.
//	2. Characteristic polynomial x^k − c₁·x^{k−1} − … − cₖ; roots via
//	   the closed-form discriminant for k ≤ 2, companion-matrix
//	   eigendecomposition (gonum/mat) otherwise.
//	3. Roots grouped by proximity (tolerance 1e-7) to detect
//	   multiplicity.
//	4. Homogeneous bound from the dominant root r of multiplicity m:
//	   Θ(n^{m−1}·|r|ⁿ) for |r|>1, Θ(n^m) for |r|=1, dominated below.
//	5. Max-combination with the particular bound induced by f.
//
// ✨ Classic shapes:
//   - Fibonacci T(n)=T(n−1)+T(n−2) → Θ(φⁿ), φ the golden ratio.
//   - T(n)=4T(n−1)−4T(n−2) → repeated root 2 → Θ(n·2ⁿ).
//   - T(n)=T(n−1)+n^k → Θ(n^{k+1}).
//
// Complex dominant roots are reported by modulus with reduced
// confidence; the imaginary part only modulates the bound periodically.
package linear
