// Package refine tightens and verifies a raw theorem solution:
//
//	RawSolution → BoundaryDetect → Perturbation? → SlackTighten →
//	InductionVerify → ConfidenceScore → Annotated
//
// 🚀 Stages:
//   - Boundary detection flags Master gaps, critical exponents near an
//     integer and log exponents near an integer (threshold 0.1 by
//     default) — the regimes where closed forms are least trustworthy.
//   - Perturbation expands the driving integral in a Taylor series
//     (order 3 by default, derivatives by finite differences) around the
//     flagged boundary and records terms plus a remainder bound.
//   - Slack tightening samples the recurrence against the candidate
//     bound at n ∈ {10, 100, 1 000, 10 000} and fits the smallest c₁, c₂
//     with c₁·f(n) ≤ T(n) ≤ c₂·f(n); a ratio ≥ 2 flags LooseBound.
//   - Induction verification is numerical always (base cases + ratio
//     stability at large n) and symbolic additionally when a cas.Bridge
//     is configured.
//   - Confidence combines the theorem's source weight with the
//     documented penalties and the consensus bonus
//     1 − (1−c₁)(1−c₂), capped at 0.99.
//
// Every stage appends a StageTrace row; the engine's output carries the
// full ordered list, so a caller can replay the derivation.
//
// A sample diverging from the candidate bound by more than 30% drops
// confidence below 0.5 and sets RequiresReview — a wrong bound must
// never look confident.
package refine
