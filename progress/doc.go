// Package progress defines the reporting contract between the solver
// pipeline and its caller: phase boundaries, per-recurrence events,
// severity-tagged warnings and a percentage stream.
//
// The pipeline calls a Reporter between stages only — never inside a
// numeric loop — so implementations may be arbitrarily slow without
// affecting solver complexity. Nop is the default sink for callers that
// do not care.
package progress
