// Package recurrence: human-readable rendering for progress events and
// derivation traces.
package recurrence

import (
	"fmt"
	"strings"
)

// Describe renders T(n) = Σ aᵢ·T(bᵢ·n) + g(n).
func (r DivideAndConquer) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "T(%s) = ", r.v.Name)
	for i, t := range r.terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		if t.A != 1 {
			fmt.Fprintf(&b, "%g·", t.A)
		}
		fmt.Fprintf(&b, "T(%g·%s)", t.B, r.v.Name)
	}
	fmt.Fprintf(&b, " + %s", r.g)

	return b.String()
}

// Describe renders T(n) = Σ cⱼ·T(n−j) + f(n).
func (r Linear) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "T(%s) = ", r.v.Name)
	wrote := false
	for j, c := range r.coeffs {
		if c == 0 {
			continue
		}
		if wrote {
			b.WriteString(" + ")
		}
		if c != 1 {
			fmt.Fprintf(&b, "%g·", c)
		}
		fmt.Fprintf(&b, "T(%s−%d)", r.v.Name, j+1)
		wrote = true
	}
	fmt.Fprintf(&b, " + %s", r.f)

	return b.String()
}

// Describe renders the cycle M₁ → … → Mₖ → M₁.
func (m Mutual) Describe() string {
	names := make([]string, 0, len(m.components)+1)
	for _, c := range m.components {
		names = append(names, c.Name)
	}
	if len(names) > 0 {
		names = append(names, names[0])
	}

	return fmt.Sprintf("mutual cycle %s over %s", strings.Join(names, " → "), m.v.Name)
}
