// Package recurrence: the JSON wire form consumed from the upstream
// extractor. Decoding funnels through the validating constructors, so a
// decoded value is always well-formed.
package recurrence

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/bigo/expr"
)

// wireDivideAndConquer mirrors the canonical schema:
//
//	{ "variable": "n",
//	  "terms":  [ {"a": 2, "b": 0.5} ],
//	  "g":      <expression>,
//	  "base":   <expression> }
type wireDivideAndConquer struct {
	Variable string          `json:"variable"`
	Terms    []wireTerm      `json:"terms"`
	G        json.RawMessage `json:"g,omitempty"`
	Base     json.RawMessage `json:"base,omitempty"`
}

// wireTerm is one {"a": …, "b": …} entry.
type wireTerm struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// EncodeJSON renders r in the wire form.
func (r DivideAndConquer) EncodeJSON() ([]byte, error) {
	g, err := expr.EncodeJSON(r.g)
	if err != nil {
		return nil, err
	}
	base, err := expr.EncodeJSON(r.base)
	if err != nil {
		return nil, err
	}
	terms := make([]wireTerm, len(r.terms))
	for i, t := range r.terms {
		terms[i] = wireTerm{A: t.A, B: t.B}
	}

	return json.Marshal(wireDivideAndConquer{Variable: r.v.Name, Terms: terms, G: g, Base: base})
}

// DecodeDivideAndConquer parses and validates the wire form.
func DecodeDivideAndConquer(data []byte) (DivideAndConquer, error) {
	var w wireDivideAndConquer
	if err := json.Unmarshal(data, &w); err != nil {
		return DivideAndConquer{}, fmt.Errorf("recurrence: %w", err)
	}
	if w.Variable == "" {
		return DivideAndConquer{}, fmt.Errorf("missing variable: %w", ErrInconsistentVariable)
	}

	g, err := decodeExprOrZero(w.G)
	if err != nil {
		return DivideAndConquer{}, err
	}
	base, err := decodeExprOrDefault(w.Base, expr.Constant{K: 1})
	if err != nil {
		return DivideAndConquer{}, err
	}

	terms := make([]Term, len(w.Terms))
	for i, t := range w.Terms {
		terms[i] = Term{A: t.A, B: t.B}
	}

	return NewDivideAndConquer(terms, g, base, expr.N(w.Variable))
}

// wireLinear is {"variable":"n","coeffs":[c1..ck],"f":<expr>,"base":<expr>}.
type wireLinear struct {
	Variable string          `json:"variable"`
	Coeffs   []float64       `json:"coeffs"`
	F        json.RawMessage `json:"f,omitempty"`
	Base     json.RawMessage `json:"base,omitempty"`
}

// EncodeJSON renders r in the wire form.
func (r Linear) EncodeJSON() ([]byte, error) {
	f, err := expr.EncodeJSON(r.f)
	if err != nil {
		return nil, err
	}
	base, err := expr.EncodeJSON(r.base)
	if err != nil {
		return nil, err
	}

	return json.Marshal(wireLinear{Variable: r.v.Name, Coeffs: r.Coeffs(), F: f, Base: base})
}

// DecodeLinear parses and validates the wire form.
func DecodeLinear(data []byte) (Linear, error) {
	var w wireLinear
	if err := json.Unmarshal(data, &w); err != nil {
		return Linear{}, fmt.Errorf("recurrence: %w", err)
	}
	if w.Variable == "" {
		return Linear{}, fmt.Errorf("missing variable: %w", ErrInconsistentVariable)
	}

	f, err := decodeExprOrZero(w.F)
	if err != nil {
		return Linear{}, err
	}
	base, err := decodeExprOrDefault(w.Base, expr.Constant{K: 1})
	if err != nil {
		return Linear{}, err
	}

	return NewLinear(w.Coeffs, f, base, expr.N(w.Variable))
}

// decodeExprOrZero decodes an optional expression member, defaulting to 0.
func decodeExprOrZero(raw json.RawMessage) (expr.Expr, error) {
	return decodeExprOrDefault(raw, expr.Constant{K: 0})
}

// decodeExprOrDefault decodes an optional expression member.
func decodeExprOrDefault(raw json.RawMessage, def expr.Expr) (expr.Expr, error) {
	if len(raw) == 0 {
		return def, nil
	}

	return expr.DecodeJSON(raw)
}
