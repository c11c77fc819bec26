// Package expr: the JSON wire form. One object per variant with the
// "kind" discriminator; field names mirror the struct fields. Decoding is
// strict about the discriminator and required members — an unknown kind
// or a missing operand is ErrBadJSON, never a zero-value node.
package expr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBadJSON indicates a wire object that does not decode into a variant.
var ErrBadJSON = errors.New("expr: malformed expression JSON")

// jsonNode is the union envelope: the superset of all variant fields.
type jsonNode struct {
	Kind string `json:"kind"`

	K       float64   `json:"k,omitempty"`
	Name    string    `json:"name,omitempty"`
	VarKind *VarKind  `json:"varKind,omitempty"`
	Var     *jsonNode `json:"var,omitempty"`

	Coeffs  map[string]float64 `json:"coeffs,omitempty"`
	Base    float64            `json:"base,omitempty"`
	PolyDeg float64            `json:"polyDeg,omitempty"`
	LogExp  float64            `json:"logExp,omitempty"`
	Exp     float64            `json:"exp,omitempty"`

	L  *jsonNode `json:"l,omitempty"`
	R  *jsonNode `json:"r,omitempty"`
	Op string    `json:"op,omitempty"`

	Label string    `json:"label,omitempty"`
	T     *jsonNode `json:"t,omitempty"`
	F     *jsonNode `json:"f,omitempty"`

	Arg  *jsonNode   `json:"arg,omitempty"`
	Args []*jsonNode `json:"args,omitempty"`

	Special string    `json:"fn,omitempty"`
	Bound   *jsonNode `json:"bound,omitempty"`

	Expected     *jsonNode `json:"expected,omitempty"`
	Worst        *jsonNode `json:"worst,omitempty"`
	Best         *jsonNode `json:"best,omitempty"`
	Source       string    `json:"source,omitempty"`
	Distribution string    `json:"distribution,omitempty"`
	Variance     *jsonNode `json:"variance,omitempty"`
	HighProb     *jsonNode `json:"highProbBound,omitempty"`
	Assumptions  []string  `json:"assumptions,omitempty"`

	Amortized *jsonNode `json:"amortized,omitempty"`
	WorstCase *jsonNode `json:"worstCase,omitempty"`
	Method    string    `json:"method,omitempty"`
	Potential *jsonNode `json:"potential,omitempty"`
}

// EncodeJSON renders e in the wire form.
func EncodeJSON(e Expr) ([]byte, error) {
	return json.Marshal(toNode(e))
}

// DecodeJSON parses the wire form back into an expression.
func DecodeJSON(data []byte) (Expr, error) {
	var n jsonNode
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadJSON, err)
	}

	return fromNode(&n)
}

// toNode lowers an expression into the envelope.
func toNode(e Expr) *jsonNode {
	if e == nil {
		return nil
	}
	switch x := e.(type) {
	case Constant:
		return &jsonNode{Kind: "constant", K: x.K}
	case Var:
		vk := x.Kind

		return &jsonNode{Kind: "var", Name: x.Name, VarKind: &vk}
	case Linear:
		return &jsonNode{Kind: "linear", K: x.K, Var: toNode(x.V)}
	case Polynomial:
		coeffs := make(map[string]float64, len(x.Terms))
		for _, t := range x.Terms {
			coeffs[fmt.Sprintf("%d", t.Deg)] = t.Coef
		}

		return &jsonNode{Kind: "polynomial", Var: toNode(x.V), Coeffs: coeffs}
	case Logarithmic:
		return &jsonNode{Kind: "logarithmic", K: x.K, Var: toNode(x.V), Base: x.Base}
	case PolyLog:
		return &jsonNode{Kind: "polylog", K: x.K, Var: toNode(x.V), PolyDeg: x.PolyDeg, LogExp: x.LogExp, Base: x.Base}
	case Exponential:
		return &jsonNode{Kind: "exponential", K: x.K, Var: toNode(x.V), Base: x.Base}
	case Factorial:
		return &jsonNode{Kind: "factorial", K: x.K, Var: toNode(x.V)}
	case Power:
		return &jsonNode{Kind: "power", Arg: toNode(x.Base), Exp: x.Exp}
	case LogOf:
		return &jsonNode{Kind: "logOf", Arg: toNode(x.Arg), Base: x.Base}
	case ExpOf:
		return &jsonNode{Kind: "expOf", Arg: toNode(x.Arg), Base: x.Base}
	case FactOf:
		return &jsonNode{Kind: "factOf", Arg: toNode(x.Arg)}
	case BinOp:
		return &jsonNode{Kind: "binop", L: toNode(x.L), R: toNode(x.R), Op: x.Op.String()}
	case Conditional:
		return &jsonNode{Kind: "conditional", Label: x.Label, T: toNode(x.T), F: toNode(x.F)}
	case Special:
		args := make([]*jsonNode, len(x.Args))
		for i, a := range x.Args {
			args[i] = toNode(a)
		}

		return &jsonNode{Kind: "special", Special: specialName(x.Kind), Args: args, Var: toNode(x.V), Bound: toNode(x.Bound)}
	case Probabilistic:
		return &jsonNode{
			Kind:         "probabilistic",
			Expected:     toNode(x.Expected),
			Worst:        toNode(x.Worst),
			Best:         toNode(x.Best),
			Source:       x.Source,
			Distribution: x.Distribution,
			Variance:     toNode(x.Variance),
			HighProb:     toNode(x.HighProb),
			Assumptions:  x.Assumptions,
		}
	case Amortized:
		return &jsonNode{
			Kind:      "amortized",
			Amortized: toNode(x.Amortized),
			WorstCase: toNode(x.WorstCase),
			Method:    x.Method.String(),
			Potential: toNode(x.Potential),
		}
	default:
		return &jsonNode{Kind: "constant"}
	}
}

// specialName maps a SpecialKind onto its wire tag.
func specialName(k SpecialKind) string {
	switch k {
	case Polylogarithm:
		return "polylogarithm"
	case IncompleteGamma:
		return "incompleteGamma"
	case IncompleteBeta:
		return "incompleteBeta"
	case Hypergeometric:
		return "hypergeometric"
	default:
		return "symbolicIntegral"
	}
}

// fromNode raises an envelope back into an expression.
func fromNode(n *jsonNode) (Expr, error) {
	if n == nil {
		return nil, ErrBadJSON
	}
	switch n.Kind {
	case "constant":
		if n.K < 0 {
			return nil, fmt.Errorf("%w: negative constant", ErrBadJSON)
		}

		return Constant{K: n.K}, nil
	case "var":
		kind := KindCustom
		if n.VarKind != nil {
			kind = *n.VarKind
		}
		if n.Name == "" {
			return nil, fmt.Errorf("%w: var without name", ErrBadJSON)
		}

		return Var{Name: n.Name, Kind: kind}, nil
	case "linear":
		v, err := decodeVar(n.Var)
		if err != nil {
			return nil, err
		}

		return Linear{K: n.K, V: v}, nil
	case "polynomial":
		v, err := decodeVar(n.Var)
		if err != nil {
			return nil, err
		}
		coeffs := make(map[int]float64, len(n.Coeffs))
		for degStr, c := range n.Coeffs {
			var deg int
			if _, err = fmt.Sscanf(degStr, "%d", &deg); err != nil {
				return nil, fmt.Errorf("%w: bad polynomial degree %q", ErrBadJSON, degStr)
			}
			coeffs[deg] = c
		}

		return NewPolynomial(v, coeffs), nil
	case "logarithmic":
		v, err := decodeVar(n.Var)
		if err != nil {
			return nil, err
		}
		if n.Base <= 1 {
			return nil, fmt.Errorf("%w: %w", ErrBadJSON, ErrBadBase)
		}

		return Logarithmic{K: n.K, V: v, Base: n.Base}, nil
	case "polylog":
		v, err := decodeVar(n.Var)
		if err != nil {
			return nil, err
		}
		if n.Base <= 1 {
			return nil, fmt.Errorf("%w: %w", ErrBadJSON, ErrBadBase)
		}

		return PolyLog{K: n.K, V: v, PolyDeg: n.PolyDeg, LogExp: n.LogExp, Base: n.Base}, nil
	case "exponential":
		v, err := decodeVar(n.Var)
		if err != nil {
			return nil, err
		}
		if n.Base <= 1 {
			return nil, fmt.Errorf("%w: %w", ErrBadJSON, ErrBadBase)
		}

		return Exponential{Base: n.Base, V: v, K: n.K}, nil
	case "factorial":
		v, err := decodeVar(n.Var)
		if err != nil {
			return nil, err
		}

		return Factorial{V: v, K: n.K}, nil
	case "power":
		base, err := fromNode(n.Arg)
		if err != nil {
			return nil, err
		}

		return Power{Base: base, Exp: n.Exp}, nil
	case "logOf":
		arg, err := fromNode(n.Arg)
		if err != nil {
			return nil, err
		}
		if n.Base <= 1 {
			return nil, fmt.Errorf("%w: %w", ErrBadJSON, ErrBadBase)
		}

		return LogOf{Arg: arg, Base: n.Base}, nil
	case "expOf":
		arg, err := fromNode(n.Arg)
		if err != nil {
			return nil, err
		}
		if n.Base <= 1 {
			return nil, fmt.Errorf("%w: %w", ErrBadJSON, ErrBadBase)
		}

		return ExpOf{Base: n.Base, Arg: arg}, nil
	case "factOf":
		arg, err := fromNode(n.Arg)
		if err != nil {
			return nil, err
		}

		return FactOf{Arg: arg}, nil
	case "binop":
		l, err := fromNode(n.L)
		if err != nil {
			return nil, err
		}
		r, err := fromNode(n.R)
		if err != nil {
			return nil, err
		}
		op, err := decodeOp(n.Op)
		if err != nil {
			return nil, err
		}

		return BinOp{L: l, Op: op, R: r}, nil
	case "conditional":
		t, err := fromNode(n.T)
		if err != nil {
			return nil, err
		}
		f, err := fromNode(n.F)
		if err != nil {
			return nil, err
		}

		return Conditional{Label: n.Label, T: t, F: f}, nil
	case "special":
		return decodeSpecial(n)
	case "probabilistic":
		expected, err := fromNode(n.Expected)
		if err != nil {
			return nil, err
		}
		worst, err := fromNode(n.Worst)
		if err != nil {
			return nil, err
		}
		best, err := fromNodeOrNil(n.Best)
		if err != nil {
			return nil, err
		}
		variance, err := fromNodeOrNil(n.Variance)
		if err != nil {
			return nil, err
		}
		hp, err := fromNodeOrNil(n.HighProb)
		if err != nil {
			return nil, err
		}

		return Probabilistic{
			Expected:     expected,
			Worst:        worst,
			Best:         best,
			Source:       n.Source,
			Distribution: n.Distribution,
			Variance:     variance,
			HighProb:     hp,
			Assumptions:  n.Assumptions,
		}, nil
	case "amortized":
		amort, err := fromNode(n.Amortized)
		if err != nil {
			return nil, err
		}
		worst, err := fromNode(n.WorstCase)
		if err != nil {
			return nil, err
		}
		pot, err := fromNodeOrNil(n.Potential)
		if err != nil {
			return nil, err
		}
		method, err := decodeMethod(n.Method)
		if err != nil {
			return nil, err
		}

		return Amortized{Amortized: amort, WorstCase: worst, Method: method, Potential: pot}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrBadJSON, n.Kind)
	}
}

// fromNodeOrNil decodes an optional member.
func fromNodeOrNil(n *jsonNode) (Expr, error) {
	if n == nil {
		return nil, nil
	}

	return fromNode(n)
}

// decodeVar decodes a required Var member.
func decodeVar(n *jsonNode) (Var, error) {
	if n == nil {
		return Var{}, fmt.Errorf("%w: missing variable", ErrBadJSON)
	}
	e, err := fromNode(n)
	if err != nil {
		return Var{}, err
	}
	v, ok := e.(Var)
	if !ok {
		return Var{}, fmt.Errorf("%w: variable slot holds %T", ErrBadJSON, e)
	}

	return v, nil
}

// decodeOp decodes a binary operator tag.
func decodeOp(s string) (Op, error) {
	switch s {
	case "+", "plus":
		return Plus, nil
	case "*", "mul":
		return Mul, nil
	case "max":
		return Max, nil
	case "min":
		return Min, nil
	default:
		return Plus, fmt.Errorf("%w: unknown operator %q", ErrBadJSON, s)
	}
}

// decodeMethod decodes an amortization method tag.
func decodeMethod(s string) (AmortMethod, error) {
	switch s {
	case "aggregate":
		return Aggregate, nil
	case "accounting":
		return Accounting, nil
	case "potential":
		return Potential, nil
	default:
		return Aggregate, fmt.Errorf("%w: unknown amortization method %q", ErrBadJSON, s)
	}
}

// decodeSpecial decodes a special-function envelope with arity checks.
func decodeSpecial(n *jsonNode) (Expr, error) {
	var kind SpecialKind
	var arity int
	switch n.Special {
	case "polylogarithm":
		kind, arity = Polylogarithm, 2
	case "incompleteGamma":
		kind, arity = IncompleteGamma, 2
	case "incompleteBeta":
		kind, arity = IncompleteBeta, 3
	case "hypergeometric":
		kind, arity = Hypergeometric, 4
	case "symbolicIntegral":
		kind, arity = SymbolicIntegral, 3
	default:
		return nil, fmt.Errorf("%w: unknown special function %q", ErrBadJSON, n.Special)
	}
	if len(n.Args) != arity {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", ErrBadJSON, n.Special, arity, len(n.Args))
	}
	args := make([]Expr, arity)
	for i, a := range n.Args {
		arg, err := fromNode(a)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	bound, err := fromNodeOrNil(n.Bound)
	if err != nil {
		return nil, err
	}
	sp := Special{Kind: kind, Args: args, Bound: bound}
	if kind == SymbolicIntegral {
		v, err := decodeVar(n.Var)
		if err != nil {
			return nil, err
		}
		sp.V = v
	}

	return sp, nil
}
