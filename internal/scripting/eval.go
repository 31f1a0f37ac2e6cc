package scripting

import (
	"fmt"
	"math"
	"strings"
)

// ValueKind tags the evaluator's runtime values.
type ValueKind int

const (
	// KindNumber is a scalar float.
	KindNumber ValueKind = iota
	// KindString is a string literal.
	KindString
	// KindVector is a column of floats; comparisons yield 0/1 vectors.
	KindVector
)

// Value is the evaluator's runtime value.
type Value struct {
	Kind   ValueKind
	Num    float64
	Str    string
	Vector []float64
}

func number(v float64) Value   { return Value{Kind: KindNumber, Num: v} }
func str(s string) Value       { return Value{Kind: KindString, Str: s} }
func vector(v []float64) Value { return Value{Kind: KindVector, Vector: v} }

// String renders a value the way result text shows it.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindVector:
		if len(v.Vector) > 8 {
			return fmt.Sprintf("<vector of %d values>", len(v.Vector))
		}
		parts := make([]string, len(v.Vector))
		for i, x := range v.Vector {
			parts[i] = formatNum(x)
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return formatNum(v.Num)
	}
}

func formatNum(x float64) string {
	if math.IsNaN(x) {
		return "."
	}
	return fmt.Sprintf("%g", x)
}

// DataSource supplies dataset columns to the evaluator. Identifiers that are
// not session variables resolve to columns of the active dataset.
type DataSource interface {
	ColumnValues(name string) ([]float64, bool)
}

// Interp is the persistent evaluation context: a variable map that survives
// across commands in one session, seeded with the dataset handle.
type Interp struct {
	vars   map[string]Value
	source DataSource
}

// NewInterp creates an evaluator backed by the given data source, which may
// be nil for a pure calculator.
func NewInterp(source DataSource) *Interp {
	return &Interp{
		vars:   make(map[string]Value),
		source: source,
	}
}

// SetSource replaces the dataset backing for column lookups.
func (in *Interp) SetSource(source DataSource) { in.source = source }

// Var returns a session variable's value.
func (in *Interp) Var(name string) (Value, bool) {
	v, ok := in.vars[name]
	return v, ok
}

// VarNames returns the defined session variable names.
func (in *Interp) VarNames() []string {
	names := make([]string, 0, len(in.vars))
	for name := range in.vars {
		names = append(names, name)
	}
	return names
}

// Eval evaluates one statement and returns its printed output. Assignments
// store into the persistent context and print nothing.
func (in *Interp) Eval(src string) (string, error) {
	tree, err := parse(strings.TrimSpace(src))
	if err != nil {
		return "", err
	}
	if a, ok := tree.(assignNode); ok {
		v, err := in.evalNode(a.expr)
		if err != nil {
			return "", err
		}
		in.vars[a.name] = v
		return "", nil
	}
	v, err := in.evalNode(tree)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// EvalExpr evaluates an expression and returns its value, for commands
// (generate, replace) that need vectors rather than printed text.
func (in *Interp) EvalExpr(src string) (Value, error) {
	tree, err := parse(strings.TrimSpace(src))
	if err != nil {
		return Value{}, err
	}
	if _, ok := tree.(assignNode); ok {
		return Value{}, fmt.Errorf("assignment is not allowed here")
	}
	return in.evalNode(tree)
}

// Broadcast converts a value to a column of n floats: vectors must already
// have length n, numbers are repeated.
func Broadcast(v Value, n int) ([]float64, error) {
	switch v.Kind {
	case KindVector:
		if len(v.Vector) != n {
			return nil, fmt.Errorf("vector length %d does not match %d rows", len(v.Vector), n)
		}
		out := make([]float64, n)
		copy(out, v.Vector)
		return out, nil
	case KindNumber:
		out := make([]float64, n)
		for i := range out {
			out[i] = v.Num
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a numeric expression, got a string")
	}
}

func (in *Interp) evalNode(n node) (Value, error) {
	switch t := n.(type) {
	case numberNode:
		return number(float64(t)), nil
	case stringNode:
		return str(string(t)), nil
	case identNode:
		return in.resolve(string(t))
	case unaryNode:
		child, err := in.evalNode(t.child)
		if err != nil {
			return Value{}, err
		}
		switch t.op {
		case "-":
			return mapNumeric(child, func(x float64) float64 { return -x })
		case "!":
			return mapNumeric(child, func(x float64) float64 {
				if x == 0 {
					return 1
				}
				return 0
			})
		}
		return Value{}, fmt.Errorf("unknown unary operator %s", t.op)
	case binaryNode:
		return in.evalBinary(t)
	case callNode:
		return in.evalCall(t)
	default:
		return Value{}, fmt.Errorf("unexpected expression node %T", n)
	}
}

func (in *Interp) resolve(name string) (Value, error) {
	if v, ok := in.vars[name]; ok {
		return v, nil
	}
	if name == "pi" {
		return number(math.Pi), nil
	}
	if in.source != nil {
		if col, ok := in.source.ColumnValues(name); ok {
			return vector(col), nil
		}
	}
	return Value{}, fmt.Errorf("name %s is not defined", name)
}

func (in *Interp) evalBinary(b binaryNode) (Value, error) {
	left, err := in.evalNode(b.left)
	if err != nil {
		return Value{}, err
	}
	right, err := in.evalNode(b.right)
	if err != nil {
		return Value{}, err
	}

	if left.Kind == KindString || right.Kind == KindString {
		if b.op == "+" && left.Kind == KindString && right.Kind == KindString {
			return str(left.Str + right.Str), nil
		}
		if b.op == "==" && left.Kind == KindString && right.Kind == KindString {
			return number(boolNum(left.Str == right.Str)), nil
		}
		if b.op == "!=" && left.Kind == KindString && right.Kind == KindString {
			return number(boolNum(left.Str != right.Str)), nil
		}
		return Value{}, fmt.Errorf("operator %s is not defined for strings", b.op)
	}

	var fn func(x, y float64) float64
	switch b.op {
	case "+":
		fn = func(x, y float64) float64 { return x + y }
	case "-":
		fn = func(x, y float64) float64 { return x - y }
	case "*":
		fn = func(x, y float64) float64 { return x * y }
	case "/":
		fn = func(x, y float64) float64 { return x / y }
	case "^":
		fn = math.Pow
	case "<":
		fn = func(x, y float64) float64 { return boolNum(x < y) }
	case "<=":
		fn = func(x, y float64) float64 { return boolNum(x <= y) }
	case ">":
		fn = func(x, y float64) float64 { return boolNum(x > y) }
	case ">=":
		fn = func(x, y float64) float64 { return boolNum(x >= y) }
	case "==":
		fn = func(x, y float64) float64 { return boolNum(x == y) }
	case "!=":
		fn = func(x, y float64) float64 { return boolNum(x != y) }
	case "&":
		fn = func(x, y float64) float64 { return boolNum(x != 0 && y != 0) }
	case "|":
		fn = func(x, y float64) float64 { return boolNum(x != 0 || y != 0) }
	default:
		return Value{}, fmt.Errorf("unknown operator %s", b.op)
	}
	return zipNumeric(left, right, fn)
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func mapNumeric(v Value, fn func(float64) float64) (Value, error) {
	switch v.Kind {
	case KindNumber:
		return number(fn(v.Num)), nil
	case KindVector:
		out := make([]float64, len(v.Vector))
		for i, x := range v.Vector {
			out[i] = fn(x)
		}
		return vector(out), nil
	default:
		return Value{}, fmt.Errorf("expected a number, got a string")
	}
}

func zipNumeric(a, b Value, fn func(x, y float64) float64) (Value, error) {
	if a.Kind == KindNumber && b.Kind == KindNumber {
		return number(fn(a.Num, b.Num)), nil
	}
	if a.Kind == KindVector && b.Kind == KindVector && len(a.Vector) != len(b.Vector) {
		return Value{}, fmt.Errorf("vector lengths %d and %d do not match", len(a.Vector), len(b.Vector))
	}
	length := 0
	if a.Kind == KindVector {
		length = len(a.Vector)
	}
	if b.Kind == KindVector {
		length = len(b.Vector)
	}
	at := func(v Value, i int) float64 {
		if v.Kind == KindVector {
			return v.Vector[i]
		}
		return v.Num
	}
	out := make([]float64, length)
	for i := range out {
		out[i] = fn(at(a, i), at(b, i))
	}
	return vector(out), nil
}
