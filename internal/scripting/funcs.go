package scripting

import (
	"fmt"
	"math"
	"sort"
)

// scalar functions applied elementwise to vectors
var scalarFuncs = map[string]func(float64) float64{
	"ln":    math.Log,
	"log":   math.Log,
	"log10": math.Log10,
	"exp":   math.Exp,
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"invlogit": func(x float64) float64 {
		return 1 / (1 + math.Exp(-x))
	},
}

// aggregate functions reducing a vector to a scalar
var aggFuncs = map[string]func([]float64) float64{
	"mean":   aggMean,
	"sum":    aggSum,
	"sd":     aggSD,
	"minval": func(v []float64) float64 { return aggExtreme(v, true) },
	"maxval": func(v []float64) float64 { return aggExtreme(v, false) },
	"count":  func(v []float64) float64 { return float64(countClean(v)) },
	"median": aggMedian,
}

func (in *Interp) evalCall(c callNode) (Value, error) {
	if fn, ok := scalarFuncs[c.fn]; ok {
		if len(c.args) != 1 {
			return Value{}, fmt.Errorf("%s expects 1 argument, got %d", c.fn, len(c.args))
		}
		arg, err := in.evalNode(c.args[0])
		if err != nil {
			return Value{}, err
		}
		return mapNumeric(arg, fn)
	}

	if fn, ok := aggFuncs[c.fn]; ok {
		if len(c.args) != 1 {
			return Value{}, fmt.Errorf("%s expects 1 argument, got %d", c.fn, len(c.args))
		}
		arg, err := in.evalNode(c.args[0])
		if err != nil {
			return Value{}, err
		}
		if arg.Kind != KindVector {
			return Value{}, fmt.Errorf("%s expects a variable, got a scalar", c.fn)
		}
		return number(fn(arg.Vector)), nil
	}

	switch c.fn {
	case "min", "max":
		if len(c.args) != 2 {
			return Value{}, fmt.Errorf("%s expects 2 arguments, got %d", c.fn, len(c.args))
		}
		a, err := in.evalNode(c.args[0])
		if err != nil {
			return Value{}, err
		}
		b, err := in.evalNode(c.args[1])
		if err != nil {
			return Value{}, err
		}
		if c.fn == "min" {
			return zipNumeric(a, b, math.Min)
		}
		return zipNumeric(a, b, math.Max)
	case "missing":
		if len(c.args) != 1 {
			return Value{}, fmt.Errorf("missing expects 1 argument, got %d", len(c.args))
		}
		arg, err := in.evalNode(c.args[0])
		if err != nil {
			return Value{}, err
		}
		return mapNumeric(arg, func(x float64) float64 { return boolNum(math.IsNaN(x)) })
	}

	return Value{}, fmt.Errorf("unknown function %s", c.fn)
}

func clean(v []float64) []float64 {
	out := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

func countClean(v []float64) int { return len(clean(v)) }

func aggSum(v []float64) float64 {
	var s float64
	for _, x := range clean(v) {
		s += x
	}
	return s
}

func aggMean(v []float64) float64 {
	c := clean(v)
	if len(c) == 0 {
		return math.NaN()
	}
	return aggSum(c) / float64(len(c))
}

func aggSD(v []float64) float64 {
	c := clean(v)
	if len(c) < 2 {
		return math.NaN()
	}
	m := aggMean(c)
	var ss float64
	for _, x := range c {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(c)-1))
}

func aggExtreme(v []float64, min bool) float64 {
	c := clean(v)
	if len(c) == 0 {
		return math.NaN()
	}
	out := c[0]
	for _, x := range c[1:] {
		if min && x < out || !min && x > out {
			out = x
		}
	}
	return out
}

func aggMedian(v []float64) float64 {
	c := clean(v)
	if len(c) == 0 {
		return math.NaN()
	}
	sort.Float64s(c)
	n := len(c)
	if n%2 == 1 {
		return c[n/2]
	}
	return (c[n/2-1] + c[n/2]) / 2
}
