// Package builtin implements the data-management, reporting, and utility
// commands of statshell. Each command registers itself with the global
// command registry at package initialization.
package builtin

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"statshell/internal/context"
	"statshell/internal/dataset"
	"statshell/internal/scripting"
	"statshell/internal/services"
	"statshell/pkg/stattypes"
)

// sessionContext narrows the context interface back to the concrete session
// type for commands that need the full dataset store.
func sessionContext(ctx stattypes.Context) (*context.SessionContext, error) {
	sc, ok := ctx.(*context.SessionContext)
	if !ok {
		return nil, fmt.Errorf("internal error: unsupported context type %T", ctx)
	}
	return sc, nil
}

// activeData returns the concrete active dataset.
func activeData(ctx stattypes.Context) (*dataset.Dataset, error) {
	sc, err := sessionContext(ctx)
	if err != nil {
		return nil, err
	}
	return sc.ActiveData()
}

// observationMask evaluates an if-qualifier expression to one boolean per
// row of the dataset. Missing results count as false.
func observationMask(ds *dataset.Dataset, expr string) ([]bool, error) {
	eval, err := services.GetEvaluatorService()
	if err != nil {
		return nil, err
	}
	value, err := eval.Interp().EvalExpr(expr)
	if err != nil {
		return nil, err
	}
	col, err := scripting.Broadcast(value, ds.NumRows())
	if err != nil {
		return nil, err
	}
	mask := make([]bool, len(col))
	for i, v := range col {
		mask[i] = v != 0 && !math.IsNaN(v)
	}
	return mask, nil
}

// varList splits a whitespace-separated variable list and checks every name
// against the dataset. An empty list expands to all columns.
func varList(ds *dataset.Dataset, text string) ([]string, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ds.ColumnNames(), nil
	}
	for _, name := range fields {
		if !ds.HasColumn(name) {
			return nil, fmt.Errorf("variable %s not found", name)
		}
	}
	return fields, nil
}

// byGroups parses a by() option into group variable names, validated against
// the dataset. Returns nil when the option is absent.
func byGroups(ds *dataset.Dataset, options stattypes.OptionSet) ([]string, error) {
	text, ok := options.Value("by")
	if !ok {
		return nil, nil
	}
	vars := strings.Fields(strings.ReplaceAll(text, ",", " "))
	if len(vars) == 0 {
		return nil, fmt.Errorf("by() requires at least one variable")
	}
	for _, name := range vars {
		if !ds.HasColumn(name) {
			return nil, fmt.Errorf("by() variable %s not found", name)
		}
	}
	return vars, nil
}

// fmtCell renders a numeric value for tabular output; missing shows as ".".
func fmtCell(v float64) string {
	if math.IsNaN(v) {
		return "."
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.4f", v)
}

// describeStats computes the summarize row for one variable.
type describeStats struct {
	n        int
	mean, sd float64
	min, max float64
}

func summaryOf(values []float64) describeStats {
	var s describeStats
	s.min = math.NaN()
	s.max = math.NaN()
	var sum float64
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if s.n == 0 || v < s.min {
			s.min = v
		}
		if s.n == 0 || v > s.max {
			s.max = v
		}
		sum += v
		s.n++
	}
	if s.n == 0 {
		s.mean = math.NaN()
		s.sd = math.NaN()
		return s
	}
	s.mean = sum / float64(s.n)
	if s.n < 2 {
		s.sd = math.NaN()
		return s
	}
	var ss float64
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		d := v - s.mean
		ss += d * d
	}
	s.sd = math.Sqrt(ss / float64(s.n-1))
	return s
}

// percentile returns the p-th percentile of the non-missing values using
// nearest-rank interpolation.
func percentile(values []float64, p float64) float64 {
	var clean []float64
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN()
	}
	sort.Float64s(clean)
	pos := p / 100 * float64(len(clean)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return clean[lo]
	}
	frac := pos - float64(lo)
	return clean[lo]*(1-frac) + clean[hi]*frac
}

// table renders rows of cells with left-aligned first column and
// right-aligned numeric columns, separated by two spaces.
func table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
			} else {
				sb.WriteString(fmt.Sprintf("%*s", widths[i], cell))
			}
		}
		sb.WriteString("\n")
	}
	writeRow(header)
	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	sb.WriteString(strings.Repeat("-", total) + "\n")
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimRight(sb.String(), "\n")
}
