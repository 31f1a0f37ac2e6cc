package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// GroupKey joins the key column values of one row; keys are opaque and only
// compared for equality and ordering.
const groupKeySep = "\x1f"

// GroupIndices partitions row indices by the values of the key columns.
// The returned keys are in first-appearance order.
func (d *Dataset) GroupIndices(by []string) (map[string][]int, []string, error) {
	for _, key := range by {
		if !d.HasColumn(key) {
			return nil, nil, fmt.Errorf("variable %s not found", key)
		}
	}
	groups := make(map[string][]int)
	var order []string
	for row := 0; row < d.rows; row++ {
		parts := make([]string, len(by))
		for i, key := range by {
			parts[i] = d.CellString(key, row)
		}
		k := strings.Join(parts, groupKeySep)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], row)
	}
	return groups, order, nil
}

// Aggregate computes a named statistic over values, skipping NaN entries.
// Supported: mean, sum, count, min, max, sd, median, first, last.
func Aggregate(values []float64, stat string) (float64, error) {
	var clean []float64
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN(), nil
	}
	switch stat {
	case "count", "n":
		return float64(len(clean)), nil
	case "first":
		return clean[0], nil
	case "last":
		return clean[len(clean)-1], nil
	case "sum", "total":
		return sum(clean), nil
	case "mean":
		return sum(clean) / float64(len(clean)), nil
	case "min":
		m := clean[0]
		for _, v := range clean[1:] {
			if v < m {
				m = v
			}
		}
		return m, nil
	case "max":
		m := clean[0]
		for _, v := range clean[1:] {
			if v > m {
				m = v
			}
		}
		return m, nil
	case "sd":
		if len(clean) < 2 {
			return math.NaN(), nil
		}
		mean := sum(clean) / float64(len(clean))
		var ss float64
		for _, v := range clean {
			ss += (v - mean) * (v - mean)
		}
		return math.Sqrt(ss / float64(len(clean)-1)), nil
	case "median", "p50":
		sorted := make([]float64, len(clean))
		copy(sorted, clean)
		sort.Float64s(sorted)
		n := len(sorted)
		if n%2 == 1 {
			return sorted[n/2], nil
		}
		return (sorted[n/2-1] + sorted[n/2]) / 2, nil
	default:
		return 0, fmt.Errorf("unknown statistic: %s", stat)
	}
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// Collapse replaces the dataset with one row per group, each requested
// column aggregated with its statistic. Grouping columns are retained.
func (d *Dataset) Collapse(stats map[string]string, by []string) error {
	groups, order, err := d.GroupIndices(by)
	if err != nil {
		return err
	}
	for name := range stats {
		if !d.HasColumn(name) {
			return fmt.Errorf("variable %s not found", name)
		}
	}

	out := New(d.name)
	for _, key := range by {
		col := d.cols[key]
		if col.Kind == KindNumeric {
			vals := make([]float64, 0, len(order))
			for _, k := range order {
				vals = append(vals, col.Nums[groups[k][0]])
			}
			if err := out.SetFloat(key, vals); err != nil {
				return err
			}
		} else {
			vals := make([]string, 0, len(order))
			for _, k := range order {
				vals = append(vals, col.Strs[groups[k][0]])
			}
			if err := out.SetStrings(key, vals); err != nil {
				return err
			}
		}
	}
	for _, name := range d.order {
		stat, wanted := stats[name]
		if !wanted {
			continue
		}
		col := d.cols[name]
		if col.Kind != KindNumeric {
			return fmt.Errorf("variable %s is not numeric", name)
		}
		vals := make([]float64, 0, len(order))
		for _, k := range order {
			var group []float64
			for _, row := range groups[k] {
				group = append(group, col.Nums[row])
			}
			agg, err := Aggregate(group, stat)
			if err != nil {
				return err
			}
			vals = append(vals, agg)
		}
		if err := out.SetFloat(name, vals); err != nil {
			return err
		}
	}

	*d = *out
	return nil
}

// GroupAggregate computes a per-row column where each row carries its
// group's aggregate of the source column (egen ... = stat(x), by(...)).
// With no grouping variables the whole dataset is one group.
func (d *Dataset) GroupAggregate(source, stat string, by []string) ([]float64, error) {
	col, ok := d.cols[source]
	if !ok {
		return nil, fmt.Errorf("variable %s not found", source)
	}
	if col.Kind != KindNumeric {
		return nil, fmt.Errorf("variable %s is not numeric", source)
	}

	out := make([]float64, d.rows)
	if len(by) == 0 {
		agg, err := Aggregate(col.Nums, stat)
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i] = agg
		}
		return out, nil
	}

	groups, _, err := d.GroupIndices(by)
	if err != nil {
		return nil, err
	}
	for _, rows := range groups {
		var group []float64
		for _, row := range rows {
			group = append(group, col.Nums[row])
		}
		agg, err := Aggregate(group, stat)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			out[row] = agg
		}
	}
	return out, nil
}
