package dataset

import (
	"fmt"
	"math"
)

// Append stacks another dataset's rows below this one. Columns present in
// only one side are filled with missing values; columns present in both must
// have the same kind.
func (d *Dataset) Append(other *Dataset) error {
	for _, name := range other.order {
		if d.HasColumn(name) {
			mine, theirs := d.cols[name], other.cols[name]
			if mine.Kind != theirs.Kind {
				return fmt.Errorf("variable %s has conflicting types", name)
			}
		}
	}

	oldRows := d.rows
	newRows := oldRows + other.rows

	// Columns only on the other side appear after ours, padded with missing.
	for _, name := range other.order {
		if !d.HasColumn(name) {
			col := other.cols[name]
			if col.Kind == KindNumeric {
				pad := make([]float64, oldRows)
				for i := range pad {
					pad[i] = math.NaN()
				}
				d.cols[name] = &Column{Kind: KindNumeric, Nums: pad, Label: col.Label}
			} else {
				d.cols[name] = &Column{Kind: KindString, Strs: make([]string, oldRows), Label: col.Label}
			}
			d.order = append(d.order, name)
		}
	}

	for _, name := range d.order {
		col := d.cols[name]
		theirs, present := other.cols[name]
		if col.Kind == KindNumeric {
			if present {
				col.Nums = append(col.Nums, theirs.Nums...)
			} else {
				for i := 0; i < other.rows; i++ {
					col.Nums = append(col.Nums, math.NaN())
				}
			}
		} else {
			if present {
				col.Strs = append(col.Strs, theirs.Strs...)
			} else {
				for i := 0; i < other.rows; i++ {
					col.Strs = append(col.Strs, "")
				}
			}
		}
	}
	d.rows = newRows
	return nil
}

// Merge outer-joins another dataset's columns on a shared key column. Each
// key value on the other side must be unique (m:1 merge). Unmatched master
// rows get missing values for the new columns; key values present only in
// the using data are appended as new rows. A _merge column records 1
// (master only), 2 (using only), or 3 (matched).
func (d *Dataset) Merge(key string, other *Dataset) error {
	if !d.HasColumn(key) {
		return fmt.Errorf("variable %s not found", key)
	}
	if !other.HasColumn(key) {
		return fmt.Errorf("variable %s not found in using data", key)
	}
	if d.cols[key].Kind != other.cols[key].Kind {
		return fmt.Errorf("variable %s has conflicting types", key)
	}

	lookup := make(map[string]int, other.rows)
	for row := 0; row < other.rows; row++ {
		k := other.CellString(key, row)
		if _, dup := lookup[k]; dup {
			return fmt.Errorf("variable %s does not uniquely identify observations in the using data", key)
		}
		lookup[k] = row
	}

	matched := make([]float64, d.rows)
	rowOf := make([]int, d.rows)
	for row := 0; row < d.rows; row++ {
		if j, ok := lookup[d.CellString(key, row)]; ok {
			matched[row] = 3
			rowOf[row] = j
		} else {
			matched[row] = 1
			rowOf[row] = -1
		}
	}

	for _, name := range other.order {
		if name == key || d.HasColumn(name) {
			continue
		}
		col := other.cols[name]
		if col.Kind == KindNumeric {
			vals := make([]float64, d.rows)
			for row := range vals {
				if rowOf[row] >= 0 {
					vals[row] = col.Nums[rowOf[row]]
				} else {
					vals[row] = math.NaN()
				}
			}
			if err := d.SetFloat(name, vals); err != nil {
				return err
			}
		} else {
			vals := make([]string, d.rows)
			for row := range vals {
				if rowOf[row] >= 0 {
					vals[row] = col.Strs[rowOf[row]]
				}
			}
			if err := d.SetStrings(name, vals); err != nil {
				return err
			}
		}
		d.SetLabel(name, col.Label)
	}

	// Key values seen only in the using data become appended rows with
	// code 2. Using-side values fill the columns the using data has;
	// master-only columns get missing.
	usedRow := make(map[int]bool, d.rows)
	for _, j := range rowOf {
		if j >= 0 {
			usedRow[j] = true
		}
	}
	var extras []int
	for row := 0; row < other.rows; row++ {
		if !usedRow[row] {
			extras = append(extras, row)
		}
	}
	for _, name := range d.order {
		col := d.cols[name]
		src, fromUsing := other.cols[name]
		for _, row := range extras {
			if col.Kind == KindNumeric {
				if fromUsing && src.Kind == KindNumeric {
					col.Nums = append(col.Nums, src.Nums[row])
				} else {
					col.Nums = append(col.Nums, math.NaN())
				}
			} else {
				if fromUsing && src.Kind == KindString {
					col.Strs = append(col.Strs, src.Strs[row])
				} else {
					col.Strs = append(col.Strs, "")
				}
			}
		}
	}
	d.rows += len(extras)
	for range extras {
		matched = append(matched, 2)
	}

	return d.SetFloat("_merge", matched)
}
