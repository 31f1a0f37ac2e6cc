// Package dataset implements the in-memory tabular-data store the
// interpreter operates on: named columns, row filtering, sorting, grouping,
// merging, and panel/time index assignment. Numeric missing values are NaN.
package dataset

import (
	"fmt"
	"math"
	"sort"
)

// ColumnKind distinguishes numeric from string columns.
type ColumnKind int

const (
	// KindNumeric is a float64 column; missing values are NaN.
	KindNumeric ColumnKind = iota
	// KindString is a string column; missing values are "".
	KindString
)

// Column holds one variable's values and its display label.
type Column struct {
	Kind  ColumnKind
	Nums  []float64
	Strs  []string
	Label string
}

func (c *Column) length() int {
	if c.Kind == KindNumeric {
		return len(c.Nums)
	}
	return len(c.Strs)
}

// Dataset is a mutable in-memory table with ordered named columns. All rows
// have the same length; the zero-column dataset has zero rows.
type Dataset struct {
	name  string
	order []string
	cols  map[string]*Column
	rows  int

	panelVar string // unit variable set by xtset
	timeVar  string // time variable set by xtset/tsset
}

// New creates an empty dataset with the given name.
func New(name string) *Dataset {
	return &Dataset{
		name: name,
		cols: make(map[string]*Column),
	}
}

// Name returns the dataset's name.
func (d *Dataset) Name() string { return d.name }

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int { return d.rows }

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return len(d.order) }

// ColumnNames returns the column names in insertion order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.cols[name]
	return ok
}

// Kind returns the column's kind.
func (d *Dataset) Kind(name string) (ColumnKind, error) {
	col, ok := d.cols[name]
	if !ok {
		return 0, fmt.Errorf("variable %s not found", name)
	}
	return col.Kind, nil
}

// Float returns a copy of a numeric column's values.
func (d *Dataset) Float(name string) ([]float64, error) {
	col, ok := d.cols[name]
	if !ok {
		return nil, fmt.Errorf("variable %s not found", name)
	}
	if col.Kind != KindNumeric {
		return nil, fmt.Errorf("variable %s is not numeric", name)
	}
	out := make([]float64, len(col.Nums))
	copy(out, col.Nums)
	return out, nil
}

// Strings returns a copy of a string column's values.
func (d *Dataset) Strings(name string) ([]string, error) {
	col, ok := d.cols[name]
	if !ok {
		return nil, fmt.Errorf("variable %s not found", name)
	}
	if col.Kind != KindString {
		return nil, fmt.Errorf("variable %s is not a string variable", name)
	}
	out := make([]string, len(col.Strs))
	copy(out, col.Strs)
	return out, nil
}

// SetFloat creates or replaces a numeric column. The value count must match
// the dataset's row count unless the dataset is empty.
func (d *Dataset) SetFloat(name string, values []float64) error {
	if err := d.checkLength(name, len(values)); err != nil {
		return err
	}
	owned := make([]float64, len(values))
	copy(owned, values)
	if existing, ok := d.cols[name]; ok {
		existing.Kind = KindNumeric
		existing.Nums = owned
		existing.Strs = nil
		return nil
	}
	d.cols[name] = &Column{Kind: KindNumeric, Nums: owned}
	d.order = append(d.order, name)
	return nil
}

// SetStrings creates or replaces a string column.
func (d *Dataset) SetStrings(name string, values []string) error {
	if err := d.checkLength(name, len(values)); err != nil {
		return err
	}
	owned := make([]string, len(values))
	copy(owned, values)
	if existing, ok := d.cols[name]; ok {
		existing.Kind = KindString
		existing.Strs = owned
		existing.Nums = nil
		return nil
	}
	d.cols[name] = &Column{Kind: KindString, Strs: owned}
	d.order = append(d.order, name)
	return nil
}

func (d *Dataset) checkLength(name string, n int) error {
	if len(d.order) == 0 || (len(d.order) == 1 && d.HasColumn(name)) {
		d.rows = n
		return nil
	}
	if n != d.rows {
		return fmt.Errorf("variable %s has %d values, dataset has %d rows", name, n, d.rows)
	}
	return nil
}

// Label returns the column's label, or "" when unset or unknown.
func (d *Dataset) Label(name string) string {
	if col, ok := d.cols[name]; ok {
		return col.Label
	}
	return ""
}

// SetLabel attaches a display label to a column. Unknown names are ignored.
func (d *Dataset) SetLabel(name, label string) {
	if col, ok := d.cols[name]; ok {
		col.Label = label
	}
}

// Drop removes the named columns.
func (d *Dataset) Drop(names ...string) error {
	for _, name := range names {
		if !d.HasColumn(name) {
			return fmt.Errorf("variable %s not found", name)
		}
	}
	for _, name := range names {
		delete(d.cols, name)
		for i, n := range d.order {
			if n == name {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}
	if len(d.order) == 0 {
		d.rows = 0
	}
	return nil
}

// Keep removes every column not named.
func (d *Dataset) Keep(names ...string) error {
	keep := make(map[string]bool, len(names))
	for _, name := range names {
		if !d.HasColumn(name) {
			return fmt.Errorf("variable %s not found", name)
		}
		keep[name] = true
	}
	var dropped []string
	for _, name := range d.order {
		if !keep[name] {
			dropped = append(dropped, name)
		}
	}
	return d.Drop(dropped...)
}

// RenameColumn renames a column, preserving its position and label.
func (d *Dataset) RenameColumn(oldName, newName string) error {
	col, ok := d.cols[oldName]
	if !ok {
		return fmt.Errorf("variable %s not found", oldName)
	}
	if d.HasColumn(newName) {
		return fmt.Errorf("variable %s already exists", newName)
	}
	delete(d.cols, oldName)
	d.cols[newName] = col
	for i, n := range d.order {
		if n == oldName {
			d.order[i] = newName
			break
		}
	}
	if d.panelVar == oldName {
		d.panelVar = newName
	}
	if d.timeVar == oldName {
		d.timeVar = newName
	}
	return nil
}

// FilterRows keeps only rows where mask is true.
func (d *Dataset) FilterRows(mask []bool) error {
	if len(mask) != d.rows {
		return fmt.Errorf("mask has %d entries, dataset has %d rows", len(mask), d.rows)
	}
	kept := 0
	for _, m := range mask {
		if m {
			kept++
		}
	}
	for _, col := range d.cols {
		if col.Kind == KindNumeric {
			out := make([]float64, 0, kept)
			for i, m := range mask {
				if m {
					out = append(out, col.Nums[i])
				}
			}
			col.Nums = out
		} else {
			out := make([]string, 0, kept)
			for i, m := range mask {
				if m {
					out = append(out, col.Strs[i])
				}
			}
			col.Strs = out
		}
	}
	d.rows = kept
	return nil
}

// Sort stably reorders rows by the given key columns, ascending.
func (d *Dataset) Sort(keys ...string) error {
	for _, key := range keys {
		if !d.HasColumn(key) {
			return fmt.Errorf("variable %s not found", key)
		}
	}
	idx := make([]int, d.rows)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		for _, key := range keys {
			col := d.cols[key]
			if col.Kind == KindNumeric {
				x, y := col.Nums[idx[a]], col.Nums[idx[b]]
				if x != y {
					// sort NaN last
					if math.IsNaN(x) {
						return false
					}
					if math.IsNaN(y) {
						return true
					}
					return x < y
				}
			} else {
				x, y := col.Strs[idx[a]], col.Strs[idx[b]]
				if x != y {
					return x < y
				}
			}
		}
		return false
	})
	d.reorder(idx)
	return nil
}

func (d *Dataset) reorder(idx []int) {
	for _, col := range d.cols {
		if col.Kind == KindNumeric {
			out := make([]float64, len(idx))
			for i, j := range idx {
				out[i] = col.Nums[j]
			}
			col.Nums = out
		} else {
			out := make([]string, len(idx))
			for i, j := range idx {
				out[i] = col.Strs[j]
			}
			col.Strs = out
		}
	}
}

// Clone returns a deep copy of the dataset under a new name.
func (d *Dataset) Clone(name string) *Dataset {
	out := New(name)
	out.rows = d.rows
	out.panelVar = d.panelVar
	out.timeVar = d.timeVar
	for _, colName := range d.order {
		col := d.cols[colName]
		if col.Kind == KindNumeric {
			_ = out.SetFloat(colName, col.Nums)
		} else {
			_ = out.SetStrings(colName, col.Strs)
		}
		out.SetLabel(colName, col.Label)
	}
	return out
}

// SetPanelIndex declares the panel unit and time variables (xtset).
func (d *Dataset) SetPanelIndex(unitVar, timeVar string) error {
	if !d.HasColumn(unitVar) {
		return fmt.Errorf("variable %s not found", unitVar)
	}
	if timeVar != "" && !d.HasColumn(timeVar) {
		return fmt.Errorf("variable %s not found", timeVar)
	}
	d.panelVar = unitVar
	d.timeVar = timeVar
	return nil
}

// SetTimeIndex declares the time variable (tsset).
func (d *Dataset) SetTimeIndex(timeVar string) error {
	if !d.HasColumn(timeVar) {
		return fmt.Errorf("variable %s not found", timeVar)
	}
	d.timeVar = timeVar
	return nil
}

// PanelVar returns the panel unit variable, "" when unset.
func (d *Dataset) PanelVar() string { return d.panelVar }

// TimeVar returns the time variable, "" when unset.
func (d *Dataset) TimeVar() string { return d.timeVar }

// CellString formats one cell for display.
func (d *Dataset) CellString(name string, row int) string {
	col, ok := d.cols[name]
	if !ok || row < 0 || row >= col.length() {
		return ""
	}
	if col.Kind == KindString {
		return col.Strs[row]
	}
	v := col.Nums[row]
	if math.IsNaN(v) {
		return "."
	}
	return fmt.Sprintf("%g", v)
}
