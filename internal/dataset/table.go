package dataset

import (
	"fmt"
	"sort"
)

// CountryColumn is the name of the string key column in the source data.
const CountryColumn = "country"

// Features is the fixed ordered list of the nine numeric indicators. It is
// the join key between raw and standardized representations and the column
// order every clustering adapter expects.
var Features = []string{
	"child_mort",
	"exports",
	"health",
	"imports",
	"income",
	"inflation",
	"life_expec",
	"total_fer",
	"gdpp",
}

// Table is an immutable snapshot of the working data: one row per country,
// one float column per indicator. Pipeline stages take a Table and return a
// new one; the input is never mutated.
type Table struct {
	countries []string
	order     []string
	columns   map[string][]float64
}

// New builds a Table from a country column and named float columns. order
// fixes the column iteration order. Every column must match the row count.
func New(countries []string, order []string, columns map[string][]float64) (*Table, error) {
	n := len(countries)
	if len(order) != len(columns) {
		return nil, fmt.Errorf("column order lists %d names for %d columns", len(order), len(columns))
	}
	for _, name := range order {
		col, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("column %q in order but not in data", name)
		}
		if len(col) != n {
			return nil, fmt.Errorf("column %q has %d values for %d rows", name, len(col), n)
		}
	}
	t := &Table{
		countries: append([]string(nil), countries...),
		order:     append([]string(nil), order...),
		columns:   make(map[string][]float64, len(columns)),
	}
	for name, col := range columns {
		t.columns[name] = append([]float64(nil), col...)
	}
	return t, nil
}

// Rows returns the number of records.
func (t *Table) Rows() int { return len(t.countries) }

// Countries returns a copy of the country name column.
func (t *Table) Countries() []string {
	return append([]string(nil), t.countries...)
}

// Country returns the name at row i.
func (t *Table) Country(i int) string { return t.countries[i] }

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.order...)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("column %q not present in table", name)
	}
	return append([]float64(nil), col...), nil
}

// Value returns the cell at row i of the named column.
func (t *Table) Value(name string, i int) (float64, error) {
	col, ok := t.columns[name]
	if !ok {
		return 0, fmt.Errorf("column %q not present in table", name)
	}
	return col[i], nil
}

// WithColumn returns a new Table with the named column replaced, or appended
// when it does not exist yet. The receiver is left untouched.
func (t *Table) WithColumn(name string, values []float64) (*Table, error) {
	if len(values) != t.Rows() {
		return nil, fmt.Errorf("column %q has %d values for %d rows", name, len(values), t.Rows())
	}
	nt := t.clone()
	if !t.HasColumn(name) {
		nt.order = append(nt.order, name)
	}
	nt.columns[name] = append([]float64(nil), values...)
	return nt, nil
}

// Matrix extracts the named columns as a row-major matrix, one row per
// record, columns in the given order.
func (t *Table) Matrix(names []string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for j, name := range names {
		col, ok := t.columns[name]
		if !ok {
			return nil, fmt.Errorf("column %q not present in table", name)
		}
		cols[j] = col
	}
	m := make([][]float64, t.Rows())
	for i := range m {
		row := make([]float64, len(names))
		for j := range names {
			row[j] = cols[j][i]
		}
		m[i] = row
	}
	return m, nil
}

// SortedColumn returns a sorted copy of the named column, handy for
// quantile computations.
func (t *Table) SortedColumn(name string) ([]float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	sort.Float64s(col)
	return col, nil
}

func (t *Table) clone() *Table {
	nt := &Table{
		countries: append([]string(nil), t.countries...),
		order:     append([]string(nil), t.order...),
		columns:   make(map[string][]float64, len(t.columns)),
	}
	for name, col := range t.columns {
		nt.columns[name] = append([]float64(nil), col...)
	}
	return nt
}
