package preprocess

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/help-intl/aidcluster/internal/dataset"
)

// DefaultIQRMultiplier is the classic Tukey fence multiplier.
const DefaultIQRMultiplier = 1.5

// Bounds records the winsorization fence computed for one column.
type Bounds struct {
	Column string
	Lower  float64
	Upper  float64
}

// Winsorizer clips extreme values in the configured columns to their IQR
// fences instead of dropping rows. Columns not listed are untouched.
type Winsorizer struct {
	Columns    []string
	Multiplier float64
}

// NewWinsorizer returns a Winsorizer over the given columns. A multiplier
// <= 0 falls back to the default 1.5.
func NewWinsorizer(columns []string, multiplier float64) *Winsorizer {
	if multiplier <= 0 {
		multiplier = DefaultIQRMultiplier
	}
	return &Winsorizer{Columns: append([]string(nil), columns...), Multiplier: multiplier}
}

// Apply clips every configured column into [Q1-m*IQR, Q3+m*IQR] and returns
// the new table together with the fences used. Values already inside the
// fences pass through unchanged, which makes a second application a no-op.
// Naming a column the table does not carry is a configuration error.
func (w *Winsorizer) Apply(t *dataset.Table) (*dataset.Table, []Bounds, error) {
	out := t
	bounds := make([]Bounds, 0, len(w.Columns))
	for _, name := range w.Columns {
		if !t.HasColumn(name) {
			return nil, nil, fmt.Errorf("winsorize: column %q not present in table", name)
		}
		sorted, err := out.SortedColumn(name)
		if err != nil {
			return nil, nil, err
		}
		q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
		q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
		iqr := q3 - q1
		b := Bounds{
			Column: name,
			Lower:  q1 - w.Multiplier*iqr,
			Upper:  q3 + w.Multiplier*iqr,
		}

		col, err := out.Column(name)
		if err != nil {
			return nil, nil, err
		}
		for i, v := range col {
			if v < b.Lower {
				col[i] = b.Lower
			} else if v > b.Upper {
				col[i] = b.Upper
			}
		}
		out, err = out.WithColumn(name, col)
		if err != nil {
			return nil, nil, err
		}
		bounds = append(bounds, b)
	}
	return out, bounds, nil
}
