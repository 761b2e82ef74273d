package dataset

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ColumnSummary captures descriptive statistics for one numeric column.
type ColumnSummary struct {
	Name   string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric
// columns. Values is row-major, Values[i][j].
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// Describe computes per-feature descriptive statistics over the table.
func Describe(t *Table) ([]ColumnSummary, error) {
	out := make([]ColumnSummary, 0, len(Features))
	for _, feat := range Features {
		sorted, err := t.SortedColumn(feat)
		if err != nil {
			return nil, err
		}
		s := ColumnSummary{
			Name:   feat,
			Count:  len(sorted),
			Mean:   stat.Mean(sorted, nil),
			Min:    sorted[0],
			Max:    sorted[len(sorted)-1],
			Q1:     stat.Quantile(0.25, stat.LinInterp, sorted, nil),
			Median: stat.Quantile(0.5, stat.LinInterp, sorted, nil),
			Q3:     stat.Quantile(0.75, stat.LinInterp, sorted, nil),
		}
		if len(sorted) > 1 {
			s.Std = stat.StdDev(sorted, nil)
		}
		out = append(out, s)
	}
	return out, nil
}

// Correlations computes the Pearson correlation matrix over the nine
// features. Degenerate (zero variance) columns produce NaN entries, which
// callers render as blanks rather than propagate.
func Correlations(t *Table) (*CorrMatrix, error) {
	cols := make([][]float64, len(Features))
	for j, feat := range Features {
		col, err := t.Column(feat)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	m := &CorrMatrix{
		Columns: append([]string(nil), Features...),
		Values:  make([][]float64, len(Features)),
	}
	for i := range Features {
		m.Values[i] = make([]float64, len(Features))
		for j := range Features {
			switch {
			case i == j:
				m.Values[i][j] = 1
			case j < i:
				m.Values[i][j] = m.Values[j][i]
			default:
				m.Values[i][j] = stat.Correlation(cols[i], cols[j], nil)
			}
		}
	}
	return m, nil
}

// Median returns the median of the named column.
func Median(t *Table, name string) (float64, error) {
	sorted, err := t.SortedColumn(name)
	if err != nil {
		return 0, err
	}
	if len(sorted) == 0 {
		return math.NaN(), nil
	}
	return stat.Quantile(0.5, stat.LinInterp, sorted, nil), nil
}
