package preprocess

import (
	"testing"

	"github.com/help-intl/aidcluster/internal/dataset"
)

func tableWith(t *testing.T, income []float64) *dataset.Table {
	t.Helper()
	countries := make([]string, len(income))
	cols := map[string][]float64{}
	for i := range countries {
		countries[i] = "c"
	}
	for _, feat := range dataset.Features {
		col := make([]float64, len(income))
		for i := range col {
			col[i] = float64(i)
		}
		cols[feat] = col
	}
	cols["income"] = append([]float64(nil), income...)
	tb, err := dataset.New(countries, dataset.Features, cols)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tb
}

func TestWinsorizeClipsOnlyOutliers(t *testing.T) {
	// 10 tight values plus one wild outlier
	income := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 500}
	tb := tableWith(t, income)

	w := NewWinsorizer([]string{"income"}, 1.5)
	out, bounds, err := w.Apply(tb)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(bounds) != 1 || bounds[0].Column != "income" {
		t.Fatalf("bounds = %+v", bounds)
	}
	b := bounds[0]
	got, _ := out.Column("income")
	for i, v := range got {
		if v < b.Lower || v > b.Upper {
			t.Fatalf("row %d = %v outside [%v, %v]", i, v, b.Lower, b.Upper)
		}
		if income[i] >= b.Lower && income[i] <= b.Upper && v != income[i] {
			t.Fatalf("in-bounds value changed at row %d: %v -> %v", i, income[i], v)
		}
	}
	if got[10] != b.Upper {
		t.Fatalf("outlier clipped to %v, want upper bound %v", got[10], b.Upper)
	}
	// original untouched
	orig, _ := tb.Column("income")
	if orig[10] != 500 {
		t.Fatal("input table was mutated")
	}
}

func TestWinsorizeIdempotent(t *testing.T) {
	income := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 500}
	tb := tableWith(t, income)

	w := NewWinsorizer([]string{"income"}, 1.5)
	once, _, err := w.Apply(tb)
	if err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	twice, _, err := w.Apply(once)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	a, _ := once.Column("income")
	b, _ := twice.Column("income")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("second pass changed row %d: %v -> %v", i, a[i], b[i])
		}
	}
}

func TestWinsorizeUnknownColumn(t *testing.T) {
	tb := tableWith(t, []float64{1, 2, 3, 4})
	w := NewWinsorizer([]string{"wealth"}, 1.5)
	if _, _, err := w.Apply(tb); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestWinsorizeUntouchedColumns(t *testing.T) {
	income := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 500}
	tb := tableWith(t, income)
	w := NewWinsorizer([]string{"income"}, 1.5)
	out, _, err := w.Apply(tb)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	before, _ := tb.Column("gdpp")
	after, _ := out.Column("gdpp")
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("unlisted column changed at row %d", i)
		}
	}
}
