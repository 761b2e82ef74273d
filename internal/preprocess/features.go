package preprocess

import (
	"fmt"
	"math"

	"github.com/help-intl/aidcluster/internal/dataset"
)

// Derived column names added by Engineer.
const (
	HighChildMortalityColumn  = "high_child_mort"
	ExportsImportsRatioColumn = "exports_imports_ratio"
)

// Engineer adds the two derived indicator columns: a binary flag for records
// whose child mortality exceeds the table median, and the exports/imports
// ratio. It works on whichever representation it is handed, standardized or
// raw. A zero imports value yields an infinite ratio (NaN for 0/0) rather
// than a crash; consumers treat non-finite ratios as flagged values.
func Engineer(t *dataset.Table) (*dataset.Table, error) {
	childMort, err := t.Column("child_mort")
	if err != nil {
		return nil, fmt.Errorf("engineer features: %w", err)
	}
	median, err := dataset.Median(t, "child_mort")
	if err != nil {
		return nil, err
	}
	high := make([]float64, len(childMort))
	for i, v := range childMort {
		if v > median {
			high[i] = 1
		}
	}
	out, err := t.WithColumn(HighChildMortalityColumn, high)
	if err != nil {
		return nil, err
	}

	exports, err := out.Column("exports")
	if err != nil {
		return nil, fmt.Errorf("engineer features: %w", err)
	}
	imports, err := out.Column("imports")
	if err != nil {
		return nil, fmt.Errorf("engineer features: %w", err)
	}
	ratio := make([]float64, len(exports))
	for i := range exports {
		switch {
		case imports[i] != 0:
			ratio[i] = exports[i] / imports[i]
		case exports[i] == 0:
			ratio[i] = math.NaN()
		default:
			ratio[i] = math.Inf(sign(exports[i]))
		}
	}
	return out.WithColumn(ExportsImportsRatioColumn, ratio)
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
