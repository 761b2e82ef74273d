// Package stats runs the canned hypothesis tests over the country table:
// median-split Welch t-tests plus Pearson correlations between indicator
// pairs. The distributional machinery is gonum's.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/help-intl/aidcluster/internal/dataset"
)

// DefaultAlpha is the significance level the reports use.
const DefaultAlpha = 0.05

// TTestResult is the outcome of one median-split comparison.
type TTestResult struct {
	Name          string
	SplitColumn   string
	MeasureColumn string
	SplitMedian   float64
	HighN         int
	LowN          int
	HighMean      float64
	LowMean       float64
	T             float64
	P             float64
	Alpha         float64
	Significant   bool
	Correlation   float64
	HasCorr       bool
}

// Welch computes the unequal-variance two-sample t statistic and its
// two-sided p-value via the Student's t distribution with Welch-Satterthwaite
// degrees of freedom.
func Welch(a, b []float64) (t, p float64, err error) {
	if len(a) < 2 || len(b) < 2 {
		return 0, 0, errors.New("welch t-test needs at least two observations per group")
	}
	ma, mb := stat.Mean(a, nil), stat.Mean(b, nil)
	va, vb := stat.Variance(a, nil), stat.Variance(b, nil)
	na, nb := float64(len(a)), float64(len(b))

	se2 := va/na + vb/nb
	if se2 == 0 {
		return 0, 1, nil
	}
	t = (ma - mb) / math.Sqrt(se2)
	df := se2 * se2 / (va*va/(na*na*(na-1)) + vb*vb/(nb*nb*(nb-1)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.CDF(-math.Abs(t))
	return t, p, nil
}

// MedianSplit splits the table at the median of splitCol and Welch-tests the
// difference in mean measureCol between the high and low groups. withCorr
// additionally reports the Pearson correlation between the two columns.
func MedianSplit(t *dataset.Table, name, splitCol, measureCol string, alpha float64, withCorr bool) (*TTestResult, error) {
	split, err := t.Column(splitCol)
	if err != nil {
		return nil, fmt.Errorf("hypothesis %q: %w", name, err)
	}
	measure, err := t.Column(measureCol)
	if err != nil {
		return nil, fmt.Errorf("hypothesis %q: %w", name, err)
	}
	median, err := dataset.Median(t, splitCol)
	if err != nil {
		return nil, err
	}

	var high, low []float64
	for i, v := range split {
		if v > median {
			high = append(high, measure[i])
		} else {
			low = append(low, measure[i])
		}
	}
	tstat, p, err := Welch(high, low)
	if err != nil {
		return nil, fmt.Errorf("hypothesis %q: %w", name, err)
	}

	if alpha <= 0 {
		alpha = DefaultAlpha
	}
	res := &TTestResult{
		Name:          name,
		SplitColumn:   splitCol,
		MeasureColumn: measureCol,
		SplitMedian:   median,
		HighN:         len(high),
		LowN:          len(low),
		HighMean:      stat.Mean(high, nil),
		LowMean:       stat.Mean(low, nil),
		T:             tstat,
		P:             p,
		Alpha:         alpha,
		Significant:   p < alpha,
	}
	if withCorr {
		res.Correlation = stat.Correlation(split, measure, nil)
		res.HasCorr = true
	}
	return res, nil
}

// RunAll executes the four standing hypothesis tests over the raw table.
func RunAll(t *dataset.Table, alpha float64) ([]*TTestResult, error) {
	tests := []struct {
		name     string
		split    string
		measure  string
		withCorr bool
	}{
		{"child mortality vs income", "child_mort", "income", false},
		{"health spending vs life expectancy", "health", "life_expec", false},
		{"fertility vs income", "total_fer", "income", true},
		{"inflation vs gdp per capita", "inflation", "gdpp", true},
	}
	out := make([]*TTestResult, 0, len(tests))
	for _, s := range tests {
		res, err := MedianSplit(t, s.name, s.split, s.measure, alpha, s.withCorr)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
