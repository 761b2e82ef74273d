package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/help-intl/aidcluster/internal/dataset"
)

func TestWelchEqualGroups(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	tstat, p, err := Welch(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tstat)
	assert.InDelta(t, 1.0, p, 1e-9)
}

func TestWelchSeparatedGroups(t *testing.T) {
	a := []float64{100, 101, 99, 100.5, 99.5}
	b := []float64{1, 2, 0, 1.5, 0.5}
	tstat, p, err := Welch(a, b)
	require.NoError(t, err)
	assert.Greater(t, tstat, 10.0)
	assert.Less(t, p, 1e-6)

	// swapping groups flips the sign, not the p-value
	tstat2, p2, err := Welch(b, a)
	require.NoError(t, err)
	assert.InDelta(t, -tstat, tstat2, 1e-9)
	assert.InDelta(t, p, p2, 1e-12)
}

func TestWelchZeroVariance(t *testing.T) {
	_, p, err := Welch([]float64{5, 5, 5}, []float64{5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestWelchTooFew(t *testing.T) {
	_, _, err := Welch([]float64{1}, []float64{2, 3})
	assert.Error(t, err)
}

func statsTable(t *testing.T, n int) *dataset.Table {
	t.Helper()
	countries := make([]string, n)
	cols := map[string][]float64{}
	for _, feat := range dataset.Features {
		cols[feat] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		countries[i] = "c"
		// high child mortality goes with low income, tightly
		cm := float64(i * 10)
		cols["child_mort"][i] = cm
		cols["income"][i] = 60000 - 500*cm + float64(i%3)
		for _, feat := range []string{"exports", "health", "imports", "inflation", "life_expec", "total_fer", "gdpp"} {
			cols[feat][i] = float64(i) + 1
		}
	}
	tb, err := dataset.New(countries, dataset.Features, cols)
	require.NoError(t, err)
	return tb
}

func TestMedianSplit(t *testing.T) {
	tb := statsTable(t, 20)
	res, err := MedianSplit(tb, "mortality vs income", "child_mort", "income", 0.05, true)
	require.NoError(t, err)

	assert.Equal(t, "child_mort", res.SplitColumn)
	assert.Equal(t, 20, res.HighN+res.LowN)
	assert.Less(t, res.HighMean, res.LowMean, "high-mortality group earns less")
	assert.True(t, res.Significant)
	assert.Less(t, res.P, 0.05)
	assert.True(t, res.HasCorr)
	assert.Less(t, res.Correlation, -0.99)
}

func TestMedianSplitDefaultAlpha(t *testing.T) {
	tb := statsTable(t, 20)
	res, err := MedianSplit(tb, "x", "child_mort", "income", 0, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultAlpha, res.Alpha)
	assert.False(t, res.HasCorr)
}

func TestMedianSplitUnknownColumn(t *testing.T) {
	tb := statsTable(t, 10)
	_, err := MedianSplit(tb, "x", "wealth", "income", 0.05, false)
	assert.Error(t, err)
}

func TestRunAll(t *testing.T) {
	tb := statsTable(t, 20)
	results, err := RunAll(tb, 0.05)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.NotEmpty(t, r.Name)
		assert.False(t, math.IsNaN(r.P))
		assert.Equal(t, 0.05, r.Alpha)
	}
	assert.True(t, results[2].HasCorr)
	assert.True(t, results[3].HasCorr)
}
