package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/help-intl/aidcluster/internal/dataset"
)

func profileTable(t *testing.T) *dataset.Table {
	t.Helper()
	countries := []string{"Haiti", "Chad", "Norway", "Japan"}
	cols := map[string][]float64{}
	for _, feat := range dataset.Features {
		cols[feat] = []float64{1, 1, 1, 1}
	}
	cols["child_mort"] = []float64{100, 120, 3, 2}
	cols["income"] = []float64{1500, 900, 65000, 42000}
	tb, err := dataset.New(countries, dataset.Features, cols)
	require.NoError(t, err)
	return tb
}

func TestProfileClusters(t *testing.T) {
	tb := profileTable(t)
	labels := []int{0, 0, 1, 1}

	p, err := ProfileClusters(tb, labels, dataset.Features)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, p.Labels())

	assert.InDelta(t, 110, p[0]["child_mort"], 1e-9)
	assert.InDelta(t, 1200, p[0]["income"], 1e-9)
	assert.InDelta(t, 2.5, p[1]["child_mort"], 1e-9)
	assert.InDelta(t, 53500, p[1]["income"], 1e-9)
}

func TestProfileSkipsAbsentLabels(t *testing.T) {
	tb := profileTable(t)
	// label 1 never appears; no entry should exist for it
	p, err := ProfileClusters(tb, []int{0, 0, 2, 2}, dataset.Features)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, p.Labels())
	_, ok := p[1]
	assert.False(t, ok)
}

func TestProfileLabelMismatch(t *testing.T) {
	tb := profileTable(t)
	_, err := ProfileClusters(tb, []int{0, 1}, dataset.Features)
	assert.Error(t, err)
}

func TestMostVulnerable(t *testing.T) {
	p := Profile{
		0: {"child_mort": 1.4},
		1: {"child_mort": -0.8},
		2: {"child_mort": 0.1},
	}
	got, err := MostVulnerable(p)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestMostVulnerableTieBreak(t *testing.T) {
	p := Profile{
		2: {"child_mort": 1.0},
		1: {"child_mort": 1.0},
	}
	got, err := MostVulnerable(p)
	require.NoError(t, err)
	assert.Equal(t, 1, got, "exact tie resolves to the smallest label")
}

func TestMostVulnerableEmpty(t *testing.T) {
	_, err := MostVulnerable(Profile{})
	assert.Error(t, err)
}

func TestRankPriority(t *testing.T) {
	tb := profileTable(t)
	labels := []int{0, 0, 1, 1}
	p, err := ProfileClusters(tb, labels, dataset.Features)
	require.NoError(t, err)

	entries, err := RankPriority(tb, labels, p)
	require.NoError(t, err)
	require.Len(t, entries, 2, "only the vulnerable cluster is listed")

	assert.Equal(t, "Chad", entries[0].Country)
	assert.Equal(t, 120.0, entries[0].ChildMortality)
	assert.Equal(t, "Haiti", entries[1].Country)
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i].ChildMortality, entries[i-1].ChildMortality)
	}
	for _, e := range entries {
		assert.Equal(t, 0, e.Cluster)
	}
}

func TestRankPriorityLabelMismatch(t *testing.T) {
	tb := profileTable(t)
	p := Profile{0: {"child_mort": 1}}
	_, err := RankPriority(tb, []int{0}, p)
	assert.Error(t, err)
}
