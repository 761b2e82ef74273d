package cluster

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSCANMarksIsolatedPointNoise(t *testing.T) {
	data := [][]float64{
		{0.0, 0.0}, {0.3, 0.1}, {0.1, 0.4}, {0.2, 0.2}, {0.4, 0.3},
		{50.0, 50.0},
	}
	d := NewDBSCAN(DBSCANConfig{Eps: 1.5, MinSamples: 3}, zerolog.Nop())
	labels, err := d.Fit(data)
	require.NoError(t, err)
	require.Len(t, labels, 6)

	for i := 0; i < 5; i++ {
		assert.NotEqual(t, Noise, labels[i], "dense point %d flagged as noise", i)
		assert.Equal(t, labels[0], labels[i], "dense region should be one cluster")
	}
	assert.Equal(t, Noise, labels[5], "isolated point must be noise")
}

func TestDBSCANTwoRegions(t *testing.T) {
	data := [][]float64{
		{0, 0}, {0.2, 0.1}, {0.1, 0.3}, {0.3, 0.2},
		{20, 20}, {20.2, 20.1}, {20.1, 20.3}, {20.3, 20.2},
	}
	d := NewDBSCAN(DBSCANConfig{Eps: 1.0, MinSamples: 3}, zerolog.Nop())
	labels, err := d.Fit(data)
	require.NoError(t, err)

	assert.Equal(t, labels[0], labels[3])
	assert.Equal(t, labels[4], labels[7])
	assert.NotEqual(t, labels[0], labels[4], "separated regions share a label")
	for _, l := range labels {
		assert.GreaterOrEqual(t, l, 0, "every point is density reachable")
	}
}

func TestDBSCANEmptyMatrix(t *testing.T) {
	d := NewDBSCAN(DefaultDBSCANConfig(), zerolog.Nop())
	_, err := d.Fit(nil)
	assert.Error(t, err)
}

func TestDBSCANDefaults(t *testing.T) {
	d := NewDBSCAN(DBSCANConfig{}, zerolog.Nop())
	assert.Equal(t, 1.5, d.Config().Eps)
	assert.Equal(t, 3, d.Config().MinSamples)
}
