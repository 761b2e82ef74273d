package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/help-intl/aidcluster/internal/cluster"
)

func TestProfilesOrdersByChildMortality(t *testing.T) {
	p := cluster.Profile{
		0:             {"child_mort": -0.95},
		1:             {"child_mort": 1.45},
		cluster.Noise: {"child_mort": 0.25},
	}
	var buf bytes.Buffer
	Profiles(&buf, cluster.MethodKMeans, p)
	out := buf.String()

	high := strings.Index(out, "1.45")
	mid := strings.Index(out, "0.25")
	low := strings.Index(out, "-0.95")
	require.NotEqual(t, -1, high)
	require.NotEqual(t, -1, mid)
	require.NotEqual(t, -1, low)
	assert.Less(t, high, mid, "highest-mortality cluster renders first")
	assert.Less(t, mid, low)
	assert.Contains(t, out, "noise")
}

func TestPriorityEmpty(t *testing.T) {
	var buf bytes.Buffer
	Priority(&buf, nil)
	assert.Contains(t, buf.String(), "no priority cluster")
}
