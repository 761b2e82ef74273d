package cluster

import (
	"errors"
	"fmt"
)

// Method tags the clustering variant. Adapters are selected by this explicit
// tag rather than by duck typing on the underlying library objects.
type Method string

const (
	MethodKMeans       Method = "kmeans"
	MethodHierarchical Method = "hierarchical"
	MethodDBSCAN       Method = "dbscan"
)

// Noise is the reserved label for points no density-based cluster claims.
const Noise = -1

// ErrTooFewRows is returned when a fit is asked for more clusters than there
// are records. The run is not retried.
var ErrTooFewRows = errors.New("fewer records than requested clusters")

// Clusterer is the uniform contract all three adapters implement: consume a
// standardized feature matrix, return one integer label per input row, in
// input order. Labels are only meaningful against the row ordering they were
// produced for.
type Clusterer interface {
	Method() Method
	Fit(data [][]float64) ([]int, error)
}

func validateMatrix(data [][]float64) error {
	if len(data) == 0 {
		return errors.New("empty input matrix")
	}
	width := len(data[0])
	if width == 0 {
		return errors.New("input matrix has no columns")
	}
	for i, row := range data {
		if len(row) != width {
			return fmt.Errorf("ragged input matrix: row %d has %d columns, expected %d", i, len(row), width)
		}
	}
	return nil
}

// sizes tallies cluster cardinalities for diagnostic logging. Noise is
// reported under its own key.
func sizes(labels []int) map[int]int {
	out := make(map[int]int)
	for _, l := range labels {
		out[l]++
	}
	return out
}
