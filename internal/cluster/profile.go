package cluster

import (
	"fmt"
	"sort"

	"github.com/help-intl/aidcluster/internal/dataset"
)

// Profile maps a cluster label to the mean of each feature across member
// records, in whatever units the source table carries (standardized, for the
// pipeline). Derived data: recompute whenever labels or the table change.
type Profile map[int]map[string]float64

// Labels returns the profiled cluster labels in ascending order.
func (p Profile) Labels() []int {
	out := make([]int, 0, len(p))
	for l := range p {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

// ProfileClusters groups records by label and computes per-feature means
// within each group. Labels must align with the table by row index. A label
// with no members simply produces no entry.
func ProfileClusters(t *dataset.Table, labels []int, features []string) (Profile, error) {
	if len(labels) != t.Rows() {
		return nil, fmt.Errorf("profile: %d labels for %d rows", len(labels), t.Rows())
	}
	counts := make(map[int]int)
	sums := make(map[int]map[string]float64)
	cols := make(map[string][]float64, len(features))
	for _, feat := range features {
		col, err := t.Column(feat)
		if err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
		cols[feat] = col
	}
	for i, l := range labels {
		counts[l]++
		group := sums[l]
		if group == nil {
			group = make(map[string]float64, len(features))
			sums[l] = group
		}
		for _, feat := range features {
			group[feat] += cols[feat][i]
		}
	}

	p := make(Profile, len(sums))
	for l, group := range sums {
		means := make(map[string]float64, len(features))
		for feat, sum := range group {
			means[feat] = sum / float64(counts[l])
		}
		p[l] = means
	}
	return p, nil
}
