package cluster

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
)

// HierarchicalConfig holds the agglomerative-fit parameters. Linkage is ward
// over euclidean distances; those are the only settings the pipeline uses,
// so they are fixed rather than configurable strings.
type HierarchicalConfig struct {
	K int
}

// DefaultHierarchicalConfig cuts the tree at 3 flat clusters.
func DefaultHierarchicalConfig() HierarchicalConfig {
	return HierarchicalConfig{K: 3}
}

// Merge is one row of the linkage structure: the two cluster ids merged,
// the ward distance at which they merged, and the merged size. Leaves are
// ids 0..n-1; the merge created by row i gets id n+i.
type Merge struct {
	Left     int
	Right    int
	Distance float64
	Size     int
}

// Hierarchical is the bottom-up agglomerative adapter. It builds the full
// merge tree with ward linkage, keeps it for dendrogram rendering, then cuts
// it to the requested flat cluster count. Merge ties resolve in scan order;
// treat that as implementation-defined, not guaranteed.
type Hierarchical struct {
	cfg     HierarchicalConfig
	linkage []Merge
	logger  zerolog.Logger
}

// NewHierarchical returns an unfitted adapter.
func NewHierarchical(cfg HierarchicalConfig, logger zerolog.Logger) *Hierarchical {
	if cfg.K <= 0 {
		cfg.K = 3
	}
	return &Hierarchical{cfg: cfg, logger: logger}
}

func (h *Hierarchical) Method() Method { return MethodHierarchical }

// Config returns the parameters the adapter was built with.
func (h *Hierarchical) Config() HierarchicalConfig { return h.cfg }

// Linkage returns the full merge tree of the last fit, n-1 rows for n
// records.
func (h *Hierarchical) Linkage() []Merge { return h.linkage }

// Fit agglomerates the rows of data into K flat clusters and returns one
// label per row. Labels are numbered by first appearance in row order, so a
// given input always yields the same labeling.
func (h *Hierarchical) Fit(data [][]float64) ([]int, error) {
	if err := validateMatrix(data); err != nil {
		return nil, fmt.Errorf("hierarchical: %w", err)
	}
	n := len(data)
	if n < h.cfg.K {
		return nil, fmt.Errorf("hierarchical: %w: %d rows for k=%d", ErrTooFewRows, n, h.cfg.K)
	}

	// Squared ward distances between active clusters. For singletons this is
	// the squared euclidean distance; the Lance-Williams update keeps the
	// matrix in ward form, so the cheapest merge is simply the smallest entry.
	// Reported merge heights are the square roots.
	d2 := make([][]float64, n)
	for i := range d2 {
		d2[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := floats.Distance(data[i], data[j], 2)
			d2[i][j] = d * d
			d2[j][i] = d * d
		}
	}

	active := make([]bool, n)
	size := make([]int, n)
	id := make([]int, n)
	for i := range active {
		active[i] = true
		size[i] = 1
		id[i] = i
	}
	// parent chains for cutting the tree later
	parent := make([]int, 2*n-1)
	for i := range parent {
		parent[i] = -1
	}

	h.linkage = make([]Merge, 0, n-1)
	for step := 0; step < n-1; step++ {
		// find the cheapest ward merge among active clusters
		bi, bj, best := -1, -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !active[j] {
					continue
				}
				if d2[i][j] < best {
					bi, bj, best = i, j, d2[i][j]
				}
			}
		}

		newID := n + step
		h.linkage = append(h.linkage, Merge{
			Left:     id[bi],
			Right:    id[bj],
			Distance: math.Sqrt(best),
			Size:     size[bi] + size[bj],
		})
		parent[id[bi]] = newID
		parent[id[bj]] = newID

		// Lance-Williams update for ward: fold cluster bj into slot bi.
		ni, nj := float64(size[bi]), float64(size[bj])
		for k := 0; k < n; k++ {
			if !active[k] || k == bi || k == bj {
				continue
			}
			nk := float64(size[k])
			d2[bi][k] = ((ni+nk)*d2[bi][k] + (nj+nk)*d2[bj][k] - nk*d2[bi][bj]) / (ni + nj + nk)
			d2[k][bi] = d2[bi][k]
		}
		size[bi] += size[bj]
		id[bi] = newID
		active[bj] = false
	}

	labels := cutTree(parent, n, h.cfg.K)
	h.logger.Info().
		Int("k", h.cfg.K).
		Interface("sizes", sizes(labels)).
		Msg("hierarchical fit complete")
	return labels, nil
}

// cutTree assigns flat labels by following parent chains only through the
// first n-k merges, then numbering the surviving roots by first appearance.
func cutTree(parent []int, n, k int) []int {
	limit := n + (n - k) // ids below this were created by the kept merges
	labels := make([]int, n)
	next := 0
	rootLabel := make(map[int]int)
	for i := 0; i < n; i++ {
		r := i
		for parent[r] != -1 && parent[r] < limit {
			r = parent[r]
		}
		l, ok := rootLabel[r]
		if !ok {
			l = next
			rootLabel[r] = l
			next++
		}
		labels[i] = l
	}
	return labels
}
