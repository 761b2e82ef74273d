// Package reduce projects standardized features to a low-dimensional space
// for visualization. Nothing downstream of the clustering consumes these
// coordinates.
package reduce

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Projection holds per-record principal-component coordinates and the
// explained variance ratio of each kept component.
type Projection struct {
	Components int
	Coords     [][]float64
	Explained  []float64
}

// Project computes a principal component projection of the standardized
// feature matrix onto the leading components (2 for the cluster scatter
// plots). Requires more rows than components.
func Project(data [][]float64, components int) (*Projection, error) {
	if components < 1 {
		return nil, fmt.Errorf("pca: components must be at least 1, got %d", components)
	}
	n := len(data)
	if n == 0 {
		return nil, errors.New("pca: empty input matrix")
	}
	dim := len(data[0])
	if components > dim {
		return nil, fmt.Errorf("pca: %d components requested from %d features", components, dim)
	}
	if n <= components {
		return nil, fmt.Errorf("pca: need more than %d rows, got %d", components, n)
	}

	flat := make([]float64, 0, n*dim)
	for i, row := range data {
		if len(row) != dim {
			return nil, fmt.Errorf("pca: ragged input matrix at row %d", i)
		}
		flat = append(flat, row...)
	}
	m := mat.NewDense(n, dim, flat)

	var pc stat.PC
	if ok := pc.PrincipalComponents(m, nil); !ok {
		return nil, errors.New("pca: decomposition failed")
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)
	total := floats.Sum(vars)

	var proj mat.Dense
	proj.Mul(m, vecs.Slice(0, dim, 0, components))

	out := &Projection{
		Components: components,
		Coords:     make([][]float64, n),
		Explained:  make([]float64, components),
	}
	for c := 0; c < components; c++ {
		if total > 0 {
			out.Explained[c] = vars[c] / total
		}
	}
	for i := 0; i < n; i++ {
		row := make([]float64, components)
		for c := 0; c < components; c++ {
			row[c] = proj.At(i, c)
		}
		out.Coords[i] = row
	}
	return out, nil
}
