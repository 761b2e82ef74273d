package cluster

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// centroidsOf computes per-cluster mean points for labels 0..k-1. Noise rows
// are skipped.
func centroidsOf(data [][]float64, labels []int, k int) [][]float64 {
	dim := len(data[0])
	cents := make([][]float64, k)
	counts := make([]int, k)
	for c := range cents {
		cents[c] = make([]float64, dim)
	}
	for i, row := range data {
		l := labels[i]
		if l < 0 || l >= k {
			continue
		}
		floats.Add(cents[l], row)
		counts[l]++
	}
	for c := range cents {
		if counts[c] > 0 {
			floats.Scale(1/float64(counts[c]), cents[c])
		}
	}
	return cents
}

// inertia is the within-cluster sum of squared distances to the assigned
// centroid, the quantity the elbow curve plots.
func inertia(data [][]float64, labels []int, cents [][]float64) float64 {
	var sum float64
	for i, row := range data {
		l := labels[i]
		if l < 0 || l >= len(cents) {
			continue
		}
		d := floats.Distance(row, cents[l], 2)
		sum += d * d
	}
	return sum
}

// Silhouette computes the mean silhouette coefficient over all records:
// (b-a)/max(a,b) per record, where a is the mean intra-cluster distance and
// b the mean distance to the nearest other cluster. Requires at least two
// clusters with members.
func Silhouette(data [][]float64, labels []int) (float64, error) {
	members := make(map[int][]int)
	for i, l := range labels {
		members[l] = append(members[l], i)
	}
	if len(members) < 2 {
		return 0, errors.New("silhouette requires at least two clusters")
	}

	var total float64
	for i, row := range data {
		own := labels[i]
		var a float64
		if n := len(members[own]); n > 1 {
			for _, j := range members[own] {
				if j != i {
					a += floats.Distance(row, data[j], 2)
				}
			}
			a /= float64(n - 1)
		}
		b := math.Inf(1)
		for l, idxs := range members {
			if l == own {
				continue
			}
			var d float64
			for _, j := range idxs {
				d += floats.Distance(row, data[j], 2)
			}
			d /= float64(len(idxs))
			if d < b {
				b = d
			}
		}
		if m := math.Max(a, b); m > 0 {
			total += (b - a) / m
		}
	}
	return total / float64(len(data)), nil
}
