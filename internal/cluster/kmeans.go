package cluster

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"
	"os"

	"github.com/mpraski/clusters"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/help-intl/aidcluster/internal/utils"
)

// KMeansConfig holds the partition-fit parameters. Seed is recorded as
// artifact provenance; the underlying library owns its own initialization
// randomness, so run-to-run stability comes from Restarts with best-inertia
// selection.
type KMeansConfig struct {
	K        int
	MaxIter  int
	Restarts int
	Seed     int64
}

// DefaultKMeansConfig mirrors the production fit: k=3, 300 iterations,
// 10 restarts, seed 42.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{K: 3, MaxIter: 300, Restarts: 10, Seed: 42}
}

// KMeans is the partition-based adapter. It wraps the external k-means
// routine, keeps the winning centroids, and supports nearest-centroid
// prediction for new observations.
type KMeans struct {
	cfg       KMeansConfig
	centroids [][]float64
	inertia   float64
	logger    zerolog.Logger
}

// NewKMeans returns an unfitted adapter.
func NewKMeans(cfg KMeansConfig, logger zerolog.Logger) *KMeans {
	if cfg.K <= 0 {
		cfg.K = 3
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 300
	}
	if cfg.Restarts <= 0 {
		cfg.Restarts = 1
	}
	return &KMeans{cfg: cfg, logger: logger}
}

func (m *KMeans) Method() Method { return MethodKMeans }

// Config returns the parameters the adapter was built with.
func (m *KMeans) Config() KMeansConfig { return m.cfg }

// Fit partitions the rows of data into K clusters and returns one label per
// row. The best of Restarts independent fits (lowest inertia) wins.
func (m *KMeans) Fit(data [][]float64) ([]int, error) {
	if err := validateMatrix(data); err != nil {
		return nil, fmt.Errorf("kmeans: %w", err)
	}
	if len(data) < m.cfg.K {
		return nil, fmt.Errorf("kmeans: %w: %d rows for k=%d", ErrTooFewRows, len(data), m.cfg.K)
	}
	if m.cfg.K == 1 {
		return m.fitSingle(data), nil
	}

	var (
		bestLabels  []int
		bestCents   [][]float64
		bestInertia = math.Inf(1)
	)
	for r := 0; r < m.cfg.Restarts; r++ {
		c, err := clusters.KMeans(m.cfg.MaxIter, m.cfg.K, clusters.EuclideanDistance)
		if err != nil {
			return nil, fmt.Errorf("kmeans: create clusterer: %w", err)
		}
		if err := c.Learn(data); err != nil {
			return nil, fmt.Errorf("kmeans: fit: %w", err)
		}
		labels := normalizeLabels(c.Guesses())
		cents := centroidsOf(data, labels, m.cfg.K)
		in := inertia(data, labels, cents)
		if in < bestInertia {
			bestInertia = in
			bestLabels = labels
			bestCents = cents
		}
	}

	m.centroids = bestCents
	m.inertia = bestInertia
	m.logger.Info().
		Int("k", m.cfg.K).
		Float64("inertia", bestInertia).
		Interface("sizes", sizes(bestLabels)).
		Msg("kmeans fit complete")
	return bestLabels, nil
}

// fitSingle handles k=1, which the library refuses: everything lands in one
// cluster around the global mean. Needed so the sweep can start at k=1.
func (m *KMeans) fitSingle(data [][]float64) []int {
	dim := len(data[0])
	cent := make([]float64, dim)
	for _, row := range data {
		floats.Add(cent, row)
	}
	floats.Scale(1/float64(len(data)), cent)
	labels := make([]int, len(data))
	m.centroids = [][]float64{cent}
	m.inertia = inertia(data, labels, m.centroids)
	return labels
}

// Centroids returns the fitted cluster centers, row per cluster.
func (m *KMeans) Centroids() [][]float64 { return m.centroids }

// Inertia returns the within-cluster sum of squares of the winning fit.
func (m *KMeans) Inertia() float64 { return m.inertia }

// Predict assigns a single already-standardized observation to its nearest
// centroid. Only valid after Fit or LoadKMeans.
func (m *KMeans) Predict(row []float64) (int, error) {
	if len(m.centroids) == 0 {
		return 0, fmt.Errorf("kmeans: predict before fit")
	}
	if len(row) != len(m.centroids[0]) {
		return 0, fmt.Errorf("kmeans: observation has %d features, model fitted on %d", len(row), len(m.centroids[0]))
	}
	best, bestDist := 0, math.Inf(1)
	for c, cent := range m.centroids {
		if d := floats.Distance(row, cent, 2); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, nil
}

// SweepPoint records the diagnostics for one candidate k. Silhouette is NaN
// for k=1, where it is undefined.
type SweepPoint struct {
	K          int
	Inertia    float64
	Silhouette float64
}

// Sweep fits k=1..maxK and records inertia plus, for k>=2, the silhouette
// coefficient. The curves are diagnostic only; nothing here selects k.
func Sweep(data [][]float64, maxK int, cfg KMeansConfig, logger zerolog.Logger) ([]SweepPoint, error) {
	if maxK < 1 {
		return nil, fmt.Errorf("kmeans sweep: maxK must be at least 1, got %d", maxK)
	}
	if maxK > len(data) {
		maxK = len(data)
	}
	points := make([]SweepPoint, 0, maxK)
	for k := 1; k <= maxK; k++ {
		c := cfg
		c.K = k
		fitter := NewKMeans(c, logger)
		labels, err := fitter.Fit(data)
		if err != nil {
			return nil, fmt.Errorf("kmeans sweep at k=%d: %w", k, err)
		}
		p := SweepPoint{K: k, Inertia: fitter.Inertia(), Silhouette: math.NaN()}
		if k >= 2 {
			sil, err := Silhouette(data, labels)
			if err == nil {
				p.Silhouette = sil
			}
		}
		points = append(points, p)
	}
	return points, nil
}

// kmeansBlob is the gob persistence form of a fitted model.
type kmeansBlob struct {
	Config    KMeansConfig
	Centroids [][]float64
	Inertia   float64
}

// Save writes the fitted model as a gob blob, atomically. The reloaded model
// predicts exactly like the fresh one.
func (m *KMeans) Save(path string) error {
	if len(m.centroids) == 0 {
		return fmt.Errorf("kmeans: save before fit")
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(kmeansBlob{Config: m.cfg, Centroids: m.centroids, Inertia: m.inertia}); err != nil {
		return fmt.Errorf("encode kmeans model: %w", err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("save kmeans model: %w", err)
	}
	return nil
}

// LoadKMeans reads a model previously written by Save.
func LoadKMeans(path string, logger zerolog.Logger) (*KMeans, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load kmeans model: %w", err)
	}
	var blob kmeansBlob
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&blob); err != nil {
		return nil, fmt.Errorf("decode kmeans model: %w", err)
	}
	if len(blob.Centroids) == 0 {
		return nil, fmt.Errorf("decode kmeans model: blob has no centroids")
	}
	m := NewKMeans(blob.Config, logger)
	m.centroids = blob.Centroids
	m.inertia = blob.Inertia
	return m, nil
}

// normalizeLabels maps the library's 1-based cluster numbers to 0-based
// labels, sending anything unassigned to the reserved noise value.
func normalizeLabels(guesses []int) []int {
	labels := make([]int, len(guesses))
	for i, g := range guesses {
		if g <= 0 {
			labels[i] = Noise
		} else {
			labels[i] = g - 1
		}
	}
	return labels
}
