package cluster

import (
	"fmt"

	"github.com/mpraski/clusters"
	"github.com/rs/zerolog"
)

// DBSCANConfig holds the density-fit parameters: neighborhood radius and the
// minimum neighborhood size for a core point. The metric is euclidean.
type DBSCANConfig struct {
	Eps        float64
	MinSamples int
}

// DefaultDBSCANConfig mirrors the production fit: eps=1.5, minSamples=3.
func DefaultDBSCANConfig() DBSCANConfig {
	return DBSCANConfig{Eps: 1.5, MinSamples: 3}
}

// DBSCAN is the density-based adapter. There is no fixed cluster count;
// clusters emerge from density-connected regions, and points not reachable
// from any core point come back with the reserved Noise label.
type DBSCAN struct {
	cfg    DBSCANConfig
	logger zerolog.Logger
}

// NewDBSCAN returns an unfitted adapter.
func NewDBSCAN(cfg DBSCANConfig, logger zerolog.Logger) *DBSCAN {
	if cfg.Eps <= 0 {
		cfg.Eps = 1.5
	}
	if cfg.MinSamples <= 0 {
		cfg.MinSamples = 3
	}
	return &DBSCAN{cfg: cfg, logger: logger}
}

func (d *DBSCAN) Method() Method { return MethodDBSCAN }

// Config returns the parameters the adapter was built with.
func (d *DBSCAN) Config() DBSCANConfig { return d.cfg }

// Fit labels the rows of data by density reachability. Labels are 0-based
// cluster numbers in input order, with Noise (-1) for outliers.
func (d *DBSCAN) Fit(data [][]float64) ([]int, error) {
	if err := validateMatrix(data); err != nil {
		return nil, fmt.Errorf("dbscan: %w", err)
	}
	c, err := clusters.DBSCAN(d.cfg.MinSamples, d.cfg.Eps, 1, clusters.EuclideanDistance)
	if err != nil {
		return nil, fmt.Errorf("dbscan: create clusterer: %w", err)
	}
	if err := c.Learn(data); err != nil {
		return nil, fmt.Errorf("dbscan: fit: %w", err)
	}
	labels := normalizeLabels(c.Guesses())

	var noise, found int
	for _, l := range labels {
		if l == Noise {
			noise++
		} else if l+1 > found {
			found = l + 1
		}
	}
	d.logger.Info().
		Int("clusters", found).
		Int("noise_points", noise).
		Interface("sizes", sizes(labels)).
		Msg("dbscan fit complete")
	return labels, nil
}
