package cmd

import (
	"github.com/help-intl/aidcluster/internal/cluster"
	cfgpkg "github.com/help-intl/aidcluster/internal/config"
	"github.com/help-intl/aidcluster/internal/pipeline"
)

// pipelineOptions maps loaded configuration onto pipeline options.
func pipelineOptions(c *cfgpkg.Global) pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.DataPath = c.DataPath
	if len(c.OutlierColumns) > 0 {
		opts.OutlierColumns = c.OutlierColumns
	}
	if c.IQRMultiplier > 0 {
		opts.IQRMultiplier = c.IQRMultiplier
	}
	opts.KMeans = cluster.KMeansConfig{
		K:        c.KMeansK,
		MaxIter:  c.KMeansMaxIter,
		Restarts: c.KMeansRestarts,
		Seed:     c.KMeansSeed,
	}
	opts.Hierarchical = cluster.HierarchicalConfig{K: c.HierarchicalK}
	opts.DBSCAN = cluster.DBSCANConfig{Eps: c.DBSCANEps, MinSamples: c.DBSCANMinSamples}
	if c.PCAComponents > 0 {
		opts.PCAComponents = c.PCAComponents
	}
	opts.Logger = logger
	return opts
}
