// Package pipeline wires the stages together: load, winsorize, standardize,
// engineer, fit the three clusterers, profile, rank, project. Each stage is
// a pure function over immutable table snapshots; the only shared state that
// leaves a run is the Artifacts context, built once and never mutated after
// the fits complete.
package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/help-intl/aidcluster/internal/cluster"
	"github.com/help-intl/aidcluster/internal/dataset"
	"github.com/help-intl/aidcluster/internal/preprocess"
	"github.com/help-intl/aidcluster/internal/reduce"
	"github.com/help-intl/aidcluster/internal/utils"
)

// Options configures one pipeline run.
type Options struct {
	DataPath       string
	OutlierColumns []string
	IQRMultiplier  float64
	KMeans         cluster.KMeansConfig
	Hierarchical   cluster.HierarchicalConfig
	DBSCAN         cluster.DBSCANConfig
	PCAComponents  int
	Logger         zerolog.Logger
}

// DefaultOptions mirrors the production analysis parameters.
func DefaultOptions() Options {
	return Options{
		OutlierColumns: []string{"child_mort", "income", "gdpp"},
		IQRMultiplier:  preprocess.DefaultIQRMultiplier,
		KMeans:         cluster.DefaultKMeansConfig(),
		Hierarchical:   cluster.DefaultHierarchicalConfig(),
		DBSCAN:         cluster.DefaultDBSCANConfig(),
		PCAComponents:  2,
		Logger:         zerolog.Nop(),
	}
}

// Artifacts is the explicit context object a completed run hands to its
// consumers (CLI reports, the REST layer). Construct once, pass by
// reference, never mutate after the fit.
type Artifacts struct {
	RunID string

	Raw          *dataset.Table
	Winsorized   *dataset.Table
	Standardized *dataset.Table
	Engineered   *dataset.Table

	Bounds []preprocess.Bounds
	Scaler *preprocess.Scaler
	KMeans *cluster.KMeans

	Labels   map[cluster.Method][]int
	Linkage  []cluster.Merge
	Profiles map[cluster.Method]cluster.Profile
	Priority []cluster.PriorityEntry

	PCA *reduce.Projection
}

// Run executes the full pipeline over the table at opts.DataPath. Any stage
// failure is terminal for the run; there is no partial-success state.
func Run(opts Options) (*Artifacts, error) {
	raw, err := dataset.Load(opts.DataPath)
	if err != nil {
		return nil, err
	}
	return RunTable(raw, opts)
}

// RunTable executes the pipeline over an already-loaded table.
func RunTable(raw *dataset.Table, opts Options) (*Artifacts, error) {
	log := opts.Logger
	a := &Artifacts{
		RunID:    uuid.NewString(),
		Raw:      raw,
		Labels:   make(map[cluster.Method][]int, 3),
		Profiles: make(map[cluster.Method]cluster.Profile, 3),
	}
	log.Info().Str("run_id", a.RunID).Int("rows", raw.Rows()).Msg("pipeline start")

	// Outlier handling before anything reads column statistics.
	wins := preprocess.NewWinsorizer(opts.OutlierColumns, opts.IQRMultiplier)
	winsorized, bounds, err := wins.Apply(raw)
	if err != nil {
		return nil, err
	}
	a.Winsorized = winsorized
	a.Bounds = bounds

	// Exactly one scaler per run, fit on the winsorized pre-engineering
	// table; every later scale and unscale reuses it.
	scaler, err := preprocess.FitScaler(winsorized, dataset.Features)
	if err != nil {
		return nil, err
	}
	a.Scaler = scaler
	standardized, err := scaler.Transform(winsorized)
	if err != nil {
		return nil, err
	}
	a.Standardized = standardized

	engineered, err := preprocess.Engineer(standardized)
	if err != nil {
		return nil, err
	}
	a.Engineered = engineered

	matrix, err := standardized.Matrix(dataset.Features)
	if err != nil {
		return nil, err
	}

	// The three fits are mutually independent; they run sequentially here
	// and a caller is free not to care.
	km := cluster.NewKMeans(opts.KMeans, log)
	hc := cluster.NewHierarchical(opts.Hierarchical, log)
	db := cluster.NewDBSCAN(opts.DBSCAN, log)
	a.KMeans = km

	for _, c := range []cluster.Clusterer{km, hc, db} {
		labels, err := c.Fit(matrix)
		if err != nil {
			return nil, err
		}
		a.Labels[c.Method()] = labels
		profile, err := cluster.ProfileClusters(standardized, labels, dataset.Features)
		if err != nil {
			return nil, err
		}
		a.Profiles[c.Method()] = profile
	}
	a.Linkage = hc.Linkage()

	a.Priority, err = cluster.RankPriority(raw, a.Labels[cluster.MethodKMeans], a.Profiles[cluster.MethodKMeans])
	if err != nil {
		return nil, err
	}

	if opts.PCAComponents > 0 {
		proj, err := reduce.Project(matrix, opts.PCAComponents)
		if err != nil {
			return nil, err
		}
		a.PCA = proj
	}

	log.Info().
		Str("run_id", a.RunID).
		Int("priority_countries", len(a.Priority)).
		Msg("pipeline complete")
	return a, nil
}

// Artifact file names inside the models directory.
const (
	ScalerFile  = "scaler.gob"
	KMeansFile  = "kmeans.gob"
	ResultsFile = "clustering_results.csv"
)

// Save persists the reusable artifacts of a run: the fitted scaler, the
// k-means model, and the labeled results table.
func (a *Artifacts) Save(dir string) error {
	if err := utils.EnsureDir(dir); err != nil {
		return fmt.Errorf("models dir: %w", err)
	}
	if err := a.Scaler.Save(filepath.Join(dir, ScalerFile)); err != nil {
		return err
	}
	if err := a.KMeans.Save(filepath.Join(dir, KMeansFile)); err != nil {
		return err
	}
	return a.writeResults(filepath.Join(dir, ResultsFile))
}
