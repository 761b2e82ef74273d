package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cfgpkg "github.com/help-intl/aidcluster/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global

	// Root logger, configured in loadConfig
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aidcluster",
	Short: "aidcluster: cluster country development indicators for aid targeting",
	Long: `aidcluster loads a CSV of country development indicators, winsorizes
outliers, standardizes the nine numeric features, fits K-Means, agglomerative
and DBSCAN clusterings, profiles the clusters, and ranks the countries of the
most vulnerable cluster for aid priority.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.aidcluster/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// ensureConfig returns the loaded config, falling back to built-in defaults
// when the config file could not be read.
func ensureConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	c, err := cfgpkg.Load("")
	if err == nil {
		cfg = c
		return cfg
	}
	return &cfgpkg.Global{
		DataPath:         "data/countries.csv",
		ModelsDir:        "models",
		OutlierColumns:   []string{"child_mort", "income", "gdpp"},
		IQRMultiplier:    1.5,
		KMeansK:          3,
		KMeansMaxIter:    300,
		KMeansRestarts:   10,
		KMeansSeed:       42,
		SweepMaxK:        10,
		HierarchicalK:    3,
		DBSCANEps:        1.5,
		DBSCANMinSamples: 3,
		PCAComponents:    2,
		Alpha:            0.05,
		APIHost:          "0.0.0.0",
		APIPort:          5000,
	}
}
