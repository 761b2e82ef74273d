package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/help-intl/aidcluster/internal/cluster"
	"github.com/help-intl/aidcluster/internal/dataset"
	"github.com/help-intl/aidcluster/internal/pipeline"
	"github.com/help-intl/aidcluster/internal/report"
)

var (
	anaK          int
	anaEps        float64
	anaMinSamples int
	anaOutlierCol []string
	anaIQRMult    float64
	anaModelsDir  string
	anaNoSave     bool
	anaDescribe   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <countries.csv>",
	Short: "Run the full clustering pipeline and print cluster profiles and the aid priority list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := ensureConfig()
		opts := pipelineOptions(c)
		opts.DataPath = args[0]
		if anaK > 0 {
			opts.KMeans.K = anaK
			opts.Hierarchical.K = anaK
		}
		if anaEps > 0 {
			opts.DBSCAN.Eps = anaEps
		}
		if anaMinSamples > 0 {
			opts.DBSCAN.MinSamples = anaMinSamples
		}
		if len(anaOutlierCol) > 0 {
			opts.OutlierColumns = anaOutlierCol
		}
		if anaIQRMult > 0 {
			opts.IQRMultiplier = anaIQRMult
		}

		arts, err := pipeline.Run(opts)
		if err != nil {
			return err
		}

		if anaDescribe {
			summaries, err := dataset.Describe(arts.Winsorized)
			if err != nil {
				return err
			}
			report.Describe(os.Stdout, summaries)
			corr, err := dataset.Correlations(arts.Winsorized)
			if err != nil {
				return err
			}
			report.Correlations(os.Stdout, corr)
		}

		for _, m := range []cluster.Method{cluster.MethodKMeans, cluster.MethodHierarchical, cluster.MethodDBSCAN} {
			report.Profiles(os.Stdout, m, arts.Profiles[m])
		}
		report.Priority(os.Stdout, arts.Priority)
		if arts.PCA != nil {
			fmt.Printf("\nPCA explained variance ratio: %v\n", arts.PCA.Explained)
		}

		if !anaNoSave {
			dir := anaModelsDir
			if dir == "" {
				dir = c.ModelsDir
			}
			if err := arts.Save(dir); err != nil {
				return err
			}
			fmt.Printf("✓ Artifacts saved to %s (run %s)\n", dir, arts.RunID)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().IntVar(&anaK, "k", 0, "cluster count for k-means and hierarchical fits (default from config)")
	analyzeCmd.Flags().Float64Var(&anaEps, "eps", 0, "DBSCAN neighborhood radius")
	analyzeCmd.Flags().IntVar(&anaMinSamples, "min-samples", 0, "DBSCAN minimum neighborhood size")
	analyzeCmd.Flags().StringSliceVar(&anaOutlierCol, "outlier-columns", nil, "columns to winsorize")
	analyzeCmd.Flags().Float64Var(&anaIQRMult, "iqr-multiplier", 0, "IQR fence multiplier for winsorization")
	analyzeCmd.Flags().StringVar(&anaModelsDir, "models-dir", "", "directory for persisted artifacts")
	analyzeCmd.Flags().BoolVar(&anaNoSave, "no-save", false, "skip artifact persistence")
	analyzeCmd.Flags().BoolVar(&anaDescribe, "describe", false, "print descriptive statistics and correlations first")
	rootCmd.AddCommand(analyzeCmd)
}
