package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/help-intl/aidcluster/internal/cluster"
	"github.com/help-intl/aidcluster/internal/dataset"
	"github.com/help-intl/aidcluster/internal/preprocess"
	"github.com/help-intl/aidcluster/internal/report"
)

var sweepMaxK int

var sweepCmd = &cobra.Command{
	Use:   "sweep <countries.csv>",
	Short: "Fit k-means for k=1..max-k and print the elbow and silhouette curves",
	Long: `sweep preprocesses the table exactly like analyze (winsorize, standardize)
and then fits k-means once per candidate k, recording inertia and the
silhouette coefficient. The output is diagnostic; the final fit always uses
the explicitly configured k.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := ensureConfig()
		maxK := sweepMaxK
		if maxK <= 0 {
			maxK = c.SweepMaxK
		}

		raw, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		wins := preprocess.NewWinsorizer(c.OutlierColumns, c.IQRMultiplier)
		winsorized, _, err := wins.Apply(raw)
		if err != nil {
			return err
		}
		scaler, err := preprocess.FitScaler(winsorized, dataset.Features)
		if err != nil {
			return err
		}
		standardized, err := scaler.Transform(winsorized)
		if err != nil {
			return err
		}
		matrix, err := standardized.Matrix(dataset.Features)
		if err != nil {
			return err
		}

		kcfg := cluster.KMeansConfig{
			MaxIter:  c.KMeansMaxIter,
			Restarts: c.KMeansRestarts,
			Seed:     c.KMeansSeed,
		}
		points, err := cluster.Sweep(matrix, maxK, kcfg, logger)
		if err != nil {
			return err
		}
		report.Sweep(os.Stdout, points)
		return nil
	},
}

func init() {
	sweepCmd.Flags().IntVar(&sweepMaxK, "max-k", 0, "largest cluster count to test (default from config)")
	rootCmd.AddCommand(sweepCmd)
}
