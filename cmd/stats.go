package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/help-intl/aidcluster/internal/dataset"
	"github.com/help-intl/aidcluster/internal/report"
	"github.com/help-intl/aidcluster/internal/stats"
)

var statsAlpha float64

var statsCmd = &cobra.Command{
	Use:   "stats <countries.csv>",
	Short: "Run the standing hypothesis tests over the raw table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := ensureConfig()
		alpha := statsAlpha
		if alpha <= 0 {
			alpha = c.Alpha
		}
		raw, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		results, err := stats.RunAll(raw, alpha)
		if err != nil {
			return err
		}
		report.Hypotheses(os.Stdout, results)
		return nil
	},
}

func init() {
	statsCmd.Flags().Float64Var(&statsAlpha, "alpha", 0, "significance level (default from config)")
	rootCmd.AddCommand(statsCmd)
}
