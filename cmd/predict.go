package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/help-intl/aidcluster/internal/cluster"
	"github.com/help-intl/aidcluster/internal/dataset"
	"github.com/help-intl/aidcluster/internal/pipeline"
	"github.com/help-intl/aidcluster/internal/preprocess"
	"github.com/help-intl/aidcluster/internal/utils"
)

var (
	predValues    []float64
	predModelsDir string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Assign a single country record to a cluster using persisted artifacts",
	Long: `predict loads the scaler and k-means model written by a previous analyze or
serve run and assigns one new observation, given as nine --values in feature
order: ` + fmt.Sprint(dataset.Features),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := ensureConfig()
		dir := predModelsDir
		if dir == "" {
			dir = c.ModelsDir
		}
		if len(predValues) != len(dataset.Features) {
			return fmt.Errorf("--values needs %d comma-separated numbers, got %d", len(dataset.Features), len(predValues))
		}

		scaler, err := preprocess.LoadScaler(filepath.Join(dir, pipeline.ScalerFile))
		if err != nil {
			return err
		}
		model, err := cluster.LoadKMeans(filepath.Join(dir, pipeline.KMeansFile), logger)
		if err != nil {
			return err
		}

		scaled, err := scaler.TransformRow(predValues)
		if err != nil {
			return err
		}
		label, err := model.Predict(scaled)
		if err != nil {
			return err
		}

		out, err := utils.PrettyJSON(map[string]any{
			"cluster":  label,
			"features": dataset.Features,
			"values":   predValues,
		})
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	predictCmd.Flags().Float64SliceVar(&predValues, "values", nil, "nine indicator values in feature order")
	predictCmd.Flags().StringVar(&predModelsDir, "models-dir", "", "directory holding persisted artifacts")
	_ = predictCmd.MarkFlagRequired("values")
	rootCmd.AddCommand(predictCmd)
}
