package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/help-intl/aidcluster/internal/api"
	"github.com/help-intl/aidcluster/internal/pipeline"
)

var (
	serveHost string
	servePort int
	serveData string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Fit the pipeline once at startup and serve predictions over HTTP",
	Long: `serve runs the full pipeline against the configured data file, keeps the
fitted artifacts in memory, persists the scaler and k-means model, and then
answers /predict, /clusters, /countries and /priority queries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := ensureConfig()
		opts := pipelineOptions(c)
		if serveData != "" {
			opts.DataPath = serveData
		}

		arts, err := pipeline.Run(opts)
		if err != nil {
			return err
		}
		if err := arts.Save(c.ModelsDir); err != nil {
			return err
		}

		host := serveHost
		if host == "" {
			host = c.APIHost
		}
		port := servePort
		if port == 0 {
			port = c.APIPort
		}
		srv := api.New(arts, logger)
		return srv.Run(fmt.Sprintf("%s:%d", host, port))
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	serveCmd.Flags().StringVar(&serveData, "data", "", "data file (default from config)")
	rootCmd.AddCommand(serveCmd)
}
