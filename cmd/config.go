package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/help-intl/aidcluster/internal/config"
	"github.com/help-intl/aidcluster/internal/utils"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or write configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := utils.PrettyJSON(ensureConfig())
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := ensureConfig()
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("✓ Configuration written")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
