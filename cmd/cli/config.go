package cli

import (
	"github.com/priorlabs/tabpfn-cli/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printConfig(cmd, cfg)
	},
}

func printConfig(cmd *cobra.Command, c *config.Config) error {

	effective := *c
	if effective.HasAccessToken() {
		effective.AccessToken = "<redacted>"
	}
	effective.Cache.Dir = c.GetCacheDir()
	effective.Registration.Dir = c.GetRegistrationDir()

	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(effective)
}

func init() {
	rootCmd.AddCommand(configCmd)
}
