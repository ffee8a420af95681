package cli

import (
	"errors"
	"fmt"

	"github.com/priorlabs/tabpfn-cli/internal/config"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Global configuration instance
var cfg *config.Config

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")

	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	return config.Load(configFile)
}

func preRunConfigE(cmd *cobra.Command, _ []string) error {
	// Load configuration before any command runs
	var err error
	cfg, err = loadConfig(cmd)

	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// check if verbose flag is set
	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Get the server override from the flag
	server, err := cmd.Flags().GetString("server")
	if err == nil && len(server) > 0 {
		if err := cfg.SetServer(server); err != nil {
			return fmt.Errorf("failed to set server: %w", err)
		}
	}

	return nil
}

var rootCmd = &cobra.Command{
	Use:   "tabpfn",
	Short: "TabPFN - predictions on tabular data from the command line",
	Long: `TabPFN is a foundation model for tabular data. This CLI registers and
logs you in to the hosted TabPFN service, manages your uploaded data and
runs fit/predict against it.

Run 'tabpfn login' to get started.`,
	SilenceUsage:      true,
	PersistentPreRunE: preRunConfigE,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogin(cmd, args)
	},
}

func init() {

	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $HOME/.config/tabpfn/config.yaml)")
	rootCmd.PersistentFlags().String("server", "", "Override the TabPFN server (e.g., http://localhost:8000)")

}

func GetCommandOptions() *cobra.Command {
	return rootCmd
}

// Execute runs the root command and turns interrupts into a clean exit.
func Execute() int {
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ui.ErrInterrupted):
		return 130
	default:
		return 1
	}
}
