package cli

import (
	"fmt"

	"github.com/priorlabs/tabpfn-cli/internal/common"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		version, gitCommit, ok := common.GetModuleBuildInfo()

		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Failed to get version information")
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "TabPFN CLI %s", version)
		if gitCommit != "unknown" && len(gitCommit) > 0 {
			if len(gitCommit) > 8 {
				fmt.Fprintf(cmd.OutOrStdout(), " (git: %s)", gitCommit[:8])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), " (git: %s)", gitCommit)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintf(cmd.OutOrStdout(), "Client ID: %s\n", common.GetClientIdentifier())
	},
}

func init() {

	rootCmd.AddCommand(versionCmd)
}
