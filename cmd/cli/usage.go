package cli

import (
	"context"
	"fmt"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show how many API credits you have used",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(ctx context.Context, rt *runtime) error {

			if _, err := rt.session(ctx); err != nil {
				return err
			}

			var usage *models.APIUsage
			err := rt.status(ctx, "Fetching API usage", func(ctx context.Context) error {
				var err error
				usage, err = rt.service.GetAPIUsage(ctx)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), usage.Summary())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
}
