package cli

import (
	"context"
	"fmt"

	"github.com/priorlabs/tabpfn-cli/internal/ui"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your TabPFN account",
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your account and all of its data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(ctx context.Context, rt *runtime) error {

			s, err := rt.session(ctx)
			if err != nil {
				return err
			}

			rt.terminal.Warn("This deletes your account and every dataset you have uploaded.")

			password, err := rt.terminal.Password(ctx, "Please confirm by entering your password")
			if err != nil {
				return err
			}

			err = rt.status(ctx, "Deleting account", func(ctx context.Context) error {
				return rt.service.DeleteUserAccount(ctx, password)
			})
			if err != nil {
				return err
			}

			rt.bootstrap.Reset(s)

			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render("Your account has been deleted."))
			return nil
		})
	},
}

func init() {
	accountCmd.AddCommand(accountDeleteCmd)
	rootCmd.AddCommand(accountCmd)
}
