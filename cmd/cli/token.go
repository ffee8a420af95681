package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/priorlabs/tabpfn-cli/internal/client"
	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print the access token, logging in first if needed",
	Long: `Prints the access token of the current session. The token can be
passed to other machines through TABPFN_ACCESS_TOKEN or 'tabpfn set-token'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(ctx context.Context, rt *runtime) error {

			if cfg.HasAccessToken() {
				fmt.Fprintln(cmd.OutOrStdout(), cfg.AccessToken)
				return nil
			}

			token, s, err := rt.bootstrap.GetAccessToken(ctx, models.Session{})
			if err != nil {
				return err
			}
			if !s.IsReady() {
				return client.ErrNotAuthorized
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		})
	},
}

var setTokenCmd = &cobra.Command{
	Use:   "set-token <token>",
	Short: "Use the given access token without prompting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := strings.TrimSpace(args[0])
		if len(token) == 0 {
			return fmt.Errorf("token cannot be empty")
		}

		return withRuntime(func(ctx context.Context, rt *runtime) error {
			rt.bootstrap.SetAccessToken(models.Session{}, token)
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render("Access token saved."))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(setTokenCmd)
}
