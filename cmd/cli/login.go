package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in or register with the TabPFN service",
	Long: `Reuses a cached access token when the service still accepts it.
Otherwise walks you through logging in or registering a new account,
including email verification. An unfinished registration is resumed.`,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	return withRuntime(func(ctx context.Context, rt *runtime) error {

		s, err := rt.bootstrap.Init(ctx, models.Session{}, true)
		if err != nil {
			if errors.Is(err, ui.ErrInterrupted) {
				return nil
			}
			return err
		}

		printLoginResult(cmd.OutOrStdout(), s, cfg.GetServerUrl())
		return nil
	})
}

// printLoginResult closes a login run. The wizard has already announced a
// successful login, so only the server in use is added here.
func printLoginResult(out io.Writer, s models.Session, server string) {
	if !s.IsReady() {
		fmt.Fprintln(out, ui.WarningStyle.Render("Not logged in."))
		return
	}
	fmt.Fprintf(out, "Server: %s\n", server)
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the cached access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(ctx context.Context, rt *runtime) error {
			rt.auth.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render("Logged out."))
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Log out and remove all cached state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(ctx context.Context, rt *runtime) error {
			rt.bootstrap.Reset(models.Session{})
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n",
				ui.SuccessStyle.Render("Reset."), cfg.GetCacheDir())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(resetCmd)
}
