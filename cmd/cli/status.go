package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/priorlabs/tabpfn-cli/internal/auth"
	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/store"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the server, connectivity and cached token",
	Long: `Shows which server the CLI talks to, whether it is reachable and what
is known about the cached access token. Never prompts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(ctx context.Context, rt *runtime) error {
			return printStatus(ctx, cmd.OutOrStdout(), rt)
		})
	},
}

func printStatus(ctx context.Context, out io.Writer, rt *runtime) error {

	fmt.Fprintln(out, ui.TitleStyle.Render("TabPFN status"))

	row(out, "Server", cfg.GetServerUrl())
	if file := cfg.File(); len(file) > 0 {
		row(out, "Config", file)
	}

	reachable := rt.service.ValidateConnection(ctx)
	if reachable {
		row(out, "Connection", ui.SuccessStyle.Render("reachable"))
	} else {
		row(out, "Connection", ui.ErrorStyle.Render("unreachable"))
	}

	token, source := currentToken()
	if len(token) == 0 {
		row(out, "Token", ui.WarningStyle.Render("none"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.InfoStyle.Render("Run 'tabpfn login' to log in or register."))
		return nil
	}

	row(out, "Token", source)

	info, err := auth.DescribeToken(token)
	switch {
	case errors.Is(err, auth.ErrOpaqueToken):
		row(out, "Claims", "not a JWT")
	case err != nil:
		return err
	default:
		printClaims(out, info, time.Now())
	}

	if !reachable {
		return nil
	}

	verdict, err := rt.service.ValidateToken(ctx, token)
	if err != nil {
		return err
	}

	switch verdict {
	case models.TokenValid:
		row(out, "Verdict", ui.ActiveStyle.Render(verdict.String()))
	case models.TokenUnverified:
		row(out, "Verdict", ui.WarningStyle.Render("email not verified"))
	default:
		row(out, "Verdict", ui.ErrorStyle.Render(verdict.String()))
	}

	return nil
}

// currentToken finds the token a command would use without prompting.
func currentToken() (string, string) {
	if cfg.HasAccessToken() {
		return cfg.AccessToken, "configuration"
	}
	cache := store.NewTokenCache(cfg.GetCacheDir())
	if token, found := cache.Read(); found {
		return token, cache.Path()
	}
	return "", ""
}

func printClaims(out io.Writer, info auth.TokenInfo, now time.Time) {
	if len(info.Subject) > 0 {
		row(out, "Subject", info.Subject)
	}
	if info.IssuedAt != nil {
		row(out, "Issued", info.IssuedAt.Local().Format(time.RFC1123))
	}
	if info.ExpiresAt != nil {
		expires := info.ExpiresAt.Local().Format(time.RFC1123)
		if info.Expired(now) {
			row(out, "Expires", ui.ExpiredStyle.Render(expires))
		} else {
			row(out, "Expires", ui.ActiveStyle.Render(expires))
		}
	}
}

func row(out io.Writer, label string, value string) {
	fmt.Fprintf(out, "%s%s\n", ui.LabelStyle.Render(label+":"), value)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
