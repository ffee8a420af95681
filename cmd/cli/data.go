package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Inspect, download and delete the data you have uploaded",
}

var dataSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarise the datasets stored for your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(ctx context.Context, rt *runtime) error {

			if _, err := rt.session(ctx); err != nil {
				return err
			}

			var summary models.DataSummary
			err := rt.status(ctx, "Fetching data summary", func(ctx context.Context) error {
				var err error
				summary, err = rt.service.GetDataSummary(ctx)
				return err
			})
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode data summary: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		})
	},
}

var dataDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download all of your data as a zip archive",
	RunE: func(cmd *cobra.Command, args []string) error {

		dir, err := cmd.Flags().GetString("dir")
		if err != nil {
			return err
		}

		return withRuntime(func(ctx context.Context, rt *runtime) error {

			if _, err := rt.session(ctx); err != nil {
				return err
			}

			var saved string
			err := rt.status(ctx, "Downloading data", func(ctx context.Context) error {
				var err error
				saved, err = rt.service.DownloadAllData(ctx, dir)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.SuccessStyle.Render("Saved"), saved)
			return nil
		})
	},
}

var dataDeleteCmd = &cobra.Command{
	Use:   "delete <dataset-uid>",
	Short: "Delete one dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteDatasets(cmd, fmt.Sprintf("Delete dataset %s?", args[0]),
			func(ctx context.Context, rt *runtime) ([]string, error) {
				return rt.service.DeleteDataset(ctx, args[0])
			})
	},
}

var dataDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every dataset stored for your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteDatasets(cmd, "Delete ALL of your datasets?",
			func(ctx context.Context, rt *runtime) ([]string, error) {
				return rt.service.DeleteAllDatasets(ctx)
			})
	},
}

func deleteDatasets(cmd *cobra.Command, question string, remove func(ctx context.Context, rt *runtime) ([]string, error)) error {

	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}

	return withRuntime(func(ctx context.Context, rt *runtime) error {

		if _, err := rt.session(ctx); err != nil {
			return err
		}

		if !yes {
			confirmed, err := rt.terminal.Confirm(ctx, question, "This cannot be undone.", false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
				return nil
			}
		}

		var deleted []string
		err := rt.status(ctx, "Deleting", func(ctx context.Context) error {
			var err error
			deleted, err = remove(ctx, rt)
			return err
		})
		if err != nil {
			return err
		}

		if len(deleted) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No datasets deleted.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
			ui.SuccessStyle.Render(fmt.Sprintf("Deleted %d dataset(s):", len(deleted))),
			strings.Join(deleted, ", "))
		return nil
	})
}

func init() {
	dataDownloadCmd.Flags().String("dir", ".", "Directory to save the archive to")
	dataDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	dataDeleteAllCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	dataCmd.AddCommand(dataSummaryCmd)
	dataCmd.AddCommand(dataDownloadCmd)
	dataCmd.AddCommand(dataDeleteCmd)
	dataCmd.AddCommand(dataDeleteAllCmd)

	rootCmd.AddCommand(dataCmd)
}
