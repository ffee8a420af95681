package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/priorlabs/tabpfn-cli/internal/common"
	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Upload a training set (features and targets as CSV)",
	Long: `Uploads X and y as CSV files and prints the uid of the training set.
The uid is remembered, so a following 'tabpfn predict' can omit it.`,
	RunE: func(cmd *cobra.Command, args []string) error {

		xPath, _ := cmd.Flags().GetString("x")
		yPath, _ := cmd.Flags().GetString("y")

		x, err := os.Open(xPath)
		if err != nil {
			return fmt.Errorf("failed to open features: %w", err)
		}
		defer x.Close()

		rows, _, err := csvShape(x)
		if err != nil {
			return err
		}

		y, err := os.Open(yPath)
		if err != nil {
			return fmt.Errorf("failed to open targets: %w", err)
		}
		defer y.Close()

		return withRuntime(func(ctx context.Context, rt *runtime) error {

			if _, err := rt.session(ctx); err != nil {
				return err
			}

			var uid string
			err := rt.status(ctx, "Uploading training set", func(ctx context.Context) error {
				var err error
				uid, err = rt.service.UploadTrainSet(ctx, models.TrainSet{X: x, Y: y})
				return err
			})
			if err != nil {
				return err
			}

			rt.trainSets.Store(models.TrainSetRecord{UID: uid, Rows: rows})

			fmt.Fprintln(cmd.OutOrStdout(), uid)
			return nil
		})
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict targets for a CSV of features",
	Long: `Predicts targets for the features in --x using a training set uploaded
with 'tabpfn fit'. Model settings are passed with --param, e.g.
--param n_estimators=8.

Before predicting, the credits the request will use are estimated and
compared with what is left on the account. --dry-run only prints the
estimate.`,
	RunE: func(cmd *cobra.Command, args []string) error {

		xPath, _ := cmd.Flags().GetString("x")
		trainSetUID, _ := cmd.Flags().GetString("train-set")
		proba, _ := cmd.Flags().GetBool("proba")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		params, _ := cmd.Flags().GetStringToString("param")

		task := models.TaskPredict
		if proba {
			task = models.TaskPredictProba
		}

		config, err := models.ParseModelConfig(params)
		if err != nil {
			return err
		}

		x, err := os.Open(xPath)
		if err != nil {
			return fmt.Errorf("failed to open features: %w", err)
		}
		defer x.Close()

		testRows, features, err := csvShape(x)
		if err != nil {
			return err
		}

		return withRuntime(func(ctx context.Context, rt *runtime) error {

			workload := models.Workload{TestRows: testRows, Features: features}

			cached, found := rt.trainSets.Read()
			if len(trainSetUID) == 0 {
				if !found {
					return fmt.Errorf("no training set given and none uploaded yet, run 'tabpfn fit' first")
				}
				trainSetUID = cached.UID
			}
			if found && cached.UID == trainSetUID {
				workload.TrainRows = cached.Rows
			} else {
				logrus.WithField("train_set_uid", trainSetUID).
					Debugln("Train set size unknown, estimating from the test rows only")
			}

			if _, err := rt.session(ctx); err != nil {
				return err
			}

			var usage *models.APIUsage
			err := rt.status(ctx, "Checking credits", func(ctx context.Context) error {
				var err error
				usage, err = rt.service.GetAPIUsage(ctx)
				return err
			})
			if err != nil {
				return err
			}

			if dryRun {
				printEstimate(cmd.OutOrStdout(), workload, config, *usage)
				return nil
			}

			credits := models.EstimateCredits(workload, config)
			if err := usage.CheckCredits(credits); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"estimate":  credits,
				"remaining": usage.Remaining(),
			}).Debugln("Enough credits left")

			var prediction any
			err = rt.status(ctx, "Predicting", func(ctx context.Context) error {
				var err error
				prediction, err = rt.service.Predict(ctx, trainSetUID, x, task, config)
				return err
			})
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(models.PredictionResult{
				TrainSetUID: trainSetUID,
				Task:        string(task),
				Prediction:  prediction,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode prediction: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		})
	},
}

// csvShape counts f's rows and columns and rewinds it for the upload.
func csvShape(f io.ReadSeeker) (int, int, error) {
	rows, columns, err := common.CSVShape(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read CSV: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	return rows, columns, nil
}

func printEstimate(out io.Writer, w models.Workload, config models.ModelConfig, usage models.APIUsage) {
	p := message.NewPrinter(language.English)
	credits := models.EstimateCredits(w, config)

	fmt.Fprintln(out, ui.TitleStyle.Render("Prediction estimate"))
	row(out, "Rows", p.Sprintf("%d train + %d test", w.TrainRows, w.TestRows))
	row(out, "Features", p.Sprintf("%d", w.Features))
	row(out, "Estimators", p.Sprintf("%d", config.Estimators()))
	row(out, "Credits", p.Sprintf("%d", credits))
	row(out, "Duration", models.EstimateDuration(w, config).String())

	if usage.Remaining() == models.UnlimitedUsage {
		row(out, "Credits left", ui.ActiveStyle.Render("unlimited"))
		return
	}

	left := p.Sprintf("%d", usage.Remaining())
	if err := usage.CheckCredits(credits); err != nil {
		row(out, "Credits left", ui.ErrorStyle.Render(left+" (not enough)"))
		return
	}
	row(out, "Credits left", ui.ActiveStyle.Render(left))
}

func init() {
	fitCmd.Flags().String("x", "", "CSV file with the training features")
	fitCmd.Flags().String("y", "", "CSV file with the training targets")
	fitCmd.MarkFlagRequired("x")
	fitCmd.MarkFlagRequired("y")

	predictCmd.Flags().String("x", "", "CSV file with the features to predict")
	predictCmd.Flags().String("train-set", "", "Training set uid (default: the last one uploaded)")
	predictCmd.Flags().Bool("proba", false, "Return class probabilities instead of labels")
	predictCmd.Flags().StringToString("param", nil, "Model setting as key=value, may be repeated")
	predictCmd.Flags().Bool("dry-run", false, "Print the credit and duration estimate without predicting")
	predictCmd.MarkFlagRequired("x")

	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(predictCmd)
}
