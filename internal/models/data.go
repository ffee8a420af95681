package models

import (
	"context"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UnlimitedUsage is the usage limit the service reports for uncapped accounts.
const UnlimitedUsage = -1

type APIUsage struct {
	CurrentUsage int64  `json:"current_usage"`
	UsageLimit   int64  `json:"usage_limit"`
	ResetTime    string `json:"reset_time"`
}

func (u APIUsage) Summary() string {
	p := message.NewPrinter(language.English)

	limit := "Unlimited"
	if u.UsageLimit != UnlimitedUsage {
		limit = p.Sprintf("%d", u.UsageLimit)
	}

	return p.Sprintf(
		"Currently, you have used %d of the allowed limit of %s credits. The limit will reset at %s.",
		u.CurrentUsage, limit, u.ResetTime,
	)
}

// DataSummary is the service's description of the data a user has uploaded.
type DataSummary map[string]any

type DeletedDatasets struct {
	DatasetUIDs []string `json:"deleted_dataset_uids"`
}

// PredictTask selects which prediction endpoint output is requested.
type PredictTask string

const (
	TaskPredict      PredictTask = "predict"
	TaskPredictProba PredictTask = "predict_proba"
)

type TrainSet struct {
	X io.Reader
	Y io.Reader
}

// TrainSetRecord is what is remembered about the last uploaded train set.
type TrainSetRecord struct {
	UID  string `json:"uid"`
	Rows int    `json:"rows"`
}

type PredictionResult struct {
	TrainSetUID string `json:"train_set_uid"`
	Task        string `json:"task"`
	Prediction  any    `json:"prediction"`
}

// DataServiceImpl covers the account data endpoints of the service.
type DataServiceImpl interface {
	GetAPIUsage(ctx context.Context) (*APIUsage, error)
	GetDataSummary(ctx context.Context) (DataSummary, error)
	DownloadAllData(ctx context.Context, saveDir string) (string, error)
	DeleteDataset(ctx context.Context, datasetUID string) ([]string, error)
	DeleteAllDatasets(ctx context.Context) ([]string, error)
	DeleteUserAccount(ctx context.Context, confirmPassword string) error
}

// InferenceServiceImpl uploads training data and requests predictions.
type InferenceServiceImpl interface {
	UploadTrainSet(ctx context.Context, train TrainSet) (string, error)
	Predict(ctx context.Context, trainSetUID string, x io.Reader, task PredictTask, config ModelConfig) (any, error)
}
