package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/sirupsen/logrus"
)

const csvContentType = "text/csv"

// UploadTrainSet sends X and y as CSV files and returns the server's id for
// the stored train set.
func (c *ServiceClient) UploadTrainSet(ctx context.Context, train models.TrainSet) (string, error) {

	req, err := c.authorized()
	if err != nil {
		return "", err
	}

	resp, err := req.
		SetContext(ctx).
		SetMultipartField("x_file", "x_train.csv", csvContentType, train.X).
		SetMultipartField("y_file", "y_train.csv", csvContentType, train.Y).
		Post(c.endpoints.UploadTrainSet)

	if err != nil {
		return "", connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", responseError("upload train set", resp)
	}

	var uploaded struct {
		TrainSetUID string `json:"train_set_uid"`
	}
	if err := json.Unmarshal(resp.Body(), &uploaded); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"train_set_uid": uploaded.TrainSetUID,
	}).Debugln("Uploaded train set")

	return uploaded.TrainSetUID, nil
}

func predictionKey(task models.PredictTask) string {
	if task == models.TaskPredictProba {
		return "y_pred_proba"
	}
	return "y_pred"
}

// Predict sends x for the train set trainSetUID. A non-empty config is
// forwarded as the tabpfn_config form field.
func (c *ServiceClient) Predict(ctx context.Context, trainSetUID string, x io.Reader, task models.PredictTask, config models.ModelConfig) (any, error) {

	req, err := c.authorized()
	if err != nil {
		return nil, err
	}

	if len(task) == 0 {
		task = models.TaskPredict
	}

	encoded, err := config.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode model config: %w", err)
	}
	if len(encoded) > 0 {
		req.SetMultipartFormData(map[string]string{
			"tabpfn_config": encoded,
		})
	}

	resp, err := req.
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"train_set_uid": trainSetUID,
			"task":          string(task),
		}).
		SetMultipartField("x_file", "x_test.csv", csvContentType, x).
		Post(c.endpoints.Predict)

	if err != nil {
		return nil, connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, responseError(string(task), resp)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, err
	}

	prediction, found := body[predictionKey(task)]
	if !found {
		return nil, fmt.Errorf("response is missing %s", predictionKey(task))
	}

	return prediction, nil
}
