package client

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultDownloadFileName is used when the service does not name the archive.
const DefaultDownloadFileName = "tabpfn_data.zip"

func (c *ServiceClient) GetAPIUsage(ctx context.Context) (*models.APIUsage, error) {

	req, err := c.authorized()
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetContext(ctx).
		Get(c.endpoints.GetAPIUsage)

	if err != nil {
		return nil, connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, responseError("get api usage", resp)
	}

	var usage models.APIUsage
	if err := json.Unmarshal(resp.Body(), &usage); err != nil {
		return nil, err
	}

	return &usage, nil
}

func (c *ServiceClient) GetDataSummary(ctx context.Context) (models.DataSummary, error) {

	req, err := c.authorized()
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetContext(ctx).
		Get(c.endpoints.GetDataSummary)

	if err != nil {
		return nil, connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, responseError("get data summary", resp)
	}

	var summary models.DataSummary
	if err := json.Unmarshal(resp.Body(), &summary); err != nil {
		return nil, err
	}

	return summary, nil
}

// DownloadAllData saves the archive of everything the user uploaded into
// saveDir and returns the written path.
func (c *ServiceClient) DownloadAllData(ctx context.Context, saveDir string) (string, error) {

	req, err := c.authorized()
	if err != nil {
		return "", err
	}

	resp, err := req.
		SetContext(ctx).
		Get(c.endpoints.DownloadAllData)

	if err != nil {
		return "", connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", responseError("download data", resp)
	}

	fileName := DefaultDownloadFileName
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil {
		if name := filepath.Base(params["filename"]); len(params["filename"]) > 0 && name != "." && name != "/" {
			fileName = name
		}
	}

	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	savePath := filepath.Join(saveDir, fileName)
	if err := os.WriteFile(savePath, resp.Body(), 0o644); err != nil {
		return "", fmt.Errorf("failed to save data: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"path":  savePath,
		"bytes": len(resp.Body()),
	}).Debugln("Saved downloaded data")

	return savePath, nil
}

func (c *ServiceClient) DeleteDataset(ctx context.Context, datasetUID string) ([]string, error) {

	req, err := c.authorized()
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetContext(ctx).
		SetQueryParam("dataset_uid", datasetUID).
		Delete(c.endpoints.DeleteDataset)

	if err != nil {
		return nil, connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, responseError("delete dataset", resp)
	}

	var deleted models.DeletedDatasets
	if err := json.Unmarshal(resp.Body(), &deleted); err != nil {
		return nil, err
	}

	return deleted.DatasetUIDs, nil
}

func (c *ServiceClient) DeleteAllDatasets(ctx context.Context) ([]string, error) {

	req, err := c.authorized()
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetContext(ctx).
		Delete(c.endpoints.DeleteAllDatasets)

	if err != nil {
		return nil, connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, responseError("delete all datasets", resp)
	}

	var deleted models.DeletedDatasets
	if err := json.Unmarshal(resp.Body(), &deleted); err != nil {
		return nil, err
	}

	return deleted.DatasetUIDs, nil
}

func (c *ServiceClient) DeleteUserAccount(ctx context.Context, confirmPassword string) error {

	req, err := c.authorized()
	if err != nil {
		return err
	}

	resp, err := req.
		SetContext(ctx).
		SetFormData(map[string]string{
			"confirm_pass": confirmPassword,
		}).
		Delete(c.endpoints.DeleteUserAccount)

	if err != nil {
		return connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return responseError("delete user account", resp)
	}

	return nil
}
