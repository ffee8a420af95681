package store

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/sirupsen/logrus"
)

const TrainSetFileName = "train_set"

// TrainSetCache remembers the last uploaded training set so a later predict
// can refer to it implicitly and estimate its cost.
type TrainSetCache struct {
	path string
}

func NewTrainSetCache(cacheDir string) *TrainSetCache {
	return &TrainSetCache{
		path: filepath.Join(cacheDir, TrainSetFileName),
	}
}

func (c *TrainSetCache) Store(record models.TrainSetRecord) Outcome {
	record.UID = strings.TrimSpace(record.UID)
	if err := writeJSON(c.path, record, 0o600); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path": c.path,
		}).Debugln("Failed to remember train set")
		return degraded(err)
	}
	return ok()
}

func (c *TrainSetCache) Read() (models.TrainSetRecord, bool) {
	b, err := readFile(c.path)
	if err != nil || len(b) == 0 {
		return models.TrainSetRecord{}, false
	}

	var record models.TrainSetRecord
	if err := json.Unmarshal(b, &record); err != nil {
		// Older caches hold just the uid
		record = models.TrainSetRecord{UID: strings.TrimSpace(string(b))}
	}
	return record, len(record.UID) > 0
}
