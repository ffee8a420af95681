package store

import (
	"encoding/json"
	"path/filepath"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/sirupsen/logrus"
)

// RegistrationStateFileName lives under the per-user state directory.
const RegistrationStateFileName = "registration_state.json"

// RegistrationStore checkpoints an in-flight registration so it can be
// resumed after the process exits. Every operation is best effort.
type RegistrationStore struct {
	path string
}

func NewRegistrationStore(stateDir string) *RegistrationStore {
	return &RegistrationStore{
		path: filepath.Join(stateDir, RegistrationStateFileName),
	}
}

func (s *RegistrationStore) Path() string {
	return s.path
}

func (s *RegistrationStore) Save(record models.RegistrationRecord) Outcome {
	if err := writeJSON(s.path, record, 0o600); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path": s.path,
		}).Debugln("Failed to save registration state")
		return degraded(err)
	}
	return ok()
}

// Load returns false when nothing usable is on disk, including unreadable or
// corrupt files.
func (s *RegistrationStore) Load() (models.RegistrationRecord, bool) {
	var record models.RegistrationRecord

	b, err := readFile(s.path)
	if err != nil || b == nil {
		return record, false
	}

	if err := json.Unmarshal(b, &record); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path": s.path,
		}).Debugln("Ignoring unparseable registration state")
		return models.RegistrationRecord{}, false
	}

	return record, true
}

func (s *RegistrationStore) Clear() Outcome {
	if err := removeFile(s.path); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path": s.path,
		}).Debugln("Failed to clear registration state")
		return degraded(err)
	}
	return ok()
}
