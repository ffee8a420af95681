package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultEstimators is the ensemble size the service uses for classification
// when the config does not set n_estimators.
const DefaultEstimators = 4

// ModelConfig holds the model hyperparameters sent along with a prediction,
// e.g. n_estimators.
type ModelConfig map[string]any

// Estimators returns n_estimators from the config, or DefaultEstimators when
// it is missing or not a positive whole number.
func (c ModelConfig) Estimators() int {
	var n int
	switch v := c["n_estimators"].(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		if v == math.Trunc(v) {
			n = int(v)
		}
	case string:
		n, _ = strconv.Atoi(v)
	}
	if n <= 0 {
		return DefaultEstimators
	}
	return n
}

// ParseModelConfig turns key=value flags into a ModelConfig. Values are
// read as YAML scalars, so numbers and booleans keep their type.
func ParseModelConfig(params map[string]string) (ModelConfig, error) {
	config := ModelConfig{}
	for key, raw := range params {
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if value == nil {
			value = raw
		}
		config[key] = value
	}
	return config, nil
}

// Encode renders the config as the JSON the service expects. An empty
// config encodes to "".
func (c ModelConfig) Encode() (string, error) {
	if len(c) == 0 {
		return "", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
