package models

import (
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInsufficientCredits = errors.New("not enough credits left")

// Workload is the shape of the data a prediction touches.
type Workload struct {
	TrainRows int
	TestRows  int
	Features  int
}

func (w Workload) samples() int {
	return w.TrainRows + w.TestRows
}

// EstimateCredits is the number of credits the service charges for w:
// every train and test cell, once per estimator.
func EstimateCredits(w Workload, c ModelConfig) int64 {
	return int64(w.samples()) * int64(w.Features) * int64(c.Estimators())
}

// EstimateDuration models the time the service spends on w.
func EstimateDuration(w Workload, c ModelConfig) time.Duration {
	const (
		constantOverhead    = 8000
		samplesFactor       = 4
		samplesPlusFeatures = 6.5
		cellsFactor         = 0.25
		cellsSquaredFactor  = 1.3e-7
		embeddingSize       = 192
		numHeads            = 6
		numLayers           = 12
		featuresPerGroup    = 2
		gpuFactor           = 1e-11
		latencyOffset       = 1.0
	)

	samples := float64(w.samples())
	groups := math.Ceil(float64(w.Features) / featuresPerGroup)
	cells := (groups + 1) * samples
	computeCost := float64(embeddingSize*embeddingSize) * numHeads * numLayers

	base := float64(c.Estimators()) * computeCost * (constantOverhead +
		samples*samplesFactor +
		(samples+groups)*samplesPlusFeatures +
		cells*cellsFactor +
		cells*cells*cellsSquaredFactor)

	seconds := math.Round((base*gpuFactor+latencyOffset)*1000) / 1000
	return time.Duration(seconds * float64(time.Second))
}

// Remaining is the number of credits left before the limit, or -1 for an
// unlimited account.
func (u APIUsage) Remaining() int64 {
	if u.UsageLimit == UnlimitedUsage {
		return UnlimitedUsage
	}
	return u.UsageLimit - u.CurrentUsage
}

// CheckCredits fails with ErrInsufficientCredits when estimate exceeds the
// credits left.
func (u APIUsage) CheckCredits(estimate int64) error {
	if u.UsageLimit == UnlimitedUsage || u.Remaining() >= estimate {
		return nil
	}

	p := message.NewPrinter(language.English)
	return fmt.Errorf("%w: %s", ErrInsufficientCredits,
		p.Sprintf("estimated usage %d, credits left %d", estimate, u.Remaining()))
}
