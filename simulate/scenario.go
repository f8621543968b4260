// Package simulate implements the Monte Carlo model-evaluation engine:
// synthetic dataset generation, the trial harness that refits a family of
// model variants on resampled data, and the bias-variance analyzer over the
// resulting prediction matrix.
package simulate

import (
	"math"

	"github.com/statsim/mceval/pkg/errors"
)

// Truth is the ground-truth function a scenario samples from.
type Truth func(x []float64) float64

// Scenario describes one data-generating process: a ground-truth function
// over uniformly drawn features, plus zero-mean Gaussian noise on the
// response.
type Scenario struct {
	// Truth maps a feature vector to the noiseless response.
	Truth Truth

	// Features is the dimensionality of the input distribution.
	Features int

	// InputMin and InputMax bound the uniform distribution each feature
	// is drawn from.
	InputMin float64
	InputMax float64

	// NoiseSigma is the standard deviation of the response noise.
	NoiseSigma float64
}

// NoiseVariance returns sigma squared, the irreducible error term of the
// bias-variance decomposition.
func (sc Scenario) NoiseVariance() float64 {
	return sc.NoiseSigma * sc.NoiseSigma
}

func (sc Scenario) validate(op string) error {
	if sc.Truth == nil {
		return errors.NewConfigError(op, "Truth", "ground-truth function is required", nil)
	}
	if sc.Features < 1 {
		return errors.NewConfigError(op, "Features", "must be >= 1", sc.Features)
	}
	if !(sc.InputMin < sc.InputMax) {
		return errors.NewConfigError(op, "InputMin/InputMax", "input bounds must satisfy min < max", [2]float64{sc.InputMin, sc.InputMax})
	}
	if math.IsNaN(sc.NoiseSigma) || math.IsInf(sc.NoiseSigma, 0) || sc.NoiseSigma <= 0 {
		return errors.NewConfigError(op, "NoiseSigma", "must be finite and > 0", sc.NoiseSigma)
	}
	return nil
}
