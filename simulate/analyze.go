package simulate

import (
	"math"

	"github.com/statsim/mceval/pkg/errors"
)

// BiasVarianceStats is the per-model output of the bias-variance analyzer.
// All three estimates are computed over the model's valid trials only;
// ValidTrials and Failures let a consumer judge how much weight to give a
// partially failed column.
type BiasVarianceStats struct {
	// SquaredBias is (mean prediction - true value)^2.
	SquaredBias float64

	// Variance is the population variance of the prediction column
	// (divide by n, matching the Monte Carlo estimator).
	Variance float64

	// MSE is the mean squared error of trial i's prediction against the
	// i-th independently drawn noisy response.
	MSE float64

	// ValidTrials counts the non-missing cells the estimates are built on.
	ValidTrials int

	// Failures counts the trials where this model failed to fit.
	Failures int
}

// ReconciliationGap measures how far the decomposition identity
// squaredBias + variance + noiseVariance = mse is from holding. The gap is
// Monte Carlo sampling error and shrinks as the trial count grows; it is
// not a correctness signal at any fixed trial count.
func (s BiasVarianceStats) ReconciliationGap(noiseVariance float64) float64 {
	return math.Abs(s.SquaredBias + s.Variance + noiseVariance - s.MSE)
}

// BiasVariance decomposes each model column of the prediction matrix into
// squared bias, variance and MSE at the query point. trueValue is the
// noiseless ground truth there; ensemble supplies one independent noisy
// observation per trial, paired with the same trial's prediction for the
// MSE estimate.
//
// Missing cells are excluded from a model's aggregates, never treated as
// zero. A model with no valid cells at all fails the analysis with
// InsufficientDataError.
func BiasVariance(m *PredictionMatrix, trueValue float64, ensemble NoiseEnsemble) (map[string]BiasVarianceStats, error) {
	const op = "simulate.BiasVariance"
	if m == nil {
		return nil, errors.NewValueError(op, "nil prediction matrix")
	}
	if len(ensemble) != m.Trials() {
		return nil, errors.NewDimensionError(op, m.Trials(), len(ensemble), 0)
	}

	out := make(map[string]BiasVarianceStats, len(m.Models()))
	for _, name := range m.Models() {
		values, trials, err := m.ValidColumn(name)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			return nil, errors.NewInsufficientDataError(op, name)
		}

		n := float64(len(values))

		var mean float64
		for _, v := range values {
			mean += v
		}
		mean /= n

		var variance, mse float64
		for i, v := range values {
			d := v - mean
			variance += d * d

			e := v - ensemble[trials[i]]
			mse += e * e
		}
		variance /= n
		mse /= n

		bias := mean - trueValue
		out[name] = BiasVarianceStats{
			SquaredBias: bias * bias,
			Variance:    variance,
			MSE:         mse,
			ValidTrials: len(values),
			Failures:    m.Trials() - len(values),
		}
	}
	return out, nil
}
