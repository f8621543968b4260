package simulate

import (
	"log/slog"
	"time"

	"github.com/statsim/mceval/core/model"
	"github.com/statsim/mceval/core/parallel"
	"github.com/statsim/mceval/pkg/errors"
	mclog "github.com/statsim/mceval/pkg/log"
)

// Harness runs N independent Monte Carlo trials. Each trial draws a fresh
// dataset from the scenario, fits every registered variant on it, predicts
// at the query point, and scatters the result into its own row of the
// prediction matrix. Trials share nothing: each derives its random stream
// from (Seed, trialIndex), so the run is bit-for-bit reproducible
// regardless of how many workers execute it.
type Harness struct {
	Scenario   Scenario
	SampleSize int
	Variants   []model.Variant
	QueryPoint []float64

	// Trials is the number of Monte Carlo resamples. More trials shrink
	// the sampling error of every downstream estimate without changing
	// correctness.
	Trials int

	// Seed is the master seed every trial stream derives from.
	Seed uint64

	// Workers bounds the parallelism; 0 means one worker per CPU core.
	Workers int
}

// Run executes all trials and returns the fully populated prediction
// matrix. Per-trial fit failures are recorded as missing cells and raised
// as warnings, never aborting the run; the failure tallies stay readable
// on the returned matrix.
func (h Harness) Run() (*PredictionMatrix, error) {
	const op = "Harness.Run"
	if err := h.Scenario.validate(op); err != nil {
		return nil, err
	}
	if h.SampleSize <= 0 {
		return nil, errors.NewConfigError(op, "SampleSize", "must be > 0", h.SampleSize)
	}
	if h.Trials <= 0 {
		return nil, errors.NewConfigError(op, "Trials", "must be > 0", h.Trials)
	}
	if len(h.Variants) == 0 {
		return nil, errors.NewConfigError(op, "Variants", "at least one model variant is required", len(h.Variants))
	}
	if len(h.QueryPoint) != h.Scenario.Features {
		return nil, errors.NewDimensionError(op, h.Scenario.Features, len(h.QueryPoint), 1)
	}

	names := make([]string, len(h.Variants))
	seen := make(map[string]bool, len(h.Variants))
	for i, v := range h.Variants {
		names[i] = v.Name()
		if seen[names[i]] {
			return nil, errors.NewConfigError(op, "Variants", "duplicate model name", names[i])
		}
		seen[names[i]] = true
	}

	slog.Debug("simulation started",
		mclog.ComponentKey, "simulate",
		mclog.OperationKey, "run",
		mclog.TrialsKey, h.Trials,
		mclog.SamplesKey, h.SampleSize,
		mclog.SeedKey, h.Seed,
	)
	started := time.Now()

	matrix := newPredictionMatrix(h.Trials, names)
	query := make([]float64, len(h.QueryPoint))
	copy(query, h.QueryPoint)

	parallel.ParallelizeWithWorkers(h.Trials, h.Workers, func(start, end int) {
		for t := start; t < end; t++ {
			h.runTrial(t, query, matrix)
		}
	})

	for _, name := range names {
		failures, _ := matrix.FailureCount(name)
		if failures > 0 {
			slog.Warn("model column has missing trials",
				mclog.ComponentKey, "simulate",
				mclog.ModelNameKey, name,
				mclog.FailuresKey, failures,
				mclog.TrialsKey, h.Trials,
			)
		}
	}

	slog.Debug("simulation finished",
		mclog.ComponentKey, "simulate",
		mclog.OperationKey, "run",
		mclog.DurationMSKey, time.Since(started).Milliseconds(),
	)
	return matrix, nil
}

// runTrial executes one trial. The trial owns its dataset and every fitted
// model; nothing escapes except scalar predictions written into the
// trial's row.
func (h Harness) runTrial(t int, query []float64, matrix *PredictionMatrix) {
	ds, err := Generate(h.Scenario, h.SampleSize, trialSource(h.Seed, t))
	if err != nil {
		// Config was validated up front, so this is unexpected; every
		// model loses this trial.
		for i := range h.Variants {
			errors.Warn(errors.NewFitError(h.Variants[i].Name(), t, err))
		}
		return
	}

	for i, v := range h.Variants {
		var pred float64
		fitErr := errors.SafeExecute(v.Name()+".Fit", func() error {
			fitted, err := v.Fit(ds.X, ds.Y)
			if err != nil {
				return err
			}
			pred, err = fitted.PredictAt(query)
			return err
		})
		if fitErr != nil {
			errors.Warn(errors.NewFitError(v.Name(), t, fitErr))
			continue // cell stays missing
		}
		matrix.set(t, i, pred)
	}
}
