// Package log defines standard attribute keys for simulation telemetry.
//
// Using these keys consistently keeps log output filterable: every record
// about a given model or trial carries the same field names regardless of
// which component emitted it.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model variant being fitted or evaluated.
	// Examples: "constant", "poly3", "additive", "interaction"
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "generate", "fit", "predict", "analyze", "roc"
	OperationKey = "sim.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "simulate", "variant", "metrics"
	ComponentKey = "sim.component"
)

// Simulation shape and progress.
const (
	// TrialsKey is the number of Monte Carlo trials in a run.
	TrialsKey = "sim.trials"

	// TrialKey is the index of a single trial within a run.
	TrialKey = "sim.trial"

	// SeedKey is the master seed a run derives its trial streams from.
	SeedKey = "sim.seed"

	// SamplesKey is the number of samples in a generated dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features in a generated dataset.
	FeaturesKey = "data.features"

	// FailuresKey counts fit failures tallied for one model across a run.
	FailuresKey = "sim.fit_failures"
)

// Metric context.
const (
	// MetricKey names the metric being reported.
	// Examples: "squared_bias", "variance", "mse", "auc"
	MetricKey = "metric.name"

	// CutoffKey is the decision threshold an evaluation used.
	CutoffKey = "metric.cutoff"

	// DurationMSKey is the wall-clock duration of an operation in milliseconds.
	DurationMSKey = "duration_ms"
)
