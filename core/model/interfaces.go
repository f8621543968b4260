// Package model defines the capability interfaces consumed by the
// simulation harness. The harness is written once against Variant and
// Fitted; concrete model families plug in behind them.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Variant is one member of a model family: an opaque fit capability.
// Fit consumes a training design matrix X (samples × features) and a
// response column y, and returns the fitted state as a value. Variants
// themselves hold no mutable state; two trials fitting the same Variant
// never share anything.
type Variant interface {
	// Name returns the identifier used to key this variant's column in
	// prediction matrices and result tables.
	Name() string

	// Fit trains the variant on one dataset. A singular or otherwise
	// unusable design surfaces as an error, never a panic.
	Fit(X mat.Matrix, y mat.Matrix) (Fitted, error)
}

// Fitted is the opaque state produced by a Variant's Fit step. It is owned
// by the trial that created it, used only for prediction, then discarded.
type Fitted interface {
	// PredictAt returns the model's scalar prediction at one query point.
	PredictAt(x []float64) (float64, error)
}

// ProbabilityScorer is implemented by fitted classifiers whose PredictAt
// result is a probability in [0, 1]. The threshold evaluator consumes
// scores of this kind; comparing the probability against a 0.5 cutoff is
// equivalent to comparing the underlying linear predictor against zero.
type ProbabilityScorer interface {
	Fitted

	// PredictClass returns 1 when the predicted probability exceeds the
	// cutoff, 0 otherwise.
	PredictClass(x []float64, cutoff float64) (int, error)
}
