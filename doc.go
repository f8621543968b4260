// Package mceval provides a Monte Carlo model-evaluation engine for Go:
// a bias-variance estimator that repeatedly resamples training data, refits
// a family of models, and aggregates out-of-sample prediction statistics at
// a fixed query point; and a threshold-sweep/ROC engine that turns predicted
// probabilities and true labels into confusion-matrix metrics across all
// decision cutoffs, culminating in an AUC estimate.
//
// # Quick Start
//
// Decompose the prediction error of a nested model family at one query point:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/statsim/mceval/core/model"
//	    "github.com/statsim/mceval/simulate"
//	    "github.com/statsim/mceval/variant"
//	)
//
//	func main() {
//	    sc := simulate.Scenario{
//	        Truth:      func(x []float64) float64 { return x[0] * x[0] },
//	        Features:   1,
//	        InputMin:   -1,
//	        InputMax:   1,
//	        NoiseSigma: 0.3,
//	    }
//	    h := simulate.Harness{
//	        Scenario:   sc,
//	        SampleSize: 60,
//	        Variants:   []model.Variant{variant.NewConstant(), variant.NewPolynomial(2)},
//	        QueryPoint: []float64{0.5},
//	        Trials:     2000,
//	        Seed:       42,
//	    }
//	    matrix, err := h.Run()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    ens, _ := simulate.DrawNoiseEnsemble(sc, []float64{0.5}, h.Trials, h.Seed)
//	    stats, _ := simulate.BiasVariance(matrix, sc.Truth([]float64{0.5}), ens)
//	    fmt.Println(stats)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - simulate: dataset generation, the trial harness and the bias-variance analyzer
//   - variant: reference model families (constant, polynomial, additive, interaction, logistic)
//   - metrics: confusion matrix, ROC/AUC and regression metrics
//   - core/model: the Variant/Fitted capability interfaces the harness consumes
//   - core/parallel: worker-splitting helpers for embarrassingly parallel trials
//   - pkg/errors: structured error types and warnings
//   - pkg/log: structured logging setup and attribute keys
//
// For a fixed master seed, repeated runs produce bit-identical prediction
// matrices regardless of how many workers execute the trials: every trial
// derives its own random stream from (seed, trialIndex).
package mceval
