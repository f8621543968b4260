// Package metrics implements the classification and regression metrics
// used to judge model quality: confusion-matrix tallies at a decision
// cutoff, ROC curves with AUC, and squared-error regression scores.
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/statsim/mceval/pkg/errors"
)

// ConfusionMatrix is the 2x2 tally of predicted vs. true binary labels at
// one decision cutoff. The four counts always sum to the evaluated sample
// size.
type ConfusionMatrix struct {
	TP int
	FP int
	TN int
	FN int
}

// Confusion evaluates scores against true 0/1 labels at the given cutoff.
// The classification rule is strict: predicted positive iff score > cutoff,
// so a score exactly at the cutoff classifies negative.
func Confusion(scores, labels *mat.VecDense, cutoff float64) (*ConfusionMatrix, error) {
	const op = "metrics.Confusion"
	if err := checkBinaryInput(op, scores, labels); err != nil {
		return nil, err
	}
	if cutoff < 0 || cutoff > 1 {
		return nil, errors.NewCutoffError(op, cutoff)
	}
	return tally(scores, labels, cutoff), nil
}

// tally counts the four cells without input validation. ROC shares it so
// sentinel thresholds outside [0, 1] go through the same counting rule as
// caller-facing cutoffs.
func tally(scores, labels *mat.VecDense, cutoff float64) *ConfusionMatrix {
	cm := &ConfusionMatrix{}
	for i := 0; i < scores.Len(); i++ {
		predictedPositive := scores.AtVec(i) > cutoff
		actualPositive := labels.AtVec(i) == 1

		switch {
		case predictedPositive && actualPositive:
			cm.TP++
		case predictedPositive && !actualPositive:
			cm.FP++
		case !predictedPositive && actualPositive:
			cm.FN++
		default:
			cm.TN++
		}
	}
	return cm
}

// Total returns the evaluated sample size.
func (cm *ConfusionMatrix) Total() int {
	return cm.TP + cm.FP + cm.TN + cm.FN
}

// Accuracy returns (TP+TN)/N.
func (cm *ConfusionMatrix) Accuracy() (float64, error) {
	n := cm.Total()
	if n == 0 {
		return 0, errors.NewUndefinedMetricError("accuracy", "no samples evaluated")
	}
	return float64(cm.TP+cm.TN) / float64(n), nil
}

// Sensitivity returns the true-positive rate TP/(TP+FN). It is undefined
// when the label set holds no positives; that is reported explicitly,
// never as zero.
func (cm *ConfusionMatrix) Sensitivity() (float64, error) {
	if cm.TP+cm.FN == 0 {
		return 0, errors.NewUndefinedMetricError("sensitivity", "no positive labels")
	}
	return float64(cm.TP) / float64(cm.TP+cm.FN), nil
}

// Specificity returns the true-negative rate TN/(TN+FP). It is undefined
// when the label set holds no negatives.
func (cm *ConfusionMatrix) Specificity() (float64, error) {
	if cm.TN+cm.FP == 0 {
		return 0, errors.NewUndefinedMetricError("specificity", "no negative labels")
	}
	return float64(cm.TN) / float64(cm.TN+cm.FP), nil
}

// checkBinaryInput validates the shared preconditions of the binary
// classification metrics.
func checkBinaryInput(op string, scores, labels *mat.VecDense) error {
	if scores == nil || labels == nil {
		return errors.NewValueError(op, "nil input vector")
	}
	n := scores.Len()
	if n == 0 {
		return errors.Wrap(errors.ErrEmptyData, op)
	}
	if labels.Len() != n {
		return errors.NewDimensionError(op, n, labels.Len(), 0)
	}
	for i := 0; i < n; i++ {
		if v := labels.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError(op, "labels must be 0 or 1")
		}
	}
	return nil
}

// countClasses returns the number of positive and negative labels.
func countClasses(labels *mat.VecDense) (positives, negatives int) {
	for i := 0; i < labels.Len(); i++ {
		if labels.AtVec(i) == 1 {
			positives++
		} else {
			negatives++
		}
	}
	return positives, negatives
}
