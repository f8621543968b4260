package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/statsim/mceval/pkg/errors"
)

// ROCPoint is one point of an ROC curve: the false-positive and
// true-positive rates obtained at one swept threshold.
type ROCPoint struct {
	Threshold float64
	FPR       float64
	TPR       float64
}

// ROCCurve is the ordered sweep of (FPR, TPR) pairs across all
// discriminating thresholds, plus the area under it. The curve always
// starts at (0, 0) and ends at (1, 1): the sentinel thresholds beyond the
// score range guarantee both endpoints.
type ROCCurve struct {
	Points []ROCPoint
	AUC    float64
}

// ROC sweeps the confusion-matrix tally across every distinct score plus
// the two sentinel thresholds beyond the score range, and integrates the
// resulting curve by the trapezoidal rule. Scores are predicted positive
// iff score > threshold, matching Confusion.
//
// A label set lacking one of the two classes leaves the curve undefined
// and fails with DegenerateLabelsError.
func ROC(scores, labels *mat.VecDense) (*ROCCurve, error) {
	const op = "metrics.ROC"
	if err := checkBinaryInput(op, scores, labels); err != nil {
		return nil, err
	}
	positives, negatives := countClasses(labels)
	if positives == 0 || negatives == 0 {
		return nil, errors.NewDegenerateLabelsError(op, positives, negatives)
	}

	thresholds := candidateThresholds(scores)

	points := make([]ROCPoint, 0, len(thresholds))
	for _, th := range thresholds {
		cm := tally(scores, labels, th)
		fpr := float64(cm.FP) / float64(cm.FP+cm.TN)
		tpr := float64(cm.TP) / float64(cm.TP+cm.FN)
		points = append(points, ROCPoint{Threshold: th, FPR: fpr, TPR: tpr})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].FPR != points[j].FPR {
			return points[i].FPR < points[j].FPR
		}
		return points[i].TPR < points[j].TPR
	})

	auc := 0.0
	for i := 1; i < len(points); i++ {
		dx := points[i].FPR - points[i-1].FPR
		auc += dx * (points[i].TPR + points[i-1].TPR) / 2
	}

	return &ROCCurve{Points: points, AUC: auc}, nil
}

// candidateThresholds returns the distinct scores plus one sentinel above
// the maximum (no score is predicted positive) and one below the minimum
// (every score is predicted positive).
func candidateThresholds(scores *mat.VecDense) []float64 {
	distinct := make(map[float64]bool, scores.Len())
	for i := 0; i < scores.Len(); i++ {
		distinct[scores.AtVec(i)] = true
	}

	thresholds := make([]float64, 0, len(distinct)+2)
	for s := range distinct {
		thresholds = append(thresholds, s)
	}
	thresholds = append(thresholds, math.Inf(1), math.Inf(-1))
	sort.Sort(sort.Reverse(sort.Float64Slice(thresholds)))
	return thresholds
}

// AUC computes the area under the ROC curve as the Mann-Whitney rank
// statistic: the probability that a randomly chosen positive score
// outranks a randomly chosen negative one, with ties counting half. It
// runs in O(n log n) and agrees with ROC's trapezoidal integral to
// floating-point tolerance.
func AUC(scores, labels *mat.VecDense) (float64, error) {
	const op = "metrics.AUC"
	if err := checkBinaryInput(op, scores, labels); err != nil {
		return 0, err
	}
	positives, negatives := countClasses(labels)
	if positives == 0 || negatives == 0 {
		return 0, errors.NewDegenerateLabelsError(op, positives, negatives)
	}

	n := scores.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return scores.AtVec(order[a]) < scores.AtVec(order[b])
	})

	// Average ranks across tied scores, then sum the positive ranks.
	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && scores.AtVec(order[j]) == scores.AtVec(order[i]) {
			j++
		}
		avg := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}

	var rankSum float64
	for i := 0; i < n; i++ {
		if labels.AtVec(i) == 1 {
			rankSum += ranks[i]
		}
	}

	nPos := float64(positives)
	nNeg := float64(negatives)
	u := rankSum - nPos*(nPos+1)/2
	return u / (nPos * nNeg), nil
}
