package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/statsim/mceval/pkg/errors"
)

// MSE computes the mean squared error between true and predicted responses.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	const op = "metrics.MSE"
	n, err := checkRegressionInput(op, yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// R2Score computes the coefficient of determination, 1 - RSS/TSS.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	const op = "metrics.R2Score"
	n, err := checkRegressionInput(op, yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)

		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if tss == 0 {
		return 0, errors.NewUndefinedMetricError("r2", "no variance in yTrue")
	}
	return 1 - rss/tss, nil
}

func checkRegressionInput(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError(op, "nil input vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, op)
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}
