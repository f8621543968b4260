package variant

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/statsim/mceval/core/model"
	"github.com/statsim/mceval/pkg/errors"
)

// Logistic fits a binary logistic regression over all features by
// iteratively reweighted least squares. Its PredictAt result is a
// probability in [0, 1], which feeds the threshold evaluator directly:
// probability > 0.5 is the same decision as linear predictor > 0.
type Logistic struct {
	MaxIter int
	Tol     float64
}

// NewLogistic creates a logistic variant with default iteration limits.
func NewLogistic() Logistic {
	return Logistic{MaxIter: 25, Tol: 1e-8}
}

// Name implements model.Variant.
func (Logistic) Name() string { return "logistic" }

// Fit runs IRLS. Responses must be 0/1. A fit that stops at MaxIter
// without meeting Tol still returns a usable model and raises a
// ConvergenceWarning.
func (l Logistic) Fit(X mat.Matrix, y mat.Matrix) (model.Fitted, error) {
	const op = "Logistic.Fit"
	r, c, yVec, err := checkTrainingInput(op, X, y)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		v := yVec.AtVec(i)
		if v != 0 && v != 1 {
			return nil, errors.NewValueError(op, "labels must be 0 or 1")
		}
	}

	maxIter := l.MaxIter
	if maxIter <= 0 {
		maxIter = 25
	}
	tol := l.Tol
	if tol <= 0 {
		tol = 1e-8
	}

	design := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		design.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			design.Set(i, j+1, X.At(i, j))
		}
	}

	beta := make([]float64, c+1)
	converged := false
	iter := 0

	for ; iter < maxIter; iter++ {
		// Weighted normal equations: (D^T W D) delta = D^T (y - p).
		dtwd := mat.NewDense(c+1, c+1, nil)
		rhs := mat.NewVecDense(c+1, nil)
		for i := 0; i < r; i++ {
			eta := 0.0
			for j := 0; j <= c; j++ {
				eta += beta[j] * design.At(i, j)
			}
			p := sigmoid(eta)
			w := p * (1 - p)
			if w < 1e-10 {
				w = 1e-10
			}
			resid := yVec.AtVec(i) - p
			for j := 0; j <= c; j++ {
				dj := design.At(i, j)
				rhs.SetVec(j, rhs.AtVec(j)+dj*resid)
				for k := 0; k <= c; k++ {
					dtwd.Set(j, k, dtwd.At(j, k)+w*dj*design.At(i, k))
				}
			}
		}

		var delta mat.VecDense
		if err := delta.SolveVec(dtwd, rhs); err != nil {
			return nil, errors.Wrap(errors.ErrSingularMatrix, op)
		}

		maxStep := 0.0
		for j := 0; j <= c; j++ {
			step := delta.AtVec(j)
			beta[j] += step
			if s := math.Abs(step); s > maxStep {
				maxStep = s
			}
		}
		if maxStep < tol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("Logistic.Fit", maxIter, ""))
	}

	return &fittedLogistic{intercept: beta[0], weights: beta[1:], features: c}, nil
}

type fittedLogistic struct {
	intercept float64
	weights   []float64
	features  int
}

// PredictAt returns the predicted positive-class probability.
func (f *fittedLogistic) PredictAt(x []float64) (float64, error) {
	if f.weights == nil {
		return 0, errors.NewNotFittedError("Logistic", "PredictAt")
	}
	if len(x) != f.features {
		return 0, errors.NewDimensionError("Logistic.PredictAt", f.features, len(x), 1)
	}

	eta := f.intercept
	for j, w := range f.weights {
		eta += w * x[j]
	}
	return sigmoid(eta), nil
}

// PredictClass implements model.ProbabilityScorer. Ties at the cutoff
// classify negative, matching the threshold evaluator's rule.
func (f *fittedLogistic) PredictClass(x []float64, cutoff float64) (int, error) {
	if cutoff < 0 || cutoff > 1 {
		return 0, errors.NewCutoffError("Logistic.PredictClass", cutoff)
	}
	p, err := f.PredictAt(x)
	if err != nil {
		return 0, err
	}
	if p > cutoff {
		return 1, nil
	}
	return 0, nil
}

func sigmoid(eta float64) float64 {
	return 1 / (1 + math.Exp(-eta))
}
