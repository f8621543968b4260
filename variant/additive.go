package variant

import (
	"gonum.org/v1/gonum/mat"

	"github.com/statsim/mceval/core/model"
	"github.com/statsim/mceval/pkg/errors"
)

// Additive fits a linear model over all features with an intercept, no
// cross terms.
type Additive struct{}

// NewAdditive creates a new additive multi-feature variant.
func NewAdditive() Additive { return Additive{} }

// Name implements model.Variant.
func (Additive) Name() string { return "additive" }

// Fit solves the normal equations over [1, x_1, ..., x_p].
func (Additive) Fit(X mat.Matrix, y mat.Matrix) (model.Fitted, error) {
	const op = "Additive.Fit"
	r, c, yVec, err := checkTrainingInput(op, X, y)
	if err != nil {
		return nil, err
	}

	design := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		design.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			design.Set(i, j+1, X.At(i, j))
		}
	}

	coef, err := solveNormalEquations(op, design, yVec)
	if err != nil {
		return nil, err
	}
	return &fittedAdditive{intercept: coef[0], weights: coef[1:], features: c}, nil
}

type fittedAdditive struct {
	intercept float64
	weights   []float64
	features  int
}

// PredictAt implements model.Fitted.
func (f *fittedAdditive) PredictAt(x []float64) (float64, error) {
	if f.weights == nil {
		return 0, errors.NewNotFittedError("Additive", "PredictAt")
	}
	if len(x) != f.features {
		return 0, errors.NewDimensionError("Additive.PredictAt", f.features, len(x), 1)
	}

	acc := f.intercept
	for j, w := range f.weights {
		acc += w * x[j]
	}
	return acc, nil
}
