package variant

import (
	"gonum.org/v1/gonum/mat"

	"github.com/statsim/mceval/core/model"
	"github.com/statsim/mceval/pkg/errors"
)

// Interaction fits a linear model over all features plus every pairwise
// product x_i * x_j (i < j). It is the most flexible member of the shipped
// family and needs enough samples to keep its design full rank.
type Interaction struct{}

// NewInteraction creates a new interaction variant.
func NewInteraction() Interaction { return Interaction{} }

// Name implements model.Variant.
func (Interaction) Name() string { return "interaction" }

// Fit solves the normal equations over [1, x, pairwise products of x].
func (Interaction) Fit(X mat.Matrix, y mat.Matrix) (model.Fitted, error) {
	const op = "Interaction.Fit"
	r, c, yVec, err := checkTrainingInput(op, X, y)
	if err != nil {
		return nil, err
	}

	pairs := c * (c - 1) / 2
	design := mat.NewDense(r, 1+c+pairs, nil)
	for i := 0; i < r; i++ {
		design.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			design.Set(i, j+1, X.At(i, j))
		}
		col := 1 + c
		for j := 0; j < c; j++ {
			for k := j + 1; k < c; k++ {
				design.Set(i, col, X.At(i, j)*X.At(i, k))
				col++
			}
		}
	}

	coef, err := solveNormalEquations(op, design, yVec)
	if err != nil {
		return nil, err
	}
	return &fittedInteraction{coef: coef, features: c}, nil
}

type fittedInteraction struct {
	coef     []float64 // intercept, then features, then pairwise products
	features int
}

// PredictAt implements model.Fitted.
func (f *fittedInteraction) PredictAt(x []float64) (float64, error) {
	if f.coef == nil {
		return 0, errors.NewNotFittedError("Interaction", "PredictAt")
	}
	if len(x) != f.features {
		return 0, errors.NewDimensionError("Interaction.PredictAt", f.features, len(x), 1)
	}

	acc := f.coef[0]
	for j := 0; j < f.features; j++ {
		acc += f.coef[1+j] * x[j]
	}
	col := 1 + f.features
	for j := 0; j < f.features; j++ {
		for k := j + 1; k < f.features; k++ {
			acc += f.coef[col] * x[j] * x[k]
			col++
		}
	}
	return acc, nil
}
