package variant

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/statsim/mceval/core/model"
	"github.com/statsim/mceval/pkg/errors"
)

// Polynomial fits a degree-k polynomial in the first feature by least
// squares. Degree 1 is plain linear regression; higher degrees trade bias
// for variance.
type Polynomial struct {
	Degree int
}

// NewPolynomial creates a polynomial variant of the given degree.
func NewPolynomial(degree int) Polynomial {
	return Polynomial{Degree: degree}
}

// Name implements model.Variant.
func (p Polynomial) Name() string { return fmt.Sprintf("poly%d", p.Degree) }

// Fit expands feature 0 into powers 1..Degree and solves the normal
// equations.
func (p Polynomial) Fit(X mat.Matrix, y mat.Matrix) (model.Fitted, error) {
	op := p.Name() + ".Fit"
	if p.Degree < 1 {
		return nil, errors.NewValueError(op, "degree must be >= 1")
	}
	r, _, yVec, err := checkTrainingInput(op, X, y)
	if err != nil {
		return nil, err
	}

	design := mat.NewDense(r, p.Degree+1, nil)
	for i := 0; i < r; i++ {
		design.Set(i, 0, 1.0)
		pow := 1.0
		x0 := X.At(i, 0)
		for d := 1; d <= p.Degree; d++ {
			pow *= x0
			design.Set(i, d, pow)
		}
	}

	coef, err := solveNormalEquations(op, design, yVec)
	if err != nil {
		return nil, err
	}
	return &fittedPolynomial{coef: coef}, nil
}

type fittedPolynomial struct {
	coef []float64 // coef[d] multiplies x^d
}

// PredictAt evaluates the polynomial at x[0] by Horner's rule.
func (f *fittedPolynomial) PredictAt(x []float64) (float64, error) {
	if f.coef == nil {
		return 0, errors.NewNotFittedError("Polynomial", "PredictAt")
	}
	if len(x) < 1 {
		return 0, errors.NewDimensionError("Polynomial.PredictAt", 1, len(x), 1)
	}

	acc := 0.0
	for d := len(f.coef) - 1; d >= 0; d-- {
		acc = acc*x[0] + f.coef[d]
	}
	return acc, nil
}
