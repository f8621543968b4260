// Package variant ships the reference model families evaluated by the
// simulation harness: constant, polynomial, additive, interaction and
// logistic. Each is a stateless factory implementing model.Variant; fitting
// produces an immutable value implementing model.Fitted.
package variant

import (
	"gonum.org/v1/gonum/mat"

	"github.com/statsim/mceval/pkg/errors"
)

// solveNormalEquations solves w = (D^T D)^(-1) D^T y for a design matrix D
// that already contains its intercept column. A non-invertible D^T D
// surfaces as ErrSingularMatrix.
func solveNormalEquations(op string, design *mat.Dense, y *mat.VecDense) ([]float64, error) {
	r, c := design.Dims()
	if y.Len() != r {
		return nil, errors.NewDimensionError(op, r, y.Len(), 0)
	}

	var dt mat.Dense
	dt.CloneFrom(design.T())

	var dtd mat.Dense
	dtd.Mul(&dt, design)

	var dtdInv mat.Dense
	if err := dtdInv.Inverse(&dtd); err != nil {
		return nil, errors.Wrap(errors.ErrSingularMatrix, op)
	}

	var dty mat.VecDense
	dty.MulVec(&dt, y)

	w := mat.NewVecDense(c, nil)
	w.MulVec(&dtdInv, &dty)

	coef := make([]float64, c)
	for i := 0; i < c; i++ {
		coef[i] = w.AtVec(i)
	}
	return coef, nil
}

// checkTrainingInput validates the common Fit preconditions and returns the
// dataset shape.
func checkTrainingInput(op string, X mat.Matrix, y mat.Matrix) (rows, cols int, yVec *mat.VecDense, err error) {
	if X == nil || y == nil {
		return 0, 0, nil, errors.NewValueError(op, "nil input")
	}
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return 0, 0, nil, errors.Wrap(errors.ErrEmptyData, op)
	}
	if ry != r {
		return 0, 0, nil, errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return 0, 0, nil, errors.NewValueError(op, "y must be a column vector")
	}

	yVec = mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}
	return r, c, yVec, nil
}
