package variant

import (
	"gonum.org/v1/gonum/mat"

	"github.com/statsim/mceval/core/model"
	"github.com/statsim/mceval/pkg/errors"
)

// Constant is the intercept-only model: it ignores every feature and
// predicts the training-set mean of the response. It anchors the
// high-bias, low-variance end of a nested model family.
type Constant struct{}

// NewConstant creates a new constant-mean variant.
func NewConstant() Constant { return Constant{} }

// Name implements model.Variant.
func (Constant) Name() string { return "constant" }

// Fit computes the response mean.
func (Constant) Fit(X mat.Matrix, y mat.Matrix) (model.Fitted, error) {
	r, _, yVec, err := checkTrainingInput("Constant.Fit", X, y)
	if err != nil {
		return nil, err
	}

	var sum float64
	for i := 0; i < r; i++ {
		sum += yVec.AtVec(i)
	}
	return &fittedConstant{mean: sum / float64(r), fitted: true}, nil
}

type fittedConstant struct {
	mean   float64
	fitted bool
}

// PredictAt implements model.Fitted.
func (f *fittedConstant) PredictAt(x []float64) (float64, error) {
	if !f.fitted {
		return 0, errors.NewNotFittedError("Constant", "PredictAt")
	}
	return f.mean, nil
}
