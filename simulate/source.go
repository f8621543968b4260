package simulate

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/statsim/mceval/pkg/errors"
)

// Dataset is one trial's synthetic training set. It is owned by the trial
// that generated it and discarded after fitting.
type Dataset struct {
	// X holds one sample per row.
	X *mat.Dense

	// Y holds the noisy responses.
	Y *mat.VecDense
}

// Generate draws sampleSize independent samples from the scenario's input
// distribution, evaluates the ground truth at each, and adds a fresh noise
// draw. All entropy comes from src; no global random state is touched.
func Generate(sc Scenario, sampleSize int, src rand.Source) (*Dataset, error) {
	const op = "simulate.Generate"
	if err := sc.validate(op); err != nil {
		return nil, err
	}
	if sampleSize <= 0 {
		return nil, errors.NewConfigError(op, "sampleSize", "must be > 0", sampleSize)
	}
	if src == nil {
		return nil, errors.NewConfigError(op, "src", "random source is required", nil)
	}

	input := distuv.Uniform{Min: sc.InputMin, Max: sc.InputMax, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: sc.NoiseSigma, Src: src}

	X := mat.NewDense(sampleSize, sc.Features, nil)
	Y := mat.NewVecDense(sampleSize, nil)
	x := make([]float64, sc.Features)

	for i := 0; i < sampleSize; i++ {
		for j := 0; j < sc.Features; j++ {
			x[j] = input.Rand()
			X.Set(i, j, x[j])
		}
		Y.SetVec(i, sc.Truth(x)+noise.Rand())
	}

	return &Dataset{X: X, Y: Y}, nil
}

// NoiseEnsemble is an independently drawn sequence of noisy responses at
// the query point, one per trial. Only the analyzer consumes it; the
// harness never sees these draws.
type NoiseEnsemble []float64

// DrawNoiseEnsemble produces trials fresh noisy observations of the ground
// truth at queryPoint, using a stream derived from the master seed that is
// disjoint from every trial stream.
func DrawNoiseEnsemble(sc Scenario, queryPoint []float64, trials int, masterSeed uint64) (NoiseEnsemble, error) {
	const op = "simulate.DrawNoiseEnsemble"
	if err := sc.validate(op); err != nil {
		return nil, err
	}
	if trials <= 0 {
		return nil, errors.NewConfigError(op, "trials", "must be > 0", trials)
	}
	if len(queryPoint) != sc.Features {
		return nil, errors.NewDimensionError(op, sc.Features, len(queryPoint), 1)
	}

	truth := sc.Truth(queryPoint)
	noise := distuv.Normal{Mu: 0, Sigma: sc.NoiseSigma, Src: ensembleSource(masterSeed)}

	ens := make(NoiseEnsemble, trials)
	for i := range ens {
		ens[i] = truth + noise.Rand()
	}
	return ens, nil
}
