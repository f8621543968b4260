package simulate

import (
	"math"
	"testing"

	"github.com/statsim/mceval/core/model"
	"github.com/statsim/mceval/pkg/errors"
	"github.com/statsim/mceval/variant"
)

func TestBiasVarianceHandComputed(t *testing.T) {
	m := newPredictionMatrix(3, []string{"m"})
	m.set(0, 0, 1)
	m.set(1, 0, 2)
	m.set(2, 0, 3)

	ensemble := NoiseEnsemble{1, 1, 1}

	stats, err := BiasVariance(m, 2, ensemble)
	if err != nil {
		t.Fatalf("BiasVariance() error = %v", err)
	}
	s := stats["m"]

	// mean = 2, bias = 0, population variance = 2/3, mse = (0+1+4)/3.
	if math.Abs(s.SquaredBias) > 1e-12 {
		t.Errorf("SquaredBias = %v, want 0", s.SquaredBias)
	}
	if math.Abs(s.Variance-2.0/3.0) > 1e-12 {
		t.Errorf("Variance = %v, want 2/3", s.Variance)
	}
	if math.Abs(s.MSE-5.0/3.0) > 1e-12 {
		t.Errorf("MSE = %v, want 5/3", s.MSE)
	}
	if s.ValidTrials != 3 || s.Failures != 0 {
		t.Errorf("ValidTrials = %d, Failures = %d, want 3, 0", s.ValidTrials, s.Failures)
	}
}

func TestBiasVariancePairsByTrialIndex(t *testing.T) {
	// Trial 2 is missing; its ensemble draw must not enter the MSE.
	m := newPredictionMatrix(4, []string{"m"})
	m.set(0, 0, 1)
	m.set(1, 0, 2)
	m.set(3, 0, 3)

	ensemble := NoiseEnsemble{1, 1, 999, 1}

	stats, err := BiasVariance(m, 2, ensemble)
	if err != nil {
		t.Fatalf("BiasVariance() error = %v", err)
	}
	s := stats["m"]

	if math.Abs(s.MSE-5.0/3.0) > 1e-12 {
		t.Errorf("MSE = %v, want 5/3 (missing trial's draw leaked in)", s.MSE)
	}
	if s.ValidTrials != 3 || s.Failures != 1 {
		t.Errorf("ValidTrials = %d, Failures = %d, want 3, 1", s.ValidTrials, s.Failures)
	}
}

func TestBiasVarianceInsufficientData(t *testing.T) {
	m := newPredictionMatrix(3, []string{"empty"})
	ensemble := NoiseEnsemble{0, 0, 0}

	_, err := BiasVariance(m, 0, ensemble)
	if err == nil {
		t.Fatal("BiasVariance() on all-missing column: want error, got nil")
	}
	var insufficient *errors.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Errorf("error = %v, want InsufficientDataError", err)
	}
}

func TestBiasVarianceEnsembleLengthMismatch(t *testing.T) {
	m := newPredictionMatrix(3, []string{"m"})
	m.set(0, 0, 1)
	m.set(1, 0, 1)
	m.set(2, 0, 1)

	_, err := BiasVariance(m, 1, NoiseEnsemble{1, 2})
	if err == nil {
		t.Fatal("BiasVariance() with short ensemble: want error, got nil")
	}
	var dim *errors.DimensionError
	if !errors.As(err, &dim) {
		t.Errorf("error = %v, want DimensionError", err)
	}
}

// End-to-end: run a cubic-truth simulation over a nested model family and
// check the decomposition identity and the bias/variance trends.
func TestBiasVarianceReconciliation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Monte Carlo integration test in short mode")
	}

	sc := Scenario{
		Truth:      func(x []float64) float64 { return x[0] * x[0] * x[0] },
		Features:   1,
		InputMin:   -1,
		InputMax:   1,
		NoiseSigma: 0.5,
	}
	query := []float64{0.8}
	const trials = 3000

	h := Harness{
		Scenario:   sc,
		SampleSize: 20,
		Variants: []model.Variant{
			variant.NewConstant(),
			variant.NewPolynomial(1),
			variant.NewPolynomial(5),
		},
		QueryPoint: query,
		Trials:     trials,
		Seed:       7,
	}
	matrix, err := h.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	ensemble, err := DrawNoiseEnsemble(sc, query, trials, h.Seed)
	if err != nil {
		t.Fatalf("DrawNoiseEnsemble() error = %v", err)
	}

	trueValue := sc.Truth(query)
	stats, err := BiasVariance(matrix, trueValue, ensemble)
	if err != nil {
		t.Fatalf("BiasVariance() error = %v", err)
	}

	// The identity bias^2 + variance + sigma^2 = mse holds to Monte Carlo
	// sampling error, which shrinks like 1/sqrt(trials).
	tolerance := 12.0 / math.Sqrt(trials)
	for name, s := range stats {
		if gap := s.ReconciliationGap(sc.NoiseVariance()); gap > tolerance {
			t.Errorf("%s: reconciliation gap %v exceeds tolerance %v", name, gap, tolerance)
		}
		if s.ValidTrials != trials {
			t.Errorf("%s: ValidTrials = %d, want %d", name, s.ValidTrials, trials)
		}
	}

	constant := stats["constant"]
	linear := stats["poly1"]
	quintic := stats["poly5"]

	// Flexibility trades bias for variance across the nested family.
	if !(constant.SquaredBias > linear.SquaredBias) {
		t.Errorf("squared bias should fall with flexibility: constant %v, poly1 %v",
			constant.SquaredBias, linear.SquaredBias)
	}
	if !(linear.SquaredBias > quintic.SquaredBias) {
		t.Errorf("squared bias should fall with flexibility: poly1 %v, poly5 %v",
			linear.SquaredBias, quintic.SquaredBias)
	}
	if !(quintic.Variance > linear.Variance) {
		t.Errorf("variance should rise with flexibility: poly1 %v, poly5 %v",
			linear.Variance, quintic.Variance)
	}
	if !(linear.Variance > constant.Variance) {
		t.Errorf("variance should rise with flexibility: constant %v, poly1 %v",
			constant.Variance, linear.Variance)
	}

	// MSE falls from the underfit end of the family, then creeps back up
	// as variance takes over.
	if !(linear.MSE < constant.MSE) {
		t.Errorf("MSE should fall from the underfit end: constant %v, poly1 %v",
			constant.MSE, linear.MSE)
	}
	if !(linear.MSE < quintic.MSE) {
		t.Errorf("MSE should rise at the overfit end: poly1 %v, poly5 %v",
			linear.MSE, quintic.MSE)
	}
}
