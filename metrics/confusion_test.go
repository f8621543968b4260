package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/statsim/mceval/pkg/errors"
)

func TestConfusion(t *testing.T) {
	tests := []struct {
		name    string
		scores  []float64
		labels  []float64
		cutoff  float64
		want    ConfusionMatrix
		wantErr bool
	}{
		{
			name:   "Perfect separation at 0.5",
			scores: []float64{0.9, 0.8, 0.2, 0.1},
			labels: []float64{1, 1, 0, 0},
			cutoff: 0.5,
			want:   ConfusionMatrix{TP: 2, TN: 2},
		},
		{
			name:   "Score at cutoff classifies negative",
			scores: []float64{0.5, 0.6},
			labels: []float64{1, 1},
			cutoff: 0.5,
			want:   ConfusionMatrix{TP: 1, FN: 1},
		},
		{
			name:   "Everything positive at cutoff 0 except exact zeros",
			scores: []float64{0.0, 0.1, 0.9},
			labels: []float64{0, 0, 1},
			cutoff: 0,
			want:   ConfusionMatrix{TP: 1, FP: 1, TN: 1},
		},
		{
			name:   "Mixed errors",
			scores: []float64{0.7, 0.3, 0.6, 0.2},
			labels: []float64{1, 1, 0, 0},
			cutoff: 0.5,
			want:   ConfusionMatrix{TP: 1, FN: 1, FP: 1, TN: 1},
		},
		{
			name:    "Cutoff above 1",
			scores:  []float64{0.5},
			labels:  []float64{1},
			cutoff:  1.5,
			wantErr: true,
		},
		{
			name:    "Negative cutoff",
			scores:  []float64{0.5},
			labels:  []float64{1},
			cutoff:  -0.1,
			wantErr: true,
		},
		{
			name:    "Length mismatch",
			scores:  []float64{0.5, 0.6},
			labels:  []float64{1},
			cutoff:  0.5,
			wantErr: true,
		},
		{
			name:    "Non-binary labels",
			scores:  []float64{0.5, 0.6},
			labels:  []float64{1, 0.5},
			cutoff:  0.5,
			wantErr: true,
		},
		{
			name:    "Empty vectors",
			scores:  []float64{},
			labels:  []float64{},
			cutoff:  0.5,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var scores, labels *mat.VecDense
			if len(tt.scores) > 0 {
				scores = mat.NewVecDense(len(tt.scores), tt.scores)
			}
			if len(tt.labels) > 0 {
				labels = mat.NewVecDense(len(tt.labels), tt.labels)
			}

			got, err := Confusion(scores, labels, tt.cutoff)
			if (err != nil) != tt.wantErr {
				t.Errorf("Confusion() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if *got != tt.want {
				t.Errorf("Confusion() = %+v, want %+v", *got, tt.want)
			}
			if got.Total() != len(tt.scores) {
				t.Errorf("Total() = %d, want %d", got.Total(), len(tt.scores))
			}
		})
	}
}

func TestConfusionTotalsAcrossCutoffs(t *testing.T) {
	scores := mat.NewVecDense(6, []float64{0.05, 0.2, 0.4, 0.6, 0.8, 0.95})
	labels := mat.NewVecDense(6, []float64{0, 0, 1, 0, 1, 1})

	for cutoff := 0.0; cutoff <= 1.0; cutoff += 0.1 {
		cm, err := Confusion(scores, labels, cutoff)
		if err != nil {
			t.Fatalf("Confusion(cutoff=%v) error = %v", cutoff, err)
		}
		if cm.Total() != 6 {
			t.Errorf("cutoff %v: TP+FP+TN+FN = %d, want 6", cutoff, cm.Total())
		}
	}
}

func TestConfusionIsPure(t *testing.T) {
	scores := mat.NewVecDense(4, []float64{0.9, 0.8, 0.2, 0.1})
	labels := mat.NewVecDense(4, []float64{1, 1, 0, 0})

	first, err := Confusion(scores, labels, 0.5)
	if err != nil {
		t.Fatalf("Confusion() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Confusion(scores, labels, 0.5)
		if err != nil {
			t.Fatalf("Confusion() error = %v", err)
		}
		if *again != *first {
			t.Fatalf("Confusion() not idempotent: %+v vs %+v", *again, *first)
		}
	}
}

func TestDerivedMetrics(t *testing.T) {
	scores := mat.NewVecDense(4, []float64{0.9, 0.8, 0.2, 0.1})
	labels := mat.NewVecDense(4, []float64{1, 1, 0, 0})

	cm, err := Confusion(scores, labels, 0.5)
	if err != nil {
		t.Fatalf("Confusion() error = %v", err)
	}

	acc, err := cm.Accuracy()
	if err != nil || math.Abs(acc-1.0) > 1e-12 {
		t.Errorf("Accuracy() = %v, %v, want 1.0", acc, err)
	}
	sens, err := cm.Sensitivity()
	if err != nil || math.Abs(sens-1.0) > 1e-12 {
		t.Errorf("Sensitivity() = %v, %v, want 1.0", sens, err)
	}
	spec, err := cm.Specificity()
	if err != nil || math.Abs(spec-1.0) > 1e-12 {
		t.Errorf("Specificity() = %v, %v, want 1.0", spec, err)
	}
}

func TestDerivedMetricsUndefined(t *testing.T) {
	// All-positive labels: specificity has a zero denominator.
	scores := mat.NewVecDense(2, []float64{0.9, 0.1})
	labels := mat.NewVecDense(2, []float64{1, 1})

	cm, err := Confusion(scores, labels, 0.5)
	if err != nil {
		t.Fatalf("Confusion() error = %v", err)
	}

	if _, err := cm.Specificity(); err == nil {
		t.Error("Specificity() on all-positive labels: want UndefinedMetricError, got nil")
	} else {
		var undef *errors.UndefinedMetricError
		if !errors.As(err, &undef) {
			t.Errorf("Specificity() error = %v, want UndefinedMetricError", err)
		}
	}

	// All-negative labels: sensitivity has a zero denominator.
	labels = mat.NewVecDense(2, []float64{0, 0})
	cm, err = Confusion(scores, labels, 0.5)
	if err != nil {
		t.Fatalf("Confusion() error = %v", err)
	}
	if _, err := cm.Sensitivity(); err == nil {
		t.Error("Sensitivity() on all-negative labels: want UndefinedMetricError, got nil")
	}
}

func TestConfusionErrorTypes(t *testing.T) {
	scores := mat.NewVecDense(2, []float64{0.5, 0.6})
	labels := mat.NewVecDense(1, []float64{1})

	_, err := Confusion(scores, labels, 0.5)
	var dim *errors.DimensionError
	if !errors.As(err, &dim) {
		t.Errorf("length mismatch: error = %v, want DimensionError", err)
	}

	labels = mat.NewVecDense(2, []float64{1, 0})
	_, err = Confusion(scores, labels, 2)
	var cut *errors.CutoffError
	if !errors.As(err, &cut) {
		t.Errorf("bad cutoff: error = %v, want CutoffError", err)
	}
}
