package simulate

import (
	"math"

	"github.com/statsim/mceval/pkg/errors"
)

// PredictionMatrix is the trials × models arena of out-of-sample
// predictions at the query point. It is allocated up front with every cell
// marked missing; the harness writes each (trial, model) coordinate exactly
// once, so workers scatter into disjoint cells without locking. After Run
// returns, the matrix is read-only. Missing cells (NaN) mark fit failures
// and are excluded from downstream aggregation.
type PredictionMatrix struct {
	models []string
	trials int
	cells  []float64 // row-major trials × models, NaN = missing
}

func newPredictionMatrix(trials int, models []string) *PredictionMatrix {
	cells := make([]float64, trials*len(models))
	for i := range cells {
		cells[i] = math.NaN()
	}
	names := make([]string, len(models))
	copy(names, models)
	return &PredictionMatrix{models: names, trials: trials, cells: cells}
}

// set writes one cell. Harness-internal; each coordinate is written at
// most once.
func (m *PredictionMatrix) set(trial, modelIdx int, v float64) {
	m.cells[trial*len(m.models)+modelIdx] = v
}

// Trials returns the number of trials (rows).
func (m *PredictionMatrix) Trials() int { return m.trials }

// Models returns the model names in column order.
func (m *PredictionMatrix) Models() []string {
	names := make([]string, len(m.models))
	copy(names, m.models)
	return names
}

// At returns the prediction for (trial, model). Missing cells are NaN.
func (m *PredictionMatrix) At(trial int, modelName string) (float64, error) {
	const op = "PredictionMatrix.At"
	if trial < 0 || trial >= m.trials {
		return 0, errors.NewValueError(op, "trial index out of range")
	}
	idx, err := m.columnIndex(op, modelName)
	if err != nil {
		return 0, err
	}
	return m.cells[trial*len(m.models)+idx], nil
}

// Column returns a copy of one model's predictions across all trials,
// missing cells included as NaN.
func (m *PredictionMatrix) Column(modelName string) ([]float64, error) {
	idx, err := m.columnIndex("PredictionMatrix.Column", modelName)
	if err != nil {
		return nil, err
	}
	col := make([]float64, m.trials)
	for t := 0; t < m.trials; t++ {
		col[t] = m.cells[t*len(m.models)+idx]
	}
	return col, nil
}

// ValidColumn returns one model's non-missing predictions together with
// the trial indices they came from, preserving trial order.
func (m *PredictionMatrix) ValidColumn(modelName string) (values []float64, trials []int, err error) {
	idx, err := m.columnIndex("PredictionMatrix.ValidColumn", modelName)
	if err != nil {
		return nil, nil, err
	}
	for t := 0; t < m.trials; t++ {
		v := m.cells[t*len(m.models)+idx]
		if !math.IsNaN(v) {
			values = append(values, v)
			trials = append(trials, t)
		}
	}
	return values, trials, nil
}

// FailureCount returns how many trials failed to produce a prediction for
// the given model.
func (m *PredictionMatrix) FailureCount(modelName string) (int, error) {
	idx, err := m.columnIndex("PredictionMatrix.FailureCount", modelName)
	if err != nil {
		return 0, err
	}
	failures := 0
	for t := 0; t < m.trials; t++ {
		if math.IsNaN(m.cells[t*len(m.models)+idx]) {
			failures++
		}
	}
	return failures, nil
}

func (m *PredictionMatrix) columnIndex(op, modelName string) (int, error) {
	for i, name := range m.models {
		if name == modelName {
			return i, nil
		}
	}
	return 0, errors.NewValueError(op, "unknown model "+modelName)
}
