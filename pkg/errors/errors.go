// Package errors provides the structured error and warning types used across
// mceval. It is built on cockroachdb/errors so every constructor attaches a
// stack trace, and each type knows how to marshal itself into a zerolog event.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("mceval-warning: %v\n", w)
	}
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the process-wide warning handler.
// Handlers receive non-fatal diagnostics such as per-trial fit failures.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc routes warnings through a zerolog-backed sink.
// Kept separate from SetWarningHandler to avoid an import cycle with pkg/log.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the zerolog sink when one is registered,
// falling back to the plain handler otherwise.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// ConvergenceWarning is raised when an iterative fit stops before meeting
// its tolerance. The fitted model is still usable; the warning lets callers
// decide whether to trust it.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s failed to converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s failed to converge after %d iterations. Consider increasing max iterations or adjusting parameters.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject adds the structured warning to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a new ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// ===========================================================================
//
//	Simulation and evaluation error types
//
// ===========================================================================

// ConfigError reports an invalid generation or simulation parameter,
// such as a non-positive sample size or a noise sigma that is not finite.
type ConfigError struct {
	Op     string
	Param  string
	Reason string
	Value  interface{}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mceval: %s: invalid configuration for '%s': %s (got: %v)", e.Op, e.Param, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured configuration failure to a zerolog event.
func (e *ConfigError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigError")
}

// NewConfigError creates a ConfigError with a stack trace attached.
func NewConfigError(op, param, reason string, value interface{}) error {
	err := &ConfigError{Op: op, Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// FitError reports that one model variant failed to fit one dataset,
// for example because the design matrix was singular. It is recoverable:
// the harness tallies it for the affected model and keeps running.
type FitError struct {
	Model string
	Trial int
	Err   error
}

func (e *FitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mceval: model %q failed to fit on trial %d: %v", e.Model, e.Trial, e.Err)
	}
	return fmt.Sprintf("mceval: model %q failed to fit on trial %d", e.Model, e.Trial)
}

func (e *FitError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured fit failure to a zerolog event.
func (e *FitError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model", e.Model).
		Int("trial", e.Trial).
		AnErr("cause", e.Err).
		Str("type", "FitError")
}

// NewFitError creates a FitError with a stack trace attached.
func NewFitError(model string, trial int, err error) error {
	fitErr := &FitError{Model: model, Trial: trial, Err: err}
	return errors.WithStack(fitErr)
}

// InsufficientDataError reports that an aggregate had zero valid
// observations, e.g. a model column whose every trial failed to fit.
type InsufficientDataError struct {
	Op    string
	Model string
}

func (e *InsufficientDataError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("mceval: %s: no valid observations for model %q", e.Op, e.Model)
	}
	return fmt.Sprintf("mceval: %s: no valid observations", e.Op)
}

// MarshalZerologObject adds the structured aggregation failure to a zerolog event.
func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("model", e.Model).
		Str("type", "InsufficientDataError")
}

// NewInsufficientDataError creates an InsufficientDataError with a stack trace attached.
func NewInsufficientDataError(op, model string) error {
	err := &InsufficientDataError{Op: op, Model: model}
	return errors.WithStack(err)
}

// CutoffError reports a decision threshold outside [0, 1].
type CutoffError struct {
	Op     string
	Cutoff float64
}

func (e *CutoffError) Error() string {
	return fmt.Sprintf("mceval: %s: cutoff %v is outside [0, 1]", e.Op, e.Cutoff)
}

// MarshalZerologObject adds the structured cutoff failure to a zerolog event.
func (e *CutoffError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Float64("cutoff", e.Cutoff).
		Str("type", "CutoffError")
}

// NewCutoffError creates a CutoffError with a stack trace attached.
func NewCutoffError(op string, cutoff float64) error {
	err := &CutoffError{Op: op, Cutoff: cutoff}
	return errors.WithStack(err)
}

// DegenerateLabelsError reports a label set lacking one of the two classes,
// which leaves ROC/AUC undefined. Callers must surface it rather than
// substitute a misleading value such as 0, 0.5 or 1.
type DegenerateLabelsError struct {
	Op        string
	Positives int
	Negatives int
}

func (e *DegenerateLabelsError) Error() string {
	return fmt.Sprintf("mceval: %s: label set is degenerate (%d positives, %d negatives)", e.Op, e.Positives, e.Negatives)
}

// MarshalZerologObject adds the structured label failure to a zerolog event.
func (e *DegenerateLabelsError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("positives", e.Positives).
		Int("negatives", e.Negatives).
		Str("type", "DegenerateLabelsError")
}

// NewDegenerateLabelsError creates a DegenerateLabelsError with a stack trace attached.
func NewDegenerateLabelsError(op string, positives, negatives int) error {
	err := &DegenerateLabelsError{Op: op, Positives: positives, Negatives: negatives}
	return errors.WithStack(err)
}

// UndefinedMetricError reports a derived metric whose denominator is zero,
// e.g. sensitivity when the evaluated set holds no positive labels.
// The metric is explicitly undefined, never silently reported as zero.
type UndefinedMetricError struct {
	Metric    string
	Condition string
}

func (e *UndefinedMetricError) Error() string {
	return fmt.Sprintf("mceval: '%s' is undefined: %s", e.Metric, e.Condition)
}

// MarshalZerologObject adds the structured metric failure to a zerolog event.
func (e *UndefinedMetricError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("metric", e.Metric).
		Str("condition", e.Condition).
		Str("type", "UndefinedMetricError")
}

// NewUndefinedMetricError creates an UndefinedMetricError with a stack trace attached.
func NewUndefinedMetricError(metric, condition string) error {
	err := &UndefinedMetricError{Metric: metric, Condition: condition}
	return errors.WithStack(err)
}

// DimensionError reports two sequences whose lengths were expected to match.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("mceval: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured dimension failure to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is malformed or out of range.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("mceval: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NotFittedError reports a Predict call on a model that was never fitted.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("mceval: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured state failure to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to err.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no data.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a design matrix cannot be inverted.
	ErrSingularMatrix = New("singular matrix")
)
