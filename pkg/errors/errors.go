// Package errors defines the error taxonomy shared by the metric and
// explainer packages.
//
// Every error type matches a sentinel through errors.Is, so callers can
// branch on the category without caring about the concrete type:
//
//	res, err := metrics.ComputeROC(scores, labels)
//	switch {
//	case errors.Is(err, errors.ErrDegenerateLabels):
//		// only one class present
//	case errors.Is(err, errors.ErrInvalidInput):
//		// empty input or NaN scores
//	}
//
// Stack traces and wrapping come from github.com/cockroachdb/errors; the
// helpers New, Newf, Wrap and Wrapf are re-exported so callers need a single
// import.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Use errors.Is to test for them.
var (
	// ErrInvalidInput is matched by every malformed-input error: empty
	// slices, NaN values, non-binary labels.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyData marks an operation that received no samples. Errors
	// matching it also match ErrInvalidInput.
	ErrEmptyData = errors.New("empty data")

	// ErrLengthMismatch marks paired inputs with different lengths.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrDimensionMismatch is kept for callers of the older vector API.
	ErrDimensionMismatch = ErrLengthMismatch

	// ErrDegenerateLabels marks a binary curve requested with a class absent.
	ErrDegenerateLabels = errors.New("degenerate labels")

	// ErrUndefinedR2 marks zero-variance targets with nonzero residuals.
	ErrUndefinedR2 = errors.New("undefined R2")

	// ErrNotImplemented marks unsupported functionality.
	ErrNotImplemented = errors.New("not implemented")
)

// ValueError reports an invalid argument value (empty input, NaN, ...).
type ValueError struct {
	Op      string
	Message string

	// Empty is set when the value was rejected for holding no samples.
	Empty bool
}

// NewValueError creates a ValueError with stack information attached.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// NewEmptyDataError creates a ValueError for an input with no samples. It
// matches both ErrInvalidInput and ErrEmptyData.
func NewEmptyDataError(op string) error {
	return errors.WithStack(&ValueError{Op: op, Message: "input cannot be empty", Empty: true})
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Is reports whether target is ErrInvalidInput, or ErrEmptyData for an
// empty input.
func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidInput || (e.Empty && target == ErrEmptyData)
}

// ValidationError reports a parameter that failed a domain check.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

// NewValidationError creates a ValidationError with stack information attached.
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.ParamName, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// DimensionError reports paired inputs whose lengths disagree.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError with stack information attached.
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: dimension mismatch on axis %d: expected %d, got %d", e.Op, e.Axis, e.Expected, e.Got)
}

// Is reports whether target is ErrLengthMismatch.
func (e *DimensionError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// DegenerateLabelsError reports a binary curve requested on data where a
// required class is missing.
type DegenerateLabelsError struct {
	Op        string
	Positives int
	Negatives int
}

// NewDegenerateLabelsError creates a DegenerateLabelsError with stack information attached.
func NewDegenerateLabelsError(op string, positives, negatives int) error {
	return errors.WithStack(&DegenerateLabelsError{Op: op, Positives: positives, Negatives: negatives})
}

func (e *DegenerateLabelsError) Error() string {
	return fmt.Sprintf("%s: degenerate labels: %d positive, %d negative", e.Op, e.Positives, e.Negatives)
}

// Is reports whether target is ErrDegenerateLabels.
func (e *DegenerateLabelsError) Is(target error) bool {
	return target == ErrDegenerateLabels
}

// UndefinedR2Error reports that R² has no finite value because the actual
// values have zero variance while the residuals do not vanish.
type UndefinedR2Error struct {
	Op    string
	SSRes float64
}

// NewUndefinedR2Error creates an UndefinedR2Error with stack information attached.
func NewUndefinedR2Error(op string, ssRes float64) error {
	return errors.WithStack(&UndefinedR2Error{Op: op, SSRes: ssRes})
}

func (e *UndefinedR2Error) Error() string {
	return fmt.Sprintf("%s: R2 undefined: actual values have zero variance, residual sum of squares %g", e.Op, e.SSRes)
}

// Is reports whether target is ErrUndefinedR2.
func (e *UndefinedR2Error) Is(target error) bool {
	return target == ErrUndefinedR2
}

// ModelError wraps a failure raised while running a model.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

// NewModelError creates a ModelError wrapping err.
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("scigo: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("scigo: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// New creates an error with a stack trace.
func New(msg string) error {
	return errors.New(msg)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// Wrap annotates err with msg. Returns nil if err is nil.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
