package domain

import (
	"errors"
	"fmt"
)

// Error codes for different failure scenarios
const (
	ErrUnknownDomain     = "UNKNOWN_DOMAIN"
	ErrMissingField      = "MISSING_FIELD"
	ErrTypeMismatch      = "TYPE_MISMATCH"
	ErrOutOfRange        = "OUT_OF_RANGE"
	ErrDimensionMismatch = "DIMENSION_MISMATCH"
	ErrModelLoad         = "MODEL_LOAD_ERROR"
	ErrInvalidLabel      = "INVALID_LABEL"
	ErrRateLimit         = "RATE_LIMIT_EXCEEDED"
	ErrInternal          = "INTERNAL_ERROR"
)

// Bound names which side of a field's range was violated
type Bound string

// Bound values
const (
	BoundMin Bound = "min"
	BoundMax Bound = "max"
)

// UnknownDomainError is returned for identifiers outside the fixed domain set
type UnknownDomainError struct {
	Domain string `json:"domain"`
}

// Error implements the error interface
func (e *UnknownDomainError) Error() string {
	return fmt.Sprintf("unknown disease domain %q", e.Domain)
}

// Code returns the stable error code
func (e *UnknownDomainError) Code() string { return ErrUnknownDomain }

// MissingFieldError reports a required field absent from the raw values
type MissingFieldError struct {
	Domain Domain `json:"domain"`
	Field  string `json:"field"`
}

// Error implements the error interface
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field '%s' for %s", e.Field, e.Domain)
}

// Code returns the stable error code
func (e *MissingFieldError) Code() string { return ErrMissingField }

// TypeMismatchError reports a value that is not a finite number
type TypeMismatchError struct {
	Domain Domain      `json:"domain"`
	Field  string      `json:"field"`
	Value  interface{} `json:"value"`
}

// Error implements the error interface
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field '%s' must be a finite number, got %v (%T)", e.Field, e.Value, e.Value)
}

// Code returns the stable error code
func (e *TypeMismatchError) Code() string { return ErrTypeMismatch }

// OutOfRangeError reports a value outside a field's inclusive bounds
type OutOfRangeError struct {
	Domain Domain  `json:"domain"`
	Field  string  `json:"field"`
	Value  float64 `json:"value"`
	Bound  float64 `json:"bound"`
	Limit  Bound   `json:"limit"`
}

// Error implements the error interface
func (e *OutOfRangeError) Error() string {
	if e.Limit == BoundMin {
		return fmt.Sprintf("field '%s' value %s is below minimum %s", e.Field, FormatNumber(e.Value), FormatNumber(e.Bound))
	}
	return fmt.Sprintf("field '%s' value %s is above maximum %s", e.Field, FormatNumber(e.Value), FormatNumber(e.Bound))
}

// Code returns the stable error code
func (e *OutOfRangeError) Code() string { return ErrOutOfRange }

// DimensionMismatchError reports a vector whose length differs from the schema
type DimensionMismatchError struct {
	Domain   Domain `json:"domain"`
	Expected int    `json:"expected"`
	Actual   int    `json:"actual"`
}

// Error implements the error interface
func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s expects %d features, got %d", e.Domain, e.Expected, e.Actual)
}

// Code returns the stable error code
func (e *DimensionMismatchError) Code() string { return ErrDimensionMismatch }

// ModelLoadError reports a classifier artifact that could not be loaded.
// It is fatal to startup.
type ModelLoadError struct {
	Domain   Domain `json:"domain"`
	Location string `json:"location,omitempty"`
	Cause    error  `json:"-"`
}

// Error implements the error interface
func (e *ModelLoadError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("failed to load %s model: %v", e.Domain, e.Cause)
	}
	return fmt.Sprintf("failed to load %s model from %s: %v", e.Domain, e.Location, e.Cause)
}

// Unwrap returns the underlying cause
func (e *ModelLoadError) Unwrap() error { return e.Cause }

// Code returns the stable error code
func (e *ModelLoadError) Code() string { return ErrModelLoad }

// InvalidLabelError reports a classifier output outside {0, 1}
type InvalidLabelError struct {
	Domain Domain `json:"domain"`
	Label  Label  `json:"label"`
}

// Error implements the error interface
func (e *InvalidLabelError) Error() string {
	return fmt.Sprintf("classifier for %s returned invalid label %d", e.Domain, int(e.Label))
}

// Code returns the stable error code
func (e *InvalidLabelError) Code() string { return ErrInvalidLabel }

// coder is implemented by every error in the taxonomy
type coder interface {
	Code() string
}

// ErrorCode returns the code of the first taxonomy error in err's chain,
// or ErrInternal when there is none.
func ErrorCode(err error) string {
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ErrInternal
}

// IsValidationError reports whether err stems from rejected input values
func IsValidationError(err error) bool {
	var (
		missing  *MissingFieldError
		mismatch *TypeMismatchError
		rng      *OutOfRangeError
	)
	return errors.As(err, &missing) || errors.As(err, &mismatch) || errors.As(err, &rng)
}
