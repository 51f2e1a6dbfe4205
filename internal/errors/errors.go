package errors

import (
	"errors"
	"fmt"
)

// Base error types
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrMissingClientName  = errors.New("please enter client name")
	ErrMissingChakra      = errors.New("chakra assessment missing")
	ErrEmailNotConfigured = errors.New("email credentials not configured")
	ErrExternal           = errors.New("external resource failed")
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeExternal   ErrorType = "external"
	ErrorTypeRender     ErrorType = "render"
	ErrorTypeConfig     ErrorType = "config"
)

// ReportError is a structured error for report operations.
type ReportError struct {
	Type   ErrorType
	Op     string // Operation that failed (e.g., "render", "send_email")
	Client string // Client the report was for, if known
	Err    error
}

func (e *ReportError) Error() string {
	if e.Client != "" {
		return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Client, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is interface
func (e *ReportError) Is(target error) bool {
	if target == nil {
		return false
	}

	switch target {
	case ErrInvalidInput:
		return e.Type == ErrorTypeValidation
	case ErrExternal:
		return e.Type == ErrorTypeExternal
	}

	return errors.Is(e.Err, target)
}

// NewReportError creates a new ReportError
func NewReportError(errorType ErrorType, op string, err error) *ReportError {
	return &ReportError{
		Type: errorType,
		Op:   op,
		Err:  err,
	}
}

// WithClient adds the client name to the error
func (e *ReportError) WithClient(client string) *ReportError {
	e.Client = client
	return e
}

// Helper functions

// WrapValidationError marks err as a user-facing input problem.
func WrapValidationError(op string, err error) error {
	return NewReportError(ErrorTypeValidation, op, err)
}

// WrapExternalError marks err as a failure of a collaborator (logo host, mail server).
func WrapExternalError(op string, err error) error {
	return NewReportError(ErrorTypeExternal, op, err)
}

// WrapRenderError marks err as a failure while producing the document.
func WrapRenderError(op string, err error) error {
	return NewReportError(ErrorTypeRender, op, err)
}

// TypeOf returns the error category, or ErrorTypeRender for untyped errors.
func TypeOf(err error) ErrorType {
	var repErr *ReportError
	if errors.As(err, &repErr) {
		return repErr.Type
	}
	return ErrorTypeRender
}

// IsValidationError checks if an error was caused by bad input
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var repErr *ReportError
	if errors.As(err, &repErr) && repErr.Type == ErrorTypeValidation {
		return true
	}
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrMissingClientName)
}

// IsExternalError checks if an error came from an external collaborator
func IsExternalError(err error) bool {
	if err == nil {
		return false
	}
	var repErr *ReportError
	if errors.As(err, &repErr) {
		return repErr.Type == ErrorTypeExternal
	}
	return errors.Is(err, ErrExternal)
}
