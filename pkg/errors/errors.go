// Package errors is the error taxonomy shared by the proxy layer and the
// HTTP host. Every failure a script can observe is an *AppError.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Raised by proxies
	ErrorTypeInvalidArgument      ErrorType = "INVALID_ARGUMENT"
	ErrorTypeNotFound             ErrorType = "NOT_FOUND"
	ErrorTypeTypeMismatch         ErrorType = "TYPE_MISMATCH"
	ErrorTypeUnsupportedOperation ErrorType = "UNSUPPORTED_OPERATION"

	// Raised by the host
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeInternal   ErrorType = "INTERNAL"
)

// AppError carries a type, the message shown to the script and the HTTP
// status the host answers with.
type AppError struct {
	Type       ErrorType      `json:"type"`
	Message    string         `json:"message"`
	Code       string         `json:"code,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
	StackTrace string         `json:"-"`
	HTTPStatus int            `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails attaches structured detail, e.g. per-field validation messages
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func callers() string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "%s:%d %s\n", f.File, f.Line, f.Function)
		if !more {
			return b.String()
		}
	}
}

func newAppError(t ErrorType, status int, message string) *AppError {
	return &AppError{
		Type:       t,
		Message:    message,
		HTTPStatus: status,
		StackTrace: callers(),
	}
}

// NewInvalidArgumentError reports a malformed or disallowed input value
func NewInvalidArgumentError(message string) *AppError {
	return newAppError(ErrorTypeInvalidArgument, http.StatusBadRequest, message)
}

// NewNotFoundError reports a name, path or id that does not resolve
func NewNotFoundError(resource string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, resource+" not found")
}

// NewTypeMismatchError reports a name that resolves to an incompatible kind
func NewTypeMismatchError(message string) *AppError {
	return newAppError(ErrorTypeTypeMismatch, http.StatusUnprocessableEntity, message)
}

// NewUnsupportedOperationError reports an operation with no meaning for the target
func NewUnsupportedOperationError(operation, target string) *AppError {
	return newAppError(ErrorTypeUnsupportedOperation, http.StatusMethodNotAllowed,
		fmt.Sprintf("%s is not supported for %s", operation, target))
}

func NewValidationError(message string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message)
}

func NewConflictError(message string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

func IsInvalidArgument(err error) bool { return IsType(err, ErrorTypeInvalidArgument) }
func IsNotFound(err error) bool        { return IsType(err, ErrorTypeNotFound) }
func IsTypeMismatch(err error) bool    { return IsType(err, ErrorTypeTypeMismatch) }
func IsUnsupported(err error) bool     { return IsType(err, ErrorTypeUnsupportedOperation) }
func IsValidation(err error) bool      { return IsType(err, ErrorTypeValidation) }
func IsConflict(err error) bool        { return IsType(err, ErrorTypeConflict) }
