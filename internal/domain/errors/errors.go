package errors

import (
	"net/http"

	"gatekeeper/internal/errors"
)

// Status is the transport-neutral classification of a failure.
// The delivery layer maps it onto its own status codes.
type Status string

const (
	StatusBadRequest    Status = "BadRequest"
	StatusUnauthorized  Status = "Unauthorized"
	StatusNotFound      Status = "NotFound"
	StatusInternalError Status = "InternalError"
)

// HTTPCode maps the classification onto an HTTP status code.
func (s Status) HTTPCode() int {
	switch s {
	case StatusBadRequest:
		return http.StatusBadRequest
	case StatusUnauthorized:
		return http.StatusUnauthorized
	case StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Status() Status    // Transport-neutral classification
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing error message
	Details() string   // Detailed error information (optional, never rendered)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	status    Status
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(status Status, errorCode, message, details string) *BaseError {
	return &BaseError{
		status:    status,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Status returns the classification
func (e *BaseError) Status() Status {
	return e.status
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.status.HTTPCode()
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches on error code so that WithDetails copies still compare equal
// to the predefined sentinel they were derived from.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		status:    e.status,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Input errors, raised before any I/O.
	ErrInvalidInput = NewBaseError(
		StatusBadRequest,
		"INVALID_INPUT",
		"Username and password are required",
		"",
	)

	// Same code as ErrInvalidInput, so errors.Is treats it as invalid input.
	ErrPasswordTooLong = NewBaseError(
		StatusBadRequest,
		"INVALID_INPUT",
		"Password is too long",
		"",
	)

	// Login failure. Unknown user and wrong password both map here.
	ErrAuthenticationFailed = NewBaseError(
		StatusUnauthorized,
		"AUTHENTICATION_FAILED",
		"Authentication error",
		"",
	)

	ErrRegistrationFailed = NewBaseError(
		StatusBadRequest,
		"REGISTRATION_FAILED",
		"Username is already taken",
		"",
	)

	// Guard rejections share one message so callers cannot tell why a token failed.
	ErrMissingCredential = NewBaseError(
		StatusUnauthorized,
		"MISSING_CREDENTIAL",
		"Unauthorized",
		"",
	)

	ErrInvalidCredential = NewBaseError(
		StatusUnauthorized,
		"INVALID_CREDENTIAL",
		"Unauthorized",
		"",
	)

	ErrInsufficientPrivilege = NewBaseError(
		StatusUnauthorized,
		"INSUFFICIENT_PRIVILEGE",
		"Authentication error",
		"",
	)

	ErrUserNotFound = NewBaseError(
		StatusNotFound,
		"USER_NOT_FOUND",
		"No such user exists!",
		"",
	)

	ErrInternalError = NewBaseError(
		StatusInternalError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error for diagnosis
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Status returns the classification
func (e *DatabaseExecuteError) Status() Status {
	return StatusInternalError
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-facing error message
func (e *DatabaseExecuteError) Message() string {
	return "Internal server error"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
