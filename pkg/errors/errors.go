package errors

import (
	"errors"
	"net/http"
)

// Standard error types
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("resource conflict")
	ErrInternal     = errors.New("internal server error")
	ErrUnavailable  = errors.New("resource temporarily unavailable")
)

// AppError represents a structured application error with context
type AppError struct {
	Err        error
	StatusCode int
	Message    string
	Retryable  bool
	Context    map[string]interface{}
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithContext adds additional context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCause joins cause into the chain so errors.Is matches both the
// category sentinel and the underlying error
func (e *AppError) WithCause(cause error) *AppError {
	if cause != nil {
		e.Err = errors.Join(e.Err, cause)
	}
	return e
}

// NewAppError creates a new AppError with the given parameters
func NewAppError(err error, message string, statusCode int, retryable bool) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  retryable,
		Context:    make(map[string]interface{}),
	}
}

// IsRetryable checks if the error is retryable
func IsRetryable(err error) bool {
	var appErr *AppError

	if errors.As(err, &appErr) {
		return appErr.Retryable
	}

	return errors.Is(err, ErrUnavailable)
}

// StatusCode returns the HTTP status carried by err, or 500 when err is not an AppError
func StatusCode(err error) int {
	var appErr *AppError

	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, message, http.StatusNotFound, false)
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest, false)
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return NewAppError(ErrConflict, message, http.StatusConflict, false)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrInternal, message, http.StatusInternalServerError, false)
}

// NewUnavailableError creates an error for a resource that may succeed on a later attempt,
// such as a workbook held open by another program
func NewUnavailableError(message string) *AppError {
	return NewAppError(ErrUnavailable, message, http.StatusServiceUnavailable, true)
}
