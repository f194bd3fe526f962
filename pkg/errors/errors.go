package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so cloned and wrapped variants
// still satisfy errors.Is against the predefined values.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	var t *Error
	if !errors.As(target, &t) || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound                = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrUnauthorized            = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict                = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation              = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal                = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss               = New("CACHE_MISS", http.StatusNotFound, "cache miss")
	ErrUnknownService          = New("UNKNOWN_SERVICE", http.StatusNotFound, "unknown service")
	ErrDateOutOfRange          = New("DATE_OUT_OF_RANGE", http.StatusUnprocessableEntity, "date outside booking horizon")
	ErrCollaboratorUnavailable = New("COLLABORATOR_UNAVAILABLE", http.StatusServiceUnavailable, "reservation store unavailable")
	ErrAnalyticsUnavailable    = New("ANALYTICS_UNAVAILABLE", http.StatusServiceUnavailable, "history source unavailable")
	ErrSlotUnavailable         = New("SLOT_UNAVAILABLE", http.StatusConflict, "requested slot is no longer available")
	ErrExhaustedRetries        = New("EXHAUSTED_RETRIES", http.StatusInternalServerError, "retry budget exhausted")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Wrapf wraps err with the code and status of base and a formatted message.
func Wrapf(err error, base *Error, format string, args ...interface{}) *Error {
	return Wrap(err, base.Code, base.Status, fmt.Sprintf(format, args...))
}
