package httpclient

import (
	"errors"
	"fmt"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeConnection indicates a transport failure (refused, DNS, reset).
	ErrCodeConnection ErrorCode = iota
	// ErrCodeTimeout indicates the request deadline expired.
	ErrCodeTimeout
	// ErrCodeStatus indicates the server answered with a non-2xx status.
	ErrCodeStatus
	// ErrCodeDecode indicates the response body did not match the expected shape.
	ErrCodeDecode
	// ErrCodeValidation indicates the request could not be built.
	ErrCodeValidation
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeConnection:
		return "connection"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeStatus:
		return "status"
	case ErrCodeDecode:
		return "decode"
	case ErrCodeValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a classified HTTP client error.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// StatusCode is the HTTP status code (0 when the failure happened
	// before a status line was received).
	StatusCode int
	// Message describes the error.
	Message string
	// Body is the raw response body, when one was received.
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// NewConnectionError creates a transport-level error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Err: err}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Err: err}
}

// NewStatusError creates an error for a non-2xx response.
func NewStatusError(statusCode int, body []byte) *Error {
	return &Error{
		Code:       ErrCodeStatus,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
}

// NewDecodeError creates an error for an unparseable response body.
func NewDecodeError(err error) *Error {
	return &Error{Code: ErrCodeDecode, Message: err.Error(), Err: err}
}

// NewValidationError creates a request-construction error.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// IsConnection reports whether err is a transport-level error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsTimeout reports whether err is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsStatus reports whether err is a non-2xx status error.
func IsStatus(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeStatus
}

// IsDecode reports whether err is a decode error.
func IsDecode(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeDecode
}

// StatusCode extracts the HTTP status code from a classified error.
// Returns 0 when err carries no status.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
