package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain failure. Services attach exactly one code to every
// error they surface so the transport layer can map it to a stable response
// without inspecting messages.
type Code string

const (
	// CodeNotFound signals that a referenced entity does not exist.
	CodeNotFound Code = "not_found"
	// CodeValidation signals a pure input-validation failure (bad or
	// structurally impossible input). Nothing was written.
	CodeValidation Code = "validation"
	// CodeConflict signals a uniqueness or concurrency conflict.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation signals that the request was well-formed but
	// would break a cross-entity invariant.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal signals an unexpected infrastructure failure.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. It optionally wraps an underlying cause so
// errors.Is/As keep working through service boundaries.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with a static message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for uncoded
// errors so the transport layer never leaks raw failures as 2xx/4xx.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to the status the transport layer should emit.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeInvariantViolation:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
