// Package apierror provides standardized error response structures for the API
// and the typed domain errors the services return. All errors returned to
// clients go through this package to ensure consistency and to prevent leaking
// internal details (stack traces, DB errors, etc.).
package apierror

import "errors"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ── Domain errors ────────────────────────────────────────────────────────────
// Services return *Error so handlers can map Kind → HTTP status without
// string matching. Detail is always safe to show to clients.

// Kind classifies a domain error.
type Kind int

const (
	KindInternal          Kind = iota // unexpected failure
	KindNotFound                      // referenced id does not exist
	KindReferenceInvalid              // reference exists but fails a precondition (inactive)
	KindValidation                    // malformed input, bad enum value, quantity <= 0
	KindConflict                      // operation would violate a business invariant
	KindInsufficientStock             // salida/merma would drive stock negative
)

// Error is a domain error with a stable kind and a client-safe message.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func NotFound(msg string) *Error          { return &Error{Kind: KindNotFound, Detail: msg} }
func ReferenceInvalid(msg string) *Error  { return &Error{Kind: KindReferenceInvalid, Detail: msg} }
func Validation(msg string) *Error        { return &Error{Kind: KindValidation, Detail: msg} }
func Conflict(msg string) *Error          { return &Error{Kind: KindConflict, Detail: msg} }
func InsufficientStock(msg string) *Error { return &Error{Kind: KindInsufficientStock, Detail: msg} }
func Internal(msg string) *Error          { return &Error{Kind: KindInternal, Detail: msg} }

// KindOf extracts the kind of err, or KindInternal when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
