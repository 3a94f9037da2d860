// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
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

// ── Domain error kinds ────────────────────────────────────────────────────────
// Services wrap business failures with a kind so handlers can pick the HTTP
// status without string matching. An unkinded error maps to 500.

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalid // business-rule violation → 400
	KindUnauthorized
	KindForbidden
	KindConflict
)

type domainError struct {
	kind Kind
	msg  string
}

func (e *domainError) Error() string { return e.msg }

func NotFound(msg string) error     { return &domainError{kind: KindNotFound, msg: msg} }
func Invalid(msg string) error      { return &domainError{kind: KindInvalid, msg: msg} }
func Unauthorized(msg string) error { return &domainError{kind: KindUnauthorized, msg: msg} }
func Forbidden(msg string) error    { return &domainError{kind: KindForbidden, msg: msg} }
func Conflict(msg string) error     { return &domainError{kind: KindConflict, msg: msg} }

// KindOf returns the kind of err, or KindInternal when err carries no kind.
func KindOf(err error) Kind {
	var de *domainError
	if errors.As(err, &de) {
		return de.kind
	}
	return KindInternal
}
