// Package domainerrors defines coded domain errors shared across services.
//
// Services return these so transport layers can translate outcomes into HTTP
// statuses without string matching. Infrastructure facts (not found, conflict)
// live in pkg/platform/sentinel; stores return sentinels and services wrap
// them into coded errors at the boundary.
package domainerrors

import "net/http"

// Code identifies a class of domain error. The string value is what appears
// in the JSON error envelope.
type Code string

const (
	CodeBadRequest       Code = "bad_request"
	CodeUnauthorized     Code = "unauthorized"
	CodeNotFound         Code = "not_found"
	CodeConflict         Code = "conflict"
	CodeDecryptionFailed Code = "decryption_failed"
	CodeUnavailable      Code = "unavailable"
	CodeInternal         Code = "internal_error"
)

// Error is a domain error with a machine-readable code and a human-readable
// description. The description must never contain key material, passphrases,
// or plaintext sensitive fields.
type Error struct {
	Code        Code
	Description string
	cause       error
}

// New constructs a domain error.
func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// Wrap constructs a domain error that preserves the underlying cause for
// errors.Is/errors.As while presenting only the description to callers.
func Wrap(code Code, description string, cause error) *Error {
	return &Error{Code: code, Description: description, cause: cause}
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Description
}

func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf extracts the domain code from err, or CodeInternal when err is not a
// domain error.
func CodeOf(err error) Code {
	if de, ok := err.(*Error); ok {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain code to the HTTP status used by the transport
// layer.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeDecryptionFailed:
		return http.StatusInternalServerError
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
