package domain

import (
	"errors"
	"fmt"
	"strings"
)

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type       string            `json:"type"`
	Title      string            `json:"title"`
	Status     int               `json:"status"`
	Detail     string            `json:"detail,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	References []Reference       `json:"references,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ValidationMessages provides human-readable validation error messages
// These map validator tags to user-friendly messages
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"max":      "Exceeds maximum length",
	"min":      "Below minimum length",
	"gte":      "Must be greater than or equal to minimum value",
	"gt":       "Must be greater than minimum value",
	"lte":      "Must be less than or equal to maximum value",
	"lt":       "Must be less than maximum value",
	"uuid":     "Must be a valid UUID",
	"oneof":    "Must be one of the allowed values",
	"numeric":  "Must be a numeric value",
	"len":      "Must be exactly the specified length",
	"datetime": "Must be a date in YYYY-MM-DD format",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation   = "validation_error"
	ErrorTypeNotFound     = "not_found"
	ErrorTypeBadRequest   = "bad_request"
	ErrorTypeConflict     = "conflict"
	ErrorTypeUnauthorized = "unauthorized"
	ErrorTypeRateLimited  = "rate_limited"
	ErrorTypeUnavailable  = "service_unavailable"
	ErrorTypeInternal     = "internal_error"
)

// ErrorKind classifies failures so the HTTP layer can pick a status code
// without inspecting message text
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Reference identifies a document that points at a record being deleted
type Reference struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// Error is the structured error returned by repositories and services.
// Message is always safe to show to the user.
type Error struct {
	Kind       ErrorKind
	Message    string
	Field      string
	References []Reference
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrDatabaseUnavailable is returned when the database handle was never
// opened or has been closed
var ErrDatabaseUnavailable = &Error{Kind: KindUnavailable, Message: "Database is not available"}

// NewValidationError reports a missing or malformed field
func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NewConflictError reports a uniqueness or state conflict
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewNotFoundError reports a missing record, e.g. "Customer not found"
func NewNotFoundError(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", capitalize(entity))}
}

// NewUnavailableError wraps a low-level failure caused by a closed or missing handle
func NewUnavailableError(err error) *Error {
	return &Error{Kind: KindUnavailable, Message: ErrDatabaseUnavailable.Message, Err: err}
}

// NewReferenceError builds the conflict returned when a delete is blocked by
// dependent rows. With no known references it falls back to a generic message.
func NewReferenceError(entity string, refs []Reference) *Error {
	msg := FormatReferenceError(entity, refs)
	if msg == "" {
		msg = fmt.Sprintf("Cannot delete %s as it is referenced in other records", entity)
	}
	return &Error{Kind: KindConflict, Message: msg, References: refs}
}

// FormatReferenceError renders the user-facing list of referencing documents
func FormatReferenceError(entity string, refs []Reference) string {
	switch len(refs) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Cannot delete %s as it is referenced in %s %s", entity, refs[0].Type, refs[0].Number)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Cannot delete %s as it is referenced in:", entity)
	for _, r := range refs {
		fmt.Fprintf(&b, "\n- %s %s", r.Type, r.Number)
	}
	return b.String()
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// AsError returns the first *Error in err's chain
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
