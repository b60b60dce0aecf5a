package errx

import (
	"errors"
	"fmt"
)

// Type classifies an error for transport mapping and logging
type Type string

const (
	TypeValidation     Type = "VALIDATION"
	TypeNotFound       Type = "NOT_FOUND"
	TypeConflict       Type = "CONFLICT"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeBusiness       Type = "BUSINESS"
	TypeInternal       Type = "INTERNAL"
	TypeExternal       Type = "EXTERNAL"
)

// Code is a registered error definition
type Code struct {
	Code       string
	Type       Type
	HTTPStatus int
	Message    string
}

// Registry groups error codes under a domain prefix
type Registry struct {
	prefix string
}

// NewRegistry creates a registry for a domain (e.g. "JOB", "OWNERSHIP")
func NewRegistry(prefix string) *Registry {
	return &Registry{prefix: prefix}
}

// Register defines a new error code under this registry's prefix
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	return Code{
		Code:       r.prefix + "." + code,
		Type:       t,
		HTTPStatus: httpStatus,
		Message:    message,
	}
}

// New creates an error from a registered code
func (r *Registry) New(c Code) *Error {
	return &Error{
		Code:       c.Code,
		Type:       c.Type,
		Message:    c.Message,
		HTTPStatus: c.HTTPStatus,
	}
}

// NewWithCause creates an error from a registered code wrapping an underlying cause
func (r *Registry) NewWithCause(c Code, cause error) *Error {
	err := r.New(c)
	err.Cause = cause
	return err
}

// Error is a structured application error
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is/errors.As chains
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a single contextual detail
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches multiple contextual details
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// ToHTTPResponse renders the error as a JSON-serializable body
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error of the given type.
// If err is already an *Error it is returned unchanged.
func Wrap(err error, message string, t Type) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	status := 500
	if t == TypeExternal {
		status = 502
	}

	return &Error{
		Code:       string(t) + ".WRAPPED",
		Type:       t,
		Message:    message,
		HTTPStatus: status,
		Cause:      err,
	}
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, t Type) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsCode reports whether err carries the given registered code
func IsCode(err error, c Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == c.Code
	}
	return false
}
