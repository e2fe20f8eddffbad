package rivet

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Compile-time codes. These are raised before any network I/O and indicate
// either a misuse of the library (malformed descriptor) or an incomplete
// request value.
const (
	// CodeMissingPathField means a path template placeholder had no resolved
	// value at compile time.
	CodeMissingPathField ErrorCode = "missing_path_field"

	// CodeMalformedDescriptor means a descriptor is statically inconsistent
	// with its request type: a body claimed without a codec, a query field
	// naming no struct field, or an unparsable path template. A correct
	// build never produces this at runtime; it should be caught by tests.
	CodeMalformedDescriptor ErrorCode = "malformed_descriptor"

	// CodeEncodingFailure means a body or query value could not be
	// represented in its wire form.
	CodeEncodingFailure ErrorCode = "encoding_failure"

	// CodeInvalidArgument means the request value failed validation.
	CodeInvalidArgument ErrorCode = "invalid_argument"
)

// Call-time codes. Transport and decode failures wrap their underlying
// error; remote codes are mapped from the HTTP status of an error response.
const (
	CodeTransport        ErrorCode = "transport"
	CodeDecode           ErrorCode = "decode"
	CodeUnauthenticated  ErrorCode = "unauthenticated"
	CodePermissionDenied ErrorCode = "permission_denied"
	CodeNotFound         ErrorCode = "not_found"
	CodeMethodNotAllowed ErrorCode = "method_not_allowed"
	CodeConflict         ErrorCode = "conflict"
	CodeTooManyRequests  ErrorCode = "too_many_requests"
	CodeInternal         ErrorCode = "internal"
	CodeUnavailable      ErrorCode = "unavailable"
	CodeRemote           ErrorCode = "remote"
)

// Error is the standard error envelope returned by this package.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`

	// Status is the remote HTTP status for errors mapped from an error
	// response, zero otherwise.
	Status int `json:"status,omitempty"`

	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a new error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new error that records err as its cause.
func Wrap(code ErrorCode, err error, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Status:  e.Status,
		cause:   e.cause,
	}
}

// FromHTTPStatus maps a non-2xx HTTP status and response body to an Error.
// The body, if any, becomes the message; agents conventionally return a
// plain-text explanation.
func FromHTTPStatus(status int, body []byte) *Error {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	err := NewError(codeForStatus(status), msg)
	err.Status = status
	return err
}

func codeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidArgument
	case http.StatusUnauthorized:
		return CodeUnauthenticated
	case http.StatusForbidden:
		return CodePermissionDenied
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case http.StatusConflict:
		return CodeConflict
	case http.StatusTooManyRequests:
		return CodeTooManyRequests
	case http.StatusInternalServerError:
		return CodeInternal
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	default:
		return CodeRemote
	}
}

// translateError maps arbitrary errors raised during compilation to *Error.
func translateError(err error) *Error {
	if err == nil {
		return nil
	}

	var rivetErr *Error
	if errors.As(err, &rivetErr) {
		return rivetErr
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		details := make(map[string]any)
		messages := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			msg := formatValidationError(ve)
			details[ve.Field()] = msg
			messages = append(messages, ve.Field()+": "+msg)
		}
		return &Error{
			Code:    CodeInvalidArgument,
			Message: strings.Join(messages, "; "),
			Details: details,
		}
	}

	return Wrap(CodeEncodingFailure, err, err.Error())
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", ve.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "hostname_port":
		return "must be a valid host:port"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
