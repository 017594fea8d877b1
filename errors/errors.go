// Package errors provides the unified failure type returned by the Aspen SDK.
// It implements structured error types with error codes, HTTP status
// preservation, and retryable detection.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified SDK error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status returned by the service (service failures only).
	HTTPStatus int `json:"status,omitempty"`
	// Body is the raw response body returned with a service failure.
	Body []byte `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Taxonomy constructors ---

// InvalidArgument creates an AppError for a rejected caller-supplied value.
func InvalidArgument(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details[DetailField] = field
	}
	msg := fmt.Sprintf("Invalid argument: %s", reason)
	if field != "" {
		msg = fmt.Sprintf("Invalid argument %s: %s", field, reason)
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: msg,
		Retryable: false, Details: details,
	}
}

// Validation creates an AppError carrying an aggregated validation message.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: message,
		Retryable: false,
	}
}

// TransportFailure creates an AppError for a network-level fault while
// performing operation.
func TransportFailure(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTransportFailure, Message: fmt.Sprintf("Unable to reach the service while performing %s.", operation),
		Retryable: true, Cause: cause,
		Details: map[string]any{DetailOperation: operation},
	}
}

// Timeout creates a transport failure for an operation that ran out of time.
func Timeout(operation string, cause error) *AppError {
	return TransportFailure(operation, cause).WithDetail(DetailTimeout, true)
}

// ServiceFailure creates an AppError for a non-success status. The status and
// raw body are preserved for diagnostics.
func ServiceFailure(status int, body []byte) *AppError {
	text := http.StatusText(status)
	if text == "" {
		text = "Unknown Status"
	}
	return &AppError{
		Code: ErrCodeServiceFailure, Message: fmt.Sprintf("The service rejected the request: %d %s", status, text),
		HTTPStatus: status, Body: body,
		Retryable: status == http.StatusTooManyRequests || status >= http.StatusInternalServerError,
	}
}

// SerializationFailure creates an AppError for an encode or decode error at stage.
func SerializationFailure(stage string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeSerializationFailure, Message: fmt.Sprintf("Unable to %s.", stage),
		Retryable: false, Cause: cause,
		Details: map[string]any{DetailStage: stage},
	}
}
