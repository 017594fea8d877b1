package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure used when an SDK error is reported
// to a machine consumer (for example the aspenctl --json output).
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Status    int            `json:"status,omitempty"`
	Body      string         `json:"body,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Retryable: e.Retryable,
			Status:    e.HTTPStatus,
			Body:      string(e.Body),
			Details:   e.Details,
		},
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsInvalidArgument reports whether err was raised by local validation.
func IsInvalidArgument(err error) bool { return HasCode(err, ErrCodeInvalidArgument) }

// IsTransportFailure reports whether err is a network-level failure.
func IsTransportFailure(err error) bool { return HasCode(err, ErrCodeTransportFailure) }

// IsServiceFailure reports whether err is a non-success response from the service.
func IsServiceFailure(err error) bool { return HasCode(err, ErrCodeServiceFailure) }

// IsSerializationFailure reports whether err is an encode or decode failure.
func IsSerializationFailure(err error) bool { return HasCode(err, ErrCodeSerializationFailure) }

// IsTimeout reports whether err is a transport failure caused by a timeout.
func IsTimeout(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != ErrCodeTransportFailure {
		return false
	}
	v, _ := appErr.Details[DetailTimeout].(bool)
	return v
}
