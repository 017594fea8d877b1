package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Failure taxonomy of the SDK. Every error returned by an Aspen operation
// carries exactly one of these codes.
const (
	// ErrCodeInvalidArgument indicates a caller-supplied value was rejected
	// before any request was dispatched.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeTransportFailure indicates a network or connection-level fault
	// (timeout, DNS, refused or reset connection).
	ErrCodeTransportFailure ErrorCode = "TRANSPORT_FAILURE"
	// ErrCodeServiceFailure indicates the service answered with a non-success status.
	ErrCodeServiceFailure ErrorCode = "SERVICE_FAILURE"
	// ErrCodeSerializationFailure indicates a request could not be encoded or a
	// response could not be decoded into the expected shape.
	ErrCodeSerializationFailure ErrorCode = "SERIALIZATION_FAILURE"
)

// Detail keys shared by constructors and callers inspecting Details.
const (
	DetailField     = "field"
	DetailOperation = "operation"
	DetailStage     = "stage"
	DetailTimeout   = "timeout"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTransportFailure:     true,
	ErrCodeInvalidArgument:      false,
	ErrCodeServiceFailure:       false,
	ErrCodeSerializationFailure: false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Service failures are retryable only for specific statuses, see ServiceFailure.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
