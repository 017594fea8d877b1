// Package errors provides the unified failure type returned by the Aspen SDK.
//
// Every operation fails with an *AppError whose Code is one of:
//
//   - INVALID_ARGUMENT: rejected locally, nothing was sent
//   - TRANSPORT_FAILURE: the service could not be reached
//   - SERVICE_FAILURE: the service answered with a non-success status
//   - SERIALIZATION_FAILURE: a payload could not be encoded or decoded
//
// Use the Is* predicates or AsAppError to branch on the failure:
//
//	if _, err := client.CurrentUser().SetPin(ctx, pin, code); err != nil {
//	    if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeServiceFailure {
//	        log.Printf("status %d: %s", appErr.HTTPStatus, appErr.Body)
//	    }
//	}
package errors
