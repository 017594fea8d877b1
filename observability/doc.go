// Package observability wires OpenTelemetry tracing and metrics into the
// Aspen SDK.
//
// Nothing is exported unless a tool opts in:
//
//	shutdown, err := observability.Init(ctx, cfg)
//	defer shutdown(ctx)
//
// Each Aspen request opens one client span through an OperationContext:
//
//	oc := observability.NewOperationContext("users/pin", "POST", requestID, deviceID, metrics)
//	ctx, span := oc.StartSpanForOperation(ctx)
//	defer oc.EndOperation(ctx, span, "ok", nil)
package observability
