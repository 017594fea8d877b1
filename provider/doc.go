// Package provider defines the transport contract the Aspen SDK executes
// against, plus composable middleware.
//
// RequestResponse[I, O] is one input to one output. The SDK's transport is a
// RequestResponse[httpclient.Request, *httpclient.Response]; tests substitute
// a recording spy for it.
//
// # Middleware
//
// Middleware[I, O] wraps a RequestResponse. Chain composes several, first
// outermost:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("aspen"),
//	)(transport)
//
// Adapt bridges a backend RequestResponse to domain input and output types.
package provider
