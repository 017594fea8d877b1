// Package aspen is a client for the Aspen service.
//
// A Client is built from a Config and issues every request under a fixed
// identity made of the application key and device id, plus the user's
// session token once signed in. Each request is signed with a fresh HS256
// payload in X-PRO-Auth-Payload.
//
//	client, err := aspen.New(aspen.Config{
//	    BaseURL:   "https://api.aspen.example/v1",
//	    AppKey:    os.Getenv("ASPEN_APP_KEY"),
//	    AppSecret: os.Getenv("ASPEN_APP_SECRET"),
//	    DeviceID:  "kiosk-42",
//	})
//	user, err := client.Session().SignIn(ctx, "CC", "52080323", "secret")
//	_, err = user.CurrentUser().RequestActivationCode(ctx)
//	_, err = user.CurrentUser().SetPin(ctx, "1234", code)
//
// Signing in returns a new Client; the application client is unchanged.
//
// # Sync and async
//
// Every operation has a blocking form and an Async form returning a
// Future. The blocking form waits for the same Future to complete, so both
// yield the same Response or error. When ctx ends mid-request the transport
// aborts and the failure is a TRANSPORT_FAILURE (with the timeout detail on a
// deadline). Only Future.Await can return ctx.Err() itself, when the caller
// stops waiting before the operation completes:
//
//	f := user.CurrentUser().RequestSingleUseTokenAsync(ctx)
//	...
//	resp, err := f.Await(ctx)
//
// # Errors
//
// Failures are *errors.AppError values carrying one of four codes:
// INVALID_ARGUMENT (rejected before dispatch, nothing is sent),
// TRANSPORT_FAILURE, SERVICE_FAILURE (with the status and raw body) and
// SERIALIZATION_FAILURE. The client never retries on its own; retries and
// the circuit breaker are opt-in on the transport via Config.Retry and
// Config.CircuitBreaker.
package aspen
