// Package aspentest provides test doubles for code built on the Aspen SDK.
//
// Spy is an in-memory transport that records every request and replays
// scripted replies:
//
//	spy := aspentest.NewSpy(aspentest.OK(`{"AuthToken":"t-1"}`))
//	client, _ := aspen.New(cfg, aspen.WithTransport(spy))
//	...
//	calls := spy.Calls()
//
// Server is an in-process fake of the Aspen service. It verifies the
// signed X-PRO-Auth-Payload header, implements the user, token and sign-in
// routes, and records every call it accepts or rejects:
//
//	srv := aspentest.NewServer("app-key", "app-secret")
//	defer srv.Close()
//	srv.AddUser("CC", "52080323", "colombia")
package aspentest
