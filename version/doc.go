// Package version exposes build information for the Aspen SDK and the
// aspenctl binary.
//
// Version and branch are set at compile time via -ldflags; the commit and
// build time default to the VCS stamp the toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/aspen/version.Version=1.4.0" ./cmd/aspenctl
//
// UserAgent is sent on every request issued by an aspen.Client.
package version
