package version

import (
	"runtime/debug"
	"strings"
	"time"
)

// Product is the product token of the User-Agent header.
const Product = "aspen-go"

// Set with -ldflags -X. Commit and BuildTime fall back to the VCS stamp
// embedded by the Go toolchain.
var (
	Version   = "dev"
	Commit    = ""
	Branch    = ""
	BuildTime = ""
)

// Info is what aspenctl version prints.
type Info struct {
	Version string
	Commit  string
	Branch  string
	Dirty   bool
	Built   time.Time
	Go      string
}

// Get collects build information.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Branch: Branch}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.Built = t
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.Go = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		case "vcs.time":
			if info.Built.IsZero() {
				info.Built, _ = time.Parse(time.RFC3339, s.Value)
			}
		}
	}
	return info
}

// String renders the version as "1.4.0-9f2c1e7-release/1.4-dirty (built
// 2026-03-02T08:15:00Z, go1.26.0)". The branch is left out for main and
// master, and the commit is shortened to seven characters.
func (i Info) String() string {
	parts := []string{i.Version}
	if c := i.Commit; c != "" {
		if len(c) > 7 {
			c = c[:7]
		}
		parts = append(parts, c)
	}
	if i.Branch != "" && i.Branch != "main" && i.Branch != "master" {
		parts = append(parts, i.Branch)
	}
	if i.Dirty {
		parts = append(parts, "dirty")
	}
	s := strings.Join(parts, "-")

	var meta []string
	if !i.Built.IsZero() {
		meta = append(meta, "built "+i.Built.UTC().Format(time.RFC3339))
	}
	if i.Go != "" {
		meta = append(meta, i.Go)
	}
	if len(meta) > 0 {
		s += " (" + strings.Join(meta, ", ") + ")"
	}
	return s
}

// UserAgent returns the User-Agent header value, e.g. "aspen-go/1.4.0".
func UserAgent() string {
	return Product + "/" + Version
}
