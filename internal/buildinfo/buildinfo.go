// Package buildinfo carries the version stamped in by the linker:
//
//	-ldflags "-X rgbpanel/internal/buildinfo.Version=v1.2.0 -X rgbpanel/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short is the one token worth showing in a window title or boot log line.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	}
	return "dev"
}

// Long includes everything known about the build.
func Long() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
