// Package version exposes build metadata for the termart binary.
//
// Version, Branch, BuildUser and BuildDate are set at link time, e.g.
//
//	go build -ldflags "-X go.jacobcolvin.com/termart/version.Version=v1.2.0"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// String returns a one-line build summary. Unset ldflags values are left
// out; an unset Version reads "devel".
func String() string {
	v := Version
	if v == "" {
		v = "devel"
	}

	details := []string{"revision " + Revision}
	if Branch != "" {
		details = append(details, "branch "+Branch)
	}

	if BuildDate != "" {
		details = append(details, "built "+BuildDate)
	}

	if BuildUser != "" {
		details = append(details, "by "+BuildUser)
	}

	return fmt.Sprintf("%s (%s) %s %s/%s", v, strings.Join(details, ", "), GoVersion, GoOS, GoArch)
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
