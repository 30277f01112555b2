// Package version exposes the build metadata stamped into the cursorruler
// binary.
package version

import (
	"fmt"
	"runtime"
)

// Populated at build time via -ldflags, e.g.
// go build -ldflags "-X 'cursorruler/pkg/version.Version=1.2.3' -X 'cursorruler/pkg/version.Commit=abcdefg'"
var (
	Version   = "dev"     // semantic version
	Commit    = "none"    // git commit hash
	BuildTime = "unknown" // build timestamp
)

// Info bundles the stamped build metadata with runtime details.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders the version information on a single line.
func (i Info) String() string {
	return fmt.Sprintf(
		"cursorruler version %s (commit: %s) built at %s with %s on %s",
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
