// Package bininfo carries build metadata injected at link time. The variable
// names are wired into the release ldflags; renaming them silently breaks
// version stamping.
package bininfo

var (
	// Version is the SemVer version of the binary, with the git commit
	// appended after a plus sign when available.
	Version = "v0.0.0"

	// BuildTime is the time at which the binary was built.
	BuildTime = "1970-01-01T00:00:00Z"
)
