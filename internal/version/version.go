// Package version holds the version of the bioinfodb command.
package version

import (
	"github.com/maloquacious/semver"
)

var (
	version = semver.Version{
		Major: 0,
		Minor: 3,
		Patch: 0,
		Build: semver.Commit(),
	}
)

// Version returns the semantic version of the build.
func Version() semver.Version {
	return version
}
