// Package version reports the energylabel build version.
package version

// Build metadata, set with -ldflags "-X github.com/rshade/energylabel/pkg/version.version=...".
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version   = "dev"
	gitCommit = ""
	buildDate = ""
)

// GetVersion returns the release version, or "dev" for local builds.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from, if known.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp, if known.
func GetBuildDate() string {
	return buildDate
}

// String returns the version with commit and build date when available.
func String() string {
	s := version
	if gitCommit != "" {
		s += " (" + gitCommit
		if buildDate != "" {
			s += ", built " + buildDate
		}
		s += ")"
	}
	return s
}
