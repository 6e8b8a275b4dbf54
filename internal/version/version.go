// Package version carries the build identity stamped by the release
// pipeline's ldflags.
package version

import "strings"

// Populated at build time via -ldflags "-X tally/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String renders the version with commit and build date when present.
func String() string {
	var b strings.Builder
	b.WriteString(Version)
	if Commit != "" {
		b.WriteString(" (")
		b.WriteString(shortCommit(Commit))
		b.WriteByte(')')
	}
	if Date != "" {
		b.WriteString(" built ")
		b.WriteString(Date)
	}
	return b.String()
}

func shortCommit(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}
