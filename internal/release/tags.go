package release

import (
	"regexp"
	"strings"
)

// Release tags are v<major>.<minor>.<patch> with an optional pre-release
// suffix, so v1.0.0 and v1.2.0-rc.1 fire the pipeline while 1.0.0 and
// release-1.0 do not.
var tagPattern = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)(-[0-9A-Za-z.-]+)?$`)

// MatchTag reports whether the tag names a release.
func MatchTag(tag string) bool {
	return tagPattern.MatchString(strings.TrimSpace(tag))
}

// TagVersion strips the leading v from a release tag. Non-release tags are
// returned unchanged.
func TagVersion(tag string) string {
	tag = strings.TrimSpace(tag)
	if !MatchTag(tag) {
		return tag
	}
	return strings.TrimPrefix(tag, "v")
}

// Prerelease reports whether the release tag carries a pre-release suffix.
func Prerelease(tag string) bool {
	match := tagPattern.FindStringSubmatch(strings.TrimSpace(tag))
	if match == nil {
		return false
	}
	return match[4] != ""
}
