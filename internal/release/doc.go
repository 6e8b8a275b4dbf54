// Package release implements the tag-triggered publishing pipeline behind
// tallydev publish.
//
// The pipeline is a linear sequence: verify the checked-out commit carries a
// release tag, extract the latest changelog section as release notes, build
// per-target archives with a checksum manifest, create the GitHub release with
// the archives attached, upload the artifacts to the package index, and
// finally announce the release. Steps run strictly in order and the first
// failure aborts the remainder; only the announce step is allowed to fail
// without stopping the pipeline.
//
// Pipeline settings load from release.toml at the repository root. Credentials
// never live in that file: the GitHub token and the index username and
// password come from the environment.
package release
