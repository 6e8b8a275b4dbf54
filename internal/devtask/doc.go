// Package devtask holds the repository chore recipes behind the tallydev
// subcommands: dependency install, testing, coverage, linting, formatting,
// and pushing a release tag. Each task is a short fail-fast sequence of
// external commands run from the repository root.
package devtask
