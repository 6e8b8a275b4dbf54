// Package shell runs external commands for the release pipeline and the
// developer task runner.
//
// The Runner interface abstracts process execution so pipeline and task tests
// can substitute fakes. The real implementation streams combined stdout and
// stderr line by line through a callback, which the callers forward into their
// logs or straight to the terminal.
package shell
