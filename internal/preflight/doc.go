// Package preflight runs the startup checks tallyd performs before it
// accepts requests: directory access and free disk space for the data and
// log directories.
package preflight
