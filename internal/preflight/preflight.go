package preflight

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"tally/internal/config"
	"tally/internal/errkit"
)

// minFreeBytes is the disk headroom a directory must offer before the daemon
// starts writing period databases into it.
const minFreeBytes = 64 << 20

// Result captures the outcome of a single check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Run evaluates every daemon startup check.
func Run(cfg *config.Config) []Result {
	results := []Result{
		CheckDirectoryAccess("data directory", cfg.Paths.DataDir),
		CheckDiskSpace("data directory space", cfg.Paths.DataDir, minFreeBytes),
	}
	if dir := strings.TrimSpace(cfg.Paths.LogDir); dir != "" {
		results = append(results, CheckDirectoryAccess("log directory", dir))
	}
	return results
}

// Failed reduces check results to an error naming the first failure.
func Failed(results []Result) error {
	for _, result := range results {
		if !result.Passed {
			return errkit.Wrap(errkit.ErrConfiguration, "preflight", result.Name, result.Detail, nil)
		}
	}
	return nil
}

// CheckDirectoryAccess verifies that the directory exists and is readable and
// writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s does not exist", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s: stat: %v", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s: insufficient permissions: %v", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies that the filesystem holding path has at least min
// bytes available.
func CheckDiskSpace(name, path string, min uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s: statfs: %v", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < min {
		return Result{Name: name, Detail: fmt.Sprintf("%s has %d bytes free, need %d", path, free, min)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB free)", path, free>>20)}
}
