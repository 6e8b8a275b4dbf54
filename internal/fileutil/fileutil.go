// Package fileutil holds the small file helpers the dev tooling needs.
package fileutil

import "os"

// CopyFileMode copies src to dst and sets mode on dst. The mode is applied
// even when dst already exists, so reinstalling a hook over an old copy
// refreshes its permissions.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, mode); err != nil {
		return err
	}
	// os.WriteFile keeps the existing mode when dst is already present.
	return os.Chmod(dst, mode)
}
