// Package fsutil provides the small filesystem helpers shared across ember:
// idempotent create/remove operations, path splitting, and link handling.
package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// MkDirP creates path and any missing parents. Existing directories are
// not an error.
func MkDirP(path string) error {
	return os.MkdirAll(path, 0o755)
}

// RmF removes path if it exists. A missing file is not an error.
func RmF(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// RmRf removes path and everything under it. A missing path is not an
// error.
func RmRf(path string) error {
	if err := os.RemoveAll(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// FullySplitPath breaks a path into all of its components, including the
// root for absolute paths.
func FullySplitPath(path string) []string {
	var parts []string
	for {
		dir, file := filepath.Split(path)
		if file == "" {
			if dir != "" {
				parts = append(parts, dir)
			}
			break
		}
		parts = append(parts, file)
		trimmed := strings.TrimSuffix(dir, string(filepath.Separator))
		if trimmed == "" {
			if dir != "" {
				parts = append(parts, dir)
			}
			break
		}
		path = trimmed
	}
	slices.Reverse(parts)
	return parts
}

// IsLink reports whether path is a symbolic link.
func IsLink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// TryReadLink returns the destination of the link at path, or "" when path
// is not a readable link.
func TryReadLink(path string) string {
	dest, err := os.Readlink(path)
	if err != nil {
		return ""
	}
	return dest
}

// Symlink links source to linkName, replacing any existing file or link at
// linkName. An existing link that already points at source is accepted.
func Symlink(source, linkName string) error {
	if err := RmF(linkName); err != nil {
		return err
	}
	if err := os.Symlink(source, linkName); err != nil {
		if errors.Is(err, os.ErrExist) && TryReadLink(linkName) == source {
			return nil
		}
		return err
	}
	return nil
}
