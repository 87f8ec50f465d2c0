// Package folders computes the shared install locations used by ember
// commands: the install prefix and the global module/target directories
// under it.
package folders

import (
	"os"
	"path/filepath"
	"runtime"
)

// PrefixEnv overrides the install prefix when set.
const PrefixEnv = "EMBER_PREFIX"

// Prefix returns the install prefix: the PrefixEnv override when set,
// otherwise the prefix the running executable was installed under.
func Prefix() string {
	if p := os.Getenv(PrefixEnv); p != "" {
		return p
	}
	if exe, err := os.Executable(); err == nil {
		// <prefix>/bin/ember -> <prefix>
		return filepath.Dir(filepath.Dir(exe))
	}
	return string(filepath.Separator) + filepath.Join("usr", "local")
}

// GlobalInstallDirectory returns the directory globally-installed modules
// live in.
func GlobalInstallDirectory() string {
	return filepath.Join(Prefix(), libDir(), "ember_modules")
}

// GlobalTargetInstallDirectory returns the directory globally-installed
// targets live in.
func GlobalTargetInstallDirectory() string {
	return filepath.Join(Prefix(), libDir(), "ember_targets")
}

func libDir() string {
	if runtime.GOOS == "windows" {
		return "Lib"
	}
	return "lib"
}
