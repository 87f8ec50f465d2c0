// Package procutil spawns and supervises the external tools ember drives:
// the configure tool, generator build commands, debuggers and debug servers.
// Launch failures are classified into human-readable diagnostics so callers
// can keep going after an individual tool fails.
package procutil

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// ConfigureTool is the external tool that turns a project description into
// generator-specific build files.
const ConfigureTool = "cmake"

const configureToolInstallHint = "CMake is not installed, please follow the installation instructions at https://cmake.org/install/"

// Runner executes external commands synchronously.
type Runner struct {
	log *zap.Logger

	// configureTool is the first argv token that triggers the CMake-specific
	// not-installed diagnostic. Overridable in tests.
	configureTool string
}

// NewRunner returns a Runner that logs command activity to log.
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log, configureTool: ConfigureTool}
}

// Run spawns cmd in dir, waits for it to exit, and returns a diagnostic
// string describing any failure the caller should report. An empty string
// means the command succeeded. Launch failures other than a missing
// executable are returned as errors and should not be swallowed.
func (r *Runner) Run(cmd []string, dir string) (string, error) {
	if len(cmd) == 0 {
		return "", errors.New("empty command")
	}
	child := exec.Command(cmd[0], cmd[1:]...)
	child.Dir = dir
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	r.log.Debug("running command", zap.Strings("argv", cmd), zap.String("dir", dir))
	if err := child.Start(); err != nil {
		if isNotFound(err) {
			if cmd[0] == r.configureTool {
				return configureToolInstallHint, nil
			}
			return fmt.Sprintf("%s is not installed", cmd[0]), nil
		}
		return "", fmt.Errorf("start %s: %w", cmd[0], err)
	}
	if err := child.Wait(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return fmt.Sprintf("command %s failed", strings.Join(cmd, " ")), nil
		}
		return "", fmt.Errorf("wait for %s: %w", cmd[0], err)
	}
	return "", nil
}

// isNotFound reports whether err indicates the executable does not exist,
// either because PATH lookup failed or because an explicit path is missing.
func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}
