package procutil

import (
	"errors"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Process is a handle to a spawned external process. The spawner owns the
// handle and must call Terminate if the process may still be running when
// the owning scope ends.
type Process struct {
	cmd *exec.Cmd
}

// Wait blocks until the process exits and returns its exit status. A
// non-zero status is not an error; only failures to observe the process
// are.
func (p *Process) Wait() (int, error) {
	err := p.cmd.Wait()
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

// Terminate stops the process if it is still running. Safe to call on an
// already-exited process.
func (p *Process) Terminate() error {
	if p == nil || p.cmd.Process == nil {
		return nil
	}
	return terminateProcess(p.cmd.Process)
}

// StartInteractive spawns cmd in dir attached to the current terminal and
// returns without waiting.
func (r *Runner) StartInteractive(cmd []string, dir string) (*Process, error) {
	if len(cmd) == 0 {
		return nil, errors.New("empty command")
	}
	child := exec.Command(cmd[0], cmd[1:]...)
	child.Dir = dir
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	r.log.Debug("starting foreground process", zap.Strings("argv", cmd), zap.String("dir", dir))
	if err := child.Start(); err != nil {
		return nil, err
	}
	return &Process{cmd: child}, nil
}

// StartDetached spawns cmd in dir with stdout and stderr discarded, placed
// in its own process group so that a terminal interrupt aimed at the
// foreground process does not also kill it.
func (r *Runner) StartDetached(cmd []string, dir string) (*Process, error) {
	if len(cmd) == 0 {
		return nil, errors.New("empty command")
	}
	child := exec.Command(cmd[0], cmd[1:]...)
	child.Dir = dir
	setProcessGroup(child)
	r.log.Debug("starting detached process", zap.Strings("argv", cmd), zap.String("dir", dir))
	if err := child.Start(); err != nil {
		return nil, err
	}
	return &Process{cmd: child}, nil
}
