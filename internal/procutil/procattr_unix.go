//go:build !windows

package procutil

import (
	"os"
	"os/exec"
	"syscall"
)

// setProcessGroup places the child in its own process group so terminal
// signals delivered to the foreground group leave it untouched.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminateProcess asks the process to exit, falling back to a hard kill
// if the signal cannot be delivered.
func terminateProcess(p *os.Process) error {
	if err := p.Signal(syscall.SIGTERM); err != nil {
		return p.Kill()
	}
	return nil
}
