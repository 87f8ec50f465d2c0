//go:build windows

package procutil

import (
	"os"
	"os/exec"
	"syscall"
)

// setProcessGroup starts the child in a new process group so console
// Ctrl-C events aimed at the foreground process leave it untouched.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}

// terminateProcess stops the process. Windows has no SIGTERM equivalent
// that a console process is guaranteed to handle, so this kills outright.
func terminateProcess(p *os.Process) error {
	return p.Kill()
}
