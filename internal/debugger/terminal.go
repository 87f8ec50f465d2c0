package debugger

import (
	"os"
	"os/exec"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// Terminal abstracts the controlling terminal so a session can restore it
// after a debugger exits uncleanly.
type Terminal interface {
	// Reset restores the terminal to a sane state, best-effort.
	Reset()
}

// consoleTerminal resets via the terminal's own reset command, and is a
// no-op when the process has no controlling terminal (headless or
// redirected invocations).
type consoleTerminal struct {
	log *zap.Logger
}

func (t consoleTerminal) Reset() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	cmd := exec.Command("reset")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.log.Debug("terminal reset failed", zap.Error(err))
	}
}
