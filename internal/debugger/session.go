// Package debugger launches interactive debug sessions against built
// programs. A session resolves the program under the build directory,
// optionally starts a background debug server, diverts terminal interrupts
// to the foreground debugger, and guarantees that every spawned process and
// the interrupt handler are cleaned up on every exit path.
package debugger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"emberbuild/internal/procutil"
	"emberbuild/internal/target"

	"go.uber.org/zap"
)

// Process is the part of a spawned process a session controls.
type Process interface {
	// Wait blocks until the process exits and returns its exit status.
	Wait() (int, error)
	// Terminate stops the process if it may still be running.
	Terminate() error
}

// Spawner starts the two processes a session may own: the foreground
// debugger, attached to the terminal, and the background debug server,
// detached into its own process group with its output discarded.
type Spawner interface {
	StartInteractive(cmd []string, dir string) (Process, error)
	StartDetached(cmd []string, dir string) (Process, error)
}

// Manager runs debug sessions for one target.
type Manager struct {
	target *target.Target
	spawn  Spawner
	term   Terminal
	log    *zap.Logger
}

// NewManager returns a Manager that spawns real OS processes.
func NewManager(t *target.Target, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		target: t,
		spawn:  osSpawner{runner: procutil.NewRunner(log)},
		term:   consoleTerminal{log: log},
		log:    log,
	}
}

// Debug launches a debug session for program, resolved relative to
// buildDir. It returns diagnostics for conditions that prevented or ended
// the session; unexpected failures are returned as an error after cleanup
// and a best-effort terminal reset.
func (m *Manager) Debug(buildDir, program string) ([]string, error) {
	if !m.target.SupportsDebug() {
		return []string{fmt.Sprintf("target %s does not specify debug commands", m.target.Name())}, nil
	}
	progPath := filepath.Join(buildDir, program)
	if !isFile(progPath) {
		if suggestion := suggestProgram(buildDir, program); suggestion != "" {
			return []string{fmt.Sprintf("%s does not exist, perhaps you meant %s", program, suggestion)}, nil
		}
		return []string{fmt.Sprintf("%s does not exist", program)}, nil
	}
	return m.run(buildDir, progPath)
}

// run owns the session's processes and signal state. The deferred cleanup
// terminates whatever is still referenced, restores interrupt handling, and
// on the error path resets the terminal in case the debugger left it in a
// broken state.
func (m *Manager) run(buildDir, progPath string) (diags []string, err error) {
	var (
		daemon Process
		child  Process
		guard  *interruptGuard
	)
	defer func() {
		if child != nil {
			if terr := child.Terminate(); terr != nil {
				m.log.Debug("terminating debugger failed", zap.Error(terr))
			}
		}
		if daemon != nil {
			m.log.Debug("shutting down debug server")
			if terr := daemon.Terminate(); terr != nil {
				m.log.Debug("terminating debug server failed", zap.Error(terr))
			}
		}
		if guard != nil {
			guard.release()
		}
		if err != nil {
			m.term.Reset()
		}
	}()

	if server := m.target.DebugServerCommand(); len(server) > 0 {
		m.log.Debug("starting debug server", zap.Strings("argv", server))
		daemon, err = m.spawn.StartDetached(server, buildDir)
		if err != nil {
			return nil, fmt.Errorf("start debug server: %w", err)
		}
	}

	// Divert Ctrl-C to the debugger for the rest of the session.
	guard = ignoreInterrupts(m.log)

	argv := m.debuggerCommand(progPath)
	m.log.Debug("starting debugger", zap.Strings("argv", argv))
	child, err = m.spawn.StartInteractive(argv, buildDir)
	if err != nil {
		return nil, fmt.Errorf("start debugger: %w", err)
	}

	status, werr := child.Wait()
	if werr != nil {
		err = fmt.Errorf("wait for debugger: %w", werr)
		return nil, err
	}
	child = nil
	if status != 0 {
		diags = append(diags, fmt.Sprintf("debug process exited with status %d", status))
	}
	return diags, nil
}

// debuggerCommand builds the debugger argv from the target's command
// templates. A single-template list is a whole command line: it is
// tokenized first (quotes protect embedded spaces) and then each token has
// $program substituted and environment variables expanded, so a program
// path containing spaces stays one argument. A multi-template list
// supplies exactly one argv token per element, expanded in place, so
// tokens like "target remote :4242" survive intact.
func (m *Manager) debuggerCommand(progPath string) []string {
	tmpls := m.target.Description.Debug
	if len(tmpls) == 1 {
		tokens := splitCommandLine(tmpls[0])
		for i, tok := range tokens {
			tokens[i] = expandTemplate(tok, progPath)
		}
		return tokens
	}
	argv := make([]string, 0, len(tmpls))
	for _, tmpl := range tmpls {
		argv = append(argv, expandTemplate(tmpl, progPath))
	}
	return argv
}

// splitCommandLine tokenizes a command line on whitespace. Single or
// double quotes protect embedded spaces; the quote characters themselves
// are removed.
func splitCommandLine(s string) []string {
	var (
		tokens  []string
		current strings.Builder
		quote   rune
		open    bool
	)
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			open = true
		case unicode.IsSpace(r):
			if open {
				tokens = append(tokens, current.String())
				current.Reset()
				open = false
			}
		default:
			current.WriteRune(r)
			open = true
		}
	}
	if open {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// expandTemplate substitutes $program and expands environment variables,
// leaving variables that are not set in the environment untouched.
func expandTemplate(tmpl, progPath string) string {
	return os.Expand(tmpl, func(name string) string {
		if name == "program" {
			return progPath
		}
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return "$" + name
	})
}

// suggestProgram looks for a plausible alternative when the requested
// program is missing: the name with a source-file suffix stripped, or the
// same name under the source/ subdirectory.
func suggestProgram(buildDir, program string) string {
	progPath := filepath.Join(buildDir, program)
	switch {
	case hasSuffix(program, ".c", ".m") && isFile(progPath[:len(progPath)-2]):
		return program[:len(program)-2]
	case hasSuffix(program, ".cpp", ".cxx") && isFile(progPath[:len(progPath)-4]):
		return program[:len(program)-4]
	case isFile(filepath.Join(buildDir, "source", program)):
		return filepath.Join("source", program)
	}
	return ""
}

func hasSuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// osSpawner spawns real OS processes via procutil.
type osSpawner struct {
	runner *procutil.Runner
}

func (s osSpawner) StartInteractive(cmd []string, dir string) (Process, error) {
	p, err := s.runner.StartInteractive(cmd, dir)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s osSpawner) StartDetached(cmd []string, dir string) (Process, error) {
	p, err := s.runner.StartDetached(cmd, dir)
	if err != nil {
		return nil, err
	}
	return p, nil
}
