package debugger

import (
	"os"
	"os/signal"
	"runtime/debug"

	"go.uber.org/zap"
)

// interruptGuard diverts interrupt signals away from the orchestrator for
// the lifetime of a debug session, so Ctrl-C reaches the foreground
// debugger instead of killing this process. Received interrupts are logged
// with the goroutine stack and otherwise dropped.
type interruptGuard struct {
	ch   chan os.Signal
	done chan struct{}
}

// ignoreInterrupts installs the guard. The caller must release it,
// regardless of how the session ends.
func ignoreInterrupts(log *zap.Logger) *interruptGuard {
	g := &interruptGuard{
		ch:   make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(g.ch, os.Interrupt)
	go func() {
		defer close(g.done)
		for sig := range g.ch {
			log.Debug("ignoring signal",
				zap.String("signal", sig.String()),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()
	return g
}

// release restores default interrupt handling and waits for the logging
// goroutine to stop.
func (g *interruptGuard) release() {
	signal.Stop(g.ch)
	signal.Reset(os.Interrupt)
	close(g.ch)
	<-g.done
}
