// Package supervisor wires together the pty pair, raw-mode guard,
// signal bridge, I/O bridge, and prompt state machine into the single
// end-to-end run of one child process.
package supervisor

import (
	"fmt"
	"log"
	"os"

	"github.com/nick/sshpass-go/internal/iobridge"
	"github.com/nick/sshpass-go/internal/promptfsm"
	"github.com/nick/sshpass-go/internal/ptypair"
	"github.com/nick/sshpass-go/internal/rawmode"
	"github.com/nick/sshpass-go/internal/signalbridge"
)

// Exit codes this layer can produce directly, outside the
// distinguished prompt-state-machine codes (5/6/7) and the child's own
// forwarded status.
const (
	ExitRuntimeError = 3
	exitChildUnknown = 255
)

// RunConfig is the immutable input to Run: the child command, the
// password to inject, the prompt pattern to search for, and whether to
// emit diagnostics on standard error.
type RunConfig struct {
	Command  []string
	Password []byte
	Prompt   string
	Verbose  bool
}

// Run executes one end-to-end supervised session and returns the
// process's final exit code. A setup failure (pty open, spawn, raw
// mode) is reported on standard error as "SSHPASS: <message>" and
// yields ExitRuntimeError.
func Run(cfg RunConfig) int {
	logf := func(format string, args ...any) {
		if cfg.Verbose {
			log.Printf("SSHPASS: "+format, args...)
		}
	}

	logf("searching for prompt %q", cfg.Prompt)

	size := ptypair.QuerySize(os.Stdin)
	pair, err := ptypair.Open(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "SSHPASS: %v\n", err)
		return ExitRuntimeError
	}

	guard, err := rawmode.Acquire(int(os.Stdin.Fd()))
	if err != nil {
		pair.Master.Close()
		fmt.Fprintf(os.Stderr, "SSHPASS: %v\n", err)
		return ExitRuntimeError
	}
	defer guard.Release()

	child, err := pair.Spawn(cfg.Command)
	if err != nil {
		pair.Master.Close()
		fmt.Fprintf(os.Stderr, "SSHPASS: %v\n", err)
		return ExitRuntimeError
	}

	bridge := signalbridge.Start(pair.Master, os.Stdin)

	machine := promptfsm.New(cfg.Prompt, cfg.Password, pair.Master, logf)

	done := make(chan struct{})
	go func() {
		defer close(done)
		iobridge.PumpChildOut(pair.Master.Reader(), os.Stdout, machine, func() { pair.Master.Close() }, logf)
	}()

	// The user-in pump is deliberately never joined: it may still be
	// blocked on a read from standard input when the child exits, and
	// the process is about to terminate anyway.
	go iobridge.PumpUserIn(os.Stdin, pair.Master)

	childCode, childOK := child.Wait()

	bridge.Close()
	<-done

	if code := machine.ExitCode(); code != 0 {
		return int(code)
	}
	if childOK {
		return childCode
	}
	return exitChildUnknown
}
