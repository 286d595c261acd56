// Package promptfsm implements the prompt/host-key state machine that
// decides when to inject the password into the child's pty and when
// to abort with a distinguished exit code.
package promptfsm

import (
	"bytes"
	"io"
	"sync/atomic"

	"github.com/nick/sshpass-go/internal/matcher"
)

const (
	hostKeyUnknownPattern = "The authenticity of host "
	hostKeyChangedPattern = "differs from the key for the IP address"
)

// Distinguished exit codes this machine can set. They pre-empt the
// child's own exit code.
const (
	ExitWrongPassword  int32 = 5
	ExitHostKeyUnknown int32 = 6
	ExitHostKeyChanged int32 = 7
)

// Machine consumes successive output chunks from the child and decides
// whether to inject the password, suppress the echo that follows it,
// or terminate the child-out pump with a distinguished exit code.
type Machine struct {
	password []byte
	writer   io.Writer
	logf     func(format string, args ...any)

	pwMatcher  *matcher.Matcher
	hkMatcher  *matcher.Matcher
	hkcMatcher *matcher.Matcher

	passwordSent bool
	suppress     bool

	exitCode atomic.Int32
}

// New constructs a Machine that searches for prompt and writes
// password followed by a newline to writer the first time prompt
// fires. logf may be nil to disable diagnostics.
func New(prompt string, password []byte, writer io.Writer, logf func(format string, args ...any)) *Machine {
	return &Machine{
		password:   password,
		writer:     writer,
		logf:       logf,
		pwMatcher:  matcher.New(prompt),
		hkMatcher:  matcher.New(hostKeyUnknownPattern),
		hkcMatcher: matcher.New(hostKeyChangedPattern),
	}
}

// Process consumes one output chunk from the child. It returns the
// bytes that should be written to the user (possibly a suffix of
// chunk, possibly nil) and whether the pump that owns this machine
// should terminate: a distinguished exit code has already been set by
// the time terminate is true.
func (m *Machine) Process(chunk []byte) (emit []byte, terminate bool) {
	if m.exitCode.Load() != 0 {
		return nil, true
	}

	if m.pwMatcher.Feed(chunk) {
		if !m.passwordSent {
			m.log("detected prompt. Sending password.")
			payload := make([]byte, 0, len(m.password)+1)
			payload = append(payload, m.password...)
			payload = append(payload, '\n')
			m.writer.Write(payload) //nolint:errcheck
			m.passwordSent = true
			m.suppress = true
			m.pwMatcher.Reset()
		} else {
			m.log("detected prompt, again. Wrong password. Terminating.")
			m.exitCode.Store(ExitWrongPassword)
			return nil, true
		}
	}

	if m.hkMatcher.Feed(chunk) {
		m.log("detected host authentication prompt. Exiting.")
		m.exitCode.Store(ExitHostKeyUnknown)
		return nil, true
	}

	if m.hkcMatcher.Feed(chunk) {
		m.exitCode.Store(ExitHostKeyChanged)
		return nil, true
	}

	if m.suppress {
		idx := bytes.IndexByte(chunk, '\n')
		if idx == -1 {
			return nil, false
		}
		m.suppress = false
		return chunk[idx+1:], false
	}

	return chunk, false
}

// ExitCode returns the distinguished exit code set by this machine, or
// 0 if none has been set. Safe to call after the owning pump has
// terminated; the atomic load pairs with the store in Process.
func (m *Machine) ExitCode() int32 {
	return m.exitCode.Load()
}

func (m *Machine) log(format string, args ...any) {
	if m.logf != nil {
		m.logf(format, args...)
	}
}
