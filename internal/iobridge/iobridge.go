// Package iobridge runs the two concurrent pumps that bridge the
// user's terminal to the child's pty: one carries raw input through
// unchanged, the other drives the prompt state machine over the
// child's output before relaying it to the user.
package iobridge

import "io"

const chunkSize = 4096

// Processor is the prompt state machine's view from the child-out
// pump: feed it a chunk, get back what to show the user and whether
// the pump should stop.
type Processor interface {
	Process(chunk []byte) (emit []byte, terminate bool)
}

// PumpUserIn reads from src in fixed-size chunks and forwards every
// byte unchanged to dst. It returns on end-of-file or read error;
// write errors are swallowed, since a dead pty typically means the
// child has already exited and the error will surface from Wait
// instead.
func PumpUserIn(src io.Reader, dst io.Writer) {
	buf := make([]byte, chunkSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			dst.Write(buf[:n]) //nolint:errcheck
		}
		if err != nil {
			return
		}
	}
}

// PumpChildOut reads from src in fixed-size chunks, drives proc to
// completion on each chunk, and writes whatever proc says to emit to
// dst. It returns on end-of-file, read error, or when proc requests
// termination. onTerminate, if non-nil, is called exactly once before
// returning in the termination case, so the caller can tear down the
// shared pty out from under the other pumps.
func PumpChildOut(src io.Reader, dst io.Writer, proc Processor, onTerminate func(), logf func(format string, args ...any)) {
	buf := make([]byte, chunkSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if logf != nil {
				logf("read: %s", chunk)
			}
			emit, terminate := proc.Process(chunk)
			if len(emit) > 0 {
				// dst is the user's stdout: an unbuffered *os.File, so
				// every Write already reaches the terminal immediately.
				dst.Write(emit) //nolint:errcheck
			}
			if terminate {
				if onTerminate != nil {
					onTerminate()
				}
				return
			}
		}
		if err != nil {
			return
		}
	}
}
