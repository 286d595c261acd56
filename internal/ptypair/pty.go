// Package ptypair allocates a pseudo-terminal master/slave pair, spawns
// a child program attached to the slave, and exposes the master side as
// a shared, close-safe reader/writer/resize handle.
package ptypair

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// WindowSize is the pty's row/column geometry.
type WindowSize struct {
	Rows uint16
	Cols uint16
}

// DefaultWindowSize is used when the controlling terminal's size cannot
// be queried (stdin is not a tty).
var DefaultWindowSize = WindowSize{Rows: 24, Cols: 80}

// QuerySize returns the window size of f if it is a terminal, or
// DefaultWindowSize otherwise.
func QuerySize(f *os.File) WindowSize {
	if size, err := getWinsize(f); err == nil {
		return size
	}
	return DefaultWindowSize
}

// Pair owns both ends of a freshly opened pty until Spawn releases the
// slave. Master is shared by the I/O bridge pumps and the signal
// bridge after that.
type Pair struct {
	slave  *os.File
	Master *Master
}

// Open allocates a master/slave pty pair and sets the master to size.
func Open(size WindowSize) (*Pair, error) {
	ptm, pts, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("open pty: %w", err)
	}
	if err := pty.Setsize(ptm, &pty.Winsize{Rows: size.Rows, Cols: size.Cols}); err != nil {
		ptm.Close()
		pts.Close()
		return nil, fmt.Errorf("set initial pty size: %w", err)
	}
	return &Pair{slave: pts, Master: newMaster(ptm)}, nil
}

// Child is the spawned process's handle.
type Child struct {
	cmd *exec.Cmd
}

// Spawn starts argv attached to the pty's slave as stdin/stdout/stderr
// and as its controlling terminal, then releases the caller's
// reference to the slave so the master's reader observes end-of-file
// once the child and every descriptor it inherited are closed.
func (p *Pair) Spawn(argv []string) (*Child, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("spawn: empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = p.slave
	cmd.Stdout = p.slave
	cmd.Stderr = p.slave
	cmd.SysProcAttr = childSysProcAttr()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", argv[0], err)
	}

	p.slave.Close()
	p.slave = nil

	return &Child{cmd: cmd}, nil
}

// Wait blocks until the child exits and returns its clamped exit code.
// The bool result is false when the exit code could not be determined,
// in which case the caller should treat the child as exited with 255.
func (c *Child) Wait() (int, bool) {
	err := c.cmd.Wait()
	if err == nil {
		return clamp(c.cmd.ProcessState.ExitCode()), true
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		code := exitErr.ExitCode()
		if code < 0 {
			return 0, false
		}
		return clamp(code), true
	}
	return 0, false
}

func clamp(code int) int {
	if code < 0 {
		return 255
	}
	if code > 255 {
		return 255
	}
	return code
}

// Master is the pty master: a shared reader/writer/resize handle that
// turns into a silent no-op on every write and resize once Close has
// been called, so callers racing a teardown never see a write error.
type Master struct {
	mu   sync.Mutex
	file *os.File
}

func newMaster(f *os.File) *Master {
	return &Master{file: f}
}

// Reader returns a handle for reading the master's output stream. It
// is intended for exactly one caller (the child-out pump); reads are
// not synchronized against Write/Close by design, matching os.File's
// own concurrency contract for a single reader alongside writers.
func (m *Master) Reader() io.Reader {
	return m.file
}

// Write sends p to the child's pty. After Close, Write silently
// succeeds without writing anything.
func (m *Master) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.file == nil {
		return len(p), nil
	}
	return m.file.Write(p)
}

// Resize propagates a window-size change to the slave side. After
// Close, Resize silently does nothing.
func (m *Master) Resize(size WindowSize) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.file == nil {
		return nil
	}
	return pty.Setsize(m.file, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

// Close releases the master file descriptor. Safe to call more than
// once; subsequent calls are no-ops.
func (m *Master) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	return err
}

func getWinsize(f *os.File) (WindowSize, error) {
	ws, err := pty.GetsizeFull(f)
	if err != nil {
		return WindowSize{}, err
	}
	return WindowSize{Rows: ws.Rows, Cols: ws.Cols}, nil
}
