// Package signalbridge traps a small set of process signals and
// translates them into writes to the child's pty or into pty resize
// operations, so the child observes the same control events the
// supervisor's own process received.
package signalbridge

import (
	"os"
	"os/signal"

	"github.com/nick/sshpass-go/internal/ptypair"
)

// Resizer is the subset of *ptypair.Master the bridge needs to
// propagate a window-change notification.
type Resizer interface {
	Resize(size ptypair.WindowSize) error
}

// Writer is the subset of *ptypair.Master the bridge needs to inject
// control bytes.
type Writer interface {
	Write(p []byte) (int, error)
}

// Bridge owns the signal subscription goroutine.
type Bridge struct {
	stop chan struct{}
	done chan struct{}
}

// Start subscribes to the platform's available signals and begins
// translating them against master. sizeSource is queried for the
// controlling terminal's current size on a window-change notification.
func Start(master interface {
	Resizer
	Writer
}, sizeSource *os.File) *Bridge {
	b := &Bridge{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	ch := make(chan os.Signal, 8)
	registerSignals(ch)

	go func() {
		defer close(b.done)
		defer signal.Stop(ch)
		for {
			select {
			case sig, ok := <-ch:
				if !ok {
					return
				}
				if stopSignal(sig) {
					return
				}
				handleSignal(sig, master, sizeSource)
			case <-b.stop:
				return
			}
		}
	}()

	return b
}

// Close stops the signal loop and waits for its goroutine to exit.
// Safe to call once; after Close, the bridge's writes to the master
// have stopped for good.
func (b *Bridge) Close() {
	close(b.stop)
	<-b.done
}
