//go:build unix

package signalbridge

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/nick/sshpass-go/internal/ptypair"
)

type fakeMaster struct {
	mu      sync.Mutex
	written []byte
	resized []ptypair.WindowSize
}

func (f *fakeMaster) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, p...)
	return len(p), nil
}

func (f *fakeMaster) Resize(size ptypair.WindowSize) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resized = append(f.resized, size)
	return nil
}

func (f *fakeMaster) snapshot() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.written...)
}

func TestSigintWritesInterruptByte(t *testing.T) {
	fm := &fakeMaster{}
	b := Start(fm, os.Stdin)
	defer b.Close()

	syscall.Kill(os.Getpid(), syscall.SIGINT)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(fm.snapshot()) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if got := fm.snapshot(); len(got) != 1 || got[0] != 0x03 {
		t.Fatalf("expected a single 0x03 byte, got %v", got)
	}
}

func TestCloseStopsLoop(t *testing.T) {
	// Close calls signal.Stop on the bridge's channel; with no other
	// subscriber, a later SIGINT would get its default action and end
	// the test binary. This subscription keeps the signal caught here.
	caught := make(chan os.Signal, 1)
	signal.Notify(caught, syscall.SIGINT)
	defer signal.Stop(caught)

	fm := &fakeMaster{}
	b := Start(fm, os.Stdin)
	b.Close()

	// A signal arriving after Close must not reach the master: the
	// bridge's loop has exited.
	syscall.Kill(os.Getpid(), syscall.SIGINT)
	time.Sleep(50 * time.Millisecond)

	if got := fm.snapshot(); len(got) != 0 {
		t.Fatalf("expected no writes after Close, got %v", got)
	}
}
