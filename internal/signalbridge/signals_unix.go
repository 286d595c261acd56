//go:build unix

package signalbridge

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/nick/sshpass-go/internal/ptypair"
)

func registerSignals(ch chan os.Signal) {
	signal.Notify(ch, syscall.SIGWINCH, syscall.SIGINT, syscall.SIGTSTP, syscall.SIGTERM, syscall.SIGHUP)
}

// stopSignal reports whether sig should end the signal loop, allowing
// overall shutdown to proceed.
func stopSignal(sig os.Signal) bool {
	return sig == syscall.SIGTERM || sig == syscall.SIGHUP
}

func handleSignal(sig os.Signal, master interface {
	Resizer
	Writer
}, sizeSource *os.File) {
	switch sig {
	case syscall.SIGWINCH:
		master.Resize(ptypair.QuerySize(sizeSource)) //nolint:errcheck
	case syscall.SIGINT:
		master.Write([]byte{0x03}) //nolint:errcheck
	case syscall.SIGTSTP:
		master.Write([]byte{0x1A}) //nolint:errcheck
	}
}
