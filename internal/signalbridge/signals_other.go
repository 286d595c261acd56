//go:build !unix

package signalbridge

import (
	"os"
	"os/signal"
)

// registerSignals installs only a console-interrupt handler on
// platforms without the full unix signal set.
func registerSignals(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt)
}

func stopSignal(sig os.Signal) bool {
	return false
}

func handleSignal(sig os.Signal, master interface {
	Resizer
	Writer
}, sizeSource *os.File) {
	if sig == os.Interrupt {
		master.Write([]byte{0x03}) //nolint:errcheck
	}
}
