//go:build unix

// Package rawmode provides scoped acquisition of raw mode on the
// controlling terminal, with guaranteed restoration at scope exit.
package rawmode

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Guard holds the terminal attributes captured at Acquire time so they
// can be restored exactly once, on every exit path.
type Guard struct {
	fd       int
	original *unix.Termios
}

// Acquire switches fd into raw mode but keeps signal generation enabled
// (ISIG), so Ctrl+C/Ctrl+Z still raise signals for the Signal Bridge
// to observe rather than arriving as literal bytes. If fd is not a
// terminal, Acquire returns a no-op Guard.
func Acquire(fd int) (*Guard, error) {
	if !IsTerminal(fd) {
		return &Guard{fd: fd}, nil
	}

	original, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("get terminal attributes: %w", err)
	}

	raw := *original
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	raw.Oflag &^= unix.OPOST
	// Keep ISIG: Ctrl+C/Ctrl+Z must still raise signals for the bridge.
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return nil, fmt.Errorf("set raw mode: %w", err)
	}

	return &Guard{fd: fd, original: original}, nil
}

// Release restores the attributes captured at Acquire. Safe to call
// more than once and safe to call on a no-op Guard.
func (g *Guard) Release() error {
	if g == nil || g.original == nil {
		return nil
	}
	original := g.original
	g.original = nil
	return unix.IoctlSetTermios(g.fd, ioctlWriteTermios, original)
}

// IsTerminal reports whether fd refers to a terminal device.
func IsTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	return err == nil
}
