//go:build unix

package ptypair

import "syscall"

// childSysProcAttr makes the child a session leader with the pty slave
// as its controlling terminal, matching what pty.Start does internally
// for the combined open+spawn case.
func childSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
	}
}
