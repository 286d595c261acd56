//go:build !unix

package ptypair

import "syscall"

func childSysProcAttr() *syscall.SysProcAttr {
	return nil
}
