//go:build unix

package cliconfig

import (
	"flag"

	"github.com/nick/sshpass-go/internal/password"
)

func registerFdFlag(fs *flag.FlagSet) {
	fs.Int("d", -1, "use number as file descriptor for getting password")
}

func fdGiven(fs *flag.FlagSet, explicit map[string]bool) (bool, int) {
	if !explicit["d"] {
		return false, 0
	}
	fd := fs.Lookup("d").Value.(flag.Getter).Get().(int)
	return true, fd
}

func fdSource(fd int) password.Source {
	return password.Source{Kind: password.Fd, Fd: fd}
}

func fdUsageSuffix() string {
	return "|-d fd"
}
