//go:build !unix

package cliconfig

import (
	"flag"

	"github.com/nick/sshpass-go/internal/password"
)

// registerFdFlag is a no-op: platforms without inheritable file
// descriptor passing don't offer -d at all, resolving spec.md's open
// question on the point.
func registerFdFlag(fs *flag.FlagSet) {}

func fdGiven(fs *flag.FlagSet, explicit map[string]bool) (bool, int) {
	return false, 0
}

func fdSource(fd int) password.Source {
	return password.Source{}
}

func fdUsageSuffix() string {
	return ""
}
