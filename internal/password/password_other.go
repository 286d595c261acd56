//go:build !unix

package password

import "fmt"

// fromFd is unreachable in practice: the CLI builder never offers a
// file-descriptor source on platforms without inheritable descriptor
// passing. Kept so Resolve's switch stays exhaustive.
func fromFd(fd int) ([]byte, error) {
	return nil, fmt.Errorf("file-descriptor password source is not supported on this platform")
}
