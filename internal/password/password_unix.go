//go:build unix

package password

import (
	"fmt"
	"os"
)

// fromFd reads the first line from an inherited file descriptor, as
// used by the -d flag. The descriptor is closed once read.
func fromFd(fd int) ([]byte, error) {
	f := os.NewFile(uintptr(fd), "password-fd")
	if f == nil {
		return nil, fmt.Errorf("file descriptor %d is not open", fd)
	}
	defer f.Close()
	return firstLine(f)
}
