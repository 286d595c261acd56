// Command sshpass-go launches an interactive program under a
// pseudo-terminal, feeds it a password when it detects a password
// prompt, and forwards the program's own exit code.
package main

import (
	"io"
	"log"
	"os"

	"github.com/nick/sshpass-go/internal/cliconfig"
	"github.com/nick/sshpass-go/internal/supervisor"
)

func main() {
	log.SetFlags(0)
	log.SetOutput(io.Discard)

	cfg := cliconfig.Build(os.Args[1:])

	if cfg.Verbose {
		log.SetOutput(os.Stderr)
	}

	os.Exit(supervisor.Run(cfg))
}
