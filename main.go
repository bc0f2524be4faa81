// gocipher encrypts and decrypts files with AES in a selectable block
// cipher mode.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/gocipher/internal/commands"
)

// version is set at build time.
//
//nolint:gochecknoglobals
var version = "dev"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
