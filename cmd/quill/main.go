// Command quill is the CLI entry point: run scripts, drop into a REPL,
// or print version information. See cmd/quill/cmd.Execute.
package main

import (
	"fmt"
	"os"

	"github.com/quill-lang/quill/cmd/quill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
