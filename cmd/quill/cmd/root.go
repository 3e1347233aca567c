// Package cmd implements quill's command-line surface via spf13/cobra,
// grounded on the teacher's cmd/dwscript/cmd package (same rootCmd +
// PersistentFlags + subcommand-registration-in-init shape), pared down
// to the subcommands an embeddable JS core's own CLI actually needs:
// run, repl, and version. quill has no unit/compile/fmt/bytecode
// subcommands — there is nothing in SPEC_FULL.md for them to drive.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags (-ldflags "-X ...Version=...").
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "quill — an embeddable JavaScript-subset evaluation engine",
	Long: `quill is a small, embeddable tree-walking JavaScript evaluator.

It implements a practical subset of ECMAScript: lexing, parsing, a
prototype-based object model with a logical tracing collector, and a
tree-walking executor, plus a host-extension surface for registering
Go-backed native classes.`,
	Version: Version,
}

// Execute runs the root command; main calls this and exits non-zero on
// error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic logging")
}
