package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive quill session",
	RunE: func(_ *cobra.Command, _ []string) error {
		repl.Start(os.Stdin, os.Stdout, contextOptions()...)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
