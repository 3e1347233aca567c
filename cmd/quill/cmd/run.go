package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/engineconfig"
	"github.com/quill-lang/quill/internal/enginelog"
	"github.com/quill-lang/quill/internal/parser"
	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/pkg/quill"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a quill script file or inline expression",
	Long: `Execute a script from a file or inline expression.

Examples:
  # Run a script file
  quill run script.js

  # Evaluate an inline expression
  quill run -e "1 + 2 * 3"

  # Run with AST dump (for debugging)
  quill run --dump-ast script.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST instead of executing")
}

func runScript(_ *cobra.Command, args []string) error {
	src, file, err := readInput(args)
	if err != nil {
		return err
	}

	if dumpAST {
		p := parser.New(src)
		prog, errs := p.Parse()
		if len(errs) > 0 {
			fmt.Fprint(os.Stderr, diag.FormatAll(diag.FromParseErrors(errs, src, file), true))
			return fmt.Errorf("parsing failed with %d error(s)", len(errs))
		}
		fmt.Println(prog.String())
		return nil
	}

	ctx := quill.New(contextOptions()...)
	result, evalErr := ctx.Eval(src)
	if evalErr != nil {
		fmt.Fprintln(os.Stderr, evalErr.Error())
		return fmt.Errorf("execution failed")
	}
	fmt.Println(result.Display())
	return nil
}

func readInput(args []string) (src, file string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
	}
	text, err := source.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return text, args[0], nil
}

func contextOptions() []quill.ContextOption {
	var opts []quill.ContextOption
	if cfg, err := engineconfig.Load(); err == nil {
		opts = append(opts, quill.WithMaxCallDepth(cfg.MaxCallDepth), quill.WithStrict(cfg.Strict))
	}
	if verbose {
		if logger, err := enginelog.NewDevelopment(); err == nil {
			opts = append(opts, quill.WithLogger(logger))
		}
	}
	return opts
}
