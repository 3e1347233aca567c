// Package repl implements quill's interactive Read-Eval-Print Loop,
// generalized from amoghasbhardwaj-Eloquence's repl.Start (same
// scan-a-line/parse/evaluate/print loop shape, persistent session state
// across iterations, dotted `.command` handling) onto pkg/quill's
// Context instead of a bespoke environment/evaluator pair, and using
// fatih/color instead of raw ANSI escape sequences for result coloring
// (dphaener-conduit's CLI output uses the same library).
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/quill-lang/quill/internal/value"
	"github.com/quill-lang/quill/pkg/quill"
)

const prompt = "> "

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	resultColor = color.New(color.FgYellow)
	stringColor = color.New(color.FgGreen)
	dimColor    = color.New(color.FgHiBlack)
)

// Start runs the loop, reading lines from in and writing prompts,
// results, and errors to out. The session's Context (and therefore its
// global bindings) persists across lines until in is exhausted or the
// user types `.exit`.
func Start(in io.Reader, out io.Writer, opts ...quill.ContextOption) {
	scanner := bufio.NewScanner(in)
	ctx := quill.New(opts...)

	fmt.Fprintln(out, "quill — type .help for commands, .exit to quit")

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if handleCommand(line, out, &ctx) {
				return
			}
			continue
		}

		result, err := ctx.Eval(line)
		if err != nil {
			errorColor.Fprintf(out, "%s\n", err.Error())
			continue
		}
		printResult(out, result)
	}
}

func handleCommand(line string, out io.Writer, ctx **quill.Context) bool {
	switch line {
	case ".exit":
		fmt.Fprintln(out, "goodbye")
		return true
	case ".clear":
		*ctx = quill.New()
		fmt.Fprintln(out, "session reset")
	case ".help":
		printHelp(out)
	default:
		errorColor.Fprintf(out, "unknown command: %s (try .help)\n", line)
	}
	return false
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "commands:")
	fmt.Fprintln(out, "  .exit   quit the repl")
	fmt.Fprintln(out, "  .clear  reset the session's global bindings")
	fmt.Fprintln(out, "  .help   show this message")
}

func printResult(out io.Writer, result value.Value) {
	str := result.Display()
	if strings.HasPrefix(str, `"`) {
		stringColor.Fprintf(out, "%s\n", str)
		return
	}
	dimColor.Fprint(out, "=> ")
	resultColor.Fprintf(out, "%s\n", str)
}
