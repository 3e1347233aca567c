// Package diag formats lex, parse, and runtime errors with source
// context for humans: a one-line header, the offending source line, and
// a caret pointing at the column. It is grounded directly on the
// teacher's internal/errors package (CompilerError.Format/
// FormatWithContext), generalized from DWScript's single-pass compiler
// errors to quill's three strata described in spec.md §7 — lex errors,
// parse errors, and thrown runtime Values all render through the same
// Diagnostic shape.
package diag

import (
	"fmt"
	"strings"

	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/parser"
	"github.com/quill-lang/quill/internal/token"
)

// Diagnostic is one reportable error with enough context to render a
// source-line-and-caret view, per spec.md §7.
type Diagnostic struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New constructs a Diagnostic directly.
func New(pos token.Position, message, source, file string) *Diagnostic {
	return &Diagnostic{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface with the uncolored rendering.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the header, source line, and caret. When color is true
// the caret and message use ANSI codes, the same palette the teacher's
// CompilerError.Format uses (bold red caret, bold message).
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", d.Pos.Line, d.Pos.Column)
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (d *Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of Diagnostics, numbering them when there is
// more than one, matching the teacher's FormatErrors.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(diags))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FromLexErrors converts lexer.LexerError values into Diagnostics
// carrying source/file context for rendering.
func FromLexErrors(errs []lexer.LexerError, source, file string) []*Diagnostic {
	out := make([]*Diagnostic, 0, len(errs))
	for _, e := range errs {
		out = append(out, New(e.Pos, e.Message, source, file))
	}
	return out
}

// FromParseErrors converts parser.ParseError values into Diagnostics.
func FromParseErrors(errs []*parser.ParseError, source, file string) []*Diagnostic {
	out := make([]*Diagnostic, 0, len(errs))
	for _, e := range errs {
		msg := e.Message
		if e.Expected != "" {
			msg = fmt.Sprintf("%s (expected %s, found %s)", e.Message, e.Expected, e.Found.Type)
		}
		out = append(out, New(e.Pos, msg, source, file))
	}
	return out
}
