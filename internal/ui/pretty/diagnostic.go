package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdhtml/pkg/convert"
)

// sourceIndent aligns source context under the diagnostic line.
const sourceIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output. The
// source line and a marker under the malformed span are added when
// showContext is set.
func (s *Styles) FormatDiagnostic(diag convert.Diagnostic, showContext bool) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.Path),
		diag.Line,
		diag.Column,
	)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(diag.Message),
	))

	if showContext && diag.SourceLine != "" {
		width := 1
		if diag.EndLine == diag.Line && diag.EndColumn > diag.Column {
			width = diag.EndColumn - diag.Column
		}
		builder.WriteString(s.FormatSourceContext(diag.SourceLine, diag.Column, width))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a marker starting at the
// 1-based column and spanning width runes.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var builder strings.Builder

	// Tabs would throw the marker off.
	line = strings.ReplaceAll(line, "\t", " ")
	builder.WriteString(sourceIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		marker := "^"
		if width > 1 {
			marker += strings.Repeat("~", width-1)
		}
		padding := sourceIndent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render(marker) + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s  %s  %s\n", s.FilePath.Render(path), s.Failure.Render("failed"), s.Message.Render(err.Error()))
}
