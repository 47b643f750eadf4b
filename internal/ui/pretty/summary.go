package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/gomdhtml/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Converted 3 files (2 written, 1 unchanged), 2 issues in 1 file".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No markdown files found") + "\n"
	}

	verb := "Converted"
	if dryRun {
		verb = "Would convert"
	}
	head := fmt.Sprintf("%s %s", verb, plural(stats.FilesConverted, "file", "files"))

	var detail []string
	if stats.FilesWritten > 0 {
		detail = append(detail, fmt.Sprintf("%d written", stats.FilesWritten))
	}
	if stats.FilesUnchanged > 0 {
		detail = append(detail, fmt.Sprintf("%d unchanged", stats.FilesUnchanged))
	}
	if len(detail) > 0 {
		head += " (" + strings.Join(detail, ", ") + ")"
	}

	parts := []string{s.Success.Render(head)}
	if stats.DiagnosticsTotal > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.DiagnosticsTotal, "issue", "issues"))+
			" in "+plural(stats.FilesWithDiagnostics, "file", "files"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "file", "files")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, dryRun bool, elapsed time.Duration) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-22s%s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files found", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	row("Files converted", s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)))
	if !dryRun {
		row("Outputs written", s.Success.Render(strconv.Itoa(stats.FilesWritten)))
		row("Outputs unchanged", s.SummaryValue.Render(strconv.Itoa(stats.FilesUnchanged)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")
	row("Malformed constructs", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	if stats.FilesWithDiagnostics > 0 {
		row("Files affected", s.Warning.Render(strconv.Itoa(stats.FilesWithDiagnostics)))
	}
	if elapsed > 0 {
		row("Elapsed", s.Dim.Render(elapsed.Round(time.Millisecond).String()))
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Conversion failed"))
	case stats.DiagnosticsTotal > 0:
		builder.WriteString(s.Warning.Render("Converted with malformed markdown"))
	case dryRun:
		builder.WriteString(s.Success.Render("Dry run complete"))
	default:
		builder.WriteString(s.Success.Render("Conversion complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
