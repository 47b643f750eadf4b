package pretty

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	columnGap      = "  "
	ellipsis       = "..."
	minFlexWidth   = 10
	heavySeparator = "="
)

// Column describes one table column.
type Column struct {
	Header string

	// Flex marks the column that shrinks when the table is wider than the
	// terminal. At most one column should set it.
	Flex bool
}

// FormatTable renders rows under a header and separator, padding every cell
// to its column width. The flex column is truncated to fit termWidth.
func (s *Styles) FormatTable(columns []Column, rows [][]string, termWidth int) string {
	if len(columns) == 0 {
		return ""
	}
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = ansi.PrintableRuneWidth(col.Header)
	}
	for _, row := range rows {
		for i := range columns {
			if i < len(row) {
				widths[i] = max(widths[i], ansi.PrintableRuneWidth(row[i]))
			}
		}
	}

	total := len(columnGap) * (len(columns) - 1)
	for _, w := range widths {
		total += w
	}
	if total > termWidth {
		for i, col := range columns {
			if col.Flex {
				widths[i] = max(minFlexWidth, widths[i]-(total-termWidth))
				total = termWidth
				break
			}
		}
	}

	var builder strings.Builder

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	builder.WriteString(s.TableHeader.Render(formatCells(headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(s.TableSeparator.Render(strings.Repeat(heavySeparator, min(total, termWidth))))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(formatCells(row, widths))
		builder.WriteString("\n")
	}

	return builder.String()
}

func formatCells(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(cells) {
			cell = TruncateString(cells[i], width)
		}
		if i < len(widths)-1 {
			cell += strings.Repeat(" ", width-ansi.PrintableRuneWidth(cell))
		}
		parts[i] = cell
	}
	return strings.Join(parts, columnGap)
}

// TruncateString shortens str to at most width printable columns, marking the
// cut with an ellipsis.
func TruncateString(str string, width int) string {
	if ansi.PrintableRuneWidth(str) <= width {
		return str
	}
	if width <= len(ellipsis) {
		return truncate.String(str, uint(max(width, 0)))
	}
	return truncate.StringWithTail(str, uint(width), ellipsis)
}
