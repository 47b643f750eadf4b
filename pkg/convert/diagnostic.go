package convert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/gomdhtml/pkg/lexer"
	"github.com/yaklabco/gomdhtml/pkg/token"
)

// Diagnostic locates one malformed construct. Lines and columns are 1-based
// and count runes, matching token offsets.
type Diagnostic struct {
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_column"`
	Message   string `json:"message"`

	// Snippet is the source text covered by the Error token.
	Snippet string `json:"snippet"`

	// SourceLine is the full line the diagnostic starts on, without its newline.
	SourceLine string `json:"source_line"`
}

// String formats the diagnostic as path:line:col: message.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.Path, d.Line, d.Column, d.Message)
}

// Diagnose converts the Error tokens of a stream into diagnostics.
func Diagnose(path string, doc []rune, tokens []token.Token) []Diagnostic {
	var lines lineIndex
	var diags []Diagnostic

	for _, t := range tokens {
		if t.Kind != token.Error {
			continue
		}
		if lines == nil {
			lines = newLineIndex(doc)
		}
		snippet := t.Text(doc)
		line, col := lines.position(t.Begin)
		endLine, endCol := lines.position(t.End)
		diags = append(diags, Diagnostic{
			Path:       path,
			Line:       line,
			Column:     col,
			EndLine:    endLine,
			EndColumn:  endCol,
			Message:    describe(snippet),
			Snippet:    snippet,
			SourceLine: lines.text(doc, line),
		})
	}
	return diags
}

// describe names the construct an Error token came from by its first runes.
func describe(snippet string) string {
	switch {
	case strings.HasPrefix(snippet, "#"):
		level := len(snippet) - len(strings.TrimLeft(snippet, "#"))
		return fmt.Sprintf("heading level %d exceeds the maximum of %d", level, lexer.MaxHeadingLevel)
	case strings.HasPrefix(snippet, "!["):
		return "unterminated image: line ends before the closing ] or )"
	case strings.HasPrefix(snippet, "["):
		return "unterminated link: line ends before the closing ] or )"
	case strings.HasPrefix(snippet, "|"):
		return "malformed table separator row: each cell needs at least 3 dashes, optional colons and a closing |"
	default:
		return "malformed markdown"
	}
}

// lineIndex holds the rune offset at which each line starts.
type lineIndex []int

func newLineIndex(doc []rune) lineIndex {
	starts := lineIndex{0}
	for i, r := range doc {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// text returns the 1-based line without its newline.
func (idx lineIndex) text(doc []rune, line int) string {
	begin := idx[line-1]
	end := len(doc)
	if line < len(idx) {
		end = idx[line] - 1
	}
	return string(doc[begin:end])
}

// position maps a rune offset to a 1-based line and column.
func (idx lineIndex) position(offset int) (int, int) {
	line := sort.Search(len(idx), func(i int) bool { return idx[i] > offset }) - 1
	return line + 1, offset - idx[line] + 1
}
