package reporter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/yaklabco/gomdhtml/internal/ui/pretty"
	"github.com/yaklabco/gomdhtml/pkg/config"
	"github.com/yaklabco/gomdhtml/pkg/token"
)

// TokenOptions configures WriteTokens.
type TokenOptions struct {
	// Format is text (a table) or json. Summary is treated as text.
	Format config.OutputFormat

	// Color controls colorized output.
	Color string

	// Width overrides the detected terminal width when positive.
	Width int

	Compact bool
}

// JSONToken is one token in the JSON token dump.
type JSONToken struct {
	Kind    token.Kind `json:"kind"`
	Begin   int        `json:"begin"`
	End     int        `json:"end"`
	Text    string     `json:"text"`
	Checked *bool      `json:"checked,omitempty"`
	Char    string     `json:"char,omitempty"`
	Align   string     `json:"align,omitempty"`
	Level   int        `json:"level,omitempty"`
}

// WriteTokens dumps the token stream of doc to w.
func WriteTokens(w io.Writer, doc []rune, tokens []token.Token, opts TokenOptions) (err error) {
	bw := bufio.NewWriterSize(w, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if opts.Format == config.FormatJSON {
		out := make([]JSONToken, 0, len(tokens))
		for _, t := range tokens {
			out = append(out, toJSONToken(doc, t))
		}
		encoder := json.NewEncoder(bw)
		if !opts.Compact {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, w))
	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(w)
	}

	columns := []pretty.Column{
		{Header: "#"},
		{Header: "KIND"},
		{Header: "SPAN"},
		{Header: "DETAIL"},
		{Header: "TEXT", Flex: true},
	}
	rows := make([][]string, 0, len(tokens))
	for i, t := range tokens {
		rows = append(rows, []string{
			strconv.Itoa(i),
			styles.TokenKind.Render(t.Kind.String()),
			fmt.Sprintf("%d-%d", t.Begin, t.End),
			detail(t),
			strconv.Quote(t.Text(doc)),
		})
	}
	fmt.Fprint(bw, styles.FormatTable(columns, rows, width))
	return nil
}

func toJSONToken(doc []rune, t token.Token) JSONToken {
	out := JSONToken{
		Kind:  t.Kind,
		Begin: t.Begin,
		End:   t.End,
		Text:  t.Text(doc),
	}
	switch t.Kind {
	case token.Checkbutton:
		checked := t.Checked
		out.Checked = &checked
	case token.Whitespace:
		out.Char = string(t.Char)
	case token.TableColumn:
		out.Align = t.Align.String()
	case token.Heading:
		out.Level = t.Level()
	default:
	}
	return out
}

// detail renders the kind-specific payload of t.
func detail(t token.Token) string {
	switch t.Kind {
	case token.Checkbutton:
		if t.Checked {
			return "checked"
		}
		return "unchecked"
	case token.Whitespace:
		return fmt.Sprintf("U+%04X", t.Char)
	case token.TableColumn:
		return t.Align.String()
	case token.Heading:
		return "level " + strconv.Itoa(t.Level())
	default:
		return ""
	}
}
