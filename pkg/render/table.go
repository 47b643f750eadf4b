package render

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdhtml/pkg/token"
)

// table renders a resolved table. The TableColumn run sits ahead of the
// header row; every following row that starts with a pipe belongs to the
// table.
func (p *pass) table(first token.Token) {
	cols := []token.Token{first}
	for {
		col, ok := p.nextIf(token.TableColumn)
		if !ok {
			break
		}
		cols = append(cols, col)
	}

	var b strings.Builder
	b.WriteString("<table>\n<colgroup>")
	for _, col := range cols {
		fmt.Fprintf(&b, `<col style="text-align: %s">`, col.Align)
	}
	b.WriteString("</colgroup>\n")
	p.emit(b.String())

	p.row("th", cols)
	for p.atRow() {
		p.row("td", cols)
	}
	p.emit("</table>\n")
}

// isPipe reports whether t is a '|' cell separator.
func (p *pass) isPipe(t token.Token) bool {
	return t.Kind == token.Text && t.Len() == 1 && p.doc[t.Begin] == '|'
}

// atRow reports whether the next token opens another table row.
func (p *pass) atRow() bool {
	t, ok := p.peek()
	return ok && p.isPipe(t) && (t.Begin == 0 || p.doc[t.Begin-1] == '\n')
}

// row renders one table row and consumes its trailing newline.
func (p *pass) row(cell string, cols []token.Token) {
	cellEnd := func(t token.Token) bool {
		return t.Kind == token.Newline || p.isPipe(t)
	}

	if t, ok := p.peek(); ok && p.isPipe(t) {
		p.pos++
	}

	var b strings.Builder
	b.WriteString("<tr>")
	for i := 0; ; i++ {
		if t, ok := p.peek(); !ok || t.Kind == token.Newline {
			break
		}
		content := strings.TrimSpace(p.capture(cellEnd))

		closed := false
		if t, ok := p.peek(); ok && p.isPipe(t) {
			p.pos++
			closed = true
		}
		if !closed && content == "" {
			break
		}

		style := ""
		if i < len(cols) {
			style = fmt.Sprintf(` style="text-align: %s"`, cols[i].Align)
		}
		fmt.Fprintf(&b, "<%s%s>%s</%s>", cell, style, content, cell)
	}
	b.WriteString("</tr>\n")
	p.emit(b.String())
	p.skipNewline()
}
