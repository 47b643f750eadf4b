// Package lexer turns a markdown document into a token stream in a single
// left-to-right pass.
//
// Each construct has its own matcher. Matchers read through a Cursor, look
// at most a few characters ahead, and use the previous character for
// line-start context. Nothing a matcher consumes is looked at again by the
// driver.
//
// Malformed input never fails the scan. Most constructs quietly fall back to
// Text; unterminated links and images, over-deep headings and malformed
// table separator cells produce Error tokens that the renderer shows inline.
//
// Emphasis state is global to one Tokenize call. Emphasis opened inside a
// blockquote or list item can be closed after it, which may produce
// improperly nested HTML.
package lexer

import "github.com/yaklabco/gomdhtml/pkg/token"

// lexer holds the state of one Tokenize call.
type lexer struct {
	cur      *Cursor
	tokens   []token.Token
	emphasis EmphasisState
	lists    ListState
	table    TableState
}

// Tokenize scans text and returns its token stream. Token offsets are rune
// indices into text. Tokenize is total: it returns a stream for any input.
func Tokenize(text string) []token.Token {
	return TokenizeRunes([]rune(text))
}

// TokenizeRunes is Tokenize for a document that is already a rune slice.
func TokenizeRunes(doc []rune) []token.Token {
	l := &lexer{
		cur:    NewCursor(doc),
		tokens: make([]token.Token, 0, len(doc)/2),
	}
	for {
		c, ok := l.cur.Advance()
		if !ok {
			return l.tokens
		}
		l.dispatch(c)
	}
}

// dispatch routes the character just consumed to its matcher.
func (l *lexer) dispatch(c Char) {
	next, hasNext := l.cur.Peek()
	nextIs := func(r rune) bool { return hasNext && next.Value == r }

	switch c.Value {
	case '#':
		l.matchHeading(c)
	case '-':
		switch {
		case nextIs('-'):
			l.matchHorizontalRule(c)
		case nextIs(' '):
			l.matchCheckbutton(c)
		default:
			l.emit(token.Single(token.Text, c.Index))
		}
	case '+':
		if nextIs(' ') && l.cur.AtLineStart(c.Index) {
			l.matchList(c)
			return
		}
		l.emit(token.Single(token.Text, c.Index))
	case '*':
		if nextIs(' ') && l.cur.AtLineStart(c.Index) && !l.emphasis.Italic {
			l.matchList(c)
			return
		}
		l.matchEmphasis(c)
	case '~', '_':
		l.matchEmphasis(c)
	case '!':
		l.matchImage(c)
	case '[':
		l.matchLink(c)
	case '>':
		l.matchBlockquote(c)
	case '`':
		if nextIs('`') {
			l.matchCodeBlock(c)
			return
		}
		l.matchCode(c)
	case ' ':
		if nextIs(' ') {
			l.matchIndentBlock(c)
			return
		}
		l.emit(token.Single(token.Space, c.Index))
	case '|':
		if l.cur.AtLineStart(c.Index) {
			l.matchTableRow(c)
			return
		}
		l.emit(token.Single(token.Text, c.Index))
	case '\n':
		l.emitNewline(c.Index)
	case '\t':
		l.emit(token.Single(token.Tab, c.Index))
	case '\\':
		l.matchEscape(c)
	default:
		l.emit(token.Single(token.Text, c.Index))
	}
}

func (l *lexer) emit(toks ...token.Token) {
	l.tokens = append(l.tokens, toks...)
}

// emitNewline emits a Newline at i. A pending table header only survives a
// newline that is followed by another row.
func (l *lexer) emitNewline(i int) {
	l.emit(token.Single(token.Newline, i))
	if l.cur.At(i+1) != '|' {
		l.table.Reset()
	}
}

// endsWith reports whether the last emitted token has the given kind.
func (l *lexer) endsWith(kind token.Kind) bool {
	return len(l.tokens) > 0 && l.tokens[len(l.tokens)-1].Kind == kind
}
