package lexer

import "github.com/yaklabco/gomdhtml/pkg/token"

const (
	// MaxHeadingLevel is the deepest heading HTML can express.
	MaxHeadingLevel = 6

	// indentPrefix opens and continues an indented code block.
	indentPrefix = "    "

	codeFence = "```"
)

// matchHeading handles a '#'. At line start a run of '#' followed by a space
// is a heading; a run longer than MaxHeadingLevel is an Error of the same
// span. Any other character turns the run into a hashtag-like Text word.
func (l *lexer) matchHeading(c Char) {
	if !l.cur.AtLineStart(c.Index) {
		l.emit(token.Single(token.Text, c.Index))
		return
	}

	level := 1
	for {
		v, ok := l.cur.Advance()
		if !ok {
			l.emit(token.New(token.Text, c.Index, c.Index+level))
			return
		}

		switch v.Value {
		case '#':
			level++
		case ' ':
			kind := token.Heading
			if level > MaxHeadingLevel {
				kind = token.Error
			}
			l.emit(
				token.New(kind, c.Index, c.Index+level),
				token.Single(token.Space, v.Index),
			)
			return
		default:
			l.matchWord(c.Index, v)
			return
		}
	}
}

// matchWord emits the run from begin up to the next whitespace as one Text
// token. v is the first character already consumed after begin.
func (l *lexer) matchWord(begin int, v Char) {
	for {
		switch v.Value {
		case ' ', '\t':
			l.emit(
				token.New(token.Text, begin, v.Index),
				token.NewWhitespace(v.Value, v.Index),
			)
			return
		case '\n':
			l.emit(token.New(token.Text, begin, v.Index))
			l.emitNewline(v.Index)
			return
		}

		var ok bool
		v, ok = l.cur.Advance()
		if !ok {
			l.emit(token.New(token.Text, begin, l.cur.Len()))
			return
		}
	}
}

// matchHorizontalRule handles "--". Exactly "---" at line start followed by a
// newline is a rule that owns the newline; anything else is Text.
func (l *lexer) matchHorizontalRule(c Char) {
	l.cur.Skip(1)
	if third, ok := l.cur.Peek(); !ok || third.Value != '-' {
		l.emit(token.New(token.Text, c.Index, c.Index+2))
		return
	}
	l.cur.Skip(1)

	nl, ok := l.cur.Peek()
	if !ok || nl.Value != '\n' || !l.cur.AtLineStart(c.Index) {
		l.emit(token.New(token.Text, c.Index, c.Index+3))
		return
	}
	l.cur.Skip(1)
	l.emit(token.New(token.HorizontalRule, c.Index, nl.Index+1))
}

// matchBlockquote handles a '>'. The quote runs until a blank line or the end
// of input. Continuation lines may repeat the '>' marker.
func (l *lexer) matchBlockquote(c Char) {
	if !l.cur.AtLineStart(c.Index) {
		l.emit(token.Single(token.Text, c.Index))
		return
	}

	l.emit(token.Single(token.BlockquoteBegin, c.Index))
	for {
		v, ok := l.cur.Advance()
		if !ok {
			l.emit(token.New(token.BlockquoteEnd, c.Index+1, l.cur.Len()))
			return
		}

		switch v.Value {
		case '\n':
			next, ok := l.cur.Peek()
			if !ok || next.Value == '\n' {
				l.emit(token.New(token.BlockquoteEnd, c.Index+1, v.Index))
				return
			}
			l.emitNewline(v.Index)
			if next.Value == '>' {
				l.cur.Skip(1)
			}
		case '*', '~', '_':
			l.matchEmphasis(v)
		case '\\':
			l.matchEscape(v)
		case ' ':
			l.emit(token.Single(token.Space, v.Index))
		case '\t':
			l.emit(token.Single(token.Tab, v.Index))
		default:
			l.emit(token.Single(token.Text, v.Index))
		}
	}
}

// matchCodeBlock handles "``". A fence at line start opens a block whose
// first line is the language tag. The block ends at a fence followed by a
// newline or the end of input; without one the body degrades to Text.
func (l *lexer) matchCodeBlock(c Char) {
	if !l.cur.AtLineStart(c.Index) {
		l.emit(token.Single(token.Text, c.Index))
		return
	}
	l.cur.Skip(1)
	if third, ok := l.cur.Peek(); !ok || third.Value != '`' {
		l.emit(token.New(token.Text, c.Index, c.Index+2))
		return
	}
	l.cur.Skip(1)
	l.emit(token.New(token.CodeBlockBegin, c.Index, c.Index+len(codeFence)))

	langBegin := l.cur.Index()
	for {
		v, ok := l.cur.Advance()
		if !ok {
			if langBegin < l.cur.Len() {
				l.emit(token.New(token.Text, langBegin, l.cur.Len()))
			}
			return
		}
		if v.Value == '\n' {
			l.emit(token.New(token.CodeBlockLanguage, langBegin, v.Index+1))
			break
		}
	}

	bodyBegin := l.cur.Index()
	for {
		v, ok := l.cur.Advance()
		if !ok {
			if bodyBegin < l.cur.Len() {
				l.emit(token.New(token.Text, bodyBegin, l.cur.Len()))
			}
			return
		}
		if v.Value != '`' || !l.cur.HasPrefixAt(v.Index, codeFence) {
			continue
		}

		after := v.Index + len(codeFence)
		switch {
		case after == l.cur.Len():
			l.emit(token.New(token.CodeBlockEnd, bodyBegin, v.Index))
			l.cur.Skip(len(codeFence) - 1)
			return
		case l.cur.At(after) == '\n':
			l.emit(token.New(token.CodeBlockEnd, bodyBegin, v.Index))
			l.cur.Skip(len(codeFence))
			l.emitNewline(after)
			return
		}
	}
}

// matchIndentBlock handles two spaces. Four spaces at line start open an
// indented block that extends over every following line with the same
// prefix. Spaces that do not open a block are plain Space tokens.
func (l *lexer) matchIndentBlock(c Char) {
	if !l.cur.AtLineStart(c.Index) || !l.cur.HasPrefixAt(c.Index, indentPrefix) {
		l.emit(token.Single(token.Space, c.Index))
		return
	}

	end := l.cur.LineEnd(c.Index)
	for l.cur.At(end) == '\n' && l.cur.HasPrefixAt(end+1, indentPrefix) {
		end = l.cur.LineEnd(end + 1)
	}
	l.emit(token.New(token.IndentBlock, c.Index, end))
	l.cur.Skip(end - l.cur.Index())
}
