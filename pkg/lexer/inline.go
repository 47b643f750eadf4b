package lexer

import "github.com/yaklabco/gomdhtml/pkg/token"

// scanStop says why scanTo returned.
type scanStop int

const (
	stopDelim scanStop = iota
	stopNewline
	stopEOF
)

// scanTo consumes characters up to and including delim, stopping early at a
// newline or the end of input.
func (l *lexer) scanTo(delim rune) (Char, scanStop) {
	for {
		v, ok := l.cur.Advance()
		switch {
		case !ok:
			return Char{Index: l.cur.Len()}, stopEOF
		case v.Value == delim:
			return v, stopDelim
		case v.Value == '\n':
			return v, stopNewline
		}
	}
}

// matchCheckbutton handles "- ". The literal "- [ ] " or "- [x] " is a
// checkbox; otherwise a bullet at line start opens a list.
func (l *lexer) matchCheckbutton(c Char) {
	switch {
	case l.cur.HasPrefixAt(c.Index+2, "[ ] "):
		l.emit(token.NewCheckbutton(false, c.Index, c.Index+6))
		l.cur.Skip(5)
	case l.cur.HasPrefixAt(c.Index+2, "[x] "):
		l.emit(token.NewCheckbutton(true, c.Index, c.Index+6))
		l.cur.Skip(5)
	case l.cur.AtLineStart(c.Index):
		l.matchList(c)
	default:
		l.emit(token.Single(token.Text, c.Index))
	}
}

// matchImage handles '!'. Only "![" starts an image.
func (l *lexer) matchImage(c Char) {
	if next, ok := l.cur.Peek(); !ok || next.Value != '[' {
		l.emit(token.Single(token.Text, c.Index))
		return
	}
	l.cur.Skip(1)
	l.matchBracketPair(c, c.Index+2, token.ImageAlt, token.ImageSrc)
}

// matchLink handles '['.
func (l *lexer) matchLink(c Char) {
	l.matchBracketPair(c, c.Index+1, token.LinkText, token.LinkHref)
}

// matchBracketPair scans "label](target)" for an image or link opened at c.
// The label starts at labelBegin.
func (l *lexer) matchBracketPair(c Char, labelBegin int, labelKind, targetKind token.Kind) {
	closeLabel, stop := l.scanTo(']')
	if l.unterminated(c, closeLabel, stop) {
		return
	}
	if next, ok := l.cur.Peek(); !ok || next.Value != '(' {
		l.emit(token.New(token.Text, c.Index, closeLabel.Index+1))
		return
	}
	l.cur.Skip(1)

	closeTarget, stop := l.scanTo(')')
	if l.unterminated(c, closeTarget, stop) {
		return
	}
	l.emit(
		token.New(labelKind, labelBegin, closeLabel.Index),
		token.New(targetKind, closeLabel.Index+2, closeTarget.Index),
	)
}

// unterminated emits the fallback for a bracket construct opened at c whose
// scan ended at stop. A newline makes the scanned span an Error; the end of
// input makes the whole attempt Text.
func (l *lexer) unterminated(c, at Char, stop scanStop) bool {
	switch stop {
	case stopNewline:
		l.emit(token.New(token.Error, c.Index, at.Index))
		l.emitNewline(at.Index)
		return true
	case stopEOF:
		l.emit(token.New(token.Text, c.Index, l.cur.Len()))
		return true
	case stopDelim:
	}
	return false
}

// matchCode handles a single backtick. A backtick directly after another
// one is Text; an unclosed span is Text up to the end of input.
func (l *lexer) matchCode(c Char) {
	if l.cur.At(c.Index-1) == '`' {
		l.emit(token.Single(token.Text, c.Index))
		return
	}
	for {
		v, ok := l.cur.Advance()
		if !ok {
			l.emit(token.New(token.Text, c.Index, l.cur.Len()))
			return
		}
		if v.Value == '`' {
			l.emit(token.New(token.Code, c.Index+1, v.Index))
			return
		}
	}
}

// matchEscape handles a backslash. The escaped character is consumed as Text
// so it never reaches another matcher.
func (l *lexer) matchEscape(c Char) {
	next, ok := l.cur.Peek()
	if !ok || next.Value == '\n' {
		l.emit(token.Single(token.Text, c.Index))
		return
	}
	l.cur.Skip(1)
	l.emit(
		token.Single(token.Escape, c.Index),
		token.Single(token.Text, next.Index),
	)
}
