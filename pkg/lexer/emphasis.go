package lexer

import "github.com/yaklabco/gomdhtml/pkg/token"

// EmphasisState holds the open/closed flag of each emphasis family.
//
// The state belongs to a whole Tokenize call, not to a block: emphasis
// opened inside a blockquote or list item may be closed after it ends.
type EmphasisState struct {
	Bold      bool
	Italic    bool
	Strike    bool
	Underline bool
}

// toggle flips the flag and returns the begin or end kind for the new state.
func toggle(open *bool, begin, end token.Kind) token.Kind {
	*open = !*open
	if *open {
		return begin
	}
	return end
}

// ToggleBold toggles bold and returns the delimiter kind to emit.
func (s *EmphasisState) ToggleBold() token.Kind {
	return toggle(&s.Bold, token.BoldBegin, token.BoldEnd)
}

// ToggleItalic toggles italic and returns the delimiter kind to emit.
func (s *EmphasisState) ToggleItalic() token.Kind {
	return toggle(&s.Italic, token.ItalicBegin, token.ItalicEnd)
}

// ToggleStrike toggles strike-through and returns the delimiter kind to emit.
func (s *EmphasisState) ToggleStrike() token.Kind {
	return toggle(&s.Strike, token.StrikeBegin, token.StrikeEnd)
}

// ToggleUnderline toggles underline and returns the delimiter kind to emit.
func (s *EmphasisState) ToggleUnderline() token.Kind {
	return toggle(&s.Underline, token.UnderlineBegin, token.UnderlineEnd)
}

// AnyOpen reports whether any family is currently open.
func (s *EmphasisState) AnyOpen() bool {
	return s.Bold || s.Italic || s.Strike || s.Underline
}

// matchEmphasis handles c, which is one of '*', '~' or '_'.
func (l *lexer) matchEmphasis(c Char) {
	next, ok := l.cur.Peek()
	doubled := ok && next.Value == c.Value

	switch c.Value {
	case '*':
		if doubled {
			l.cur.Skip(1)
			l.emit(token.Double(l.emphasis.ToggleBold(), c.Index))
			return
		}
		if !ok && !l.emphasis.Italic {
			// A trailing '*' can close italic but never open it.
			l.emit(token.Single(token.Text, c.Index))
			return
		}
		l.emit(token.Single(l.emphasis.ToggleItalic(), c.Index))
	case '~':
		if !doubled {
			l.emit(token.Single(token.Text, c.Index))
			return
		}
		l.cur.Skip(1)
		l.emit(token.Double(l.emphasis.ToggleStrike(), c.Index))
	case '_':
		if !doubled {
			l.emit(token.Single(token.Text, c.Index))
			return
		}
		l.cur.Skip(1)
		l.emit(token.Double(l.emphasis.ToggleUnderline(), c.Index))
	default:
		l.emit(token.Single(token.Text, c.Index))
	}
}
