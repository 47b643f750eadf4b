package lexer

import "github.com/yaklabco/gomdhtml/pkg/token"

// listLevel is one open list: the kind that closes it and its nesting depth.
type listLevel struct {
	closing token.Kind
	depth   int
}

// ListState is the stack of currently open list levels.
type ListState struct {
	levels []listLevel
}

// Push opens a new level.
func (s *ListState) Push(closing token.Kind, depth int) {
	s.levels = append(s.levels, listLevel{closing: closing, depth: depth})
}

// Pop closes the innermost level and returns its closing kind.
func (s *ListState) Pop() (token.Kind, bool) {
	if len(s.levels) == 0 {
		return 0, false
	}
	top := s.levels[len(s.levels)-1]
	s.levels = s.levels[:len(s.levels)-1]
	return top.closing, true
}

// Len returns the number of open levels.
func (s *ListState) Len() int {
	return len(s.levels)
}

// Depth returns the depth of the innermost level, or -1 when no list is open.
func (s *ListState) Depth() int {
	if len(s.levels) == 0 {
		return -1
	}
	return s.levels[len(s.levels)-1].depth
}

// CloseAll pops every level, innermost first, and returns one zero-width
// end token per level positioned at at.
func (s *ListState) CloseAll(at int) []token.Token {
	out := make([]token.Token, 0, len(s.levels))
	for {
		kind, ok := s.Pop()
		if !ok {
			return out
		}
		out = append(out, token.New(kind, at, at))
	}
}

// CloseTo pops levels deeper than depth, keeping the outermost level open.
func (s *ListState) CloseTo(depth, at int) []token.Token {
	var out []token.Token
	for len(s.levels) > 1 && s.Depth() > depth {
		kind, _ := s.Pop()
		out = append(out, token.New(kind, at, at))
	}
	return out
}

// bulletAt looks for a list bullet on the line starting at i. It returns the
// indentation width and the bullet index, or a negative index when the line
// is not a list item.
func (l *lexer) bulletAt(i int) (int, int) {
	indent := 0
	for l.cur.At(i+indent) == ' ' {
		indent++
	}
	b := i + indent
	switch l.cur.At(b) {
	case '-', '*', '+':
		if l.cur.At(b+1) == ' ' {
			return indent, b
		}
	}
	return indent, -1
}

// matchList opens a list at bullet c. The cursor sits on the space after it.
func (l *lexer) matchList(c Char) {
	l.lists.Push(token.ListEnd, 0)
	l.emit(token.Double(token.ListBegin, c.Index))
	l.startItem(c.Index)

	for {
		v, ok := l.cur.Advance()
		if !ok {
			l.emit(l.lists.CloseAll(l.cur.Len())...)
			return
		}

		switch v.Value {
		case '\n':
			if !l.listLineBreak(v.Index, false) {
				return
			}
		case '[', '!':
			if v.Value == '[' {
				l.matchLink(v)
			} else {
				l.matchImage(v)
			}
			if l.endsWith(token.Newline) && !l.listLineBreak(l.cur.LastIndex(), true) {
				return
			}
		case '*', '~', '_':
			l.matchEmphasis(v)
		case '`':
			if next, ok := l.cur.Peek(); ok && next.Value == '`' {
				l.emit(token.Single(token.Text, v.Index))
				continue
			}
			l.matchCode(v)
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

// startItem emits ListItemBegin for the bullet at b and moves the cursor past
// "b ", plus a task checkbox when the item starts with one.
func (l *lexer) startItem(b int) {
	l.emit(token.Double(token.ListItemBegin, b))
	l.cur.Skip(b + 2 - l.cur.Index())

	switch {
	case l.cur.HasPrefixAt(b+2, "[ ] "):
		l.emit(token.NewCheckbutton(false, b, b+6))
		l.cur.Skip(4)
	case l.cur.HasPrefixAt(b+2, "[x] "):
		l.emit(token.NewCheckbutton(true, b, b+6))
		l.cur.Skip(4)
	}
}

// listLineBreak handles the newline at nl inside a list. It reports whether
// the list continues. emitted is true when a delegated matcher already
// produced the Newline token.
func (l *lexer) listLineBreak(nl int, emitted bool) bool {
	next, ok := l.cur.Peek()
	if !ok {
		l.emit(l.lists.CloseAll(l.cur.Len())...)
		return false
	}
	if next.Value == '\n' {
		l.emit(l.lists.CloseAll(next.Index)...)
		return false
	}

	indent, b := l.bulletAt(next.Index)
	if b < 0 {
		if !emitted {
			l.emit(token.Single(token.Newline, nl))
		}
		return true
	}

	depth := indent / 2
	switch {
	case depth > l.lists.Depth():
		l.lists.Push(token.ListEnd, depth)
		l.emit(token.Double(token.ListBegin, b))
	case depth < l.lists.Depth():
		l.emit(l.lists.CloseTo(depth, b)...)
	}
	l.startItem(b)
	return true
}
