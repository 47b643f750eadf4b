package lexer

// Char is a character of the document together with its rune index.
type Char struct {
	Index int
	Value rune
}

// Cursor is a forward-only, peekable iterator over the characters of a
// document. It is the only way matchers read input.
type Cursor struct {
	doc []rune
	pos int // index of the next unconsumed character
}

// NewCursor creates a cursor positioned at the first character of doc.
func NewCursor(doc []rune) *Cursor {
	return &Cursor{doc: doc}
}

// Peek returns the next character without consuming it.
func (c *Cursor) Peek() (Char, bool) {
	return c.PeekAt(0)
}

// PeekAt returns the character offset positions past the next one without
// consuming anything. PeekAt(0) is equivalent to Peek.
func (c *Cursor) PeekAt(offset int) (Char, bool) {
	i := c.pos + offset
	if offset < 0 || i >= len(c.doc) {
		return Char{}, false
	}
	return Char{Index: i, Value: c.doc[i]}, true
}

// Advance consumes and returns the next character.
func (c *Cursor) Advance() (Char, bool) {
	if c.pos >= len(c.doc) {
		return Char{}, false
	}
	ch := Char{Index: c.pos, Value: c.doc[c.pos]}
	c.pos++
	return ch, true
}

// Skip consumes up to n characters.
func (c *Cursor) Skip(n int) {
	if n <= 0 {
		return
	}
	c.pos = min(c.pos+n, len(c.doc))
}

// Index returns the index of the next unconsumed character. Once the
// cursor is exhausted it equals the document length.
func (c *Cursor) Index() int {
	return c.pos
}

// LastIndex returns the index of the most recently consumed character,
// or -1 if nothing has been consumed.
func (c *Cursor) LastIndex() int {
	return c.pos - 1
}

// Len returns the document length in characters.
func (c *Cursor) Len() int {
	return len(c.doc)
}

// At returns the character at absolute index i, or 0 when out of range.
// It never moves the cursor.
func (c *Cursor) At(i int) rune {
	if i < 0 || i >= len(c.doc) {
		return 0
	}
	return c.doc[i]
}

// AtLineStart reports whether index i is the first character of the
// document or directly follows a newline.
func (c *Cursor) AtLineStart(i int) bool {
	return i == 0 || c.At(i-1) == '\n'
}

// HasPrefixAt reports whether the document contains lit starting at index i.
func (c *Cursor) HasPrefixAt(i int, lit string) bool {
	for _, r := range lit {
		if i < 0 || i >= len(c.doc) || c.doc[i] != r {
			return false
		}
		i++
	}
	return true
}

// LineEnd returns the index of the newline terminating the line that
// contains index i, or the document length for the last line.
func (c *Cursor) LineEnd(i int) int {
	for ; i < len(c.doc); i++ {
		if c.doc[i] == '\n' {
			return i
		}
	}
	return len(c.doc)
}
