// Package token defines the token stream shared by the lexer and the renderer.
//
// A token never copies text. It classifies a half-open range [Begin, End) of
// character (rune) indices into the source document.
package token

// Token represents a classified span of characters in the source document.
type Token struct {
	// Kind classifies what this token represents.
	Kind Kind

	// Begin is the rune index where this token begins (inclusive).
	Begin int

	// End is the rune index where this token ends (exclusive).
	End int

	// Checked is the payload of a Checkbutton token.
	Checked bool

	// Char is the payload of a Whitespace token.
	Char rune

	// Align is the payload of a TableColumn token.
	Align Alignment
}

// New returns a token spanning [begin, end).
func New(kind Kind, begin, end int) Token {
	return Token{Kind: kind, Begin: begin, End: end}
}

// Single returns a one-character token starting at begin.
func Single(kind Kind, begin int) Token {
	return Token{Kind: kind, Begin: begin, End: begin + 1}
}

// Double returns a two-character delimiter token starting at begin.
func Double(kind Kind, begin int) Token {
	return Token{Kind: kind, Begin: begin, End: begin + 2}
}

// NewCheckbutton returns a Checkbutton token carrying its checked state.
func NewCheckbutton(checked bool, begin, end int) Token {
	return Token{Kind: Checkbutton, Begin: begin, End: end, Checked: checked}
}

// NewWhitespace returns a one-character Whitespace token carrying the character.
func NewWhitespace(char rune, begin int) Token {
	return Token{Kind: Whitespace, Begin: begin, End: begin + 1, Char: char}
}

// NewTableColumn returns a TableColumn token carrying a resolved alignment.
func NewTableColumn(align Alignment, begin, end int) Token {
	return Token{Kind: TableColumn, Begin: begin, End: end, Align: align}
}

// Text returns the source text of this token from the given document.
// An out-of-range token yields the empty string.
func (t Token) Text(doc []rune) string {
	if t.Begin < 0 || t.End > len(doc) || t.Begin > t.End {
		return ""
	}
	return string(doc[t.Begin:t.End])
}

// Len returns the length of this token in characters.
func (t Token) Len() int {
	return t.End - t.Begin
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return t.Begin == t.End
}

// Level returns the heading level of a Heading or over-deep heading Error token.
func (t Token) Level() int {
	return t.Len()
}

// ValidateOrder checks the ordering invariant of a token stream:
//   - every token satisfies Begin <= End
//   - Begin values are non-decreasing across in-band tokens (see Kind.IsOutOfBand)
//
// Unlike a tiling tokenizer, the stream is not required to cover every
// character: boundary tokens may share the range of adjacent content.
func ValidateOrder(tokens []Token) bool {
	last := 0
	for _, tok := range tokens {
		if tok.Begin > tok.End {
			return false
		}
		if tok.Kind.IsOutOfBand() {
			continue
		}
		if tok.Begin < last {
			return false
		}
		last = tok.Begin
	}
	return true
}

// Count returns how many tokens of the given kinds appear in the stream.
func Count(tokens []Token, kinds ...Kind) int {
	n := 0
	for _, tok := range tokens {
		for _, k := range kinds {
			if tok.Kind == k {
				n++
				break
			}
		}
	}
	return n
}
