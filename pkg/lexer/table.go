package lexer

import (
	"slices"

	"github.com/yaklabco/gomdhtml/pkg/token"
)

// minSeparatorDashes is the shortest dash run accepted in a separator cell.
const minSeparatorDashes = 3

// TableState tracks a header row that is waiting for its separator row.
type TableState struct {
	headerIndex int
	pending     bool
}

// Open records the stream position of a candidate header row.
func (s *TableState) Open(index int) {
	s.headerIndex = index
	s.pending = true
}

// Reset forgets any pending header row.
func (s *TableState) Reset() {
	s.pending = false
	s.headerIndex = 0
}

// Pending reports whether a header row is waiting for its separator.
func (s *TableState) Pending() bool {
	return s.pending
}

// HeaderIndex returns the stream position where column tokens are inserted.
func (s *TableState) HeaderIndex() int {
	return s.headerIndex
}

// matchTableRow handles a '|' at line start. A separator row directly after
// a header row resolves the column alignments; any other row is plain text
// and becomes the new candidate header.
func (l *lexer) matchTableRow(c Char) {
	if l.table.Pending() && l.isSeparatorRow(c.Index) {
		l.resolveTable(c)
		return
	}
	l.table.Open(len(l.tokens))
	l.emit(token.Single(token.Text, c.Index))
}

// isSeparatorRow reports whether the row starting at the pipe at i opens with
// a separator cell.
func (l *lexer) isSeparatorRow(i int) bool {
	j := i + 1
	if l.cur.At(j) == ' ' {
		j++
	}
	r := l.cur.At(j)
	return r == '-' || r == ':'
}

// resolveTable scans the separator row whose leading pipe is c. On success
// one TableColumn token per cell is inserted ahead of the header row and the
// row, including its newline, is consumed. A malformed cell turns the row
// into a single Error token.
func (l *lexer) resolveTable(c Char) {
	cols, end, ok := l.scanSeparator(c.Index)
	if !ok {
		l.table.Reset()
		lineEnd := l.cur.LineEnd(c.Index)
		l.emit(token.New(token.Error, c.Index, lineEnd))
		l.cur.Skip(lineEnd - l.cur.Index())
		return
	}

	l.tokens = slices.Insert(l.tokens, l.table.HeaderIndex(), cols...)
	l.table.Reset()
	if l.cur.At(end) == '\n' {
		end++
	}
	l.cur.Skip(end - l.cur.Index())
}

// scanSeparator reads the cells of the separator row whose pipe is at start.
// It returns the column tokens and the index just past the final pipe.
func (l *lexer) scanSeparator(start int) ([]token.Token, int, bool) {
	var cols []token.Token
	i := start + 1

	for {
		cellBegin := i
		align := token.AlignLeftOrRight
		if l.cur.At(i) == ' ' {
			i++
		}
		if l.cur.At(i) == ':' {
			align = token.AlignLeftOrCenter
			i++
		}

		dashes := 0
		for l.cur.At(i) == '-' {
			dashes++
			i++
		}
		if dashes < minSeparatorDashes {
			return nil, i, false
		}

		switch l.cur.At(i) {
		case ':':
			align = resolveAlignment(align, true)
			i++
			if l.cur.At(i) == ' ' {
				i++
			}
		case ' ':
			align = resolveAlignment(align, false)
			i++
		case '|':
			align = resolveAlignment(align, false)
		default:
			return nil, i, false
		}

		if l.cur.At(i) != '|' {
			return nil, i, false
		}
		cols = append(cols, token.NewTableColumn(align, cellBegin, i))
		i++

		switch l.cur.At(i) {
		case '\n', 0:
			return cols, i, true
		}
	}
}

// resolveAlignment settles a pending alignment once the character after the
// dash run is known. A trailing colon makes a leading space Right and a
// leading colon Center; anything else is Left.
func resolveAlignment(pending token.Alignment, trailingColon bool) token.Alignment {
	if !trailingColon {
		return token.AlignLeft
	}
	if pending == token.AlignLeftOrCenter {
		return token.AlignCenter
	}
	return token.AlignRight
}
