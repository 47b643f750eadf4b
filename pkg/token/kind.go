package token

import "fmt"

// Kind classifies the type of a token in the source document.
type Kind uint8

// Token kinds. Kinds without payload take their meaning from the source
// slice [Begin, End); Heading carries its level as End-Begin.
const (
	Newline Kind = iota
	Tab
	Space
	Heading
	Text
	Error
	Whitespace  // payload: Char
	Checkbutton // payload: Checked
	ImageAlt
	ImageSrc
	LinkText
	LinkHref
	HorizontalRule
	BlockquoteBegin
	BlockquoteEnd
	Code
	CodeBlockBegin
	CodeBlockLanguage
	CodeBlockEnd
	IndentBlock
	BoldBegin
	BoldEnd
	ItalicBegin
	ItalicEnd
	StrikeBegin
	StrikeEnd
	UnderlineBegin
	UnderlineEnd
	Escape
	TableColumn // payload: Align
	ListBegin
	ListEnd
	ListItemBegin

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	Newline:           "Newline",
	Tab:               "Tab",
	Space:             "Space",
	Heading:           "Heading",
	Text:              "Text",
	Error:             "Error",
	Whitespace:        "Whitespace",
	Checkbutton:       "Checkbutton",
	ImageAlt:          "ImageAlt",
	ImageSrc:          "ImageSrc",
	LinkText:          "LinkText",
	LinkHref:          "LinkHref",
	HorizontalRule:    "HorizontalRule",
	BlockquoteBegin:   "BlockquoteBegin",
	BlockquoteEnd:     "BlockquoteEnd",
	Code:              "Code",
	CodeBlockBegin:    "CodeBlockBegin",
	CodeBlockLanguage: "CodeBlockLanguage",
	CodeBlockEnd:      "CodeBlockEnd",
	IndentBlock:       "IndentBlock",
	BoldBegin:         "BoldBegin",
	BoldEnd:           "BoldEnd",
	ItalicBegin:       "ItalicBegin",
	ItalicEnd:         "ItalicEnd",
	StrikeBegin:       "StrikeBegin",
	StrikeEnd:         "StrikeEnd",
	UnderlineBegin:    "UnderlineBegin",
	UnderlineEnd:      "UnderlineEnd",
	Escape:            "Escape",
	TableColumn:       "TableColumn",
	ListBegin:         "ListBegin",
	ListEnd:           "ListEnd",
	ListItemBegin:     "ListItemBegin",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler so kinds appear by name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsOutOfBand reports whether tokens of this kind describe a range that was
// already covered by earlier tokens in the stream. BlockquoteEnd spans the
// whole quoted region; TableColumn tokens are inserted ahead of the header
// row once the separator row resolves.
func (k Kind) IsOutOfBand() bool {
	return k == BlockquoteEnd || k == TableColumn
}

// Alignment is the resolved text alignment of a table column.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight

	// AlignLeftOrRight and AlignLeftOrCenter are pending states used while a
	// separator cell is being scanned. They never appear in a finished stream.
	AlignLeftOrRight
	AlignLeftOrCenter
)

// String returns the CSS text-align value of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignLeftOrRight:
		return "left-or-right"
	case AlignLeftOrCenter:
		return "left-or-center"
	default:
		return fmt.Sprintf("Alignment(%d)", uint8(a))
	}
}

// IsResolved reports whether the alignment is a final value.
func (a Alignment) IsResolved() bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}
