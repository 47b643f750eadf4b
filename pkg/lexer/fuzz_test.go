package lexer

import (
	"testing"
	"unicode/utf8"

	"github.com/yaklabco/gomdhtml/pkg/token"
)

// FuzzTokenize fuzzes the lexer with random input.
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"",
		"# Heading",
		"####### too deep",
		"- [ ] task\n- [x] done",
		"- a\n  - b\n\n",
		"> quote *em*",
		"```go\ncode\n```\n",
		"```\nunterminated",
		"    indented\n    more",
		"**b** *i* ~~s~~ __u__",
		"[link](url) ![img](src)",
		"[broken(\n",
		"---\n",
		"| a | b |\n| :---: | ---: |\n",
		"| a |\n| -x- |\n",
		`\*escaped\*`,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data string) {
		if !utf8.ValidString(data) {
			t.Skip()
		}

		tokens := Tokenize(data)
		n := utf8.RuneCountInString(data)

		if n > 0 && len(tokens) == 0 {
			t.Error("expected tokens for non-empty input")
		}
		if !token.ValidateOrder(tokens) {
			t.Errorf("token order violated for %q", data)
		}
		for _, tok := range tokens {
			if tok.Begin < 0 || tok.End > n {
				t.Errorf("token %+v out of range [0, %d]", tok, n)
			}
		}
	})
}
