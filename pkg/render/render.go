// Package render turns a token stream back into HTML.
//
// Rendering is a single forward pass over the tokens with one token of
// lookahead. Paired constructs (image alt and source, link text and target,
// code block language and body) are emitted together. A Newline directly
// after a block construct belongs to that construct and produces no <br>.
package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/gomdhtml/pkg/token"
)

// DefaultLanguage is the code block language class used when a block has no
// language tag and none could be detected.
const DefaultLanguage = "base"

// indentPrefix is stripped from every line of an indented code block.
const indentPrefix = "    "

// Options configures a Renderer. The zero value reproduces the plain
// behaviour: text is copied verbatim and untagged code blocks use
// DefaultLanguage.
type Options struct {
	// EscapeHTML escapes &, <, > and quotes in text and attribute values.
	EscapeHTML bool

	// LanguageDetector labels an untagged code block from its body.
	// An empty result falls back to DefaultLanguage.
	LanguageDetector func(code string) string
}

// Renderer converts token streams to HTML fragments.
type Renderer struct {
	opts Options
}

// New creates a renderer with the given options.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render renders tokens produced from text using default options.
func Render(text string, tokens []token.Token) []string {
	return New(Options{}).Render(text, tokens)
}

// Render returns the HTML fragments for tokens, in order. The token offsets
// must be rune indices into text. Unknown or stray tokens are skipped.
func (r *Renderer) Render(text string, tokens []token.Token) []string {
	return r.RenderRunes([]rune(text), tokens)
}

// RenderRunes is Render for a document that is already a rune slice.
func (r *Renderer) RenderRunes(doc []rune, tokens []token.Token) []string {
	p := &pass{
		doc:    doc,
		tokens: tokens,
		opts:   r.opts,
		out:    make([]string, 0, len(tokens)),
	}
	for {
		t, ok := p.next()
		if !ok {
			return p.out
		}
		p.token(t)
	}
}

// pass is the read position and output of one Render call.
type pass struct {
	doc    []rune
	tokens []token.Token
	pos    int
	opts   Options
	out    []string
}

func (p *pass) next() (token.Token, bool) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, false
	}
	t := p.tokens[p.pos]
	p.pos++
	return t, true
}

func (p *pass) peek() (token.Token, bool) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

// nextIf consumes the next token only if it has the given kind.
func (p *pass) nextIf(kind token.Kind) (token.Token, bool) {
	t, ok := p.peek()
	if !ok || t.Kind != kind {
		return token.Token{}, false
	}
	p.pos++
	return t, true
}

// skipNewline consumes a Newline that closes a block construct.
func (p *pass) skipNewline() {
	p.nextIf(token.Newline)
}

func (p *pass) emit(s string) {
	p.out = append(p.out, s)
}

// raw returns the source text of t.
func (p *pass) raw(t token.Token) string {
	return t.Text(p.doc)
}

// text returns the source text of t, escaped when configured.
func (p *pass) text(t token.Token) string {
	return p.escape(p.raw(t))
}

func (p *pass) escape(s string) string {
	if !p.opts.EscapeHTML {
		return s
	}
	return string(util.EscapeHTML([]byte(s)))
}

// token renders t and any tokens that belong to it.
func (p *pass) token(t token.Token) {
	switch t.Kind {
	case token.Heading:
		p.heading(t)
	case token.Checkbutton:
		if t.Checked {
			p.emit(`<input type="checkbox" checked>`)
		} else {
			p.emit(`<input type="checkbox">`)
		}
	case token.ImageAlt:
		p.image(t)
	case token.LinkText, token.LinkHref:
		p.link(t)
	case token.BlockquoteBegin:
		p.blockquote()
	case token.CodeBlockBegin:
		p.codeBlock(t)
	case token.IndentBlock:
		p.indentBlock(t)
	case token.TableColumn:
		p.table(t)
	case token.Escape:
		if next, ok := p.next(); ok {
			p.emit(p.text(next))
		}
	case token.HorizontalRule:
		p.emit("<hr>\n")
	case token.Code:
		p.emit("<code>" + p.text(t) + "</code>")
	case token.Error:
		p.emit(`<div class="error">ERROR: ` + p.text(t) + "</div>\n")
	case token.Newline:
		p.emit("<br>\n")
	case token.Text, token.Space, token.Tab, token.Whitespace:
		p.emit(p.text(t))
	case token.ListBegin:
		p.emit("<ul>\n")
	case token.ListItemBegin:
		p.emit("<li>")
	case token.ListEnd:
		p.emit("</ul>\n")
		p.skipNewline()
	default:
		if tag, ok := emphasisTags[t.Kind]; ok {
			p.emit(tag)
		}
	}
}

//nolint:gochecknoglobals // Read-only lookup table.
var emphasisTags = map[token.Kind]string{
	token.BoldBegin:      "<b>",
	token.BoldEnd:        "</b>",
	token.ItalicBegin:    "<i>",
	token.ItalicEnd:      "</i>",
	token.StrikeBegin:    "<strike>",
	token.StrikeEnd:      "</strike>",
	token.UnderlineBegin: "<u>",
	token.UnderlineEnd:   "</u>",
}

// until renders tokens up to, but not including, the first token for which
// stop returns true. It reports whether such a token was found.
func (p *pass) until(stop func(token.Token) bool) bool {
	for {
		t, ok := p.peek()
		if !ok {
			return false
		}
		if stop(t) {
			return true
		}
		p.pos++
		p.token(t)
	}
}

// capture renders like until but returns the output instead of emitting it.
func (p *pass) capture(stop func(token.Token) bool) string {
	mark := len(p.out)
	p.until(stop)
	s := strings.Join(p.out[mark:], "")
	p.out = p.out[:mark]
	return s
}

func isKind(kind token.Kind) func(token.Token) bool {
	return func(t token.Token) bool { return t.Kind == kind }
}

func (p *pass) heading(t token.Token) {
	level := t.Level()
	p.nextIf(token.Space)
	body := p.capture(isKind(token.Newline))
	p.emit(fmt.Sprintf("<h%d>%s</h%d>\n", level, body, level))
	p.skipNewline()
}

func (p *pass) image(alt token.Token) {
	src, ok := p.nextIf(token.ImageSrc)
	if !ok {
		p.emit(fmt.Sprintf(`<img alt="%s">`, p.text(alt)))
		return
	}
	p.emit(fmt.Sprintf(`<img alt="%s" src="%s">`, p.text(alt), p.text(src)))
}

// link renders a LinkText/LinkHref pair. An empty label shows the target.
func (p *pass) link(t token.Token) {
	label, target := t, t
	if t.Kind == token.LinkText {
		if href, ok := p.nextIf(token.LinkHref); ok {
			target = href
		}
	}
	text := p.text(label)
	if text == "" || label.Kind != token.LinkText {
		text = p.text(target)
	}
	p.emit(fmt.Sprintf(`<a href="%s">%s</a>`, p.text(target), text))
}

func (p *pass) blockquote() {
	p.emit("<blockquote>")
	if p.until(isKind(token.BlockquoteEnd)) {
		p.pos++
	}
	p.emit("</blockquote>")
	p.skipNewline()
}

func (p *pass) codeBlock(fence token.Token) {
	lang, ok := p.nextIf(token.CodeBlockLanguage)
	if !ok {
		p.emit(p.text(fence))
		return
	}
	body, ok := p.nextIf(token.CodeBlockEnd)
	if !ok {
		p.emit(p.text(fence) + p.text(lang))
		return
	}

	code := strings.TrimSuffix(p.raw(body), "\n")
	label := strings.TrimSpace(p.raw(lang))
	if label == "" && p.opts.LanguageDetector != nil {
		label = p.opts.LanguageDetector(code)
	}
	if label == "" {
		label = DefaultLanguage
	}
	p.emit(fmt.Sprintf(`<pre class="language-%s">%s</pre>`, p.escape(label), p.escape(code)))
	p.skipNewline()
}

func (p *pass) indentBlock(t token.Token) {
	body := strings.TrimPrefix(p.raw(t), indentPrefix)
	body = strings.ReplaceAll(body, "\n"+indentPrefix, "\n")
	p.emit("<pre>" + p.escape(body) + "</pre>")
	p.skipNewline()
}
