// Package langdetect labels untagged fenced code blocks with a language.
//
// Detection tries, in order, an interpreter shebang, a handful of cheap
// content probes, and finally the go-enry Bayesian classifier restricted to
// common languages. An empty result means no confident guess; callers fall
// back to their own default class.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates bounds the classifier to languages that commonly
// appear in documentation.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// probe recognises one language from unmistakable markers.
type probe struct {
	lang  string
	match func(code, trimmed string) bool
}

// probes run in order; earlier entries are more specific.
//
//nolint:gochecknoglobals // Read-only lookup table.
var probes = []probe{
	{"go", func(_, t string) bool { return strings.HasPrefix(t, "package ") }},
	{"python", isPython},
	{"html", func(_, t string) bool {
		lower := strings.ToLower(t)
		return strings.Contains(lower, "<!doctype html") || strings.Contains(lower, "<html") ||
			strings.Contains(lower, "<body>")
	}},
	{"json", func(_, t string) bool {
		return (strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[")) && strings.Contains(t, `"`)
	}},
	{"dockerfile", func(c, t string) bool {
		return strings.HasPrefix(t, "FROM ") ||
			(strings.Contains(c, "WORKDIR ") && strings.Contains(c, "COPY "))
	}},
	{"sql", func(_, t string) bool {
		upper := strings.ToUpper(t)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(c, _ string) bool {
		return strings.Contains(c, "fn main()") || strings.Contains(c, "println!") ||
			strings.Contains(c, "let mut ")
	}},
	{"javascript", func(c, _ string) bool {
		return strings.Contains(c, "=>") || strings.Contains(c, "console.log") ||
			strings.Contains(c, "const ")
	}},
	{"yaml", isYAML},
}

// Detect returns a lowercase fence tag for code, or "" when unsure.
func Detect(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(code)); safe {
		return normalize(lang)
	}

	for _, p := range probes {
		if p.match(code, trimmed) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(code), classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return ""
}

func isPython(code, trimmed string) bool {
	if strings.Contains(code, "def ") && strings.Contains(code, "):") {
		return true
	}
	if strings.Contains(code, "__name__") {
		return true
	}
	return strings.HasPrefix(trimmed, "import ") && !strings.Contains(code, "import (")
}

// isYAML reports at least two "key: value" or "- item" lines.
func isYAML(code, _ string) bool {
	hits := 0
	for line := range strings.Lines(code) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "- ") ||
			(strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`)) {
			hits++
		}
	}
	return hits >= 2
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
