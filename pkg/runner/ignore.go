package runner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher tests slash-separated relative paths against ignore globs.
// "*" stays within one path segment and "**" crosses segments. A pattern
// without a slash also matches the base name, so "*.draft.md" works at any
// depth.
type Matcher struct {
	full []glob.Glob
	base []glob.Glob
}

// CompileIgnore compiles ignore patterns.
func CompileIgnore(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", p, err)
		}
		m.full = append(m.full, g)
		if !strings.Contains(p, "/") {
			m.base = append(m.base, g)
		}
	}
	return m, nil
}

// Match reports whether the file at rel is ignored.
func (m *Matcher) Match(rel string) bool {
	if m == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range m.full {
		if g.Match(rel) {
			return true
		}
	}
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, g := range m.base {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// MatchDir reports whether the directory at rel and everything below it is
// ignored. "vendor" and "vendor/**" both exclude the vendor directory.
func (m *Matcher) MatchDir(rel string) bool {
	return m.Match(rel) || m.Match(strings.TrimSuffix(filepath.ToSlash(rel), "/")+"/")
}
