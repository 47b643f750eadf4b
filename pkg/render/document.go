package render

import (
	"fmt"
	"io"
	"strings"
)

// DefaultStylesheet is the stylesheet linked from a full document.
const DefaultStylesheet = "default.css"

// DocumentOptions controls how fragments are assembled into a document.
type DocumentOptions struct {
	// Stylesheet is the href of the linked stylesheet. Empty means
	// DefaultStylesheet.
	Stylesheet string

	// Fragment skips the stylesheet link and the wrapping div.
	Fragment bool
}

// Document joins rendered fragments into an HTML document.
func Document(fragments []string, opts DocumentOptions) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = WriteDocument(&b, fragments, opts)
	return b.String()
}

// WriteDocument writes the assembled document to w.
func WriteDocument(w io.Writer, fragments []string, opts DocumentOptions) error {
	if !opts.Fragment {
		stylesheet := opts.Stylesheet
		if stylesheet == "" {
			stylesheet = DefaultStylesheet
		}
		if _, err := fmt.Fprintf(w, "<link rel=\"stylesheet\" href=%q>\n<div class=\"markdown-body\">\n", stylesheet); err != nil {
			return fmt.Errorf("writing document header: %w", err)
		}
	}

	for _, f := range fragments {
		if _, err := io.WriteString(w, f); err != nil {
			return fmt.Errorf("writing fragment: %w", err)
		}
	}

	if !opts.Fragment {
		if _, err := io.WriteString(w, "\n</div>"); err != nil {
			return fmt.Errorf("writing document footer: %w", err)
		}
	}
	return nil
}
