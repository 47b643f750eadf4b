package runner

import (
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomdhtml/pkg/config"
)

// OutputPath maps a source file to its output file. The source extension is
// replaced by ext (default ".html"). With an empty outDir the output sits
// next to the source; otherwise the source's path relative to workDir is
// mirrored below outDir. Sources outside workDir keep only their base name.
// A relative outDir is resolved against workDir.
func OutputPath(src, workDir, outDir, ext string) string {
	if ext == "" {
		ext = config.DefaultExtension
	}
	name := strings.TrimSuffix(src, filepath.Ext(src)) + ext
	if outDir == "" {
		return name
	}

	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	rel, err := filepath.Rel(workDir, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(name)
	}
	return filepath.Join(outDir, rel)
}
