package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhtml/internal/cli"
)

// testMalformedMarkdown has an unterminated link on line 3.
const testMalformedMarkdown = "# Notes\n\nsee [docs(\n"

type execResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with a minimal explicit config so that
// project and user configuration files do not leak into the test.
func execute(t *testing.T, stdin string, args ...string) execResult {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".gomdhtml.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("engine: native\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return execResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_ConvertWritesHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := writeMarkdown(t, dir, "README.md", "# Hello\n")

	res := execute(t, "", "convert", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Converted 1 file")

	html, err := os.ReadFile(strings.TrimSuffix(md, ".md") + ".html")
	require.NoError(t, err)
	assert.Equal(t,
		"<link rel=\"stylesheet\" href=\"default.css\">\n<div class=\"markdown-body\">\n<h1>Hello</h1>\n\n</div>",
		string(html))
}

func TestIntegration_RootCommandConverts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := writeMarkdown(t, dir, "a.md", "*hi*")

	res := execute(t, "", dir, "--fragment")
	require.NoError(t, res.err)

	html, err := os.ReadFile(strings.TrimSuffix(md, ".md") + ".html")
	require.NoError(t, err)
	assert.Equal(t, "<i>hi</i>", string(html))
}

func TestIntegration_ConvertOutputDirAndExtension(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	out := t.TempDir()
	writeMarkdown(t, src, "guide/intro.md", "text")

	res := execute(t, "", "convert", src, "-o", out, "--extension", ".htm", "--fragment")
	require.NoError(t, res.err)

	html, err := os.ReadFile(filepath.Join(out, "guide", "intro.htm"))
	require.NoError(t, err)
	assert.Equal(t, "text", string(html))
}

func TestIntegration_ConvertDryRunWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, dir, "a.md", "# A\n")

	res := execute(t, "", "convert", dir, "--dry-run")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Would convert 1 file")
	assert.NoFileExists(t, filepath.Join(dir, "a.html"))
}

func TestIntegration_ConvertStdout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name:  "stdin fragment",
			args:  []string{"convert", "-", "--stdout", "--fragment"},
			stdin: "# Hi",
			want:  "<h1>Hi</h1>\n",
		},
		{
			name:  "stdin document with stylesheet",
			args:  []string{"convert", "-", "--stdout", "--stylesheet", "site.css"},
			stdin: "x",
			want:  "<link rel=\"stylesheet\" href=\"site.css\">\n<div class=\"markdown-body\">\nx\n</div>",
		},
		{
			name:  "escape html",
			args:  []string{"convert", "-", "--stdout", "--fragment", "--escape-html"},
			stdin: "a<b",
			want:  "a&lt;b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := execute(t, tt.stdin, tt.args...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestIntegration_ConvertStdoutNeedsOneFile(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "convert", "--stdout", "a.md", "b.md")
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
}

func TestIntegration_ConvertStdoutMissingFile(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "convert", "--stdout", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(res.err))
}

func TestIntegration_MalformedMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantHTML bool
	}{
		{name: "convert is lenient", args: []string{"convert"}, wantCode: cli.ExitSuccess, wantHTML: true},
		{name: "convert strict", args: []string{"convert", "--strict"}, wantCode: cli.ExitConversionErrors, wantHTML: true},
		{name: "check", args: []string{"check"}, wantCode: cli.ExitConversionErrors, wantHTML: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeMarkdown(t, dir, "bad.md", testMalformedMarkdown)

			res := execute(t, "", append(tt.args, dir)...)
			assert.Equal(t, tt.wantCode, cli.ExitCode(res.err))
			assert.Contains(t, res.stdout, "bad.md")
			assert.Contains(t, res.stdout, "unterminated link")
			assert.Contains(t, res.stdout, "see [docs(")

			if tt.wantHTML {
				assert.FileExists(t, filepath.Join(dir, "bad.html"))
			} else {
				assert.NoFileExists(t, filepath.Join(dir, "bad.html"))
			}
		})
	}
}

func TestIntegration_CheckClean(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, dir, "ok.md", "# Fine\n\n- [x] done\n")

	res := execute(t, "", "check", dir)
	require.NoError(t, res.err)
	assert.NoFileExists(t, filepath.Join(dir, "ok.html"))
}

func TestIntegration_JSONFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, dir, "bad.md", testMalformedMarkdown)

	res := execute(t, "", "check", dir, "--format", "json")
	require.Error(t, res.err)

	var out struct {
		Files []struct {
			Path        string `json:"path"`
			Diagnostics []struct {
				Line    int    `json:"line"`
				Message string `json:"message"`
			} `json:"diagnostics"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Len(t, out.Files, 1)
	require.Len(t, out.Files[0].Diagnostics, 1)
	assert.Equal(t, 3, out.Files[0].Diagnostics[0].Line)
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, dir, "one.md", "one")
	writeMarkdown(t, dir, "two.md", "two")

	res := execute(t, "", "convert", dir, "--format", "summary")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "FILE")
	assert.Contains(t, res.stdout, "STATUS")
	assert.Contains(t, res.stdout, "written")
	assert.Contains(t, res.stdout, "Conversion complete")
}

func TestIntegration_SecondRunIsUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, dir, "a.md", "a")

	require.NoError(t, execute(t, "", "convert", dir).err)
	res := execute(t, "", "convert", dir, "--format", "summary")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "unchanged")
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "convert", t.TempDir(), "--format", "xml")
	require.Error(t, res.err)
	assert.NotEqual(t, cli.ExitSuccess, cli.ExitCode(res.err))
}

func TestIntegration_UnknownFlag(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "convert", "--no-such-flag")
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("no_such_key: true\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"convert", "--config", cfgFile, t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_Tokens(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		res := execute(t, "# Hi", "tokens", "-", "--format", "json")
		require.NoError(t, res.err)

		var tokens []struct {
			Kind  string `json:"kind"`
			Begin int    `json:"begin"`
			End   int    `json:"end"`
			Text  string `json:"text"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &tokens))
		require.NotEmpty(t, tokens)
		assert.Equal(t, "Heading", tokens[0].Kind)
		assert.Equal(t, "#", tokens[0].Text)
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		md := writeMarkdown(t, dir, "t.md", "**b**")

		res := execute(t, "", "tokens", md)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "KIND")
		assert.Contains(t, res.stdout, "BoldBegin")
	})

	t.Run("summary format rejected", func(t *testing.T) {
		t.Parallel()

		res := execute(t, "x", "tokens", "-", "--format", "summary")
		require.Error(t, res.err)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
	})
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	t.Run("creates yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".gomdhtml.yml")
		res := execute(t, "", "init", "--output", path)
		require.NoError(t, res.err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "engine: native")
	})

	t.Run("creates json", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cfg.json")
		res := execute(t, "", "init", "--format", "json", "--output", path)
		require.NoError(t, res.err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, json.Valid(data))
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".gomdhtml.yml")
		require.NoError(t, os.WriteFile(path, []byte("keep\n"), 0o644))

		res := execute(t, "n\n", "init", "--output", path)
		require.Error(t, res.err)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "keep\n", string(data))
	})

	t.Run("force overwrites", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".gomdhtml.yml")
		require.NoError(t, os.WriteFile(path, []byte("keep\n"), 0o644))

		res := execute(t, "", "init", "--force", "--output", path)
		require.NoError(t, res.err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEqual(t, "keep\n", string(data))
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		res := execute(t, "", "init", "--format", "toml", "--output", filepath.Join(t.TempDir(), "x"))
		require.Error(t, res.err)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
	})
}
