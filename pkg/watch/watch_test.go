package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhtml/pkg/convert"
	"github.com/yaklabco/gomdhtml/pkg/render"
	"github.com/yaklabco/gomdhtml/pkg/runner"
	"github.com/yaklabco/gomdhtml/pkg/watch"
)

func newWatcher(t *testing.T, dir string, onResult func(context.Context, *runner.Result)) *watch.Watcher {
	t.Helper()

	conv := convert.NewNative(convert.Options{Document: render.DocumentOptions{Fragment: true}})
	w, err := watch.New(runner.New(conv), watch.Options{
		Run:      runner.Options{WorkingDir: dir, ExcludeGlobs: []string{"drafts/**"}},
		Debounce: 20 * time.Millisecond,
		OnResult: onResult,
	})
	require.NoError(t, err)
	return w
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNew_InvalidIgnore(t *testing.T) {
	t.Parallel()

	_, err := watch.New(runner.New(convert.NewNative(convert.Options{})), watch.Options{
		Run: runner.Options{WorkingDir: t.TempDir(), ExcludeGlobs: []string{"[unclosed"}},
	})
	require.Error(t, err)
}

func TestFlush(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "a.md")
	out := filepath.Join(dir, "a.html")
	writeFile(t, src, "# one")

	w := newWatcher(t, dir, nil)

	batch := w.Flush(ctx, []string{src, src})
	require.Len(t, batch.Files, 1, "duplicates collapse")
	assert.True(t, batch.Files[0].Written)
	assert.Equal(t, "<h1>one</h1>\n", readFile(t, out))

	batch = w.Flush(ctx, []string{src})
	assert.Empty(t, batch.Files, "unchanged content is skipped")

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(src, later, later))
	batch = w.Flush(ctx, []string{src})
	assert.Empty(t, batch.Files, "a touch without edits is skipped")

	writeFile(t, src, "# two")
	batch = w.Flush(ctx, []string{src})
	require.Len(t, batch.Files, 1)
	assert.Equal(t, 1, batch.Stats.FilesWritten)
	assert.Equal(t, "<h1>two</h1>\n", readFile(t, out))

	require.NoError(t, os.Remove(src))
	batch = w.Flush(ctx, []string{src})
	assert.Empty(t, batch.Files, "deleted sources are forgotten")

	writeFile(t, src, "# two")
	batch = w.Flush(ctx, []string{src})
	require.Len(t, batch.Files, 1, "a recreated source converts again")
	assert.False(t, batch.Files[0].Written, "output already matches")
	assert.Equal(t, 1, batch.Stats.FilesUnchanged)
}

func TestFlush_Diagnostics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "bad.md")
	writeFile(t, src, "[a(")

	batch := newWatcher(t, dir, nil).Flush(context.Background(), []string{src})
	require.Len(t, batch.Files, 1)
	assert.Equal(t, 1, batch.Stats.DiagnosticsTotal)
}

func TestRun_ReconvertsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "docs", "a.md")
	writeFile(t, src, "# first")

	initial := make(chan *runner.Result, 1)
	w := newWatcher(t, dir, func(_ context.Context, r *runner.Result) {
		select {
		case initial <- r:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case r := <-initial:
		require.Len(t, r.Files, 1)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for the initial conversion")
	}
	assert.Equal(t, "<h1>first</h1>\n", readFile(t, filepath.Join(dir, "docs", "a.html")))

	htmlIs := func(path, want string) func() bool {
		return func() bool {
			data, err := os.ReadFile(path)
			return err == nil && string(data) == want
		}
	}

	writeFile(t, src, "# second")
	require.Eventually(t, htmlIs(filepath.Join(dir, "docs", "a.html"), "<h1>second</h1>\n"),
		10*time.Second, 20*time.Millisecond)

	// New directories are picked up.
	writeFile(t, filepath.Join(dir, "guide", "b.md"), "# b")
	require.Eventually(t, htmlIs(filepath.Join(dir, "guide", "b.html"), "<h1>b</h1>\n"),
		10*time.Second, 20*time.Millisecond)

	// Ignored directories are not.
	writeFile(t, filepath.Join(dir, "drafts", "c.md"), "# c")
	writeFile(t, src, "# third")
	require.Eventually(t, htmlIs(filepath.Join(dir, "docs", "a.html"), "<h1>third</h1>\n"),
		10*time.Second, 20*time.Millisecond)
	assert.NoFileExists(t, filepath.Join(dir, "drafts", "c.html"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRun_MissingPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	conv := convert.NewNative(convert.Options{})
	w, err := watch.New(runner.New(conv), watch.Options{
		Run: runner.Options{WorkingDir: dir, Paths: []string{"missing"}},
	})
	require.NoError(t, err)
	require.Error(t, w.Run(context.Background()))
}
