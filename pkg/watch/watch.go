// Package watch re-converts markdown files when they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gomdhtml/internal/logging"
	"github.com/yaklabco/gomdhtml/pkg/fsutil"
	"github.com/yaklabco/gomdhtml/pkg/runner"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Run selects the files to watch and how they are converted.
	Run runner.Options

	// Debounce is how long the tree must be quiet before a batch of changes
	// is converted.
	Debounce time.Duration

	// OnResult receives the initial full run and every non-empty batch.
	OnResult func(ctx context.Context, result *runner.Result)
}

// Watcher converts every markdown file once, then again whenever its content
// changes.
type Watcher struct {
	runner  *runner.Runner
	opts    Options
	workDir string
	ignore  *runner.Matcher
	fsw     *fsnotify.Watcher

	// known holds the fingerprint of every converted source.
	known map[string]*fsutil.FileInfo
}

// New creates a Watcher.
func New(r *runner.Runner, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	workDir, err := runner.ResolveWorkDir(opts.Run.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.Run.WorkingDir = workDir

	ignore, err := runner.CompileIgnore(opts.Run.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		runner:  r,
		opts:    opts,
		workDir: workDir,
		ignore:  ignore,
		known:   make(map[string]*fsutil.FileInfo),
	}, nil
}

// Run converts everything once and then watches until ctx is cancelled.
// Cancellation is a normal stop and returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	w.fsw = fsw
	defer func() {
		if err := fsw.Close(); err != nil {
			logger.Warn("close watcher", logging.FieldError, err)
		}
	}()

	for _, input := range w.opts.Run.EffectivePaths() {
		if err := w.addRoot(input); err != nil {
			return err
		}
	}

	initial, err := w.runner.Run(ctx, w.opts.Run)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	w.remember(initial)
	w.report(ctx, initial)

	logger.Info("watching for changes", logging.FieldPaths, w.opts.Run.EffectivePaths())

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			for _, path := range w.handleEvent(ctx, ev) {
				pending[path] = struct{}{}
			}
			if len(pending) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)

			if batch := w.Flush(ctx, paths); len(batch.Files) > 0 {
				w.report(ctx, batch)
			}
		}
	}
}

// Flush converts the paths whose content differs from the last conversion.
// Deleted files are forgotten. Outcomes are in path order.
func (w *Watcher) Flush(ctx context.Context, paths []string) *runner.Result {
	started := time.Now()
	logger := logging.FromContext(ctx)

	paths = slices.Clone(paths)
	slices.Sort(paths)
	paths = slices.Compact(paths)

	batch := &runner.Result{DryRun: w.opts.Run.DryRun}
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if _, ok := w.known[path]; ok {
				logger.Debug("source removed", logging.FieldPath, path)
				delete(w.known, path)
			}
			continue
		}

		if prev, ok := w.known[path]; ok {
			changed, err := fsutil.Changed(ctx, prev)
			if err == nil && !changed {
				logger.Debug("content unchanged", logging.FieldPath, path)
				continue
			}
		}

		batch.Stats.FilesDiscovered++
		outcome := w.runner.ConvertFile(ctx, path, w.opts.Run)
		if outcome.Source != nil {
			w.known[path] = outcome.Source
		}
		batch.Add(outcome)
	}
	batch.Duration = time.Since(started)
	return batch
}

func (w *Watcher) remember(result *runner.Result) {
	for _, f := range result.Files {
		if f.Source != nil {
			w.known[f.Path] = f.Source
		}
	}
}

func (w *Watcher) report(ctx context.Context, result *runner.Result) {
	if w.opts.OnResult != nil {
		w.opts.OnResult(ctx, result)
	}
}

// addRoot watches a user-given path. A file is watched through its directory.
func (w *Watcher) addRoot(input string) error {
	abs := input
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(w.workDir, abs)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}
	if !info.IsDir() {
		return w.fsw.Add(filepath.Dir(abs))
	}
	return w.addTree(abs, true)
}

// addTree watches root and every directory below it that discovery would
// enter.
func (w *Watcher) addTree(root string, isRoot bool) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // Unreadable directories are not watched.
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root || !isRoot {
			if w.skipDir(path) {
				return filepath.SkipDir
			}
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch directory %s: %w", root, err)
	}
	return nil
}

// handleEvent returns the markdown files an event makes dirty. A new
// directory is watched and its markdown files are queued.
func (w *Watcher) handleEvent(ctx context.Context, ev fsnotify.Event) []string {
	logger := logging.FromContext(ctx)

	if isEditorArtifact(ev.Name) {
		return nil
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if w.skipDir(ev.Name) {
				return nil
			}
			if err := w.addTree(ev.Name, false); err != nil {
				logger.Warn("watch new directory", logging.FieldPath, ev.Name, logging.FieldError, err)
			}
			opts := w.opts.Run
			opts.Paths = []string{ev.Name}
			files, err := runner.Discover(ctx, opts)
			if err != nil {
				logger.Warn("discover new directory", logging.FieldPath, ev.Name, logging.FieldError, err)
			}
			return files
		}
	}

	if !w.opts.Run.IsMarkdown(ev.Name) || w.ignore.Match(w.rel(ev.Name)) {
		return nil
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return nil
	}

	logger.Debug("change detected", logging.FieldPath, ev.Name, logging.FieldEvent, ev.Op.String())
	return []string{ev.Name}
}

func (w *Watcher) skipDir(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".") || w.ignore.MatchDir(w.rel(path))
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// isEditorArtifact reports swap, backup and lock files written by editors.
func isEditorArtifact(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"))
}
