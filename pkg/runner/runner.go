package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/gomdhtml/internal/logging"
	"github.com/yaklabco/gomdhtml/pkg/convert"
	"github.com/yaklabco/gomdhtml/pkg/fsutil"
)

// Runner converts files with a shared Converter.
type Runner struct {
	Converter convert.Converter
}

// New creates a Runner.
func New(conv convert.Converter) *Runner {
	return &Runner{Converter: conv}
}

// Run discovers files under opts.Paths and converts them with a bounded
// worker pool. Outcomes are returned in path order whatever the completion
// order. A cancelled context stops the run and returns the partial result
// with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := ResolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	result := &Result{
		Files:  make([]FileOutcome, 0, len(files)),
		DryRun: opts.DryRun,
	}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.Add(outcome)
		}
	}

	result.Duration = time.Since(started)
	logger.Debug("run complete",
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldDuration, result.Duration,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ConvertFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ConvertFile reads, converts and (unless opts.DryRun) writes one file.
// Errors are reported in the outcome.
func (r *Runner) ConvertFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{
		Path:   path,
		Output: OutputPath(path, opts.WorkingDir, opts.OutputDir, opts.OutputExt),
	}

	src, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Source = info

	res, err := r.Converter.Convert(ctx, path, src)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = res

	if opts.DryRun {
		return outcome
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.Output, res.HTML, fsutil.DefaultFileMode)
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", outcome.Output, err)
		return outcome
	}
	outcome.Written = written

	logging.FromContext(ctx).Debug("converted",
		logging.FieldInput, path,
		logging.FieldOutput, outcome.Output,
		logging.FieldDiagnostics, len(res.Diagnostics),
		logging.FieldWritten, written,
	)
	return outcome
}
