package configloader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gomdhtml/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// ErrConfigExists is returned when a config file would be overwritten
// without permission.
var ErrConfigExists = errors.New("config file already exists")

// WriteOptions controls WriteConfigFile.
type WriteOptions struct {
	// Force overwrites an existing file without asking.
	Force bool

	// NonInteractive never prompts; an existing file is an error.
	NonInteractive bool

	// In and Out are used for the overwrite prompt. They default to
	// os.Stdin and os.Stdout.
	In  io.Reader
	Out io.Writer
}

// WriteConfigFile writes data to path. When the file exists it is replaced
// only with Force or after the user confirms on an interactive terminal.
func WriteConfigFile(ctx context.Context, path string, data []byte, opts WriteOptions) error {
	if fileExists(path) && !opts.Force {
		if opts.NonInteractive || (opts.In == nil && !isInteractive()) {
			return fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrConfigExists)
		}
		ok, err := promptOverwrite(path, opts)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
	}

	if err := fsutil.WriteAtomic(ctx, path, data, configFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// promptOverwrite asks the user whether to replace path.
func promptOverwrite(path string, opts WriteOptions) (bool, error) {
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
