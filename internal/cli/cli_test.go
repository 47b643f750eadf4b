package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yaklabco/gomdhtml/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	})

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Name() != "gomdhtml" {
		t.Errorf("expected name to be 'gomdhtml', got %q", cmd.Name())
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Version != "test-version" {
		t.Errorf("expected Version to be 'test-version', got %q", cmd.Version)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedSubcommands := []string{"convert", "check", "tokens", "watch", "init", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestConvertFlags(t *testing.T) {
	t.Parallel()

	expectedFlags := []string{
		"engine",
		"stylesheet",
		"output-dir",
		"extension",
		"ignore",
		"escape-html",
		"detect-languages",
		"fragment",
		"jobs",
		"dry-run",
		"format",
		"no-context",
		"compact",
		"verbose",
		"stdout",
		"strict",
	}

	root := cli.NewRootCommand(testInfo())
	convertCmd, _, err := root.Find([]string{"convert"})
	if err != nil {
		t.Fatalf("convert command not found: %v", err)
	}

	// The root command converts too, so it carries the same flags.
	for _, flagName := range expectedFlags {
		if convertCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist on convert command", flagName)
		}
		if root.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist on root command", flagName)
		}
	}
}

func TestWatchCommandFlags(t *testing.T) {
	t.Parallel()

	root := cli.NewRootCommand(testInfo())
	watchCmd, _, err := root.Find([]string{"watch"})
	if err != nil {
		t.Fatalf("watch command not found: %v", err)
	}

	for _, flagName := range []string{"debounce", "engine", "output-dir", "format"} {
		if watchCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist on watch command", flagName)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedFlags := []string{"debug", "config", "color"}

	for _, flagName := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"1.2.3", "abc123", "2024-01-01"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected version output to contain %q, got %q", want, out.String())
		}
	}
}

func TestConvertCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	convertCmd, _, err := cmd.Find([]string{"convert"})
	if err != nil {
		t.Fatalf("convert command not found: %v", err)
	}

	err = convertCmd.Args(convertCmd, []string{"file1.md", "file2.md", "docs/"})
	if err != nil {
		t.Errorf("convert command should accept arbitrary args, got error: %v", err)
	}
}

func TestTokensCommandRequiresOneArg(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	tokensCmd, _, err := cmd.Find([]string{"tokens"})
	if err != nil {
		t.Fatalf("tokens command not found: %v", err)
	}

	if err := tokensCmd.Args(tokensCmd, nil); err == nil {
		t.Error("tokens command should reject zero args")
	}
	if err := tokensCmd.Args(tokensCmd, []string{"a.md", "b.md"}); err == nil {
		t.Error("tokens command should reject two args")
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []string
		contains    []string
		notContains []string
	}{
		{
			name:     "root",
			args:     []string{"--help", "--color", "never"},
			contains: []string{"Usage:", "Commands:", "convert", "--output-dir", "Environment:", "GOMDHTML_ENGINE", "Exit Codes:", "65"},
		},
		{
			name:        "subcommand",
			args:        []string{"tokens", "--help", "--color", "never"},
			contains:    []string{"Usage:", "gomdhtml tokens <file>", "--format", "Global Flags:", "--debug"},
			notContains: []string{"Environment:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			if err := cmd.Execute(); err != nil {
				t.Fatalf("help failed: %v", err)
			}

			for _, want := range tt.contains {
				if !strings.Contains(out.String(), want) {
					t.Errorf("expected help to contain %q, got:\n%s", want, out.String())
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(out.String(), unwanted) {
					t.Errorf("expected help not to contain %q", unwanted)
				}
			}
		})
	}
}
