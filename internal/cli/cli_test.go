package cli_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/keepmark/internal/cli"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "keepmark" {
		t.Errorf("expected Use to be 'keepmark', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	expectedSubcommands := []string{"render", "version"}
	for _, name := range expectedSubcommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestRootCommandHelp(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute --help: %v", err)
	}

	if !bytes.Contains(out.Bytes(), []byte("render")) {
		t.Error("help output should mention the render command")
	}
}

func TestRenderCommandHelp(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"render", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute render --help: %v", err)
	}

	for _, flag := range []string{"--gfm", "--math", "--unsafe", "--out-dir", "--stdin", "--jobs"} {
		if !bytes.Contains(out.Bytes(), []byte(flag)) {
			t.Errorf("render help should mention %s", flag)
		}
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()

	if cli.ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", cli.ExitSuccess)
	}
	if cli.ExitRenderErrors != 1 {
		t.Errorf("ExitRenderErrors = %d, want 1", cli.ExitRenderErrors)
	}
	if cli.ExitInvalidUsage != 64 {
		t.Errorf("ExitInvalidUsage = %d, want 64", cli.ExitInvalidUsage)
	}
}
