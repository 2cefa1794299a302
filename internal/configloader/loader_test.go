package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := result.Config
	if got, want := cfg.OutExt, ".html"; got != want {
		t.Errorf("OutExt = %q, want %q", got, want)
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[0] != ".md" {
		t.Errorf("Extensions = %v, want [.md .markdown]", cfg.Extensions)
	}
	if BoolValue(cfg.GFM) {
		t.Error("GFM should default to unset")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want empty", result.LoadedFrom)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".keepmark.yaml"), "gfm: true\nout_dir: dist\njobs: 4\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := result.Config
	if !BoolValue(cfg.GFM) {
		t.Error("GFM should be enabled by project config")
	}
	if cfg.OutDir != "dist" {
		t.Errorf("OutDir = %q, want dist", cfg.OutDir)
	}
	if cfg.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4", cfg.Jobs)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("LoadedFrom = %v, want one entry", result.LoadedFrom)
	}
}

func TestLoadProjectConfigUpwardSearch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".keepmark.yaml"), "math: true\n")

	nested := filepath.Join(dir, "docs", "guide")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         nested,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !BoolValue(result.Config.Math) {
		t.Error("Math should be found by upward search")
	}
}

func TestLoadUpwardSearchStopsAtVCSRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".keepmark.yaml"), "gfm: true\n")

	repo := filepath.Join(dir, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         repo,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if BoolValue(result.Config.GFM) {
		t.Error("config above the VCS root should not be loaded")
	}
}

func TestLoadExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".keepmark.yaml"), "gfm: true\n")

	explicit := filepath.Join(dir, "other.yaml")
	writeFile(t, explicit, "gfm: false\nunsafe: true\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		ExplicitPath:       explicit,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := result.Config
	if BoolValue(cfg.GFM) {
		t.Error("explicit config should override project config, even to false")
	}
	if !BoolValue(cfg.Unsafe) {
		t.Error("Unsafe should be set by explicit config")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".keepmark.yaml"), "jobs: 2\n")

	t.Setenv("KEEPMARK_JOBS", "8")
	t.Setenv("KEEPMARK_GFM", "true")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := result.Config
	if cfg.Jobs != 8 {
		t.Errorf("Jobs = %d, want 8 from environment", cfg.Jobs)
	}
	if !BoolValue(cfg.GFM) {
		t.Error("GFM should be enabled by environment")
	}
}

func TestLoadCLIConfigWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".keepmark.yaml"), "out_dir: from-file\njobs: 2\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		CLIConfig: &Config{
			OutDir: "from-flag",
		},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := result.Config
	if cfg.OutDir != "from-flag" {
		t.Errorf("OutDir = %q, want from-flag", cfg.OutDir)
	}
	if cfg.Jobs != 2 {
		t.Errorf("Jobs = %d, want 2 kept from file", cfg.Jobs)
	}
}

func TestLoadUnknownFieldRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".keepmark.yaml"), "gmf: true\n")

	_, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	})
	if err == nil {
		t.Fatal("expected error for unknown config field")
	}
}

func TestLoadEmptyConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".keepmark.yaml"), "")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Config.OutExt != ".html" {
		t.Errorf("empty config should keep defaults, OutExt = %q", result.Config.OutExt)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative jobs", "jobs: -1\n"},
		{"bad line ending", "line_ending: cr\n"},
		{"bad log level", "log_level: loud\n"},
		{"extension without dot", "extensions: [md]\n"},
		{"out_ext without dot", "out_ext: html\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ".keepmark.yaml"), testCase.content)

			_, err := Load(context.Background(), LoadOptions{
				WorkingDir:         dir,
				IgnoreSystemConfig: true,
				IgnoreUserConfig:   true,
				IgnoreEnv:          true,
			})
			if err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := NewConfig()
	mid := &Config{GFM: BoolPtr(true), Jobs: 2}
	top := &Config{GFM: BoolPtr(false), OutDir: "dist"}

	got := MergeAll(base, mid, top)
	if BoolValue(got.GFM) {
		t.Error("later config should win, GFM = true")
	}
	if got.Jobs != 2 {
		t.Errorf("Jobs = %d, want 2", got.Jobs)
	}
	if got.OutDir != "dist" {
		t.Errorf("OutDir = %q, want dist", got.OutDir)
	}
}
