package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAnnotateFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"bare backtick fence annotated",
			"```\npackage main\n```\n",
			"```go\npackage main\n```\n",
		},
		{
			"info string untouched",
			"```js\nlet a\n```\n",
			"```js\nlet a\n```\n",
		},
		{
			"tilde fence untouched",
			"~~~\npackage main\n~~~\n",
			"~~~\npackage main\n~~~\n",
		},
		{
			"crlf preserved",
			"```\r\npackage main\r\n```\r\n",
			"```go\r\npackage main\r\n```\r\n",
		},
		{
			"prose untouched",
			"just a paragraph\n\nwith `inline code`\n",
			"just a paragraph\n\nwith `inline code`\n",
		},
		{
			"unclosed fence annotated",
			"```\npackage main\n",
			"```go\npackage main\n",
		},
		{
			"longer fence needs longer close",
			"````\npackage main\n```\nstill body\n````\n",
			"````go\npackage main\n```\nstill body\n````\n",
		},
		{
			"indented fence annotated",
			"  ```\npackage main\n  ```\n",
			"  ```go\npackage main\n  ```\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := string(annotateFences([]byte(testCase.input)))
			if got != testCase.want {
				t.Errorf("annotateFences(%q)\n got: %q\nwant: %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestAnnotateFencesFallback(t *testing.T) {
	t.Parallel()

	// Unrecognizable content still gets an info string, the fallback.
	got := string(annotateFences([]byte("```\n<<<>>>\n```\n")))
	if !strings.HasPrefix(got, "```") || strings.HasPrefix(got, "```\n") {
		t.Errorf("bare fence should gain an info string, got %q", got)
	}
}

func TestOutPath(t *testing.T) {
	t.Parallel()

	workDir := string(filepath.Separator) + filepath.Join("work", "docs")

	tests := []struct {
		name string
		opts Options
		path string
		want string
	}{
		{
			"next to input",
			Options{},
			filepath.Join(workDir, "a.md"),
			filepath.Join(workDir, "a.html"),
		},
		{
			"custom extension",
			Options{OutExt: ".htm"},
			filepath.Join(workDir, "a.md"),
			filepath.Join(workDir, "a.htm"),
		},
		{
			"out dir mirrors layout",
			Options{OutDir: filepath.Join(workDir, "dist")},
			filepath.Join(workDir, "guide", "a.md"),
			filepath.Join(workDir, "dist", "guide", "a.html"),
		},
		{
			"outside working directory flattens",
			Options{OutDir: filepath.Join(workDir, "dist")},
			string(filepath.Separator) + filepath.Join("elsewhere", "a.md"),
			filepath.Join(workDir, "dist", "a.html"),
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			renderer := New(testCase.opts)
			got, err := renderer.outPath(workDir, testCase.path)
			if err != nil {
				t.Fatalf("outPath: %v", err)
			}
			if got != testCase.want {
				t.Errorf("outPath(%q) = %q, want %q", testCase.path, got, testCase.want)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a.md", "# a")
	writeFile(t, tmpDir, "b.markdown", "# b")
	writeFile(t, tmpDir, "c.txt", "not markdown")
	writeFile(t, tmpDir, ".hidden.md", "# hidden")
	writeFile(t, tmpDir, filepath.Join("sub", "d.md"), "# d")
	writeFile(t, tmpDir, filepath.Join(".git", "e.md"), "# e")
	writeFile(t, tmpDir, filepath.Join("vendor", "f.md"), "# f")

	files, err := Discover(context.Background(), Options{
		WorkingDir:   tmpDir,
		ExcludeGlobs: []string{"vendor"},
	})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{
		filepath.Join(tmpDir, "a.md"),
		filepath.Join(tmpDir, "b.markdown"),
		filepath.Join(tmpDir, "sub", "d.md"),
	}
	if len(files) != len(want) {
		t.Fatalf("Discover returned %v, want %v", files, want)
	}
	for index, path := range want {
		if files[index] != path {
			t.Errorf("files[%d] = %q, want %q", index, files[index], path)
		}
	}
}

func TestDiscoverExplicitFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a.md", "# a")
	writeFile(t, tmpDir, "b.md", "# b")

	files, err := Discover(context.Background(), Options{
		WorkingDir: tmpDir,
		Paths:      []string{"a.md", "a.md"},
	})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(files) != 1 || files[0] != filepath.Join(tmpDir, "a.md") {
		t.Errorf("Discover = %v, want just a.md", files)
	}
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := Discover(context.Background(), Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"no-such-file.md"},
	})
	if err == nil {
		t.Fatal("expected an error for a missing path")
	}
}

func TestRenderBytes(t *testing.T) {
	t.Parallel()

	plain := New(Options{})
	if got := string(plain.RenderBytes([]byte("# Hi"))); got != "<h1>Hi</h1>" {
		t.Errorf("plain = %q", got)
	}
	if got := string(plain.RenderBytes([]byte("~~a~~"))); strings.Contains(got, "<del>") {
		t.Errorf("strikethrough should be off by default, got %q", got)
	}

	flavored := New(Options{GFM: true, Math: true})
	if got := string(flavored.RenderBytes([]byte("~~a~~"))); !strings.Contains(got, "<del>a</del>") {
		t.Errorf("gfm output = %q", got)
	}
	if got := string(flavored.RenderBytes([]byte("$x$"))); !strings.Contains(got, "math-inline") {
		t.Errorf("math output = %q", got)
	}

	detecting := New(Options{DetectLanguage: true})
	got := string(detecting.RenderBytes([]byte("```\npackage main\n```\n")))
	if !strings.Contains(got, "language-go") {
		t.Errorf("detected language missing from output %q", got)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "b.md", "# b")
	writeFile(t, tmpDir, "a.md", "*a*")

	renderer := New(Options{WorkingDir: tmpDir, Jobs: 2})
	result, err := renderer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Stats.FilesDiscovered != 2 || result.Stats.FilesRendered != 2 {
		t.Fatalf("stats = %+v, want 2 discovered and rendered", result.Stats)
	}
	if result.HasFailures() {
		t.Fatal("unexpected failures")
	}

	// Outcomes come back in path order regardless of worker scheduling.
	if len(result.Files) != 2 ||
		result.Files[0].Path != filepath.Join(tmpDir, "a.md") ||
		result.Files[1].Path != filepath.Join(tmpDir, "b.md") {
		t.Errorf("outcomes out of order: %+v", result.Files)
	}

	html, err := os.ReadFile(filepath.Join(tmpDir, "a.html"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := "<p><em>a</em></p>"; string(html) != want {
		t.Errorf("a.html = %q, want %q", html, want)
	}
}

func TestRunOutDir(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, tmpDir, filepath.Join("docs", "guide.md"), "# Guide")
	outDir := filepath.Join(tmpDir, "dist")

	renderer := New(Options{WorkingDir: tmpDir, OutDir: outDir})
	result, err := renderer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Stats.FilesRendered != 1 {
		t.Fatalf("stats = %+v", result.Stats)
	}

	html, err := os.ReadFile(filepath.Join(outDir, "docs", "guide.html"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := "<h1>Guide</h1>"; string(html) != want {
		t.Errorf("guide.html = %q, want %q", html, want)
	}
}

func TestRunNoFiles(t *testing.T) {
	t.Parallel()

	renderer := New(Options{WorkingDir: t.TempDir()})
	result, err := renderer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Stats.FilesDiscovered != 0 || len(result.Files) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := New(Options{WorkingDir: t.TempDir()})
	if _, err := renderer.Run(ctx); err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}

func TestResultAccumulate(t *testing.T) {
	t.Parallel()

	var result Result
	result.accumulate(FileOutcome{Path: "a.md", OutPath: "a.html", BytesIn: 10, BytesOut: 20})
	result.accumulate(FileOutcome{Path: "b.md", Error: errors.New("boom")})

	if result.Stats.FilesRendered != 1 || result.Stats.FilesErrored != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.Stats.BytesIn != 10 || result.Stats.BytesOut != 20 {
		t.Errorf("byte totals should skip failed files: %+v", result.Stats)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}

	var nilResult *Result
	if nilResult.HasFailures() {
		t.Error("nil result has no failures")
	}
}

func TestMatchesExcludePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		path  string
		globs []string
		want  bool
	}{
		{"no globs", "a/b.md", nil, false},
		{"full path", "a/b.md", []string{"a/b.md"}, true},
		{"base name", "a/b.md", []string{"b.md"}, true},
		{"parent directory", "vendor/x/y.md", []string{"vendor"}, true},
		{"wildcard", "notes/draft-1.md", []string{"draft-*.md"}, true},
		{"no match", "a/b.md", []string{"c.md"}, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := matchesExcludePattern(testCase.path, testCase.globs)
			if got != testCase.want {
				t.Errorf("matchesExcludePattern(%q, %v) = %v, want %v",
					testCase.path, testCase.globs, got, testCase.want)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
