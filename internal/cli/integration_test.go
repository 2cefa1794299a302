package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/keepmark/internal/cli"
)

func newTestRoot() *cli.BuildInfo {
	return &cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
}

func TestIntegration_RenderDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	mdFile := filepath.Join(tmpDir, "doc.md")
	require.NoError(t, os.WriteFile(mdFile, []byte("# Hello\n\nSome *text*.\n"), 0644))

	cmd := cli.NewRootCommand(*newTestRoot())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"render", "."})

	require.NoError(t, cmd.Execute())

	html, err := os.ReadFile(filepath.Join(tmpDir, "doc.html"))
	require.NoError(t, err)

	assert.Contains(t, string(html), "<h1>Hello</h1>")
	assert.Contains(t, string(html), "<em>text</em>")
	assert.Contains(t, out.String(), "Render complete")
}

func TestIntegration_RenderOutDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "docs"), 0o755))
	mdFile := filepath.Join(tmpDir, "docs", "guide.md")
	require.NoError(t, os.WriteFile(mdFile, []byte("# Guide\n"), 0644))

	cmd := cli.NewRootCommand(*newTestRoot())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"render", "--out-dir", "dist", "."})

	require.NoError(t, cmd.Execute())

	html, err := os.ReadFile(filepath.Join(tmpDir, "dist", "docs", "guide.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Guide</h1>")
}

func TestIntegration_RenderStdin(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := cli.NewRootCommand(*newTestRoot())

	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("# Hi\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"render", "--stdin"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "<h1>Hi</h1>")
}

func TestIntegration_RenderStdinGFM(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := cli.NewRootCommand(*newTestRoot())

	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("~~gone~~ and www.example.com\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"render", "--stdin", "--gfm"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "<del>gone</del>")
	assert.Contains(t, out.String(), `<a href="http://www.example.com">www.example.com</a>`)
}

func TestIntegration_RenderStdinMath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := cli.NewRootCommand(*newTestRoot())

	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("$a+b$\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"render", "--stdin", "--math"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `<code class="language-math math-inline">a+b</code>`)
}

func TestIntegration_RenderStdinUnsafe(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	input := "<div>raw</div>\n"

	// Safe by default
	cmd := cli.NewRootCommand(*newTestRoot())
	var safe bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&safe)
	cmd.SetErr(&safe)
	cmd.SetArgs([]string{"render", "--stdin"})
	require.NoError(t, cmd.Execute())
	assert.NotContains(t, safe.String(), "<div>")

	// Unsafe passes HTML through
	cmd = cli.NewRootCommand(*newTestRoot())
	var raw bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&raw)
	cmd.SetErr(&raw)
	cmd.SetArgs([]string{"render", "--stdin", "--unsafe"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, raw.String(), "<div>raw</div>")
}

func TestIntegration_ConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".keepmark.yaml"),
		[]byte("gfm: true\n"), 0644))

	cmd := cli.NewRootCommand(*newTestRoot())

	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("~~gone~~\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"render", "--stdin"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "<del>gone</del>")
}

func TestIntegration_RenderExclude(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "keep.md"), []byte("# Keep\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "skip.md"), []byte("# Skip\n"), 0644))

	cmd := cli.NewRootCommand(*newTestRoot())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"render", "--exclude", "skip.md", "."})

	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(tmpDir, "keep.html"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(tmpDir, "skip.html"))
	assert.True(t, os.IsNotExist(err), "excluded file should not be rendered")
}

func TestIntegration_InvalidConfigFails(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".keepmark.yaml"),
		[]byte("jobs: -2\n"), 0644))

	cmd := cli.NewRootCommand(*newTestRoot())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"render", "--stdin"})
	cmd.SetIn(strings.NewReader("# x\n"))

	assert.Error(t, cmd.Execute())
}
