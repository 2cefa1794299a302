package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/keepmark/internal/ui/pretty"
	"github.com/yaklabco/keepmark/pkg/render"
)

func TestFormatSummaryOneLine_NoFiles(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatSummaryOneLine(render.Stats{})
	assert.Contains(t, out, "No files to render")
}

func TestFormatSummaryOneLine_Success(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatSummaryOneLine(render.Stats{
		FilesDiscovered: 3,
		FilesRendered:   3,
		BytesIn:         2048,
		BytesOut:        4096,
	})
	assert.Contains(t, out, "rendered 3 files")
	assert.Contains(t, out, "2.0 KiB in")
	assert.Contains(t, out, "4.0 KiB out")
	assert.NotContains(t, out, "failed")
}

func TestFormatSummaryOneLine_SingleFile(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatSummaryOneLine(render.Stats{
		FilesDiscovered: 1,
		FilesRendered:   1,
		BytesIn:         10,
		BytesOut:        20,
	})
	assert.Contains(t, out, "rendered 1 file ")
}

func TestFormatSummaryOneLine_WithFailures(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatSummaryOneLine(render.Stats{
		FilesDiscovered: 2,
		FilesRendered:   1,
		FilesErrored:    1,
	})
	assert.Contains(t, out, "1 failed")
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := &render.Result{
		Files: []render.FileOutcome{
			{Path: "docs/a.md", OutPath: "docs/a.html", BytesIn: 100, BytesOut: 200},
			{Path: "docs/b.md", Error: errors.New("read failed")},
		},
		Stats: render.Stats{
			FilesDiscovered: 2,
			FilesRendered:   1,
			FilesErrored:    1,
			BytesIn:         100,
			BytesOut:        200,
		},
	}

	out := styles.FormatSummary(result)

	assert.Contains(t, out, "docs/a.md")
	assert.Contains(t, out, "docs/a.html")
	assert.Contains(t, out, "read failed")
	assert.Contains(t, out, "Files discovered: 2")
	assert.Contains(t, out, "Files rendered:   1")
	assert.Contains(t, out, "Files failed:     1")
	assert.Contains(t, out, "Render failed")
}

func TestFormatSummary_AllRendered(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := &render.Result{
		Files: []render.FileOutcome{
			{Path: "a.md", OutPath: "a.html", BytesIn: 10, BytesOut: 20},
		},
		Stats: render.Stats{
			FilesDiscovered: 1,
			FilesRendered:   1,
			BytesIn:         10,
			BytesOut:        20,
		},
	}

	out := styles.FormatSummary(result)
	assert.Contains(t, out, "Render complete")
	assert.False(t, strings.Contains(out, "Files failed"))
}
