package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/keepmark/pkg/render"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "rendered 12 files (48.2 KiB in, 61.0 KiB out), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats render.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to render") + "\n"
	}

	fileWord := wordFiles
	if stats.FilesRendered == 1 {
		fileWord = wordFile
	}

	msg := s.Success.Render(fmt.Sprintf("rendered %d %s", stats.FilesRendered, fileWord)) +
		s.Dim.Render(fmt.Sprintf(" (%s in, %s out)", humanBytes(stats.BytesIn), humanBytes(stats.BytesOut)))

	if stats.FilesErrored > 0 {
		msg += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
	}

	return msg + "\n"
}

// FormatSummary formats a run result as a summary block, listing each
// rendered file and its output path, then the statistics.
func (s *Styles) FormatSummary(result *render.Result) string {
	var builder strings.Builder

	for _, file := range result.Files {
		if file.Error != nil {
			builder.WriteString("  " + s.Error.Render(file.Path))
			builder.WriteString("\n    " + s.Failure.Render(file.Error.Error()) + "\n")
			continue
		}
		builder.WriteString("  " + s.FilePath.Render(file.Path))
		builder.WriteString(s.Arrow.Render(" -> "))
		builder.WriteString(file.OutPath)
		builder.WriteString(s.Dim.Render(fmt.Sprintf(" (%s)", humanBytes(file.BytesOut))))
		builder.WriteString("\n")
	}

	stats := result.Stats

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered: " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files rendered:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesRendered)) + "\n")

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:     " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("  Bytes in:         " +
		s.SummaryValue.Render(humanBytes(stats.BytesIn)) + "\n")
	builder.WriteString("  Bytes out:        " +
		s.SummaryValue.Render(humanBytes(stats.BytesOut)) + "\n")

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Render failed"))
	} else {
		builder.WriteString(s.Success.Render("Render complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// humanBytes formats a byte count with a binary unit suffix.
func humanBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
