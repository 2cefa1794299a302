package render

import (
	"bytes"
	"strings"

	"github.com/yaklabco/keepmark/pkg/langdetect"
)

// annotateFences fills in the info string of backtick fences that lack one,
// using language detection over the fence body. Fences inside other fences,
// tilde fences, and fences that already carry an info string are untouched.
func annotateFences(value []byte) []byte {
	lines := bytes.SplitAfter(value, []byte("\n"))
	var out bytes.Buffer
	out.Grow(len(value) + 64)

	index := 0
	for index < len(lines) {
		line := lines[index]
		marker := fenceOpen(line)
		if marker == 0 {
			out.Write(line)
			index++
			continue
		}

		// Collect the fence body up to the closing fence or EOF.
		body := index + 1
		for body < len(lines) && !fenceClose(lines[body], marker, line) {
			body++
		}

		info := hasInfo(line)
		if marker == '`' && !info {
			content := bytes.Join(lines[index+1:body], nil)
			if lang := langdetect.Detect(content); lang != "" {
				trimmed := bytes.TrimRight(line, "\r\n")
				out.Write(trimmed)
				out.WriteString(lang)
				out.Write(line[len(trimmed):])
				index++
				for index <= body && index < len(lines) {
					out.Write(lines[index])
					index++
				}
				continue
			}
		}

		for index <= body && index < len(lines) {
			out.Write(lines[index])
			index++
		}
	}

	return out.Bytes()
}

// fenceOpen reports the fence marker when a line opens a code fence at up to
// three spaces of indent, with at least three markers.
func fenceOpen(line []byte) byte {
	indent := 0
	for indent < len(line) && indent < 3 && line[indent] == ' ' {
		indent++
	}
	if indent >= len(line) {
		return 0
	}
	c := line[indent]
	if c != '`' && c != '~' {
		return 0
	}
	size := 0
	for indent+size < len(line) && line[indent+size] == c {
		size++
	}
	if size < 3 {
		return 0
	}
	return c
}

// fenceClose reports whether a line closes a fence opened with the given
// marker line: same marker, at least as many of them, nothing else.
func fenceClose(line []byte, marker byte, open []byte) bool {
	closeMarker := fenceOpen(line)
	if closeMarker != marker {
		return false
	}
	rest := bytes.TrimLeft(bytes.TrimSpace(line), string(marker))
	if len(rest) != 0 {
		return false
	}
	openSize := bytes.Count(bytes.TrimSpace(open), []byte{marker})
	closeSize := bytes.Count(bytes.TrimSpace(line), []byte{marker})
	return closeSize >= openSize
}

// hasInfo reports whether a fence line carries an info string.
func hasInfo(line []byte) bool {
	trimmed := strings.TrimSpace(string(line))
	trimmed = strings.TrimLeft(trimmed, "`~")
	return strings.TrimSpace(trimmed) != ""
}
