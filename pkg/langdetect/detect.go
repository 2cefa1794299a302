// Package langdetect infers a fence info string for code blocks that have
// none, so rendered output still carries a `language-*` class. It combines
// cheap structural checks with go-enry's classifier.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fallback is returned when no language can be inferred.
const Fallback = "text"

// classifierCandidates bounds the enry classifier to languages that commonly
// appear in fenced code blocks.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// matcher is a structural check that is highly indicative of one language.
type matcher struct {
	lang  string
	match func(content []byte) bool
}

// matchers run in order of specificity, before the statistical classifier.
var matchers = []matcher{
	{"go", func(c []byte) bool {
		return bytes.HasPrefix(bytes.TrimSpace(c), []byte("package "))
	}},
	{"python", isPython},
	{"html", func(c []byte) bool {
		lower := bytes.ToLower(bytes.TrimSpace(c))
		return bytes.Contains(lower, []byte("<!doctype html")) ||
			bytes.Contains(lower, []byte("<html")) ||
			bytes.Contains(lower, []byte("<head>")) ||
			bytes.Contains(lower, []byte("<body>"))
	}},
	{"json", func(c []byte) bool {
		trimmed := bytes.TrimSpace(c)
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(c []byte) bool {
		trimmed := bytes.TrimSpace(c)
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(bytes.Contains(c, []byte("\nFROM ")) && bytes.Contains(c, []byte("\nRUN "))) ||
			(bytes.Contains(c, []byte("WORKDIR ")) && bytes.Contains(c, []byte("COPY ")))
	}},
	{"sql", func(c []byte) bool {
		upper := strings.ToUpper(strings.TrimSpace(string(c)))
		for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, keyword) {
				return true
			}
		}
		return false
	}},
	{"rust", func(c []byte) bool {
		s := string(c)
		return strings.Contains(s, "fn main()") ||
			strings.Contains(s, "println!") ||
			strings.Contains(s, "let mut ")
	}},
	{"javascript", func(c []byte) bool {
		s := string(c)
		return strings.Contains(s, "=>") ||
			strings.Contains(s, "const ") ||
			strings.Contains(s, "let ") ||
			strings.Contains(s, "console.log")
	}},
	{"yaml", isYAML},
}

// Detect returns the inferred fence info string for code content. It returns
// Fallback when nothing matches with confidence.
func Detect(content []byte) string {
	if len(content) == 0 {
		return Fallback
	}

	// A shebang is the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	for _, m := range matchers {
		if m.match(content) {
			return m.lang
		}
	}

	// Only trust the classifier when it reports confidence.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Fallback
}

func isPython(content []byte) bool {
	s := string(content)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	// Import statements, but not Go's grouped form.
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") {
		if strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ") {
			return true
		}
	}
	return strings.Contains(s, "__name__") || strings.Contains(s, "__main__")
}

// isYAML counts plain `key: value` lines and root list items; two or more
// make YAML likely.
func isYAML(content []byte) bool {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}

// normalize converts go-enry language names to fence info strings.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
