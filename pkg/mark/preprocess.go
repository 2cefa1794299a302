package mark

import (
	"strings"
	"unicode/utf8"
)

// Chunk is one piece of preprocessed input: either a run of plain text
// (Value non-empty) or a single sentinel code.
type Chunk struct {
	Code  Code
	Value string
}

func textChunk(value string) Chunk { return Chunk{Value: value} }
func codeChunk(code Code) Chunk    { return Chunk{Code: code} }

// isText reports whether the chunk holds a run of plain text.
func (c Chunk) isText() bool { return c.Value != "" }

// Preprocessor normalizes raw input into chunks. It is stateful: call it once
// per slice of streamed input, with end=true on the final call to flush any
// buffered bytes and append the end-of-input chunk.
type Preprocessor func(value []byte, end bool) []Chunk

// Preprocess returns a fresh Preprocessor.
//
// The preprocessor folds CR, LF, and CRLF into distinct sentinel codes,
// expands tabs into a tab sentinel plus virtual spaces up to the next
// 4-column tab stop, replaces NUL with U+FFFD, and strips a leading
// byte-order mark on the very first call.
//
// Streamed input is safe at any boundary: the trailing run of plain text is
// buffered until the next call, so multi-byte sequences split across writes
// decode correctly (continuation bytes are never the ASCII specials the scan
// stops at), and a trailing CR is held back in case the next write starts
// with the LF that completes a CRLF.
func Preprocess() Preprocessor {
	column := 1
	buffer := ""
	first := true
	atCarriageReturn := false

	return func(value []byte, end bool) []Chunk {
		var chunks []Chunk

		text := buffer + string(value)
		buffer = ""

		if first {
			text = strings.TrimPrefix(text, "\uFEFF")
			first = false
		}

		start := 0
		for pos := 0; pos < len(text); pos++ {
			b := text[pos]
			if b != 0 && b != '\t' && b != '\n' && b != '\r' {
				continue
			}

			if b == '\n' && pos == start && atCarriageReturn {
				chunks = append(chunks, codeChunk(CodeCRLF))
				atCarriageReturn = false
				start = pos + 1
				continue
			}
			if atCarriageReturn {
				chunks = append(chunks, codeChunk(CodeCR))
				atCarriageReturn = false
			}
			if pos > start {
				chunks = append(chunks, textChunk(text[start:pos]))
				column += utf8.RuneCountInString(text[start:pos])
			}

			switch b {
			case 0:
				chunks = append(chunks, codeChunk(codeReplacementCharacter))
				column++
			case '\t':
				next := ((column + tabSize - 1) / tabSize) * tabSize
				chunks = append(chunks, codeChunk(CodeHT))
				for column < next {
					column++
					chunks = append(chunks, codeChunk(CodeVS))
				}
				column++
			case '\n':
				chunks = append(chunks, codeChunk(CodeLF))
				column = 1
			case '\r':
				atCarriageReturn = true
				column = 1
			}
			start = pos + 1
		}

		if start < len(text) {
			if end {
				if atCarriageReturn {
					chunks = append(chunks, codeChunk(CodeCR))
					atCarriageReturn = false
				}
				chunks = append(chunks, textChunk(text[start:]))
				column += utf8.RuneCountInString(text[start:])
			} else {
				buffer = text[start:]
			}
		}

		if end {
			if atCarriageReturn {
				chunks = append(chunks, codeChunk(CodeCR))
			}
			chunks = append(chunks, codeChunk(CodeEOF))
		}

		return chunks
	}
}
