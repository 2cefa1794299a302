package mark

// Code is a single character of preprocessed input. Non-negative values are
// Unicode code points; negative values are sentinels produced by the
// preprocessor so that the rest of the pipeline never has to special-case
// line-ending variants, tab stops, or end of input.
type Code int32

// Sentinel codes.
const (
	// CodeEOF marks the end of the input stream.
	CodeEOF Code = -1
	// CodeCR, CodeLF and CodeCRLF stand for the three line-ending variants.
	// The preprocessor folds the raw bytes into exactly one of these, so a
	// carriage return followed by a line feed is always a single CodeCRLF.
	CodeCR   Code = -5
	CodeLF   Code = -4
	CodeCRLF Code = -3
	// CodeHT is a horizontal tab. The preprocessor follows every tab with
	// enough CodeVS codes to reach the next 4-column tab stop.
	CodeHT Code = -2
	// CodeVS is a virtual space: a filler emitted after a tab so that column
	// arithmetic works without re-deriving tab stops downstream.
	CodeVS Code = -6
)

// CodeAny is the wildcard key of a ConstructRecord. Constructs registered
// under it are tried for every code, after any code-specific candidates.
const CodeAny Code = -9

const codeReplacementCharacter Code = 0xFFFD

// markdownLineEnding reports whether code is one of the line-ending sentinels.
func markdownLineEnding(code Code) bool {
	switch code {
	case CodeCR, CodeLF, CodeCRLF:
		return true
	}
	return false
}

// markdownLineEndingOrSpace reports whether code is a line ending, EOF, or
// markdown whitespace.
func markdownLineEndingOrSpace(code Code) bool {
	return code == CodeEOF || markdownLineEnding(code) || markdownSpace(code)
}

// markdownSpace reports whether code is a space, tab, or virtual space.
func markdownSpace(code Code) bool {
	switch code {
	case CodeHT, CodeVS, ' ':
		return true
	}
	return false
}

// asciiAlpha reports whether code is an ASCII letter.
func asciiAlpha(code Code) bool {
	return (code >= 'a' && code <= 'z') || (code >= 'A' && code <= 'Z')
}

// asciiDigit reports whether code is an ASCII digit.
func asciiDigit(code Code) bool {
	return code >= '0' && code <= '9'
}

// asciiHexDigit reports whether code is an ASCII hexadecimal digit.
func asciiHexDigit(code Code) bool {
	return asciiDigit(code) || (code >= 'a' && code <= 'f') || (code >= 'A' && code <= 'F')
}

// asciiAlphanumeric reports whether code is an ASCII letter or digit.
func asciiAlphanumeric(code Code) bool {
	return asciiAlpha(code) || asciiDigit(code)
}

// asciiAtext reports whether code is valid in the local part of an email
// autolink.
func asciiAtext(code Code) bool {
	if asciiAlphanumeric(code) {
		return true
	}
	switch code {
	case '#', '$', '%', '&', '\'', '*', '+', '-', '/', '=', '?', '^', '_', '`', '{', '|', '}', '~', '!', '.':
		return true
	}
	return false
}

// asciiPunctuation reports whether code is ASCII punctuation.
func asciiPunctuation(code Code) bool {
	switch {
	case code >= '!' && code <= '/':
		return true
	case code >= ':' && code <= '@':
		return true
	case code >= '[' && code <= '`':
		return true
	case code >= '{' && code <= '~':
		return true
	}
	return false
}

// asciiControl reports whether code is a C0 control or DEL.
func asciiControl(code Code) bool {
	return (code >= 0 && code < ' ') || code == 0x7F
}

// Exported forms of the character predicates, for extension constructs.

// MarkdownLineEnding reports whether code is a line-ending sentinel.
func MarkdownLineEnding(code Code) bool { return markdownLineEnding(code) }

// MarkdownSpace reports whether code is a space, tab, or virtual space.
func MarkdownSpace(code Code) bool { return markdownSpace(code) }

// MarkdownLineEndingOrSpace reports whether code is a line ending, EOF, or
// markdown whitespace.
func MarkdownLineEndingOrSpace(code Code) bool { return markdownLineEndingOrSpace(code) }

// ASCIIAlpha reports whether code is an ASCII letter.
func ASCIIAlpha(code Code) bool { return asciiAlpha(code) }

// ASCIIAlphanumeric reports whether code is an ASCII letter or digit.
func ASCIIAlphanumeric(code Code) bool { return asciiAlphanumeric(code) }

// ASCIIControl reports whether code is a C0 control or DEL.
func ASCIIControl(code Code) bool { return asciiControl(code) }
