package mark

import "unicode"

// CharacterGroup classifies a character for attention (emphasis) resolution.
type CharacterGroup uint8

// Character groups, in increasing "letter-likeness".
const (
	GroupOther CharacterGroup = iota
	GroupWhitespace
	GroupPunctuation
)

// ClassifyCharacter classifies code as whitespace, punctuation, or other.
//
// Used by the attention resolver and by extensions that pair delimiter runs
// (strikethrough) to decide whether a run can open or close a span.
func ClassifyCharacter(code Code) CharacterGroup {
	if code == CodeEOF || markdownLineEndingOrSpace(code) || unicodeWhitespace(code) {
		return GroupWhitespace
	}
	if unicodePunctuation(code) {
		return GroupPunctuation
	}
	return GroupOther
}

// unicodeWhitespace reports whether code is Unicode whitespace per the
// CommonMark definition (Zs plus tab, line feed, form feed, carriage return).
func unicodeWhitespace(code Code) bool {
	if code < 0 {
		return false
	}
	switch code {
	case '\t', '\n', '\f', '\r':
		return true
	}
	return unicode.Is(unicode.Zs, rune(code))
}

// unicodePunctuation reports whether code is Unicode punctuation or a symbol,
// matching the CommonMark definition of a punctuation character.
func unicodePunctuation(code Code) bool {
	if code < 0 {
		return false
	}
	if asciiPunctuation(code) {
		return true
	}
	r := rune(code)
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
