package mark

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// DecodeNumericCharacterReference turns the digits of a numeric character
// reference (without the `&#`, optional `x`, and `;`) into a string. Invalid
// code points per HTML (controls, surrogates, noncharacters, out of range)
// yield U+FFFD.
func DecodeNumericCharacterReference(value string, base int) string {
	code, err := strconv.ParseInt(value, base, 64)
	if err != nil ||
		// C0 except for HT, LF, FF, CR, space.
		code < 9 || code == 11 || (code > 13 && code < 32) ||
		// DEL and C1 controls.
		(code > 126 && code < 160) ||
		// Lone surrogates.
		(code > 0xD7FF && code < 0xE000) ||
		// Noncharacters.
		(code > 0xFDCF && code < 0xFDF0) ||
		(code&0xFFFF) == 0xFFFE || (code&0xFFFF) == 0xFFFF ||
		// Out of range.
		code > 0x10FFFF {
		return string(codeReplacementCharacter)
	}
	return string(rune(code))
}

// DecodeNamedCharacterReference decodes a named HTML character reference such
// as `amp` or `copy` (without the `&` and `;`). The second return reports
// whether the name is known.
func DecodeNamedCharacterReference(name string) (string, bool) {
	reference := "&" + name + ";"
	decoded := html.UnescapeString(reference)
	if decoded == reference {
		return "", false
	}
	// UnescapeString also expands the legacy semicolonless entities, which
	// would accept a name like `notit` through its `not` prefix. A prefix
	// match leaves the rest of the name, final semicolon included, in the
	// result; only `semi` itself legitimately decodes to a semicolon.
	if strings.HasSuffix(decoded, ";") && name != "semi" {
		return "", false
	}
	return decoded, true
}

var characterEscapeOrReference = regexp.MustCompile(
	"\\\\([!-/:-@\\[-`{-~])|&(#(?:[0-9]{1,7}|[xX][0-9a-fA-F]{1,6})|[0-9a-zA-Z]{1,31});",
)

// DecodeString decodes markdown character escapes and character references in
// a string: used for identifiers, destinations, and titles, which are not
// retokenized.
func DecodeString(value string) string {
	if !strings.ContainsAny(value, "\\&") {
		return value
	}
	return characterEscapeOrReference.ReplaceAllStringFunc(value, func(match string) string {
		if match[0] == '\\' {
			return match[1:]
		}
		body := match[1 : len(match)-1]
		if body[0] == '#' {
			if len(body) > 1 && (body[1] == 'x' || body[1] == 'X') {
				return DecodeNumericCharacterReference(body[2:], 16)
			}
			return DecodeNumericCharacterReference(body[1:], 10)
		}
		if decoded, found := DecodeNamedCharacterReference(body); found {
			return decoded
		}
		return match
	})
}
