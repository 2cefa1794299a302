package mark

import (
	"fmt"
	"regexp"
	"strings"
)

// ProtocolHref matches the protocols that are safe in `href` attributes.
var ProtocolHref = regexp.MustCompile(`(?i)^(https?|ircs?|mailto|xmpp)$`)

// ProtocolSrc matches the protocols that are safe in `src` attributes.
var ProtocolSrc = regexp.MustCompile(`(?i)^https?$`)

// SanitizeURI makes a URL safe for output: it percent-encodes anything a URL
// cannot carry and, when protocol is given, drops the whole URL if its scheme
// does not match. A nil protocol allows everything (dangerous).
func SanitizeURI(url string, protocol *regexp.Regexp) string {
	value := normalizeURI(url)
	if protocol == nil {
		return value
	}

	colon := strings.IndexByte(value, ':')
	questionMark := strings.IndexByte(value, '?')
	numberSign := strings.IndexByte(value, '#')
	slash := strings.IndexByte(value, '/')

	if colon < 0 ||
		(slash > -1 && colon > slash) ||
		(questionMark > -1 && colon > questionMark) ||
		(numberSign > -1 && colon > numberSign) ||
		protocol.MatchString(value[:colon]) {
		return value
	}
	return ""
}

// normalizeURI percent-encodes everything a URL cannot carry, leaving
// existing valid percent escapes alone.
func normalizeURI(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for index := 0; index < len(value); index++ {
		c := value[index]

		// A correct percent encoding stays.
		if c == '%' && index+2 < len(value) &&
			asciiAlphanumeric(Code(value[index+1])) &&
			asciiAlphanumeric(Code(value[index+2])) {
			b.WriteString(value[index : index+3])
			index += 2
			continue
		}

		if c < 0x80 {
			if uriSafe(c) {
				b.WriteByte(c)
			} else {
				fmt.Fprintf(&b, "%%%02X", c)
			}
			continue
		}

		// Non-ASCII bytes are percent-encoded one at a time; UTF-8 sequences
		// come out as their usual multi-escape form.
		fmt.Fprintf(&b, "%%%02X", c)
	}

	return b.String()
}

// uriSafe reports whether an ASCII byte can appear in a URL as is. This is
// the set `[!#$&-;=?-Z_a-z~]`.
func uriSafe(c byte) bool {
	switch {
	case c == '!', c == '#', c == '$', c == '=', c == '_', c == '~':
		return true
	case c >= '&' && c <= ';':
		return true
	case c >= '?' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	}
	return false
}
