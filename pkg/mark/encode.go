package mark

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// encode makes a value safe for embedding in HTML text and double-quoted
// attribute values.
func encode(value string) string {
	return htmlEscaper.Replace(value)
}
