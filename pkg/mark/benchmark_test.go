package mark_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"

	"github.com/yaklabco/keepmark/pkg/mark"
)

// benchmarkDocument exercises most constructs at a realistic mix.
var benchmarkDocument = []byte(strings.Repeat(`# Section heading

A paragraph with *emphasis*, **strong text**, a [link](https://example.com),
an ![image](/img.png "title"), and some `+"`inline code`"+`.

> A block quote with a lazy
continuation line.

- First item
- Second item with *emphasis*
  - Nested item

1. Ordered
2. List

`+"```go"+`
func main() {
	fmt.Println("hello")
}
`+"```"+`

Setext heading
--------------

A final paragraph with a hard break
and a character reference: &copy;.

---

`, 20))

func BenchmarkToHTML(b *testing.B) {
	b.SetBytes(int64(len(benchmarkDocument)))
	b.ReportAllocs()

	for b.Loop() {
		_ = mark.ToHTML(benchmarkDocument, nil)
	}
}

// BenchmarkToHTMLGoldmark renders the same document with goldmark for
// comparison.
func BenchmarkToHTMLGoldmark(b *testing.B) {
	converter := goldmark.New()
	b.SetBytes(int64(len(benchmarkDocument)))
	b.ReportAllocs()

	for b.Loop() {
		var buf bytes.Buffer
		if err := converter.Convert(benchmarkDocument, &buf); err != nil {
			b.Fatal(err)
		}
	}
}
