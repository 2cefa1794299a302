package mark_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/keepmark/pkg/mark"
)

func FuzzToHTML(f *testing.F) {
	// Add seed corpus covering every construct family.
	f.Add("")
	f.Add("# heading\n\nparagraph with *emphasis* and `code`.\n")
	f.Add("> quote\n> more\n\n- list\n- items\n")
	f.Add("[link](https://example.com \"title\") and ![img](/a.png)\n")
	f.Add("[ref]\n\n[ref]: /url\n")
	f.Add("```js\ncode\n```\n\n    indented\n")
	f.Add("a  \nb\\\nc &amp; &#35; &#x41; \\* d\n")
	f.Add("<div>\nraw\n</div>\n\ntext <b>inline</b>\n")
	f.Add("Setext\n===\n\n***\n\n1. one\n   - nested\n")
	f.Add("\uFEFF\ttabs\tand\r\nCRLF\rCR\n")
	f.Add("*a **b `c` d** e* [f](<g h>)")
	f.Add(strings.Repeat("> ", 20) + "deep")
	f.Add(strings.Repeat("*", 50) + "a" + strings.Repeat("*", 50))
	f.Add("[a](b\x00c) &#0; \x00")

	f.Fuzz(func(t *testing.T, input string) {
		// Must never panic, whatever the input.
		out := mark.ToHTML([]byte(input), nil)
		_ = mark.ToHTML([]byte(input), &mark.Options{
			AllowDangerousHTML:     true,
			AllowDangerousProtocol: true,
		})

		// NUL is always replaced during preprocessing.
		if strings.ContainsRune(out, '\x00') {
			t.Errorf("output contains NUL for input %q", input)
		}
	})
}

// FuzzSpliceBuffer drives a buffer and a plain slice through the same random
// operations and requires them to agree.
func FuzzSpliceBuffer(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 1, 2, 3, 4, 5})
	f.Add([]byte{4, 0, 0, 4, 5, 2, 1, 0, 0, 3, 0, 0})
	f.Add([]byte{0, 9, 9, 2, 7, 7, 4, 1, 3, 1, 0, 0, 4, 0, 0})

	f.Fuzz(func(t *testing.T, ops []byte) {
		buffer := mark.NewSpliceBuffer([]int{10, 20, 30})
		reference := []int{10, 20, 30}

		for index := 0; index+2 < len(ops); index += 3 {
			op := ops[index] % 5
			a := int(ops[index+1])
			b := int(ops[index+2])

			switch op {
			case 0:
				buffer.Push(a)
				reference = append(reference, a)
			case 1:
				got, ok := buffer.Pop()
				if len(reference) == 0 {
					if ok {
						t.Fatal("Pop on empty buffer reported ok")
					}
				} else {
					want := reference[len(reference)-1]
					reference = reference[:len(reference)-1]
					if !ok || got != want {
						t.Fatalf("Pop = %d, %v; want %d, true", got, ok, want)
					}
				}
			case 2:
				buffer.Unshift(a)
				reference = append([]int{a}, reference...)
			case 3:
				got, ok := buffer.Shift()
				if len(reference) == 0 {
					if ok {
						t.Fatal("Shift on empty buffer reported ok")
					}
				} else {
					want := reference[0]
					reference = reference[1:]
					if !ok || got != want {
						t.Fatalf("Shift = %d, %v; want %d, true", got, ok, want)
					}
				}
			case 4:
				start := 0
				if len(reference) > 0 {
					start = a % (len(reference) + 1)
				}
				deleteCount := 0
				if rest := len(reference) - start; rest > 0 {
					deleteCount = b % (rest + 1)
				}
				items := []int{a, b}
				buffer.Splice(start, deleteCount, items)

				next := make([]int, 0, len(reference)+len(items))
				next = append(next, reference[:start]...)
				next = append(next, items...)
				next = append(next, reference[start+deleteCount:]...)
				reference = next
			}
		}

		if buffer.Length() != len(reference) {
			t.Fatalf("Length = %d, want %d", buffer.Length(), len(reference))
		}
		for index, want := range reference {
			if got := buffer.Get(index); got != want {
				t.Fatalf("Get(%d) = %d, want %d", index, got, want)
			}
		}
		if got := buffer.Slice(0, buffer.Length()); len(got) != len(reference) {
			t.Fatalf("Slice length = %d, want %d", len(got), len(reference))
		}
	})
}
