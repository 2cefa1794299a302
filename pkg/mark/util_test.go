package mark_test

import (
	"testing"

	"github.com/yaklabco/keepmark/pkg/mark"
)

func TestNormalizeIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"case folded", "Foo", "FOO"},
		{"inner whitespace collapsed", "a  \t\n b", "A B"},
		{"edges trimmed", "  foo  ", "FOO"},
		{"sharp s folds both ways", "ẞ", "SS"},
		{"matches lowercase sharp s", "ß", "SS"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := mark.NormalizeIdentifier(testCase.input)
			if got != testCase.want {
				t.Errorf("NormalizeIdentifier(%q) = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestDecodeNumericCharacterReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		base  int
		want  string
	}{
		{"decimal", "35", 10, "#"},
		{"hex", "41", 16, "A"},
		{"tab allowed", "9", 10, "\t"},
		{"nul replaced", "0", 10, "�"},
		{"control replaced", "1", 10, "�"},
		{"surrogate replaced", "D800", 16, "�"},
		{"out of range replaced", "110000", 16, "�"},
		{"noncharacter replaced", "FFFF", 16, "�"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := mark.DecodeNumericCharacterReference(testCase.value, testCase.base)
			if got != testCase.want {
				t.Errorf("DecodeNumericCharacterReference(%q, %d) = %q, want %q",
					testCase.value, testCase.base, got, testCase.want)
			}
		})
	}
}

func TestDecodeNamedCharacterReference(t *testing.T) {
	t.Parallel()

	if got, ok := mark.DecodeNamedCharacterReference("amp"); !ok || got != "&" {
		t.Errorf("amp = %q, %v; want &, true", got, ok)
	}
	if got, ok := mark.DecodeNamedCharacterReference("copy"); !ok || got != "©" {
		t.Errorf("copy = %q, %v; want ©, true", got, ok)
	}
	if _, ok := mark.DecodeNamedCharacterReference("notaname"); ok {
		t.Error("unknown name should not decode")
	}

	// Names whose prefix is a legacy semicolonless entity are still unknown.
	if got, ok := mark.DecodeNamedCharacterReference("notit"); ok {
		t.Errorf("notit should not decode, got %q", got)
	}
	if got, ok := mark.DecodeNamedCharacterReference("copyright"); ok {
		t.Errorf("copyright should not decode, got %q", got)
	}
	if got, ok := mark.DecodeNamedCharacterReference("semi"); !ok || got != ";" {
		t.Errorf("semi = %q, %v; want ;, true", got, ok)
	}
}

func TestDecodeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "abc", "abc"},
		{"escape", "a\\*b", "a*b"},
		{"non-escapable backslash kept", "a\\qb", "a\\qb"},
		{"named reference", "a&amp;b", "a&b"},
		{"numeric reference", "a&#35;b", "a#b"},
		{"hex reference", "a&#x41;b", "aAb"},
		{"unknown reference kept", "a&bogus;b", "a&bogus;b"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := mark.DecodeString(testCase.input)
			if got != testCase.want {
				t.Errorf("DecodeString(%q) = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestSanitizeURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"https allowed", "https://example.com", "https://example.com"},
		{"mailto allowed", "mailto:a@b.c", "mailto:a@b.c"},
		{"javascript dropped", "javascript:alert(1)", ""},
		{"relative kept", "/path", "/path"},
		{"fragment before colon kept", "#a:b", "#a:b"},
		{"query before colon kept", "?a:b", "?a:b"},
		{"space encoded", "/a b", "/a%20b"},
		{"unicode encoded", "/ä", "/%C3%A4"},
		{"existing escape kept", "/a%20b", "/a%20b"},
		{"broken escape encoded", "/a%2", "/a%252"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := mark.SanitizeURI(testCase.url, mark.ProtocolHref)
			if got != testCase.want {
				t.Errorf("SanitizeURI(%q) = %q, want %q", testCase.url, got, testCase.want)
			}
		})
	}
}

func TestSanitizeURINilProtocol(t *testing.T) {
	t.Parallel()

	got := mark.SanitizeURI("javascript:alert(1)", nil)
	if want := "javascript:alert(1)"; got != want {
		t.Errorf("nil protocol should allow everything, got %q", got)
	}
}

func TestClassifyCharacter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code mark.Code
		want mark.CharacterGroup
	}{
		{"eof", mark.CodeEOF, mark.GroupWhitespace},
		{"space", mark.Code(' '), mark.GroupWhitespace},
		{"line feed", mark.CodeLF, mark.GroupWhitespace},
		{"asterisk", mark.Code('*'), mark.GroupPunctuation},
		{"letter", mark.Code('a'), mark.GroupOther},
		{"digit", mark.Code('5'), mark.GroupOther},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := mark.ClassifyCharacter(testCase.code)
			if got != testCase.want {
				t.Errorf("ClassifyCharacter(%d) = %v, want %v", testCase.code, got, testCase.want)
			}
		})
	}
}

func TestSpliceBuffer(t *testing.T) {
	t.Parallel()

	buffer := mark.NewSpliceBuffer([]int{1, 2, 3})

	if got := buffer.Length(); got != 3 {
		t.Fatalf("Length = %d, want 3", got)
	}

	buffer.Splice(1, 1, []int{9, 8})
	want := []int{1, 9, 8, 3}
	for index, value := range want {
		if got := buffer.Get(index); got != value {
			t.Errorf("Get(%d) = %d, want %d", index, got, value)
		}
	}

	buffer.Push(7)
	if got, ok := buffer.Pop(); !ok || got != 7 {
		t.Errorf("Pop = %d, %v; want 7, true", got, ok)
	}

	buffer.Unshift(0)
	if got, ok := buffer.Shift(); !ok || got != 0 {
		t.Errorf("Shift = %d, %v; want 0, true", got, ok)
	}

	slice := buffer.Slice(1, 3)
	if len(slice) != 2 || slice[0] != 9 || slice[1] != 8 {
		t.Errorf("Slice(1, 3) = %v, want [9 8]", slice)
	}
}

func TestPostprocessIdempotent(t *testing.T) {
	t.Parallel()

	input := []byte("# h\n\n- a\n- *b*\n\n> quote\nlazy\n")
	parser := mark.NewParser()
	preprocess := mark.Preprocess()

	events := mark.Postprocess(parser.Document(mark.Point{}).Write(preprocess(input, true)))
	again := mark.Postprocess(events)

	if len(again) != len(events) {
		t.Fatalf("second pass changed the event count: %d != %d", len(again), len(events))
	}
	for index := range events {
		if again[index] != events[index] {
			t.Fatalf("second pass changed event %d", index)
		}
	}
}

func TestSliceSerializeRoundTrip(t *testing.T) {
	t.Parallel()

	// A single paragraph is covered by one content token, so serializing it
	// must reproduce the source, line endings and tabs included.
	for _, input := range []string{
		"a b c",
		"a\nb\nc",
		"x\r\ny",
		"a\tb",
	} {
		parser := mark.NewParser()
		preprocess := mark.Preprocess()
		events := mark.Postprocess(parser.Document(mark.Point{}).Write(preprocess([]byte(input), true)))

		if len(events) == 0 {
			t.Fatalf("no events for %q", input)
		}
		got := events[0].Context.SliceSerialize(events[0].Token, false)
		if got != input {
			t.Errorf("SliceSerialize round trip of %q = %q", input, got)
		}
	}
}

func TestSpliceEvents(t *testing.T) {
	t.Parallel()

	a := mark.Event{Kind: mark.Enter}
	b := mark.Event{Kind: mark.Exit}

	events := []mark.Event{a, a, a}
	events = mark.SpliceEvents(events, 1, 1, []mark.Event{b, b})

	if len(events) != 4 {
		t.Fatalf("len = %d, want 4", len(events))
	}
	if events[1].Kind != mark.Exit || events[2].Kind != mark.Exit {
		t.Error("spliced events not inserted at index 1")
	}
	if events[0].Kind != mark.Enter || events[3].Kind != mark.Enter {
		t.Error("surrounding events disturbed")
	}
}
