// Package mark is a CommonMark engine built around a character-level
// tokenizer. Input is preprocessed into chunks, tokenized into a flat event
// stream by composable construct state machines, and compiled to HTML.
//
// The package exposes the layers separately so callers can extend the syntax
// (Extension), replace or add HTML handlers (HTMLExtension), or stop at the
// event stream and build something other than HTML on top of it.
package mark

// Options configure a ToHTML run.
type Options struct {
	// Extensions extend the syntax.
	Extensions []Extension

	// HTMLExtensions add or override HTML handlers.
	HTMLExtensions []HTMLExtension

	// AllowDangerousHTML passes raw HTML through to the output.
	AllowDangerousHTML bool

	// AllowDangerousProtocol keeps link and image URLs with unsafe protocols.
	AllowDangerousProtocol bool

	// DefaultLineEnding overrides the line ending style used for line endings
	// the compiler adds itself.
	DefaultLineEnding string
}

// ToHTML renders markdown to an HTML fragment.
//
// The output is safe by default: raw HTML is encoded and URLs with unsafe
// protocols are dropped. Use the Options to opt out.
func ToHTML(value []byte, options *Options) string {
	if options == nil {
		options = &Options{}
	}

	parser := NewParser(options.Extensions...)
	preprocess := Preprocess()
	events := parser.Document(Point{}).Write(preprocess(value, true))
	events = Postprocess(events)

	compiler := NewCompiler(CompileOptions{
		AllowDangerousHTML:     options.AllowDangerousHTML,
		AllowDangerousProtocol: options.AllowDangerousProtocol,
		DefaultLineEnding:      options.DefaultLineEnding,
		Extensions:             options.HTMLExtensions,
	})
	return compiler.Compile(events)
}
