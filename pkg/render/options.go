// Package render orchestrates rendering many Markdown files to HTML: it
// discovers inputs, renders them on a bounded worker pool, and writes the
// output atomically.
package render

// Options controls a render run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to [".md", ".markdown"] via
	// DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// matched against paths relative to WorkingDir.
	ExcludeGlobs []string

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// OutDir is where rendered files are written, mirroring the input layout
	// relative to WorkingDir. Empty means "next to the input".
	OutDir string

	// OutExt is the extension of rendered files. Defaults to ".html".
	OutExt string

	// GFM enables the GitHub Flavored Markdown extensions.
	GFM bool

	// Math enables `$` text and `$$` flow math.
	Math bool

	// Unsafe keeps raw HTML and unsafe link protocols in the output.
	Unsafe bool

	// DetectLanguage infers a language for fenced code blocks that have no
	// info string, so the output carries a language class.
	DetectLanguage bool

	// DefaultLineEnding is used for line endings the compiler has to invent
	// in a document without any. Defaults to "\n".
	DefaultLineEnding string
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// DefaultOutExt is the extension rendered files get by default.
const DefaultOutExt = ".html"

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveOutExt() string {
	if o.OutExt == "" {
		return DefaultOutExt
	}
	return o.OutExt
}
