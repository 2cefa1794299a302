package configloader

// Config is the on-disk configuration for keepmark.
//
// Boolean options are pointers so merging can tell "explicitly false" apart
// from "not set": a project config may disable GFM that a user config enabled.
type Config struct {
	// GFM enables the GitHub Flavored Markdown extensions.
	GFM *bool `yaml:"gfm"`

	// Math enables dollar-delimited math syntax.
	Math *bool `yaml:"math"`

	// Unsafe allows raw HTML and dangerous link protocols through.
	Unsafe *bool `yaml:"unsafe"`

	// DetectLanguage infers info strings for bare code fences.
	DetectLanguage *bool `yaml:"detect_language"`

	// Extensions are the input file extensions to render.
	Extensions []string `yaml:"extensions"`

	// Exclude lists glob patterns for paths to skip.
	Exclude []string `yaml:"exclude"`

	// OutDir mirrors rendered files under this directory instead of
	// writing next to their sources.
	OutDir string `yaml:"out_dir"`

	// OutExt is the output file extension.
	OutExt string `yaml:"out_ext"`

	// Jobs is the number of parallel render workers (0 means auto).
	Jobs int `yaml:"jobs"`

	// LineEnding is the default line ending for generated markup when the
	// document itself has none: "lf" or "crlf".
	LineEnding string `yaml:"line_ending"`

	// LogLevel sets the logger verbosity: debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
}

// NewConfig returns a configuration populated with defaults.
func NewConfig() *Config {
	return &Config{
		Extensions: []string{".md", ".markdown"},
		OutExt:     ".html",
		LogLevel:   "info",
	}
}

// BoolPtr returns a pointer to the given bool.
func BoolPtr(value bool) *bool {
	return &value
}

// BoolValue dereferences a bool pointer, treating nil as false.
func BoolValue(value *bool) bool {
	return value != nil && *value
}
