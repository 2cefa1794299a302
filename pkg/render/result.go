package render

// FileOutcome records what happened to one input file.
type FileOutcome struct {
	// Path is the input file that was processed.
	Path string

	// OutPath is where the rendered HTML was written.
	OutPath string

	// BytesIn and BytesOut measure the input Markdown and output HTML.
	BytesIn  int
	BytesOut int

	// Error is set if the file could not be rendered or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesRendered is the number of files successfully rendered and written.
	FilesRendered int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// BytesIn and BytesOut are total input and output sizes.
	BytesIn  int
	BytesOut int
}

// Result is the overall render run result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesRendered++
	r.Stats.BytesIn += outcome.BytesIn
	r.Stats.BytesOut += outcome.BytesOut
}
