package cli

import "github.com/yaklabco/keepmark/pkg/render"

// Exit codes for keepmark.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitRenderErrors indicates the run completed but some files failed.
	ExitRenderErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on a run result.
func ExitCodeFromResult(result *render.Result) int {
	if result.HasFailures() {
		return ExitRenderErrors
	}
	return ExitSuccess
}
