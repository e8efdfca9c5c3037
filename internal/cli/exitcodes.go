package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/evergreen/internal/configloader"
	"github.com/yaklabco/evergreen/pkg/runner"
)

// Exit codes for evergreen.
const (
	// ExitSuccess indicates every file rendered.
	ExitSuccess = 0

	// ExitRenderFailed indicates at least one file failed to render or write.
	ExitRenderFailed = 1

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors outside a render run.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code of a render run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitRenderFailed
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitRenderFailed
	}
}
