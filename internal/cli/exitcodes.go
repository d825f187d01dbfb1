package cli

import (
	"io/fs"

	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/internal/configloader"
	"github.com/yaklabco/formatkit/pkg/config"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/fsutil"
	"github.com/yaklabco/formatkit/pkg/pipeline"
	"github.com/yaklabco/formatkit/pkg/reporter"
)

// Exit codes for formatkit.
const (
	// ExitSuccess indicates no file needs formatting.
	ExitSuccess = 0

	// ExitCheckFailed indicates --check found files that need formatting.
	ExitCheckFailed = 1

	// ExitConfigError indicates an invalid configuration.
	ExitConfigError = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrUsage marks bad arguments and flags.
	ErrUsage = errors.Base("invalid usage")

	// ErrCheckFailed is returned by format --check when some file would
	// change. The reporter has already listed the files.
	ErrCheckFailed = errors.Base("files need formatting")

	// ErrFilesFailed wraps the errors of the files a run could not
	// format. The reporter has already listed them.
	ErrFilesFailed = errors.Base("some files could not be formatted")
)

// Reported reports whether err was already shown by a reporter, so that
// main only needs to pick the exit code.
func Reported(err error) bool {
	return errors.Is(err, ErrCheckFailed) || errors.Is(err, ErrFilesFailed)
}

// ExitCode maps an error returned by a command to the process exit code.
// When an error combines several causes the most specific category wins:
// usage, then configuration, then I/O.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage),
		errors.Is(err, pipeline.ErrUnsupportedLanguage),
		errors.Is(err, reporter.ErrUnsupportedFormat):
		return ExitInvalidUsage
	case isConfigError(err):
		return ExitConfigError
	case errors.Is(err, pipeline.ErrFileNotFound),
		errors.Is(err, pipeline.ErrPermissionDenied),
		errors.Is(err, pipeline.ErrWriteFailure),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	case errors.Is(err, ErrCheckFailed):
		return ExitCheckFailed
	default:
		return ExitInternalError
	}
}

func isConfigError(err error) bool {
	var validation *configloader.ValidationError
	return errors.As(err, &validation) ||
		errors.Is(err, configloader.ErrLoad) ||
		errors.Is(err, configloader.ErrInvalidEnv) ||
		errors.Is(err, config.ErrDecode) ||
		errors.Is(err, config.ErrUnknownField) ||
		errors.Is(err, options.ErrInvalidOptions) ||
		errors.Is(err, options.ErrInvalidValue) ||
		errors.Is(err, options.ErrUnknownOption)
}
