package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mtfind/pkg/source"
)

// Exit codes for mtfind, following the sysexits convention.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates an invalid pattern or configuration.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Marker errors used to classify failures into exit codes.
var (
	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrPattern marks a rejected search pattern.
	ErrPattern = errors.New("invalid pattern")

	// ErrConfig marks a rejected configuration.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCode classifies err into a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrPattern), errors.Is(err, ErrConfig):
		return ExitDataError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission),
		errors.Is(err, source.ErrNotRegular):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
