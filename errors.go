// errors.go
package pkgx

import (
	"errors"

	"github.com/arc-language/pkgx/pkg/core"
	"github.com/arc-language/pkgx/pkg/dispatch"
)

// Re-export the error taxonomy
var (
	// ErrNoManagerFound indicates no known package manager is installed
	ErrNoManagerFound = core.ErrNoManagerFound

	// ErrManagerNotAvailable indicates the requested manager is unknown or not installed
	ErrManagerNotAvailable = core.ErrManagerNotAvailable

	// ErrUnsupportedVerb indicates the manager lacks the requested operation
	ErrUnsupportedVerb = core.ErrUnsupportedVerb

	// ErrExecution indicates the native manager could not be launched
	ErrExecution = core.ErrExecution

	// ErrNativeManagerFailure indicates the native manager exited non-zero
	ErrNativeManagerFailure = core.ErrNativeManagerFailure

	// ErrInterrupted indicates the invocation was cancelled by a signal
	ErrInterrupted = core.ErrInterrupted
)

// Error wraps an error with the stage and manager it occurred in
type Error = core.Error

// ExitCode maps the outcome of an invocation to a process exit code: 0 on
// success, the native manager's own code when it failed, 130 when
// interrupted and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var native *core.NativeError
	if errors.As(err, &native) && native.Code > 0 {
		return native.Code
	}

	if errors.Is(err, core.ErrInterrupted) {
		return dispatch.InterruptedExitCode
	}

	return 1
}
