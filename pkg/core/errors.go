// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrNoManagerFound indicates no known package manager is present on the host
	ErrNoManagerFound = errors.New("no package manager found")

	// ErrManagerNotAvailable indicates the requested manager is unknown or not installed
	ErrManagerNotAvailable = errors.New("package manager not available")

	// ErrUnsupportedVerb indicates the manager has no native form of the verb
	ErrUnsupportedVerb = errors.New("operation not supported by package manager")

	// ErrMissingPackages indicates a verb that needs package names got none
	ErrMissingPackages = errors.New("no packages given")

	// ErrUnexpectedPackages indicates a verb that takes no package names got some
	ErrUnexpectedPackages = errors.New("operation does not take package names")

	// ErrInvalidPackage indicates a package name the native manager could
	// mistake for an option, or an empty one
	ErrInvalidPackage = errors.New("invalid package name")

	// ErrExecution indicates the native manager could not be launched
	ErrExecution = errors.New("failed to run package manager")

	// ErrNativeManagerFailure indicates the native manager ran and exited non-zero
	ErrNativeManagerFailure = errors.New("package manager exited with an error")

	// ErrInterrupted indicates the invocation was cancelled by a signal
	ErrInterrupted = errors.New("operation cancelled")
)

// Error wraps an error with the pipeline stage and manager it occurred in
type Error struct {
	Op      string // Stage that failed (detect, select, translate, execute)
	Manager string // Manager id if known
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Manager != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Manager, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NativeError reports a native manager that ran to completion with a non-zero
// exit code. The code is passed through to the caller unchanged. A manager
// killed by a signal carries the signal and the shell's 128+signal code.
type NativeError struct {
	Program string
	Code    int
	Signal  syscall.Signal // Zero unless the manager was killed by a signal
}

func (e *NativeError) Error() string {
	if e.Signal != 0 {
		return fmt.Sprintf("%s terminated by signal %d (%v)", e.Program, int(e.Signal), e.Signal)
	}
	return fmt.Sprintf("%s exited with status %d", e.Program, e.Code)
}

// Is makes errors.Is(err, ErrNativeManagerFailure) match any NativeError
func (e *NativeError) Is(target error) bool {
	return target == ErrNativeManagerFailure
}
