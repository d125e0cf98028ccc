// pkg/dispatch/runner.go
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/arc-language/pkgx/pkg/core"
)

// DefaultGracePeriod is how long a cancelled child gets to exit after being
// interrupted before it is killed
const DefaultGracePeriod = 10 * time.Second

// Streams are the standard streams handed to the native manager
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's own standard streams
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// SignalExitBase is added to the signal number of a child killed by a signal,
// as shells report it (137 for SIGKILL)
const SignalExitBase = 128

// SignalError reports a child that was terminated by a signal instead of
// exiting. Runners return it together with the SignalExitBase+signal code.
type SignalError struct {
	Signal syscall.Signal
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("terminated by signal %d (%v)", int(e.Signal), e.Signal)
}

// Runner is the process execution boundary. Run starts the command, waits
// for it and returns its exit code. A non-nil error means the command could
// not be started or waited for, or was killed by a signal (*SignalError); a
// non-zero exit code is not an error.
type Runner interface {
	Run(ctx context.Context, cmd *core.Command, streams Streams) (int, error)
}

// ExecRunner runs commands as direct child processes, never through a shell
type ExecRunner struct {
	GracePeriod time.Duration
}

// Run spawns cmd.Program with cmd.Args. When ctx is cancelled the child is sent
// an interrupt first and killed once the grace period has passed.
func (r ExecRunner) Run(ctx context.Context, cmd *core.Command, streams Streams) (int, error) {
	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	c.Stdin = streams.In
	c.Stdout = streams.Out
	c.Stderr = streams.Err
	c.Cancel = func() error {
		if err := c.Process.Signal(os.Interrupt); err != nil {
			// os.Interrupt is not deliverable on Windows
			return c.Process.Kill()
		}
		return nil
	}
	c.WaitDelay = r.GracePeriod
	if c.WaitDelay == 0 {
		c.WaitDelay = DefaultGracePeriod
	}

	if err := c.Start(); err != nil {
		return -1, fmt.Errorf("starting %s: %w", cmd.Program, err)
	}

	err := c.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			sig := ws.Signal()
			return SignalExitBase + int(sig), &SignalError{Signal: sig}
		}
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("waiting for %s: %w", cmd.Program, err)
}
