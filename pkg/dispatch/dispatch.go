// pkg/dispatch/dispatch.go

// Package dispatch runs translated commands, or prints them in dry-run mode.
package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/arc-language/pkgx/pkg/core"
)

// InterruptedExitCode is the conventional exit status after SIGINT
const InterruptedExitCode = 130

// Dispatcher executes commands through a Runner
type Dispatcher struct {
	runner  Runner
	streams Streams
	capture bool
	logger  *log.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithRunner replaces the process runner
func WithRunner(r Runner) Option {
	return func(d *Dispatcher) { d.runner = r }
}

// WithStreams sets the streams given to the native manager
func WithStreams(s Streams) Option {
	return func(d *Dispatcher) { d.streams = s }
}

// WithCapture also records the child's output in the Result
func WithCapture() Option {
	return func(d *Dispatcher) { d.capture = true }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// New creates a Dispatcher that runs real processes on the standard streams
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		runner:  ExecRunner{},
		streams: StdStreams(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	if d.streams.Out == nil {
		d.streams.Out = io.Discard
	}
	if d.streams.Err == nil {
		d.streams.Err = io.Discard
	}
	return d
}

// Execute runs cmd and waits for it. Dry-run commands are written to the
// output stream and never reach the Runner.
//
// A native manager that exits non-zero yields a Result carrying its exit
// code together with a *core.NativeError.
func (d *Dispatcher) Execute(ctx context.Context, cmd *core.Command) (*core.Result, error) {
	if cmd == nil || cmd.Program == "" {
		return nil, fmt.Errorf("%w: empty command", core.ErrExecution)
	}

	if cmd.DryRun {
		line := cmd.String()
		d.logger.Debug("dry run", "command", line)
		if _, err := fmt.Fprintln(d.streams.Out, line); err != nil {
			return nil, fmt.Errorf("writing command: %w", err)
		}
		return &core.Result{ExitCode: 0}, nil
	}

	streams := d.streams
	var stdout, stderr bytes.Buffer
	if d.capture {
		streams.Out = io.MultiWriter(streams.Out, &stdout)
		streams.Err = io.MultiWriter(streams.Err, &stderr)
	}

	d.logger.Debug("running", "program", cmd.Program, "args", cmd.Args)
	code, err := d.runner.Run(ctx, cmd, streams)

	result := &core.Result{
		ExitCode: code,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if ctx.Err() != nil {
		result.ExitCode = InterruptedExitCode
		return result, fmt.Errorf("%w: %s", core.ErrInterrupted, cmd.Program)
	}
	var sigErr *SignalError
	if errors.As(err, &sigErr) {
		d.logger.Debug("terminated", "program", cmd.Program, "signal", sigErr.Signal)
		return result, &core.NativeError{Program: cmd.Program, Code: code, Signal: sigErr.Signal}
	}
	if err != nil {
		result.ExitCode = 1
		return result, fmt.Errorf("%w: %w", core.ErrExecution, err)
	}

	d.logger.Debug("finished", "program", cmd.Program, "exit", code)
	if code != 0 {
		return result, &core.NativeError{Program: cmd.Program, Code: code}
	}
	return result, nil
}
