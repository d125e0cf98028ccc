// pkg/dispatch/dispatch_test.go
package dispatch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/pkgx/pkg/core"
)

// fakeRunner records invocations instead of spawning processes
type fakeRunner struct {
	calls  []*core.Command
	code   int
	err    error
	output string
	onRun  func()
}

func (f *fakeRunner) Run(_ context.Context, cmd *core.Command, streams Streams) (int, error) {
	f.calls = append(f.calls, cmd)
	if f.output != "" {
		_, _ = streams.Out.Write([]byte(f.output))
	}
	if f.onRun != nil {
		f.onRun()
	}
	return f.code, f.err
}

func TestExecuteDryRunNeverRuns(t *testing.T) {
	runner := &fakeRunner{}
	var out bytes.Buffer
	d := New(WithRunner(runner), WithStreams(Streams{Out: &out}))

	cmd := &core.Command{Program: "brew", Args: []string{"install", "git", "vim"}, DryRun: true}
	res, err := d.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "brew install git vim\n", out.String())
	assert.Empty(t, runner.calls)
}

func TestExecuteRunsCommand(t *testing.T) {
	runner := &fakeRunner{output: "done\n"}
	var out bytes.Buffer
	d := New(WithRunner(runner), WithStreams(Streams{Out: &out}), WithCapture())

	cmd := &core.Command{Program: "apt", Args: []string{"install", "-y", "git"}}
	res, err := d.Execute(context.Background(), cmd)
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Same(t, cmd, runner.calls[0])
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "done\n", res.Stdout)
	assert.Equal(t, "done\n", out.String())
}

func TestExecuteWithoutCaptureLeavesResultEmpty(t *testing.T) {
	runner := &fakeRunner{output: "done\n"}
	d := New(WithRunner(runner), WithStreams(Streams{Out: &bytes.Buffer{}}))

	res, err := d.Execute(context.Background(), &core.Command{Program: "apk", Args: []string{"update"}})
	require.NoError(t, err)
	assert.Empty(t, res.Stdout)
}

func TestExecuteNativeFailurePassesCodeThrough(t *testing.T) {
	d := New(WithRunner(&fakeRunner{code: 100}))

	res, err := d.Execute(context.Background(), &core.Command{Program: "dnf", Args: []string{"check-update"}})
	require.ErrorIs(t, err, core.ErrNativeManagerFailure)
	assert.Equal(t, 100, res.ExitCode)

	var nerr *core.NativeError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, 100, nerr.Code)
	assert.Equal(t, "dnf", nerr.Program)
}

func TestExecuteLaunchFailure(t *testing.T) {
	d := New(WithRunner(&fakeRunner{code: -1, err: os.ErrPermission}))

	res, err := d.Execute(context.Background(), &core.Command{Program: "apt"})
	require.ErrorIs(t, err, core.ErrExecution)
	require.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, 1, res.ExitCode)
}

func TestExecuteInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := New(WithRunner(&fakeRunner{code: -1, onRun: cancel}))

	res, err := d.Execute(ctx, &core.Command{Program: "apt", Args: []string{"upgrade", "-y"}})
	require.ErrorIs(t, err, core.ErrInterrupted)
	assert.Equal(t, InterruptedExitCode, res.ExitCode)
}

func TestExecuteEmptyCommand(t *testing.T) {
	_, err := New(WithRunner(&fakeRunner{})).Execute(context.Background(), &core.Command{})
	require.ErrorIs(t, err, core.ErrExecution)
}

// TestHelperProcess is re-executed by the ExecRunner tests as a stand-in
// package manager. It prints its arguments and exits with the code in
// args[0], or acts out one of the signal modes.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("PKGX_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	switch args[0] {
	case "kill-self":
		p, _ := os.FindProcess(os.Getpid())
		_ = p.Kill()
		time.Sleep(time.Minute)
	case "trap-interrupt":
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		_, _ = os.Stdout.WriteString("ready\n")
		select {
		case <-ch:
			_, _ = os.Stdout.WriteString("got-int\n")
			os.Exit(3)
		case <-time.After(time.Minute):
			os.Exit(4)
		}
	case "ignore-interrupt":
		signal.Ignore(os.Interrupt)
		_, _ = os.Stdout.WriteString("ready\n")
		time.Sleep(time.Minute)
		os.Exit(4)
	}

	code, _ := strconv.Atoi(args[0])
	_, _ = os.Stdout.WriteString(strings.Join(args[1:], "|") + "\n")
	os.Exit(code)
}

func helperCommand(code int, args ...string) *core.Command {
	return helperMode(strconv.Itoa(code), args...)
}

func helperMode(mode string, args ...string) *core.Command {
	return &core.Command{
		Program: os.Args[0],
		Args:    append([]string{"-test.run=TestHelperProcess", "--", mode}, args...),
	}
}

func TestExecRunnerPassesArgumentsVerbatim(t *testing.T) {
	t.Setenv("PKGX_WANT_HELPER_PROCESS", "1")
	var out bytes.Buffer

	code, err := ExecRunner{}.Run(context.Background(), helperCommand(0, "install", "a b; echo c", "$(id)"), Streams{Out: &out})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "install|a b; echo c|$(id)\n", out.String())
}

func TestExecRunnerReportsExitCode(t *testing.T) {
	t.Setenv("PKGX_WANT_HELPER_PROCESS", "1")

	code, err := ExecRunner{}.Run(context.Background(), helperCommand(7), Streams{})
	require.NoError(t, err)
	assert.Equal(t, 7, code)
}

func TestExecRunnerMissingExecutable(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), &core.Command{Program: "pkgx-no-such-manager"}, Streams{})
	require.Error(t, err)
}
