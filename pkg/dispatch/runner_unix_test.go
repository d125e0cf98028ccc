//go:build unix

// pkg/dispatch/runner_unix_test.go
package dispatch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/pkgx/pkg/core"
)

// readyWriter collects output and closes ready once the child reports it has
// installed its signal handling
type readyWriter struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	once  sync.Once
	ready chan struct{}
}

func newReadyWriter() *readyWriter {
	return &readyWriter{ready: make(chan struct{})}
}

func (w *readyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, err := w.buf.Write(p)
	if strings.Contains(w.buf.String(), "ready\n") {
		w.once.Do(func() { close(w.ready) })
	}
	return n, err
}

func (w *readyWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

type runOutcome struct {
	code int
	err  error
}

// cancelWhenReady runs cmd, cancels the context once the child is ready and
// returns how the run ended
func cancelWhenReady(t *testing.T, r ExecRunner, cmd *core.Command, out *readyWriter) runOutcome {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan runOutcome, 1)
	go func() {
		code, err := r.Run(ctx, cmd, Streams{Out: out})
		done <- runOutcome{code: code, err: err}
	}()

	select {
	case <-out.ready:
	case res := <-done:
		t.Fatalf("helper exited before it was ready: code=%d err=%v", res.code, res.err)
	case <-time.After(30 * time.Second):
		t.Fatal("helper never became ready")
	}
	cancel()

	select {
	case res := <-done:
		return res
	case <-time.After(30 * time.Second):
		t.Fatal("runner did not return after cancellation")
		return runOutcome{}
	}
}

func TestExecRunnerReportsSignal(t *testing.T) {
	t.Setenv("PKGX_WANT_HELPER_PROCESS", "1")

	code, err := ExecRunner{}.Run(context.Background(), helperMode("kill-self"), Streams{})

	assert.Equal(t, SignalExitBase+int(syscall.SIGKILL), code)
	var sigErr *SignalError
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, syscall.SIGKILL, sigErr.Signal)
}

func TestExecuteManagerKilledBySignal(t *testing.T) {
	t.Setenv("PKGX_WANT_HELPER_PROCESS", "1")
	d := New(WithStreams(Streams{Out: &bytes.Buffer{}}))

	res, err := d.Execute(context.Background(), helperMode("kill-self"))

	require.ErrorIs(t, err, core.ErrNativeManagerFailure)
	assert.NotErrorIs(t, err, core.ErrExecution)
	assert.Equal(t, 137, res.ExitCode)

	var nerr *core.NativeError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, 137, nerr.Code)
	assert.Equal(t, syscall.SIGKILL, nerr.Signal)
	assert.Contains(t, nerr.Error(), "terminated by signal 9")
}

func TestExecRunnerForwardsInterrupt(t *testing.T) {
	t.Setenv("PKGX_WANT_HELPER_PROCESS", "1")
	out := newReadyWriter()

	res := cancelWhenReady(t, ExecRunner{GracePeriod: 10 * time.Second}, helperMode("trap-interrupt"), out)

	require.NoError(t, res.err)
	assert.Equal(t, 3, res.code, "child handles the interrupt and exits on its own")
	assert.Contains(t, out.String(), "got-int\n")
}

func TestExecRunnerKillsAfterGracePeriod(t *testing.T) {
	t.Setenv("PKGX_WANT_HELPER_PROCESS", "1")
	out := newReadyWriter()

	start := time.Now()
	res := cancelWhenReady(t, ExecRunner{GracePeriod: 200 * time.Millisecond}, helperMode("ignore-interrupt"), out)

	assert.Less(t, time.Since(start), 30*time.Second)
	assert.Equal(t, SignalExitBase+int(syscall.SIGKILL), res.code)
	var sigErr *SignalError
	require.True(t, errors.As(res.err, &sigErr))
	assert.Equal(t, syscall.SIGKILL, sigErr.Signal)
}

func TestExecuteCancelledManagerIsInterrupted(t *testing.T) {
	t.Setenv("PKGX_WANT_HELPER_PROCESS", "1")
	out := newReadyWriter()
	d := New(WithRunner(ExecRunner{GracePeriod: 10 * time.Second}), WithStreams(Streams{Out: out}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-out.ready:
			cancel()
		case <-time.After(30 * time.Second):
		}
	}()

	res, err := d.Execute(ctx, helperMode("trap-interrupt"))

	require.ErrorIs(t, err, core.ErrInterrupted)
	assert.Equal(t, InterruptedExitCode, res.ExitCode)
	assert.Contains(t, out.String(), "got-int\n")
}
