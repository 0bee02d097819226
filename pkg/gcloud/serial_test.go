package gcloud

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
)

type serialResult struct {
	out *compute.SerialPortOutput
	err error
}

func output(contents string, next int64) serialResult {
	return serialResult{out: &compute.SerialPortOutput{Contents: contents, Next: next}}
}

func failure(err error) serialResult {
	return serialResult{err: err}
}

// scriptedSerialPort replays results in order and records the requested offsets.
func scriptedSerialPort(t *testing.T, results ...serialResult) (*fakeCompute, *[]int64) {
	var starts []int64
	return &fakeCompute{
		GetSerialPortOutputFunc: func(ctx context.Context, name string, start int64) (*compute.SerialPortOutput, error) {
			require.Equal(t, "test-1", name)
			if len(starts) >= len(results) {
				t.Fatalf("unexpected serial port request %d", len(starts)+1)
			}
			r := results[len(starts)]
			starts = append(starts, start)
			return r.out, r.err
		},
	}, &starts
}

func TestTailSerialPortUntilNotFound(t *testing.T) {
	api, starts := scriptedSerialPort(t,
		output("A", 1),
		output("B", 2),
		failure(notFoundErr()),
	)
	s, _, clock := newTestService(t, api)
	buf := &bytes.Buffer{}
	require.NoError(t, s.TailSerialPort(context.Background(), "test-1", buf))
	require.Equal(t, "AB", buf.String())
	require.Equal(t, []int64{0, 1, 2}, *starts)
	require.Empty(t, clock.sleeps)
}

func TestTailSerialPortNotReadyBeforeAndAfterOutput(t *testing.T) {
	api, starts := scriptedSerialPort(t,
		failure(notReadyErr()),
		output("X", 1),
		failure(notReadyErr()),
	)
	s, hook, clock := newTestService(t, api)
	buf := &bytes.Buffer{}
	require.NoError(t, s.TailSerialPort(context.Background(), "test-1", buf))
	require.Equal(t, "X", buf.String())
	require.Equal(t, []int64{0, 0, 1}, *starts)
	require.Equal(t, []time.Duration{time.Second}, clock.sleeps)
	require.Equal(t, "error getting serial output (resourceNotReady): The resource is not ready", hook.LastEntry().Message)
}

func TestTailSerialPortRetriesOtherProviderErrors(t *testing.T) {
	rateLimited := &googleapi.Error{
		Code:    403,
		Message: "Rate Limit Exceeded",
		Errors:  []googleapi.ErrorItem{{Reason: "rateLimitExceeded"}},
	}
	api, starts := scriptedSerialPort(t,
		output("boot\n", 5),
		failure(rateLimited),
		failure(&googleapi.Error{Code: 503, Message: "backend error"}),
		output("done\n", 10),
		failure(notFoundErr()),
	)
	s, _, clock := newTestService(t, api)
	buf := &bytes.Buffer{}
	require.NoError(t, s.TailSerialPort(context.Background(), "test-1", buf))
	require.Equal(t, "boot\ndone\n", buf.String())
	require.Equal(t, []int64{0, 5, 5, 5, 10}, *starts)
	require.Equal(t, []time.Duration{time.Second, time.Second}, clock.sleeps)
}

func TestTailSerialPortUnhandledError(t *testing.T) {
	api, _ := scriptedSerialPort(t,
		output("A", 1),
		failure(fmt.Errorf("dial tcp: connection refused")),
	)
	s, _, _ := newTestService(t, api)
	buf := &bytes.Buffer{}
	err := s.TailSerialPort(context.Background(), "test-1", buf)
	require.EqualError(t, err, "dial tcp: connection refused")
	require.Equal(t, "A", buf.String())
}

func TestTailSerialPortCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	api := &fakeCompute{
		GetSerialPortOutputFunc: func(ctx context.Context, name string, start int64) (*compute.SerialPortOutput, error) {
			cancel()
			return nil, notReadyErr()
		},
	}
	s, _, _ := newTestService(t, api)
	err := s.TailSerialPort(ctx, "test-1", &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestErrorClassification(t *testing.T) {
	require.True(t, IsNotFound(notFoundErr()))
	require.True(t, IsNotFound(fmt.Errorf("wrapped: %w", notFoundErr())))
	require.False(t, IsNotFound(notReadyErr()))
	require.False(t, IsNotFound(fmt.Errorf("not found")))

	require.True(t, IsResourceNotReady(notReadyErr()))
	require.False(t, IsResourceNotReady(notFoundErr()))
	require.False(t, IsResourceNotReady(nil))
}
