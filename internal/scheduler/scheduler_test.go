package scheduler

import (
	"context"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	_, err := New("", func(context.Context) error { return nil }, nil)
	assert.Error(t, err)

	_, err = New("@every 1h", nil, nil)
	assert.Error(t, err)
}

func TestStart_RunsImmediately(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{}, 1)
	s, err := New("@every 1h", func(context.Context) error {
		calls.Add(1)
		done <- struct{}{}
		return nil
	}, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestStart_InvalidSpec(t *testing.T) {
	s, err := New("not a cron spec", func(context.Context) error { return nil }, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	assert.Error(t, s.Start(context.Background()))
}

func TestStart_TicksSkippedWhileInitialRunBusy(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	s, err := New("@every 1s", func(context.Context) error {
		calls.Add(1)
		<-release
		return nil
	}, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	time.Sleep(2500 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "ticks during the initial run are skipped")

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatal("Stop returned while the initial run was still going")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the run finished")
	}
}
