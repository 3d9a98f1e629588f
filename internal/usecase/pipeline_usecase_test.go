package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobad-insights/internal/pipeline"
)

type blockingRunner struct {
	mu      sync.Mutex
	params  []pipeline.Params
	release chan struct{}
	started chan struct{}
	err     error
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{release: make(chan struct{}), started: make(chan struct{}, 4)}
}

func (r *blockingRunner) Run(ctx context.Context, p pipeline.Params) (pipeline.Summary, error) {
	r.mu.Lock()
	r.params = append(r.params, p)
	r.mu.Unlock()
	r.started <- struct{}{}
	select {
	case <-r.release:
	case <-ctx.Done():
		return pipeline.Summary{}, ctx.Err()
	}
	if r.err != nil {
		return pipeline.Summary{}, r.err
	}
	return pipeline.Summary{RunID: p.RunID, KeptRows: 3}, nil
}

type fakeRunRepo struct {
	mu       sync.Mutex
	recorded []pipeline.Summary
	last     *pipeline.Summary
}

func (f *fakeRunRepo) Record(_ context.Context, s pipeline.Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, s)
	return nil
}

func (f *fakeRunRepo) Last(context.Context) (pipeline.Summary, bool, error) {
	if f.last == nil {
		return pipeline.Summary{}, false, nil
	}
	return *f.last, true, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestPipelineTrigger_OneRunAtATime(t *testing.T) {
	runner := newBlockingRunner()
	runs := &fakeRunRepo{}
	cache := newMemoryCache()
	require.NoError(t, cache.SetJSON(context.Background(), AnalysisCachePrefix+"salary", 1, 0))
	require.NoError(t, cache.SetJSON(context.Background(), "other", 1, 0))

	u := NewPipelineUsecase(runner, pipeline.Params{Directory: "data"}, PipelineDeps{Runs: runs, Cache: cache, Logger: quietLogger()})
	defer u.Close()

	id, err := u.Trigger(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, id)
	<-runner.started

	_, err = u.Trigger(context.Background())
	assert.ErrorIs(t, err, ErrPipelineRunning)
	_, err = u.RunNow(context.Background())
	assert.ErrorIs(t, err, ErrPipelineRunning)

	st, err := u.GetStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Running)
	assert.Equal(t, id, st.CurrentRunID)

	close(runner.release)
	require.Eventually(t, func() bool {
		st, _ := u.GetStatus(context.Background())
		return !st.Running && st.LastRun != nil
	}, time.Second, 5*time.Millisecond)

	st, err = u.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, st.LastRun.RunID)
	assert.Empty(t, st.LastError)
	assert.Equal(t, "data", runner.params[0].Directory)
	assert.Equal(t, id, runner.params[0].RunID)

	runs.mu.Lock()
	assert.Len(t, runs.recorded, 1)
	runs.mu.Unlock()

	cache.mu.Lock()
	assert.NotContains(t, cache.data, AnalysisCachePrefix+"salary")
	assert.Contains(t, cache.data, "other")
	cache.mu.Unlock()
}

func TestPipelineRunNow_Error(t *testing.T) {
	runner := newBlockingRunner()
	runner.err = errors.New("boom")
	close(runner.release)
	runs := &fakeRunRepo{}

	u := NewPipelineUsecase(runner, pipeline.Params{}, PipelineDeps{Runs: runs, Logger: quietLogger()})
	defer u.Close()

	_, err := u.RunNow(context.Background())
	require.Error(t, err)

	st, err := u.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Running)
	assert.Equal(t, "boom", st.LastError)
	assert.Nil(t, st.LastRun)
	assert.Empty(t, runs.recorded)

	_, err = u.RunNow(context.Background())
	assert.Error(t, err, "a failed run releases the lock")
}

func TestPipelineStatus_Health(t *testing.T) {
	runner := newBlockingRunner()
	last := pipeline.Summary{RunID: "previous"}
	u := NewPipelineUsecase(runner, pipeline.Params{}, PipelineDeps{
		Runs:   &fakeRunRepo{last: &last},
		DB:     fakePinger{},
		Redis:  fakePinger{err: errors.New("down")},
		Logger: quietLogger(),
	})
	defer u.Close()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	u.now = func() time.Time { return fixed }

	st, err := u.GetStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, st.DatabaseHealthy)
	assert.False(t, st.RedisHealthy)
	require.NotNil(t, st.LastRun)
	assert.Equal(t, "previous", st.LastRun.RunID)
	assert.Equal(t, fixed.UTC(), st.ServerTime)
}

func TestPipelineClose_CancelsBackgroundRun(t *testing.T) {
	runner := newBlockingRunner()
	u := NewPipelineUsecase(runner, pipeline.Params{}, PipelineDeps{Logger: quietLogger()})

	_, err := u.Trigger(context.Background())
	require.NoError(t, err)
	<-runner.started
	u.Close()

	st, err := u.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Running)
	assert.Equal(t, context.Canceled.Error(), st.LastError)
}

type fakeRunLock struct {
	mu       sync.Mutex
	owners   map[string]string
	unlocked []string
}

func newFakeRunLock() *fakeRunLock {
	return &fakeRunLock{owners: map[string]string{}}
}

func (l *fakeRunLock) TryLock(_ context.Context, key, token string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.owners[key]; held {
		return false, nil
	}
	l.owners[key] = token
	return true, nil
}

func (l *fakeRunLock) Refresh(_ context.Context, key, token string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owners[key] == token, nil
}

func (l *fakeRunLock) Unlock(_ context.Context, key, token string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.owners[key] != token {
		return false, nil
	}
	delete(l.owners, key)
	l.unlocked = append(l.unlocked, token)
	return true, nil
}

// expireAndTake simulates the key expiring and another process taking it.
func (l *fakeRunLock) expireAndTake(key, token string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.owners[key] = token
}

func (l *fakeRunLock) owner(key string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owners[key]
}

func TestPipelineRunNow_SharedLock(t *testing.T) {
	lock := newFakeRunLock()
	lock.expireAndTake(runLockKey, "other-process")
	runner := newBlockingRunner()
	close(runner.release)
	u := NewPipelineUsecase(runner, pipeline.Params{Directory: "data"}, PipelineDeps{Lock: lock, Logger: quietLogger()})
	defer u.Close()

	_, err := u.RunNow(context.Background())
	assert.ErrorIs(t, err, ErrPipelineRunning, "another process holds the lock")
	st, err := u.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Running)

	_, err = lock.Unlock(context.Background(), runLockKey, "other-process")
	require.NoError(t, err)
	summary, err := u.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.KeptRows)

	assert.Empty(t, lock.owner(runLockKey))
	assert.Equal(t, []string{"other-process", summary.RunID}, lock.unlocked)
}

func TestPipelineRun_ReleaseKeepsAnotherOwnersLock(t *testing.T) {
	lock := newFakeRunLock()
	runner := newBlockingRunner()
	u := NewPipelineUsecase(runner, pipeline.Params{}, PipelineDeps{Lock: lock, Logger: quietLogger()})
	defer u.Close()

	id, err := u.Trigger(context.Background())
	require.NoError(t, err)
	<-runner.started
	assert.Equal(t, id, lock.owner(runLockKey))

	lock.expireAndTake(runLockKey, "second-process")
	close(runner.release)
	require.Eventually(t, func() bool {
		st, _ := u.GetStatus(context.Background())
		return !st.Running
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "second-process", lock.owner(runLockKey))
	assert.Empty(t, lock.unlocked)
}

func TestPipelineRun_LostLockCancelsRun(t *testing.T) {
	lock := newFakeRunLock()
	runner := newBlockingRunner()
	u := NewPipelineUsecase(runner, pipeline.Params{}, PipelineDeps{Lock: lock, Logger: quietLogger()})
	defer u.Close()
	u.lockTTL = 30 * time.Millisecond

	done := make(chan error, 1)
	go func() {
		_, err := u.RunNow(context.Background())
		done <- err
	}()
	<-runner.started
	lock.expireAndTake(runLockKey, "second-process")

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrRunLockLost)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("run kept going after losing the lock")
	}
	assert.Equal(t, "second-process", lock.owner(runLockKey))
}

func TestPipelineRun_RefreshKeepsLongRunAlive(t *testing.T) {
	lock := newFakeRunLock()
	runner := newBlockingRunner()
	u := NewPipelineUsecase(runner, pipeline.Params{}, PipelineDeps{Lock: lock, Logger: quietLogger()})
	defer u.Close()
	u.lockTTL = 15 * time.Millisecond

	done := make(chan error, 1)
	go func() {
		_, err := u.RunNow(context.Background())
		done <- err
	}()
	<-runner.started
	time.Sleep(60 * time.Millisecond)
	close(runner.release)

	require.NoError(t, <-done)
	assert.Empty(t, lock.owner(runLockKey))
}

type erroringRunLock struct{ fakeRunLock }

func (*erroringRunLock) TryLock(context.Context, string, string, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

func TestPipelineRunNow_LockErrorIsReturned(t *testing.T) {
	runner := newBlockingRunner()
	close(runner.release)
	u := NewPipelineUsecase(runner, pipeline.Params{}, PipelineDeps{Lock: &erroringRunLock{}, Logger: quietLogger()})
	defer u.Close()

	_, err := u.RunNow(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run lock: connection refused")

	st, err := u.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Running)
	assert.Empty(t, st.CurrentRunID)
}
