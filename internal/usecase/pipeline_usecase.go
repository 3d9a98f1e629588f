package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"jobad-insights/internal/pipeline"
	"jobad-insights/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrPipelineRunning = errors.New("pipeline already running")
	// ErrRunLockLost aborts a run whose shared lock expired or was taken
	// over by another process.
	ErrRunLockLost = errors.New("pipeline run lock lost")
)

// Runner executes one preprocessing pass.
type Runner interface {
	Run(ctx context.Context, params pipeline.Params) (pipeline.Summary, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// RunLock keeps processes sharing a data directory from running the
// pipeline at the same time. token identifies the owner; Refresh and Unlock
// only act on a lock the token still owns.
type RunLock interface {
	TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Refresh(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key, token string) (bool, error)
}

const (
	runLockKey = "pipeline:lock"
	runLockTTL = 30 * time.Minute
)

type PipelineStatus struct {
	Running         bool              `json:"running"`
	CurrentRunID    string            `json:"current_run_id,omitempty"`
	LastRun         *pipeline.Summary `json:"last_run,omitempty"`
	LastError       string            `json:"last_error,omitempty"`
	DatabaseHealthy bool              `json:"database_healthy"`
	RedisHealthy    bool              `json:"redis_healthy"`
	ServerTime      time.Time         `json:"server_time"`
}

type PipelineUsecase interface {
	Trigger(ctx context.Context) (string, error)
	RunNow(ctx context.Context) (pipeline.Summary, error)
	GetStatus(ctx context.Context) (PipelineStatus, error)
}

// Pipeline allows one run at a time, whether started by the API or the
// scheduler.
type Pipeline struct {
	runner  Runner
	params  pipeline.Params
	runs    repository.PipelineRunRepository
	cache   AnalysisCache
	db      pinger
	redis   pinger
	lock    RunLock
	lockTTL time.Duration
	log     *log.Logger
	now     func() time.Time

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
	current string
	last    *pipeline.Summary
	lastErr string
}

type PipelineDeps struct {
	Runs   repository.PipelineRunRepository
	Cache  AnalysisCache
	DB     pinger
	Redis  pinger
	Lock   RunLock
	Logger *log.Logger
}

func NewPipelineUsecase(runner Runner, params pipeline.Params, deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Pipeline{
		runner:  runner,
		params:  params,
		runs:    deps.Runs,
		cache:   deps.Cache,
		db:      deps.DB,
		redis:   deps.Redis,
		lock:    deps.Lock,
		lockTTL: runLockTTL,
		log:     logger,
		now:     time.Now,
		base:    base,
		cancel:  cancel,
	}
}

// acquire reserves the run locally, then takes the shared lock with the run
// id as its token. The mutex is not held across the lock call.
func (u *Pipeline) acquire(ctx context.Context) (string, error) {
	id := uuid.NewString()
	u.mu.Lock()
	if u.running {
		u.mu.Unlock()
		return "", ErrPipelineRunning
	}
	u.running = true
	u.current = id
	u.mu.Unlock()

	if u.lock == nil {
		return id, nil
	}
	ok, err := u.lock.TryLock(ctx, runLockKey, id, u.lockTTL)
	if err == nil && ok {
		return id, nil
	}

	u.mu.Lock()
	u.running = false
	u.current = ""
	u.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("run lock: %w", err)
	}
	return "", ErrPipelineRunning
}

// keepLock refreshes the shared lock until stop is closed. Losing the lock
// cancels the run.
func (u *Pipeline) keepLock(ctx context.Context, id string, cancel context.CancelCauseFunc, stop <-chan struct{}) {
	ticker := time.NewTicker(u.lockTTL / 3)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok, err := u.lock.Refresh(ctx, runLockKey, id, u.lockTTL)
			if err != nil {
				u.log.Printf("usecase=pipeline run_id=%s step=refresh_lock status=error err=%v", id, err)
				continue
			}
			if !ok {
				u.log.Printf("usecase=pipeline run_id=%s step=refresh_lock status=lost", id)
				cancel(ErrRunLockLost)
				return
			}
		}
	}
}

// Trigger starts a run in the background and returns its id.
func (u *Pipeline) Trigger(ctx context.Context) (string, error) {
	id, err := u.acquire(ctx)
	if err != nil {
		return "", err
	}
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		_, _ = u.execute(u.base, id)
	}()
	return id, nil
}

// RunNow runs synchronously.
func (u *Pipeline) RunNow(ctx context.Context) (pipeline.Summary, error) {
	id, err := u.acquire(ctx)
	if err != nil {
		return pipeline.Summary{}, err
	}
	return u.execute(ctx, id)
}

func (u *Pipeline) execute(ctx context.Context, id string) (pipeline.Summary, error) {
	params := u.params
	params.RunID = id

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	var keeper sync.WaitGroup
	stop := make(chan struct{})
	if u.lock != nil {
		keeper.Add(1)
		go func() {
			defer keeper.Done()
			u.keepLock(runCtx, id, cancel, stop)
		}()
	}

	summary, err := u.runner.Run(runCtx, params)
	if err != nil && errors.Is(context.Cause(runCtx), ErrRunLockLost) {
		err = fmt.Errorf("%w: %w", ErrRunLockLost, err)
	}
	close(stop)
	keeper.Wait()

	if u.lock != nil {
		ok, uerr := u.lock.Unlock(context.Background(), runLockKey, id)
		switch {
		case uerr != nil:
			u.log.Printf("usecase=pipeline run_id=%s step=unlock status=error err=%v", id, uerr)
		case !ok:
			u.log.Printf("usecase=pipeline run_id=%s step=unlock status=skipped reason=not_owner", id)
		}
	}

	u.mu.Lock()
	u.running = false
	u.current = ""
	if err != nil {
		u.lastErr = err.Error()
	} else {
		u.lastErr = ""
		u.last = &summary
	}
	u.mu.Unlock()

	if err != nil {
		u.log.Printf("usecase=pipeline run_id=%s status=error err=%v", id, err)
		return summary, err
	}

	if u.runs != nil {
		if err := u.runs.Record(ctx, summary); err != nil {
			u.log.Printf("usecase=pipeline run_id=%s step=record status=error err=%v", id, err)
		}
	}
	if u.cache != nil {
		if err := u.cache.InvalidatePrefix(ctx, AnalysisCachePrefix); err != nil {
			u.log.Printf("[Cache] invalidate %s failed: %v", AnalysisCachePrefix, err)
		}
	}
	return summary, nil
}

func (u *Pipeline) GetStatus(ctx context.Context) (PipelineStatus, error) {
	u.mu.Lock()
	st := PipelineStatus{
		Running:      u.running,
		CurrentRunID: u.current,
		LastRun:      u.last,
		LastError:    u.lastErr,
	}
	u.mu.Unlock()

	if st.LastRun == nil && u.runs != nil {
		last, ok, err := u.runs.Last(ctx)
		if err != nil {
			u.log.Printf("usecase=pipeline op=last_run status=error err=%v", err)
		} else if ok {
			st.LastRun = &last
		}
	}

	st.DatabaseHealthy = ping(ctx, u.db)
	st.RedisHealthy = ping(ctx, u.redis)
	st.ServerTime = u.now().UTC()
	return st, nil
}

func ping(ctx context.Context, p pinger) bool {
	if p == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.Ping(pingCtx) == nil
}

// Close cancels a background run and waits for it.
func (u *Pipeline) Close() {
	u.cancel()
	u.wg.Wait()
}
