// Package scheduler runs the preprocessing pipeline on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler wraps robfig/cron. Overlapping runs, the initial one included,
// are skipped while a run is still in progress.
type Scheduler struct {
	cron  *cron.Cron
	chain cron.Chain
	spec  string
	job   Job
	log   *log.Logger

	initial sync.WaitGroup
}

func New(spec string, job Job, logger *log.Logger) (*Scheduler, error) {
	if spec == "" {
		return nil, errors.New("scheduler: empty cron spec")
	}
	if job == nil {
		return nil, errors.New("scheduler: nil job")
	}
	if logger == nil {
		logger = log.Default()
	}
	cronLog := cron.PrintfLogger(logger)
	return &Scheduler{
		cron:  cron.New(cron.WithLogger(cronLog)),
		chain: cron.NewChain(cron.SkipIfStillRunning(cronLog)),
		spec:  spec,
		job:   job,
		log:   logger,
	}, nil
}

// Start registers the job, starts the cron loop and runs the job once right
// away so outputs exist before the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	job := s.chain.Then(cron.FuncJob(func() { s.run(ctx) }))
	if _, err := s.cron.AddJob(s.spec, job); err != nil {
		return fmt.Errorf("cron.AddJob: %w", err)
	}
	s.cron.Start()
	s.log.Printf("[scheduler] Cron started, spec: %s", s.spec)

	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		job.Run()
	}()
	return nil
}

// Stop halts the cron loop and waits for running jobs to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.initial.Wait()
	s.log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.log.Println("[scheduler] Run started")
	if err := s.job(ctx); err != nil {
		s.log.Printf("[scheduler] Run error: %v", err)
		return
	}
	s.log.Println("[scheduler] Run complete")
}
