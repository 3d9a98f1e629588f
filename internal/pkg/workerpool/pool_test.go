package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsEveryTask(t *testing.T) {
	p := New(3, 10)
	results := p.Run(context.Background())

	var ran atomic.Int32
	boom := errors.New("boom")
	for i := 0; i < 10; i++ {
		p.Submit(func(ctx context.Context) error {
			ran.Add(1)
			if i == 4 {
				return boom
			}
			return nil
		})
	}
	p.Close()

	var failed []int
	n := 0
	for r := range results {
		n++
		if r.Err != nil {
			failed = append(failed, r.Seq)
		}
	}
	if n != 10 || ran.Load() != 10 {
		t.Fatalf("expected 10 results, got %d (ran %d)", n, ran.Load())
	}
	if len(failed) != 1 || failed[0] != 4 {
		t.Fatalf("expected task 4 to fail, got %v", failed)
	}
}

func TestPoolStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := New(1, 1)
	results := p.Run(ctx)

	p.Submit(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	cancel()

	done := make(chan struct{})
	go func() {
		for range results {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("pool did not stop after cancel")
	}
}

func TestPoolRateLimit(t *testing.T) {
	p := New(4, 4)
	p.SetRateLimit(20)
	results := p.Run(context.Background())

	start := time.Now()
	for i := 0; i < 4; i++ {
		p.Submit(func(ctx context.Context) error { return nil })
	}
	p.Close()
	for range results {
	}
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Fatalf("expected rate limited run, finished in %s", elapsed)
	}
}

func TestNilPool(t *testing.T) {
	var p *Pool
	if seq := p.Submit(func(context.Context) error { return nil }); seq != -1 {
		t.Fatalf("expected -1, got %d", seq)
	}
	for range p.Run(context.Background()) {
		t.Fatalf("nil pool produced a result")
	}
}
