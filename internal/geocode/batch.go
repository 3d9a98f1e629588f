package geocode

import (
	"context"
	"errors"
	"log"
	"time"

	"jobad-insights/internal/domain/jobad"
	"jobad-insights/internal/pkg/workerpool"
)

// Batcher geocodes sets of locations concurrently.
type Batcher struct {
	forwarder Forwarder
	workers   int
	rps       int
	logger    *log.Logger
}

func NewBatcher(f Forwarder, workers, rps int, logger *log.Logger) *Batcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Batcher{forwarder: f, workers: workers, rps: rps, logger: logger}
}

// Geocode resolves the distinct non-empty locations and returns the records
// found, in first-seen order. Failed lookups are logged and skipped.
func (b *Batcher) Geocode(ctx context.Context, locations []string) ([]jobad.GeoRecord, error) {
	distinct := distinctLocations(locations)
	if len(distinct) == 0 {
		return nil, nil
	}
	started := time.Now()

	found := make([]*jobad.GeoRecord, len(distinct))
	pool := workerpool.New(b.workers, len(distinct))
	pool.SetRateLimit(b.rps)
	results := pool.Run(ctx)

	for i, loc := range distinct {
		pool.Submit(func(ctx context.Context) error {
			rec, err := b.forwarder.Forward(ctx, loc)
			if err != nil {
				return err
			}
			found[i] = &rec
			return nil
		})
	}
	pool.Close()

	var missing, failed int
	for r := range results {
		switch {
		case r.Err == nil:
		case errors.Is(r.Err, ErrNoResult):
			missing++
		default:
			failed++
			b.logger.Printf("geocode=batch location=%q status=failed err=%v", distinct[r.Seq], r.Err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]jobad.GeoRecord, 0, len(distinct))
	for _, rec := range found {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	b.logger.Printf("geocode=batch locations=%d found=%d missing=%d failed=%d duration=%s",
		len(distinct), len(out), missing, failed, time.Since(started))
	return out, nil
}

func distinctLocations(locations []string) []string {
	seen := make(map[string]struct{}, len(locations))
	out := make([]string, 0, len(locations))
	for _, l := range locations {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
