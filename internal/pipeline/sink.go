package pipeline

import (
	"context"

	"jobad-insights/internal/domain/jobad"
)

// Output is the final product of one run.
type Output struct {
	RunID        string
	Wide         []jobad.Ad
	Long         []jobad.LongRow
	Requirements []string
	WithGeo      bool
}

// Sink persists a run's output somewhere besides the CSV files.
type Sink interface {
	Name() string
	Save(ctx context.Context, out Output) error
}
