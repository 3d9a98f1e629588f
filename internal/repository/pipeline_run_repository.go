package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobad-insights/internal/database"
	"jobad-insights/internal/pipeline"

	"github.com/jackc/pgx/v5"
)

// PipelineRunRepository remembers finished runs.
type PipelineRunRepository interface {
	Record(ctx context.Context, s pipeline.Summary) error
	Last(ctx context.Context) (pipeline.Summary, bool, error)
}

type PostgresPipelineRunRepository struct {
	db database.DB
}

func NewPostgresPipelineRunRepository(db database.DB) *PostgresPipelineRunRepository {
	return &PostgresPipelineRunRepository{db: db}
}

func (r *PostgresPipelineRunRepository) Record(ctx context.Context, s pipeline.Summary) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO pipeline_runs (run_id, started_at, finished_at, raw_rows, wide_rows, long_rows, duplicates, geo_joined)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (run_id) DO NOTHING`,
		s.RunID, s.StartedAt, s.StartedAt.Add(s.Duration),
		s.RawRows, s.WideRows, s.LongRows, s.Duplicates, s.GeoJoined,
	)
	return err
}

func (r *PostgresPipelineRunRepository) Last(ctx context.Context) (pipeline.Summary, bool, error) {
	var s pipeline.Summary
	var finished time.Time
	err := r.db.QueryRow(ctx,
		`SELECT run_id, started_at, finished_at, raw_rows, wide_rows, long_rows, duplicates, geo_joined
		 FROM pipeline_runs ORDER BY started_at DESC LIMIT 1`,
	).Scan(&s.RunID, &s.StartedAt, &finished, &s.RawRows, &s.WideRows, &s.LongRows, &s.Duplicates, &s.GeoJoined)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return pipeline.Summary{}, false, nil
		}
		return pipeline.Summary{}, false, err
	}
	s.Duration = finished.Sub(s.StartedAt)
	return s, true, nil
}
