// Package sqlite writes a self-contained snapshot of the latest run into a
// local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jobad-insights/internal/domain/jobad"
	"jobad-insights/internal/pipeline"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_ads_wide (
	run_id TEXT NOT NULL,
	link TEXT NOT NULL,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	release_date TEXT NOT NULL,
	company_size TEXT,
	permanent_employment INTEGER NOT NULL,
	trainee INTEGER NOT NULL,
	full_time INTEGER NOT NULL,
	part_time INTEGER NOT NULL,
	home_office_possible INTEGER NOT NULL,
	title_category TEXT NOT NULL,
	experience_level TEXT NOT NULL,
	average_salary REAL,
	main_industry TEXT,
	locations TEXT NOT NULL,
	main_location TEXT,
	multiple_locations INTEGER NOT NULL,
	main_region TEXT,
	requirements TEXT NOT NULL,
	experience_bin TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS job_ads_long (
	run_id TEXT NOT NULL,
	link TEXT NOT NULL,
	title_category TEXT NOT NULL,
	location TEXT NOT NULL,
	latitude REAL,
	longitude REAL,
	region TEXT
);`

// SnapshotSink replaces the snapshot tables on every run.
type SnapshotSink struct {
	db *sql.DB
}

// Open creates the file and its parent directory if needed.
func Open(path string) (*SnapshotSink, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &SnapshotSink{db: db}, nil
}

func (s *SnapshotSink) Name() string { return "sqlite" }

func (s *SnapshotSink) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SnapshotSink) Save(ctx context.Context, out pipeline.Output) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"job_ads_wide", "job_ads_long"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	wide, err := tx.PrepareContext(ctx, `INSERT INTO job_ads_wide VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer wide.Close()
	for _, a := range out.Wide {
		if _, err := wide.ExecContext(ctx,
			out.RunID, a.Link, a.Title, a.Company, a.ReleaseDate, a.CompanySize,
			a.PermanentEmployment, a.Trainee, a.FullTime, a.PartTime, a.HomeOfficePossible,
			a.TitleCategory, a.ExperienceLevel, a.AverageSalary, a.MainIndustry,
			strings.Join(a.Locations, "|"), a.MainLocation, a.MultipleLocations, a.MainRegion,
			strings.Join(setFlags(a, out.Requirements), "|"), a.ExperienceBin,
		); err != nil {
			return fmt.Errorf("insert job_ads_wide: %w", err)
		}
	}

	long, err := tx.PrepareContext(ctx, `INSERT INTO job_ads_long VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer long.Close()
	for _, l := range out.Long {
		if _, err := long.ExecContext(ctx, out.RunID, l.Link, l.TitleCategory, l.Location, l.Latitude, l.Longitude, l.Region); err != nil {
			return fmt.Errorf("insert job_ads_long: %w", err)
		}
	}

	return tx.Commit()
}

// setFlags lists the requirements set on a in column order.
func setFlags(a jobad.Ad, names []string) []string {
	var out []string
	for _, n := range names {
		if a.Requirements[n] {
			out = append(out, n)
		}
	}
	return out
}
