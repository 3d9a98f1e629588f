package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"jobad-insights/internal/database"
	"jobad-insights/internal/dataset"
	"jobad-insights/internal/domain/jobad"
	"jobad-insights/internal/pipeline"
)

// ErrNoData means no pipeline output has been produced yet.
var ErrNoData = errors.New("no preprocessed data available")

// JobAdRepository reads the latest pipeline output.
type JobAdRepository interface {
	LoadWide(ctx context.Context) (dataset.WideTable, error)
	LoadLong(ctx context.Context) ([]jobad.LongRow, error)
}

// FileJobAdRepository serves data_wide.csv and data_long.csv from a
// directory.
type FileJobAdRepository struct {
	dir dataset.Dir
}

func NewFileJobAdRepository(dir string) *FileJobAdRepository {
	return &FileJobAdRepository{dir: dataset.Dir(dir)}
}

func (r *FileJobAdRepository) LoadWide(_ context.Context) (dataset.WideTable, error) {
	if !dataset.Exists(r.dir.WidePath()) {
		return dataset.WideTable{}, ErrNoData
	}
	return dataset.ReadFile(r.dir.WidePath(), dataset.ReadWide)
}

func (r *FileJobAdRepository) LoadLong(_ context.Context) ([]jobad.LongRow, error) {
	if !dataset.Exists(r.dir.LongPath()) {
		return nil, ErrNoData
	}
	t, err := dataset.ReadFile(r.dir.LongPath(), dataset.ReadLong)
	if err != nil {
		return nil, err
	}
	return t.Rows, nil
}

var wideColumns = []string{
	"run_id", "link", "title", "company", "content", "release_date", "company_size",
	"permanent_employment", "trainee", "full_time", "part_time", "home_office_possible",
	"title_category", "experience_level", "average_salary", "main_industry",
	"locations", "main_location", "multiple_locations", "main_region",
	"requirements", "experience_bin",
}

var longColumns = []string{
	"run_id", "link", "title", "company", "release_date", "company_size",
	"permanent_employment", "trainee", "full_time", "part_time", "home_office_possible",
	"title_category", "experience_level", "average_salary", "main_industry",
	"location", "latitude", "longitude", "region",
}

// PostgresJobAdRepository keeps exactly one run in job_ads_wide and
// job_ads_long. It doubles as a pipeline sink.
type PostgresJobAdRepository struct {
	db           database.DB
	requirements []string
}

// NewPostgresJobAdRepository takes the requirement names in column order;
// the table stores only the flags that are set.
func NewPostgresJobAdRepository(db database.DB, requirements []string) *PostgresJobAdRepository {
	return &PostgresJobAdRepository{db: db, requirements: requirements}
}

func (r *PostgresJobAdRepository) Name() string { return "postgres" }

// Save replaces the stored run in one transaction.
func (r *PostgresJobAdRepository) Save(ctx context.Context, out pipeline.Output) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("nil db")
	}
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM job_ads_long`); err != nil {
			return fmt.Errorf("clear job_ads_long: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM job_ads_wide`); err != nil {
			return fmt.Errorf("clear job_ads_wide: %w", err)
		}

		wide := make([][]any, len(out.Wide))
		for i, a := range out.Wide {
			wide[i] = wideValues(out.RunID, a)
		}
		long := make([][]any, len(out.Long))
		for i, l := range out.Long {
			long[i] = longValues(out.RunID, l)
		}

		if err := insertRows(ctx, tx, "job_ads_wide", wideColumns, wide); err != nil {
			return err
		}
		return insertRows(ctx, tx, "job_ads_long", longColumns, long)
	})
}

// insertRows uses COPY when the transaction supports it and falls back to
// one INSERT per row.
func insertRows(ctx context.Context, tx database.Tx, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	if c, ok := tx.(database.Copier); ok {
		if _, err := c.CopyFrom(ctx, table, columns, rows); err != nil {
			return fmt.Errorf("copy %s: %w", table, err)
		}
		return nil
	}
	query := insertQuery(table, columns)
	for _, row := range rows {
		if _, err := tx.Exec(ctx, query, row...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

func insertQuery(table string, columns []string) string {
	q := "INSERT INTO " + table + " ("
	vals := ""
	for i, c := range columns {
		if i > 0 {
			q += ", "
			vals += ", "
		}
		q += c
		vals += fmt.Sprintf("$%d", i+1)
	}
	return q + ") VALUES (" + vals + ")"
}

func wideValues(runID string, a jobad.Ad) []any {
	return []any{
		runID, a.Link, a.Title, a.Company, a.Content, a.ReleaseDate, a.CompanySize,
		a.PermanentEmployment, a.Trainee, a.FullTime, a.PartTime, a.HomeOfficePossible,
		a.TitleCategory, a.ExperienceLevel, a.AverageSalary, a.MainIndustry,
		nonNil(a.Locations), a.MainLocation, a.MultipleLocations, a.MainRegion,
		setFlags(a.Requirements), a.ExperienceBin,
	}
}

func longValues(runID string, l jobad.LongRow) []any {
	return []any{
		runID, l.Link, l.Title, l.Company, l.ReleaseDate, l.CompanySize,
		l.PermanentEmployment, l.Trainee, l.FullTime, l.PartTime, l.HomeOfficePossible,
		l.TitleCategory, l.ExperienceLevel, l.AverageSalary, l.MainIndustry,
		l.Location, l.Latitude, l.Longitude, l.Region,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func setFlags(flags map[string]bool) []string {
	out := make([]string, 0, len(flags))
	for name, set := range flags {
		if set {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (r *PostgresJobAdRepository) LoadWide(ctx context.Context) (dataset.WideTable, error) {
	rows, err := r.db.Query(ctx, `SELECT
		link, title, company, content, release_date, company_size,
		permanent_employment, trainee, full_time, part_time, home_office_possible,
		title_category, experience_level, average_salary, main_industry,
		locations, main_location, multiple_locations, main_region,
		requirements, experience_bin
		FROM job_ads_wide ORDER BY id`)
	if err != nil {
		return dataset.WideTable{}, err
	}
	defer rows.Close()

	out := dataset.WideTable{Requirements: r.requirements}
	for rows.Next() {
		var a jobad.Ad
		var set []string
		if err := rows.Scan(
			&a.Link, &a.Title, &a.Company, &a.Content, &a.ReleaseDate, &a.CompanySize,
			&a.PermanentEmployment, &a.Trainee, &a.FullTime, &a.PartTime, &a.HomeOfficePossible,
			&a.TitleCategory, &a.ExperienceLevel, &a.AverageSalary, &a.MainIndustry,
			&a.Locations, &a.MainLocation, &a.MultipleLocations, &a.MainRegion,
			&set, &a.ExperienceBin,
		); err != nil {
			return dataset.WideTable{}, err
		}
		a.Requirements = make(map[string]bool, len(r.requirements))
		for _, name := range r.requirements {
			a.Requirements[name] = false
		}
		for _, name := range set {
			a.Requirements[name] = true
		}
		out.Ads = append(out.Ads, a)
	}
	if err := rows.Err(); err != nil {
		return dataset.WideTable{}, err
	}
	if len(out.Ads) == 0 {
		return dataset.WideTable{}, ErrNoData
	}
	return out, nil
}

func (r *PostgresJobAdRepository) LoadLong(ctx context.Context) ([]jobad.LongRow, error) {
	rows, err := r.db.Query(ctx, `SELECT
		link, title, company, release_date, company_size,
		permanent_employment, trainee, full_time, part_time, home_office_possible,
		title_category, experience_level, average_salary, main_industry,
		location, latitude, longitude, region
		FROM job_ads_long ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []jobad.LongRow
	for rows.Next() {
		var l jobad.LongRow
		if err := rows.Scan(
			&l.Link, &l.Title, &l.Company, &l.ReleaseDate, &l.CompanySize,
			&l.PermanentEmployment, &l.Trainee, &l.FullTime, &l.PartTime, &l.HomeOfficePossible,
			&l.TitleCategory, &l.ExperienceLevel, &l.AverageSalary, &l.MainIndustry,
			&l.Location, &l.Latitude, &l.Longitude, &l.Region,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}
