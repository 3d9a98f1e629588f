package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobad-insights/internal/database/dbtest"
	"jobad-insights/internal/dataset"
	"jobad-insights/internal/domain/jobad"
	"jobad-insights/internal/pipeline"
)

func ptr[T any](v T) *T { return &v }

func sampleOutput() pipeline.Output {
	ad := jobad.Ad{
		Link:          "https://example.org/1",
		Title:         "Data Engineer",
		Company:       "Acme",
		Content:       "Python",
		CompanySize:   ptr("51-250"),
		TitleCategory: jobad.TitleDataEngineer,
		AverageSalary: ptr(60000.0),
		Locations:     []string{"Berlin"},
		MainLocation:  ptr("Berlin"),
		Requirements:  map[string]bool{"python": true, "sql": false},
		ExperienceBin: jobad.BinSome,
	}
	return pipeline.Output{
		RunID:        "run-1",
		Wide:         []jobad.Ad{ad},
		Long:         ad.LongRows(),
		Requirements: []string{"python", "sql"},
	}
}

func TestPostgresJobAdRepository_SaveUsesCopy(t *testing.T) {
	db := dbtest.New()
	repo := NewPostgresJobAdRepository(db, []string{"python", "sql"})

	require.NoError(t, repo.Save(context.Background(), sampleOutput()))
	assert.Len(t, db.ExecsMatching("DELETE FROM job_ads_long"), 1)
	assert.Len(t, db.ExecsMatching("DELETE FROM job_ads_wide"), 1)
	require.Len(t, db.Copies["job_ads_wide"], 1)
	require.Len(t, db.Copies["job_ads_long"], 1)

	wide := db.Copies["job_ads_wide"][0]
	require.Len(t, wide, len(wideColumns))
	assert.Equal(t, "run-1", wide[0])
	assert.Equal(t, []string{"python"}, wide[20])
	assert.Equal(t, 1, db.Committed)
}

func TestPostgresJobAdRepository_SaveRollsBackOnError(t *testing.T) {
	db := dbtest.New()
	db.ExecErr = map[string]error{"DELETE FROM job_ads_wide": errors.New("locked")}
	repo := NewPostgresJobAdRepository(db, nil)

	err := repo.Save(context.Background(), sampleOutput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear job_ads_wide")
	assert.Equal(t, 0, db.Committed)
	assert.Equal(t, 1, db.RolledBack)
}

func TestPostgresJobAdRepository_LoadWide(t *testing.T) {
	db := dbtest.New(dbtest.Result{
		Match: "FROM job_ads_wide",
		Rows: [][]any{{
			"https://example.org/1", "Data Engineer", "Acme", "Python", "", "51-250",
			true, false, true, false, false,
			jobad.TitleDataEngineer, jobad.LevelNoInformation, 60000.0, nil,
			[]string{"Berlin"}, "Berlin", false, nil,
			[]string{"python"}, jobad.BinSome,
		}},
	})
	repo := NewPostgresJobAdRepository(db, []string{"python", "sql"})

	got, err := repo.LoadWide(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Ads, 1)
	a := got.Ads[0]
	assert.Equal(t, []string{"python", "sql"}, got.Requirements)
	assert.Equal(t, map[string]bool{"python": true, "sql": false}, a.Requirements)
	require.NotNil(t, a.CompanySize)
	assert.Equal(t, "51-250", *a.CompanySize)
	require.NotNil(t, a.AverageSalary)
	assert.Equal(t, 60000.0, *a.AverageSalary)
	assert.Nil(t, a.MainIndustry)
	assert.Nil(t, a.MainRegion)
	assert.Equal(t, []string{"Berlin"}, a.Locations)
}

func TestPostgresJobAdRepository_LoadEmpty(t *testing.T) {
	repo := NewPostgresJobAdRepository(dbtest.New(), nil)
	_, err := repo.LoadWide(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
	_, err = repo.LoadLong(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFileJobAdRepository(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileJobAdRepository(dir)

	_, err := repo.LoadWide(context.Background())
	assert.ErrorIs(t, err, ErrNoData)

	out := sampleOutput()
	require.NoError(t, dataset.WriteFileAtomic(dataset.Dir(dir).WidePath(), func(w io.Writer) error {
		return dataset.WriteWide(w, dataset.WideTable{Ads: out.Wide, Requirements: out.Requirements})
	}))
	require.NoError(t, dataset.WriteFileAtomic(dataset.Dir(dir).LongPath(), func(w io.Writer) error {
		return dataset.WriteLong(w, out.Long, false)
	}))

	wide, err := repo.LoadWide(context.Background())
	require.NoError(t, err)
	require.Len(t, wide.Ads, 1)
	assert.True(t, wide.Ads[0].Requirements["python"])

	long, err := repo.LoadLong(context.Background())
	require.NoError(t, err)
	require.Len(t, long, 1)
	assert.Equal(t, "Berlin", long[0].Location)
}

func TestPostgresPipelineRunRepository(t *testing.T) {
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	db := dbtest.New(dbtest.Result{
		Match: "FROM pipeline_runs",
		Rows:  [][]any{{"run-9", started, started.Add(90 * time.Second), 10, 8, 12, 1, true}},
	})
	repo := NewPostgresPipelineRunRepository(db)

	require.NoError(t, repo.Record(context.Background(), pipeline.Summary{RunID: "run-9", StartedAt: started}))
	assert.Len(t, db.ExecsMatching("INSERT INTO pipeline_runs"), 1)

	s, ok, err := repo.Last(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "run-9", s.RunID)
	assert.Equal(t, 90*time.Second, s.Duration)
	assert.True(t, s.GeoJoined)

	_, ok, err = NewPostgresPipelineRunRepository(dbtest.New()).Last(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
