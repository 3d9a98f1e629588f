package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobad-insights/internal/domain/jobad"
	"jobad-insights/internal/pipeline"
)

func TestSnapshotSink_ReplacesRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshot.db")
	sink, err := Open(path)
	require.NoError(t, err)
	defer sink.Close()

	salary := 55000.0
	ad := jobad.Ad{
		Link:          "https://example.org/1",
		TitleCategory: jobad.TitleDataAnalyst,
		AverageSalary: &salary,
		Locations:     []string{"Berlin", "Köln"},
		Requirements:  map[string]bool{"python": true, "sql": true, "r": false},
		ExperienceBin: jobad.BinNone,
	}
	out := pipeline.Output{
		RunID:        "first",
		Wide:         []jobad.Ad{ad},
		Long:         ad.LongRows(),
		Requirements: []string{"python", "r", "sql"},
	}
	require.NoError(t, sink.Save(context.Background(), out))

	out.RunID = "second"
	require.NoError(t, sink.Save(context.Background(), out))

	var runs, longRows int
	require.NoError(t, sink.db.QueryRow(`SELECT COUNT(DISTINCT run_id) FROM job_ads_wide`).Scan(&runs))
	require.NoError(t, sink.db.QueryRow(`SELECT COUNT(1) FROM job_ads_long WHERE run_id = 'second'`).Scan(&longRows))
	assert.Equal(t, 1, runs)
	assert.Equal(t, 2, longRows)

	var locations, reqs string
	var avg float64
	require.NoError(t, sink.db.QueryRow(`SELECT locations, requirements, average_salary FROM job_ads_wide`).Scan(&locations, &reqs, &avg))
	assert.Equal(t, "Berlin|Köln", locations)
	assert.Equal(t, "python|sql", reqs)
	assert.Equal(t, 55000.0, avg)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(" ")
	assert.Error(t, err)
}
