package pipeline

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobad-insights/internal/dataset"
	"jobad-insights/internal/domain/jobad"
)

func writeGeoFixture(t *testing.T, dir dataset.Dir, recs []jobad.GeoRecord) {
	t.Helper()
	require.NoError(t, dataset.WriteFileAtomic(dir.GeoPath(), func(w io.Writer) error {
		return dataset.WriteGeo(w, recs)
	}))
}

func TestUpdateGeoData_AsksOnlyForUnknownLocations(t *testing.T) {
	dir := dataset.Dir(t.TempDir())
	writeGeoFixture(t, dir, []jobad.GeoRecord{
		{Location: "Berlin", Name: "Berlin", Latitude: 52.52, Longitude: 13.40, Region: "Berlin", Confidence: 1, Type: jobad.GeoTypeLocality},
	})
	geo := &fakeGeocoder{records: map[string]jobad.GeoRecord{
		"Köln": {Location: "Köln", Name: "Köln", Latitude: 50.94, Longitude: 6.96, Region: "Nordrhein-Westfalen", Confidence: 1, Type: jobad.GeoTypeLocality},
	}}

	known, pending, err := UpdateGeoData(context.Background(), dir, geo, []string{"Berlin", "Köln", "", "Köln"})
	require.NoError(t, err)
	assert.Zero(t, pending)
	assert.Equal(t, []string{"Köln"}, geo.asked)
	assert.Len(t, known, 2)

	stored, err := dataset.ReadFile(dir.GeoPath(), dataset.ReadGeo)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestUpdateGeoData_NothingMissingSkipsGeocoder(t *testing.T) {
	dir := dataset.Dir(t.TempDir())
	writeGeoFixture(t, dir, []jobad.GeoRecord{
		{Location: "Berlin", Name: "Berlin", Region: "Berlin", Confidence: 1, Type: jobad.GeoTypeLocality},
	})
	geo := &fakeGeocoder{}

	known, _, err := UpdateGeoData(context.Background(), dir, geo, []string{"Berlin"})
	require.NoError(t, err)
	assert.Len(t, known, 1)
	assert.Empty(t, geo.asked)
}

func TestUpdateGeoData_WithoutGeocoder(t *testing.T) {
	t.Run("known file reports pending", func(t *testing.T) {
		dir := dataset.Dir(t.TempDir())
		writeGeoFixture(t, dir, []jobad.GeoRecord{
			{Location: "Berlin", Name: "Berlin", Region: "Berlin", Confidence: 1, Type: jobad.GeoTypeLocality},
		})

		known, pending, err := UpdateGeoData(context.Background(), dir, nil, []string{"Berlin", "Hamburg", "Bremen"})
		require.NoError(t, err)
		assert.Len(t, known, 1)
		assert.Equal(t, 2, pending)
	})

	t.Run("no file is an error", func(t *testing.T) {
		dir := dataset.Dir(t.TempDir())

		_, _, err := UpdateGeoData(context.Background(), dir, nil, []string{"Hamburg"})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
