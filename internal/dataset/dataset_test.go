package dataset

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobad-insights/internal/domain/jobad"
)

func TestReadRawToleratesExtraAndMissingColumns(t *testing.T) {
	in := ",link,title,location,content,rating\n" +
		"0,https://example.com/1,Data Scientist,Berlin,\"Python\nund SQL\",4.1\n" +
		"1,https://example.com/2,Data Analyst\n"

	got, err := ReadRaw(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "https://example.com/1", got[0].Link)
	assert.Equal(t, "Python\nund SQL", got[0].Content)
	assert.Equal(t, "Berlin", got[0].Location)
	assert.Empty(t, got[0].Salary)
	assert.Equal(t, "Data Analyst", got[1].Title)
	assert.Empty(t, got[1].Location)
}

func TestReadRawEmptyInput(t *testing.T) {
	_, err := ReadRaw(strings.NewReader(""))
	assert.ErrorIs(t, err, errNoHeader)
}

func TestWideRoundTrip(t *testing.T) {
	salary := 60000.0
	size := "251-500"
	main := "Berlin"
	in := WideTable{
		Requirements: []string{"python", "sql", "c++"},
		Ads: []jobad.Ad{{
			Link:                "https://example.com/1",
			Title:               "Data Scientist",
			Company:             "ACME, Inc.",
			Content:             "Python, SQL\nund mehr",
			CompanySize:         &size,
			PermanentEmployment: true,
			FullTime:            true,
			TitleCategory:       jobad.TitleDataScientist,
			ExperienceLevel:     jobad.LevelNoInformation,
			AverageSalary:       &salary,
			Locations:           []string{"Berlin", "Hamburg"},
			MainLocation:        &main,
			MultipleLocations:   true,
			Requirements:        map[string]bool{"python": true, "sql": true, "c++": false},
			ExperienceBin:       jobad.BinSome,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWide(&buf, in))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.True(t, strings.HasSuffix(header, "python,sql,c++,<=2_years_experience,3-4_years_experience,>=5_years_experience,no_experience_information"))

	out, err := ReadWide(&buf)
	require.NoError(t, err)
	assert.Equal(t, in.Requirements, out.Requirements)
	require.Len(t, out.Ads, 1)
	assert.Equal(t, in.Ads[0], out.Ads[0])
}

func TestLongWithGeoColumns(t *testing.T) {
	lat, lon, region := 52.52, 13.405, "Berlin"
	rows := []jobad.LongRow{
		{Link: "a", Location: "Berlin", Latitude: &lat, Longitude: &lon, Region: &region},
		{Link: "a", Location: "Potsdam"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLong(&buf, rows, true))

	got, err := ReadLong(&buf)
	require.NoError(t, err)
	assert.True(t, got.WithGeo)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, 52.52, *got.Rows[0].Latitude)
	assert.Nil(t, got.Rows[1].Latitude)
	assert.Nil(t, got.Rows[1].Region)

	buf.Reset()
	require.NoError(t, WriteLong(&buf, rows, false))
	assert.NotContains(t, strings.SplitN(buf.String(), "\n", 2)[0], "latitude")
}

func TestReadGeoSkipsRowsWithoutCoordinates(t *testing.T) {
	in := "location,name,latitude,longitude,region,confidence,type\n" +
		"Berlin,Berlin,52.52,13.405,Berlin,1,locality\n" +
		"Nowhere,,,,,,\n"

	got, err := ReadGeo(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Joinable())
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	require.NoError(t, WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "a,b\n")
		return err
	}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(b))

	boom := errors.New("boom")
	err = WriteFileAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(b), "failed write must leave previous table intact")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDirPaths(t *testing.T) {
	d := Dir("data")
	assert.Equal(t, filepath.Join("data", "data_raw.csv"), d.RawPath())
	assert.False(t, Exists(d.RawPath()))
}
