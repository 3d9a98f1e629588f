package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobad-insights/internal/domain/jobad"
)

func TestLocations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"comma separated", "Berlin, München, Hamburg", []string{"Berlin", "München", "Hamburg"}},
		{"slash and oder", "Köln / Bonn oder Düsseldorf", []string{"Köln", "Bonn", "Düsseldorf"}},
		{"und", "Stuttgart und Ulm", []string{"Stuttgart", "Ulm"}},
		{"plus", "Leipzig + Dresden", []string{"Leipzig", "Dresden"}},
		{"semicolon", "Kiel; Lübeck", []string{"Kiel", "Lübeck"}},
		{"area prefix", "Raum Stuttgart", []string{"Stuttgart"}},
		{"preposition clause", "Frankfurt am Main", []string{"Frankfurt"}},
		{"postal code", "10115 Berlin", []string{"Berlin"}},
		{"saint", "St. Ingbert", []string{"Sankt Ingbert"}},
		{"multi word place", "Bad Homburg", []string{"Bad Homburg"}},
		{"home office only", "Home Office", []string{jobad.Nationwide}},
		{"several nationwide markers", "Homeoffice / Remote", []string{jobad.Nationwide}},
		{"nationwide dropped next to a city", "Berlin, Home Office", []string{"Berlin"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Locations(tt.raw))
		})
	}
}

func TestLocationsIdempotentOnCanonicalTokens(t *testing.T) {
	for _, loc := range []string{"Berlin", "München", "Bad Homburg", "Sankt Ingbert", jobad.Nationwide} {
		assert.Equal(t, []string{loc}, Locations(loc), loc)
	}
}

func TestDecomposeLocationKeepsNullMarkers(t *testing.T) {
	assert.Equal(t, []string{""}, DecomposeLocation(""))
	assert.Equal(t, []string{"Berlin", ""}, DecomposeLocation("Berlin, )"))
}

func TestCanonicalLocations(t *testing.T) {
	assert.Equal(t, []string{"Berlin", "Hamburg"}, CanonicalLocations([]string{"bundesweit", "Berlin", "", "bundesweit", "Hamburg"}))
	assert.Equal(t, []string{"bundesweit"}, CanonicalLocations([]string{"bundesweit", "bundesweit"}))
	assert.Empty(t, CanonicalLocations([]string{"", ""}))
}

func TestLocationFeatures(t *testing.T) {
	main, multiple := LocationFeatures([]string{"Berlin", "Hamburg"})
	if assert.NotNil(t, main) {
		assert.Equal(t, "Berlin", *main)
	}
	assert.True(t, multiple)

	main, multiple = LocationFeatures(nil)
	assert.Nil(t, main)
	assert.False(t, multiple)
}
