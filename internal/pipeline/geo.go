package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"jobad-insights/internal/dataset"
	"jobad-insights/internal/domain/jobad"
)

// UpdateGeoData reads geo_data.csv from dir, geocodes the locations it does
// not know yet and writes the merged table back. Without a geocoder the
// known records are returned and pending counts the unresolved locations;
// having neither a geocoder nor a geo file is an error.
func UpdateGeoData(ctx context.Context, dir dataset.Dir, geocoder Geocoder, locations []string) (known []jobad.GeoRecord, pending int, err error) {
	if dataset.Exists(dir.GeoPath()) {
		known, err = dataset.ReadFile(dir.GeoPath(), dataset.ReadGeo)
		if err != nil {
			return nil, 0, fmt.Errorf("read geo data: %w", err)
		}
	}

	seen := make(map[string]bool, len(known))
	for _, g := range known {
		seen[g.Location] = true
	}
	var missing []string
	for _, loc := range locations {
		if loc != "" && !seen[loc] {
			seen[loc] = true
			missing = append(missing, loc)
		}
	}
	if len(missing) == 0 {
		return known, 0, nil
	}

	if geocoder == nil {
		if len(known) == 0 {
			return nil, 0, fmt.Errorf("%w: %s", os.ErrNotExist, dir.GeoPath())
		}
		return known, len(missing), nil
	}

	fetched, err := geocoder.Geocode(ctx, missing)
	if err != nil {
		return nil, 0, err
	}
	known = append(known, fetched...)
	if err := dataset.WriteFileAtomic(dir.GeoPath(), func(w io.Writer) error {
		return dataset.WriteGeo(w, known)
	}); err != nil {
		return nil, 0, fmt.Errorf("write geo data: %w", err)
	}
	return known, 0, nil
}

// joinGeo keeps the long rows whose location has a precise locality record
// and attaches its coordinates.
func joinGeo(rows []jobad.LongRow, geo []jobad.GeoRecord) []jobad.LongRow {
	byLocation := make(map[string]jobad.GeoRecord, len(geo))
	for _, g := range geo {
		if !g.Joinable() {
			continue
		}
		if _, ok := byLocation[g.Location]; !ok {
			byLocation[g.Location] = g
		}
	}
	out := make([]jobad.LongRow, 0, len(rows))
	for _, row := range rows {
		g, ok := byLocation[row.Location]
		if !ok {
			continue
		}
		lat, lon, region := g.Latitude, g.Longitude, g.Region
		row.Latitude, row.Longitude, row.Region = &lat, &lon, &region
		out = append(out, row)
	}
	return out
}

// regionIndex maps every geocoded location to its region, regardless of
// match precision.
func regionIndex(geo []jobad.GeoRecord) map[string]string {
	out := make(map[string]string, len(geo))
	for _, g := range geo {
		if g.Region == "" {
			continue
		}
		if _, ok := out[g.Location]; !ok {
			out[g.Location] = g.Region
		}
	}
	return out
}
