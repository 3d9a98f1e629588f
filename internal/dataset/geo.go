package dataset

import (
	"io"
	"strconv"

	"jobad-insights/internal/domain/jobad"
)

var geoFileColumns = []string{"location", "name", "latitude", "longitude", "region", "confidence", "type"}

// ReadGeo parses geo_data.csv. Rows with unparseable coordinates are
// skipped.
func ReadGeo(r io.Reader) ([]jobad.GeoRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	out := make([]jobad.GeoRecord, 0, len(t.rows))
	for _, row := range t.rows {
		lat := parseOptFloat(t.get(row, "latitude"))
		lon := parseOptFloat(t.get(row, "longitude"))
		if lat == nil || lon == nil {
			continue
		}
		conf := parseOptFloat(t.get(row, "confidence"))
		g := jobad.GeoRecord{
			Location:  t.get(row, "location"),
			Name:      t.get(row, "name"),
			Latitude:  *lat,
			Longitude: *lon,
			Region:    t.get(row, "region"),
			Type:      t.get(row, "type"),
		}
		if conf != nil {
			g.Confidence = *conf
		}
		out = append(out, g)
	}
	return out, nil
}

// WriteGeo renders geocoding records.
func WriteGeo(w io.Writer, recs []jobad.GeoRecord) error {
	return writeRecords(w, geoFileColumns, len(recs), func(i int) []string {
		g := recs[i]
		return []string{
			g.Location,
			g.Name,
			strconv.FormatFloat(g.Latitude, 'f', -1, 64),
			strconv.FormatFloat(g.Longitude, 'f', -1, 64),
			g.Region,
			strconv.FormatFloat(g.Confidence, 'f', -1, 64),
			g.Type,
		}
	})
}
