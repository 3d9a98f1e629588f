package dataset

import (
	"io"

	"jobad-insights/internal/domain/jobad"
)

var longColumns = []string{
	"link", "title", "company", "content", "release_date", "company_size",
	"permanent_employment", "trainee", "full_time", "part_time", "home_office_possible",
	"title_category", "experience_level", "average_salary", "main_industry", "location",
}

var geoColumns = []string{"latitude", "longitude", "region"}

// LongHeader returns the long column order, with coordinates when the table
// was joined with geocoding data.
func LongHeader(withGeo bool) []string {
	h := append([]string(nil), longColumns...)
	if withGeo {
		h = append(h, geoColumns...)
	}
	return h
}

// WriteLong renders long rows.
func WriteLong(w io.Writer, rows []jobad.LongRow, withGeo bool) error {
	return writeRecords(w, LongHeader(withGeo), len(rows), func(i int) []string {
		r := rows[i]
		rec := []string{
			r.Link, r.Title, r.Company, r.Content, r.ReleaseDate, formatOptString(r.CompanySize),
			formatBool(r.PermanentEmployment), formatBool(r.Trainee), formatBool(r.FullTime),
			formatBool(r.PartTime), formatBool(r.HomeOfficePossible),
			r.TitleCategory, r.ExperienceLevel, formatOptFloat(r.AverageSalary), formatOptString(r.MainIndustry),
			r.Location,
		}
		if withGeo {
			rec = append(rec, formatOptFloat(r.Latitude), formatOptFloat(r.Longitude), formatOptString(r.Region))
		}
		return rec
	})
}

// LongTable is a parsed long file.
type LongTable struct {
	Rows    []jobad.LongRow
	WithGeo bool
}

// ReadLong parses a long table; WithGeo reports whether coordinate columns
// were present.
func ReadLong(r io.Reader) (LongTable, error) {
	t, err := readTable(r)
	if err != nil {
		return LongTable{}, err
	}
	out := LongTable{
		Rows:    make([]jobad.LongRow, 0, len(t.rows)),
		WithGeo: t.has("latitude") && t.has("longitude"),
	}
	for _, row := range t.rows {
		out.Rows = append(out.Rows, jobad.LongRow{
			Link:                t.get(row, "link"),
			Title:               t.get(row, "title"),
			Company:             t.get(row, "company"),
			Content:             t.get(row, "content"),
			ReleaseDate:         t.get(row, "release_date"),
			CompanySize:         parseOptString(t.get(row, "company_size")),
			PermanentEmployment: parseBool(t.get(row, "permanent_employment")),
			Trainee:             parseBool(t.get(row, "trainee")),
			FullTime:            parseBool(t.get(row, "full_time")),
			PartTime:            parseBool(t.get(row, "part_time")),
			HomeOfficePossible:  parseBool(t.get(row, "home_office_possible")),
			TitleCategory:       t.get(row, "title_category"),
			ExperienceLevel:     t.get(row, "experience_level"),
			AverageSalary:       parseOptFloat(t.get(row, "average_salary")),
			MainIndustry:        parseOptString(t.get(row, "main_industry")),
			Location:            t.get(row, "location"),
			Latitude:            parseOptFloat(t.get(row, "latitude")),
			Longitude:           parseOptFloat(t.get(row, "longitude")),
			Region:              parseOptString(t.get(row, "region")),
		})
	}
	return out, nil
}
