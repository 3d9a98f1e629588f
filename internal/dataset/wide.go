package dataset

import (
	"io"

	"jobad-insights/internal/domain/jobad"
)

var wideLeadColumns = []string{
	"link", "title", "company", "content", "release_date", "company_size",
	"permanent_employment", "trainee", "full_time", "part_time", "home_office_possible",
	"title_category", "experience_level", "average_salary", "main_industry",
	"locations", "main_location", "multiple_locations", "main_region",
}

// WideTable is the wide output together with its requirement columns in
// file order.
type WideTable struct {
	Ads          []jobad.Ad
	Requirements []string
}

// WideHeader returns the column order for the given requirement flags.
func WideHeader(requirements []string) []string {
	h := make([]string, 0, len(wideLeadColumns)+len(requirements)+len(jobad.ExperienceBins))
	h = append(h, wideLeadColumns...)
	h = append(h, requirements...)
	return append(h, jobad.ExperienceBins...)
}

// WriteWide renders the wide table. The experience bin is one-hot encoded.
func WriteWide(w io.Writer, t WideTable) error {
	return writeRecords(w, WideHeader(t.Requirements), len(t.Ads), func(i int) []string {
		a := t.Ads[i]
		rec := []string{
			a.Link, a.Title, a.Company, a.Content, a.ReleaseDate, formatOptString(a.CompanySize),
			formatBool(a.PermanentEmployment), formatBool(a.Trainee), formatBool(a.FullTime),
			formatBool(a.PartTime), formatBool(a.HomeOfficePossible),
			a.TitleCategory, a.ExperienceLevel, formatOptFloat(a.AverageSalary), formatOptString(a.MainIndustry),
			formatList(a.Locations), formatOptString(a.MainLocation), formatBool(a.MultipleLocations),
			formatOptString(a.MainRegion),
		}
		for _, name := range t.Requirements {
			rec = append(rec, formatBool(a.Requirements[name]))
		}
		for _, bin := range jobad.ExperienceBins {
			rec = append(rec, formatBool(a.ExperienceBin == bin))
		}
		return rec
	})
}

// ReadWide parses a wide table. Every column that is neither a lead column
// nor an experience bin is read as a requirement flag.
func ReadWide(r io.Reader) (WideTable, error) {
	t, err := readTable(r)
	if err != nil {
		return WideTable{}, err
	}

	known := make(map[string]bool, len(wideLeadColumns)+len(jobad.ExperienceBins))
	for _, c := range wideLeadColumns {
		known[c] = true
	}
	for _, c := range jobad.ExperienceBins {
		known[c] = true
	}
	var reqs []string
	for _, h := range t.header {
		if h != "" && !known[h] {
			reqs = append(reqs, h)
		}
	}

	out := WideTable{Ads: make([]jobad.Ad, 0, len(t.rows)), Requirements: reqs}
	for _, row := range t.rows {
		a := jobad.Ad{
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
			Locations:           parseList(t.get(row, "locations")),
			MainLocation:        parseOptString(t.get(row, "main_location")),
			MultipleLocations:   parseBool(t.get(row, "multiple_locations")),
			MainRegion:          parseOptString(t.get(row, "main_region")),
			Requirements:        make(map[string]bool, len(reqs)),
			ExperienceBin:       jobad.BinNone,
		}
		for _, name := range reqs {
			a.Requirements[name] = parseBool(t.get(row, name))
		}
		for _, bin := range jobad.ExperienceBins {
			if parseBool(t.get(row, bin)) {
				a.ExperienceBin = bin
				break
			}
		}
		out.Ads = append(out.Ads, a)
	}
	return out, nil
}
