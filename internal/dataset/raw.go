package dataset

import (
	"io"

	"jobad-insights/internal/domain/jobad"
)

// RawColumns is the column order the scraper writes.
var RawColumns = []string{
	"link", "title", "company", "location", "contract_type", "work_type",
	"content", "release_date", "salary", "company_size", "industry",
}

// ReadRaw parses a raw snapshot. Unknown columns are ignored and missing
// ones read as empty.
func ReadRaw(r io.Reader) ([]jobad.Raw, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	out := make([]jobad.Raw, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, jobad.Raw{
			Link:         t.get(row, "link"),
			Title:        t.get(row, "title"),
			Company:      t.get(row, "company"),
			Location:     t.get(row, "location"),
			ContractType: t.get(row, "contract_type"),
			WorkType:     t.get(row, "work_type"),
			Salary:       t.get(row, "salary"),
			Content:      t.get(row, "content"),
			Industry:     t.get(row, "industry"),
			CompanySize:  t.get(row, "company_size"),
			ReleaseDate:  t.get(row, "release_date"),
		})
	}
	return out, nil
}

// WriteRaw renders ads with RawColumns.
func WriteRaw(w io.Writer, ads []jobad.Raw) error {
	return writeRecords(w, RawColumns, len(ads), func(i int) []string {
		a := ads[i]
		return []string{
			a.Link, a.Title, a.Company, a.Location, a.ContractType, a.WorkType,
			a.Content, a.ReleaseDate, a.Salary, a.CompanySize, a.Industry,
		}
	})
}
