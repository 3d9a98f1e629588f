// Package jobad holds the job advertisement records that flow through the
// preprocessing pipeline: the raw scraped snapshot, the wide per-ad table,
// the long per-location table and the geocoding records joined onto it.
package jobad

// Raw is one scraped advertisement as read from data_raw.csv. Missing cells
// are empty strings.
type Raw struct {
	Link         string
	Title        string
	Company      string
	Location     string
	ContractType string
	WorkType     string
	Salary       string
	Content      string
	Industry     string
	CompanySize  string
	ReleaseDate  string
}

// Ad is the wide representation: one row per advertisement with every
// derived attribute.
type Ad struct {
	Link        string
	Title       string
	Company     string
	Content     string
	ReleaseDate string
	CompanySize *string

	PermanentEmployment bool
	Trainee             bool
	FullTime            bool
	PartTime            bool
	HomeOfficePossible  bool

	TitleCategory   string
	ExperienceLevel string
	AverageSalary   *float64
	MainIndustry    *string

	Locations         []string
	MainLocation      *string
	MultipleLocations bool
	MainRegion        *string

	Requirements  map[string]bool
	ExperienceBin string
}

// LongRow is one (ad, location) pair. Geo fields stay nil until a geocoding
// join ran.
type LongRow struct {
	Link        string
	Title       string
	Company     string
	Content     string
	ReleaseDate string
	CompanySize *string

	PermanentEmployment bool
	Trainee             bool
	FullTime            bool
	PartTime            bool
	HomeOfficePossible  bool

	TitleCategory   string
	ExperienceLevel string
	AverageSalary   *float64
	MainIndustry    *string

	Location  string
	Latitude  *float64
	Longitude *float64
	Region    *string
}

// GeoRecord is the geocoding collaborator's answer for one canonical location.
type GeoRecord struct {
	Location   string
	Name       string
	Latitude   float64
	Longitude  float64
	Region     string
	Confidence float64
	Type       string
}

// Joinable reports whether the record is precise enough to be joined onto
// long rows.
func (g GeoRecord) Joinable() bool {
	return g.Confidence == 1 && g.Type == GeoTypeLocality
}

const GeoTypeLocality = "locality"

// Title categories.
const (
	TitleOthers           = "Others"
	TitleSoftwareEngineer = "Software Engineer"
	TitleDataAnalyst      = "Data Analyst"
	TitleDataScientist    = "Data Scientist"
	TitleDataEngineer     = "Data Engineer"
	TitleMLEngineer       = "Machine Learning Engineer"
	TitleConsultant       = "Data Science Consultant"
	TitleManager          = "Data Science Manager"
)

// TitleCategories lists every category except Others in classifier order.
var TitleCategories = []string{
	TitleSoftwareEngineer,
	TitleDataAnalyst,
	TitleDataScientist,
	TitleDataEngineer,
	TitleMLEngineer,
	TitleConsultant,
	TitleManager,
}

// Experience levels derived from the title.
const (
	LevelNoInformation = "No Information"
	LevelJunior        = "Junior"
	LevelSenior        = "Senior"
)

// Experience bins. Exactly one is set per ad.
const (
	BinLittle = "<=2_years_experience"
	BinSome   = "3-4_years_experience"
	BinMuch   = ">=5_years_experience"
	BinNone   = "no_experience_information"
)

var ExperienceBins = []string{BinLittle, BinSome, BinMuch, BinNone}

// Nationwide is the canonical token for remote or nationwide postings.
const Nationwide = "bundesweit"

// LongRows explodes the ad into one row per location, in list order.
func (a Ad) LongRows() []LongRow {
	out := make([]LongRow, 0, len(a.Locations))
	for _, loc := range a.Locations {
		out = append(out, LongRow{
			Link:                a.Link,
			Title:               a.Title,
			Company:             a.Company,
			Content:             a.Content,
			ReleaseDate:         a.ReleaseDate,
			CompanySize:         a.CompanySize,
			PermanentEmployment: a.PermanentEmployment,
			Trainee:             a.Trainee,
			FullTime:            a.FullTime,
			PartTime:            a.PartTime,
			HomeOfficePossible:  a.HomeOfficePossible,
			TitleCategory:       a.TitleCategory,
			ExperienceLevel:     a.ExperienceLevel,
			AverageSalary:       a.AverageSalary,
			MainIndustry:        a.MainIndustry,
			Location:            loc,
		})
	}
	return out
}
