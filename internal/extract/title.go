package extract

import (
	"regexp"

	"jobad-insights/internal/domain/jobad"
)

type titleRule struct {
	category string
	re       *regexp.Regexp
}

// titleRules are evaluated in order and every match overwrites the previous
// one, so a title matching several rules ends up in the last of them.
var titleRules = []titleRule{
	{jobad.TitleSoftwareEngineer, regexp.MustCompile(`(?i)Software|Developer|Entwickler`)},
	{jobad.TitleDataAnalyst, regexp.MustCompile(`(?i)Analyst|Business[- ]*Intelligence|Analytics|Reporting`)},
	{jobad.TitleDataScientist, regexp.MustCompile(`(?i)Data[ \S]*Scien|Research[ \S]*(Scientist|Engineer)|Statistik`)},
	{jobad.TitleDataEngineer, regexp.MustCompile(`(?i)(Data|Cloud)[ \S]*(Engineer|Archite(c|k)t|Specialist)|Data Warehouse|Datenbank|Database`)},
	{jobad.TitleMLEngineer, regexp.MustCompile(`(?i)Machine[- ]*Learning|Deep[- ]*Learning|(` + nonWordChar + `|^)(AI|KI|ML|DL)(` + nonWordChar + `|$)|Artificial[- ]*Intelligence|Künstliche[- ]*Intelligenz|MLOps`)},
	{jobad.TitleConsultant, regexp.MustCompile(`(?i)Consultant|Berater|Consulting`)},
	{jobad.TitleManager, regexp.MustCompile(`(?i)Manager|Head|Lead|Leiter|Leitung|Vorstand|Chief|Owner|Partner|Director`)},
}

// ClassifyTitle maps a job title to its role category.
func ClassifyTitle(title string) string {
	category := jobad.TitleOthers
	for _, r := range titleRules {
		if r.re.MatchString(title) {
			category = r.category
		}
	}
	return category
}

var (
	juniorPattern = regexp.MustCompile(`(?i)Junior|Jr.`)
	seniorPattern = regexp.MustCompile(`(?i)Senior|Sr.`)
)

// ExperienceLevel derives Junior/Senior from the title alone; Senior wins
// when both appear.
func ExperienceLevel(title string) string {
	level := jobad.LevelNoInformation
	if juniorPattern.MatchString(title) {
		level = jobad.LevelJunior
	}
	if seniorPattern.MatchString(title) {
		level = jobad.LevelSenior
	}
	return level
}
