package extract

import (
	"regexp"
	"strconv"
	"strings"

	"jobad-insights/internal/domain/jobad"
)

// Sentinels for relative experience when no year count is stated.
const (
	Little = "little"
	Some   = "some"
	Much   = "much"
)

// maxYears bounds plausible year counts; larger numbers are typos or
// unrelated figures.
const maxYears = 10

// ExperienceInput is what the experience chain looks at for one ad.
type ExperienceInput struct {
	Content         string
	ExperienceLevel string
	Trainee         bool
}

// experienceStep resolves a value or returns "" to hand over to the next
// step.
type experienceStep func(in ExperienceInput) string

var experienceChain = []experienceStep{
	germanYears,
	germanAdjectiveYears,
	englishYears,
	germanExperienceKeyword,
	englishExperienceKeyword,
	careerEntry,
	titleLevel,
	traineeFlag,
}

// ResolveExperience runs the chain and returns the first resolved value: a
// year count "1".."10", one of the sentinels, or "" when nothing matched.
func ResolveExperience(in ExperienceInput) string {
	for _, step := range experienceChain {
		if v := step(in); v != "" {
			return v
		}
	}
	return ""
}

// ExperienceBin maps a resolved value to its bin.
func ExperienceBin(v string) string {
	switch v {
	case Little:
		return jobad.BinLittle
	case Some:
		return jobad.BinSome
	case Much:
		return jobad.BinMuch
	}
	n, err := strconv.Atoi(v)
	switch {
	case err != nil:
		return jobad.BinNone
	case n >= 1 && n <= 2:
		return jobad.BinLittle
	case n >= 3 && n <= 4:
		return jobad.BinSome
	case n >= 5 && n <= maxYears:
		return jobad.BinMuch
	default:
		return jobad.BinNone
	}
}

var (
	germanYearsPattern = regexp.MustCompile(`(?i)(` + nonSpace + `+) ?Jahre?n? ?(Beruf|` + nonSpace + `*erfahrung|relevant|praktisch|einschlägig|fundiert|Expertise)`)
	germanAdjPattern   = regexp.MustCompile(`(?i)(` + nonSpace + `+) ?jährige[rn]? ?(Beruf|` + nonSpace + `*erfahrung|,? praktisch|,? relevant|,? einschlägig|,? fundiert|Expertise)`)
	englishYearsRegexp = regexp.MustCompile(`(?i)(` + nonSpace + `+) ?years?( of)? ?(` + nonSpace + `* ?experience|professional|relevant|work|employment|proven|practical)`)
	berufserfahrung    = regexp.MustCompile(`(?i)(` + nonSpace + `+) ?Berufserfahrung`)
	englishExperience  = regexp.MustCompile(`(?i)(` + nonSpace + `+) ?(professional|work|working|practical) experience`)
	careerEntryPattern = regexp.MustCompile(`(?i)Berufseinstieg|Berufseinsteiger`)

	muchGerman  = regexp.MustCompile(`(?i)mehr|lang`)
	muchEnglish = regexp.MustCompile(`(?i)several|multiple`)
	digitRun    = regexp.MustCompile(`[0-9]+`)
)

var germanNumbers = map[string]string{
	"ein": "1", "zwei": "2", "drei": "3", "vier": "4", "fünf": "5",
	"sechs": "6", "sieben": "7", "acht": "8", "neun": "9", "zehn": "10",
}

var englishNumbers = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
}

var germanSeveral = map[string]bool{"einigen": true, "einige": true, "mehr": true, "mehrere": true}

var beginnerWords = map[string]bool{"erste": true, "first": true, "initial": true}

func germanYears(in ExperienceInput) string {
	tok := firstGroup(germanYearsPattern, in.Content)
	if tok == "" {
		return ""
	}
	tok = strings.ToLower(collapseRange(dropOutlier(tok)))
	if n, ok := germanNumbers[tok]; ok {
		tok = n
	}
	if germanSeveral[tok] {
		tok = Much
	}
	if d := digitRun.FindString(tok); d != "" {
		tok = d
	}
	return yearsOrMuch(tok)
}

func germanAdjectiveYears(in ExperienceInput) string {
	tok := firstGroup(germanAdjPattern, in.Content)
	if tok == "" {
		return ""
	}
	if muchGerman.MatchString(tok) {
		tok = Much
	}
	tok = strings.ToLower(dropOutlier(strings.Trim(tok, "- ")))
	if n, ok := germanNumbers[tok]; ok {
		tok = n
	}
	return yearsOrMuch(tok)
}

func englishYears(in ExperienceInput) string {
	tok := firstGroup(englishYearsRegexp, in.Content)
	if tok == "" {
		return ""
	}
	tok = collapseRange(tok)
	if d := digitRun.FindString(tok); d != "" {
		tok = d
	}
	tok = strings.ToLower(tok)
	if muchEnglish.MatchString(tok) {
		tok = Much
	}
	if n, ok := englishNumbers[tok]; ok {
		tok = n
	}
	return yearsOrMuch(dropOutlier(tok))
}

func germanExperienceKeyword(in ExperienceInput) string {
	return keywordAmount(firstGroup(berufserfahrung, in.Content))
}

func englishExperienceKeyword(in ExperienceInput) string {
	return keywordAmount(firstGroup(englishExperience, in.Content))
}

func careerEntry(in ExperienceInput) string {
	if careerEntryPattern.MatchString(in.Content) {
		return Little
	}
	return ""
}

func titleLevel(in ExperienceInput) string {
	switch in.ExperienceLevel {
	case jobad.LevelJunior:
		return Little
	case jobad.LevelSenior:
		return Much
	}
	return ""
}

func traineeFlag(in ExperienceInput) string {
	if in.Trainee {
		return Little
	}
	return ""
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func keywordAmount(tok string) string {
	if tok == "" {
		return ""
	}
	if beginnerWords[strings.ToLower(tok)] {
		return Little
	}
	return Some
}

// dropOutlier empties integer tokens above maxYears and leaves anything else
// untouched.
func dropOutlier(tok string) string {
	if n, err := strconv.Atoi(tok); err == nil && n > maxYears {
		return ""
	}
	return tok
}

// collapseRange turns "3-5" into the truncated average "4".
func collapseRange(tok string) string {
	parts := strings.Split(tok, "-")
	if len(parts) < 2 {
		return tok
	}
	lo, err := strconv.Atoi(parts[0])
	if err != nil {
		return tok
	}
	hi, err := strconv.Atoi(parts[1])
	if err != nil {
		return tok
	}
	return strconv.Itoa((lo + hi) / 2)
}

// yearsOrMuch keeps year counts within 1..maxYears and the "much" sentinel.
func yearsOrMuch(tok string) string {
	if tok == Much {
		return Much
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 1 || n > maxYears {
		return ""
	}
	return strconv.Itoa(n)
}
