package extract

import (
	"sort"
	"strconv"
	"strings"

	"jobad-insights/internal/domain/jobad"
)

// Deduplicate keeps the first ad of every group that agrees on all columns
// except link, title, content and release date. Reposted ads only differ in
// those.
func Deduplicate(ads []jobad.Ad) []jobad.Ad {
	seen := make(map[string]struct{}, len(ads))
	out := make([]jobad.Ad, 0, len(ads))
	for _, ad := range ads {
		key := dedupKey(ad)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ad)
	}
	return out
}

func dedupKey(ad jobad.Ad) string {
	var b strings.Builder
	field := func(s string) {
		b.WriteString(s)
		b.WriteByte(0x1f)
	}
	optional := func(s *string) {
		if s == nil {
			field("\x00")
			return
		}
		field(*s)
	}
	flag := func(v bool) {
		field(strconv.FormatBool(v))
	}

	field(ad.Company)
	optional(ad.CompanySize)
	flag(ad.PermanentEmployment)
	flag(ad.Trainee)
	flag(ad.FullTime)
	flag(ad.PartTime)
	flag(ad.HomeOfficePossible)
	field(ad.TitleCategory)
	field(ad.ExperienceLevel)
	if ad.AverageSalary == nil {
		field("\x00")
	} else {
		field(strconv.FormatFloat(*ad.AverageSalary, 'g', -1, 64))
	}
	optional(ad.MainIndustry)
	field(strings.Join(ad.Locations, "|"))
	optional(ad.MainLocation)
	flag(ad.MultipleLocations)
	optional(ad.MainRegion)

	names := make([]string, 0, len(ad.Requirements))
	for name := range ad.Requirements {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		field(name)
		flag(ad.Requirements[name])
	}
	field(ad.ExperienceBin)
	return b.String()
}
