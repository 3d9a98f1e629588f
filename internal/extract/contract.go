package extract

import (
	"strings"

	"jobad-insights/internal/domain/jobad"
)

// ContractFlags reports whether a contract type indicates permanent
// employment and/or a trainee position. Matching is case-sensitive.
func ContractFlags(contractType string) (permanent, trainee bool) {
	return strings.Contains(contractType, "Feste Anstellung"), strings.Contains(contractType, "Trainee")
}

// WorkTypeFlags decomposes a comma-joined work type string.
func WorkTypeFlags(workType string) (fullTime, partTime, homeOffice bool) {
	return strings.Contains(workType, "Vollzeit"),
		strings.Contains(workType, "Teilzeit"),
		strings.Contains(workType, "Home Office möglich")
}

// FilterContracts keeps ads whose contract type is permanent or trainee and
// returns them as wide rows with the contract and work type flags set.
func FilterContracts(raws []jobad.Raw) []jobad.Ad {
	out := make([]jobad.Ad, 0, len(raws))
	for _, r := range raws {
		permanent, trainee := ContractFlags(r.ContractType)
		if !permanent && !trainee {
			continue
		}
		fullTime, partTime, homeOffice := WorkTypeFlags(r.WorkType)
		out = append(out, jobad.Ad{
			Link:                r.Link,
			Title:               NormalizeText(r.Title),
			Company:             r.Company,
			Content:             NormalizeText(r.Content),
			ReleaseDate:         r.ReleaseDate,
			PermanentEmployment: permanent,
			Trainee:             trainee,
			FullTime:            fullTime,
			PartTime:            partTime,
			HomeOfficePossible:  homeOffice,
		})
	}
	return out
}
