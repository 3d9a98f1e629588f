package extract

import "strings"

var companySizeRemap = map[string]string{
	"11-50":               "0-50",
	"1-10":                "0-50",
	">15":                 "0-50",
	"1000+":               "1001-2500",
	"130":                 "51-250",
	"approx. 250":         "251-500",
	"201-500 Mitarbeiter": "251-500",
	"120":                 "251-500",
}

// NormalizeCompanySize folds the irregular company size labels found on
// company pages into the buckets used everywhere else.
func NormalizeCompanySize(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if mapped, ok := companySizeRemap[raw]; ok {
		return strPtr(mapped)
	}
	return strPtr(raw)
}

// MainIndustry returns the first entry of a pipe-delimited industry list.
func MainIndustry(industry string) *string {
	first, _, _ := strings.Cut(industry, "|")
	if first = strings.TrimSpace(first); first == "" {
		return nil
	}
	return strPtr(first)
}

// Company size groups used by the dashboard filters.
const (
	SizeSmall  = "Small (0-1,000)"
	SizeMedium = "Medium (1,001-10,000)"
	SizeBig    = "Big (>10,000)"
)

var sizeGroups = map[string]string{
	"10,001+":     SizeBig,
	"5001-10,000": SizeMedium,
	"2501-5000":   SizeMedium,
	"1001-2500":   SizeMedium,
	"501-1000":    SizeSmall,
	"251-500":     SizeSmall,
	"51-250":      SizeSmall,
	"0-50":        SizeSmall,
}

// SizeGroup maps a normalized company size to Small, Medium or Big. Unknown
// sizes return "".
func SizeGroup(size *string) string {
	if size == nil {
		return ""
	}
	return sizeGroups[*size]
}
