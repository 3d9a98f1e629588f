package extract

import (
	"strconv"
	"strings"
)

// SalaryFloor is the lowest plausible yearly salary; smaller averages are
// scraping artifacts.
const SalaryFloor = 25000

// ParseSalaryRange averages the values at positions 0 and 2 of a space
// delimited range such as "50.000 - 70.000 €". Periods are thousands
// separators. Unparseable input and averages below SalaryFloor yield nil.
func ParseSalaryRange(s string) *float64 {
	tokens := strings.Split(s, " ")
	if len(tokens) < 3 {
		return nil
	}
	lo, err := strconv.ParseFloat(strings.ReplaceAll(tokens[0], ".", ""), 64)
	if err != nil {
		return nil
	}
	hi, err := strconv.ParseFloat(strings.ReplaceAll(tokens[2], ".", ""), 64)
	if err != nil {
		return nil
	}
	avg := (lo + hi) / 2
	if avg < SalaryFloor {
		return nil
	}
	return &avg
}

// NormalizeSalaries converts a salary column. A column whose non-empty cells
// all parse as numbers is already numeric and passes through unchanged;
// otherwise every cell is treated as a range string.
func NormalizeSalaries(values []string) []*float64 {
	out := make([]*float64, len(values))
	if numericColumn(values) {
		for i, v := range values {
			if v = strings.TrimSpace(v); v == "" {
				continue
			}
			f, _ := strconv.ParseFloat(v, 64)
			out[i] = &f
		}
		return out
	}
	for i, v := range values {
		if v == "" {
			continue
		}
		out[i] = ParseSalaryRange(v)
	}
	return out
}

func numericColumn(values []string) bool {
	seen := false
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}
