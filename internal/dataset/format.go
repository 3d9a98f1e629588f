package dataset

import (
	"strconv"
	"strings"
)

// Booleans are spelled the way the dashboard has always read them.
const (
	trueCell  = "True"
	falseCell = "False"
)

func formatBool(v bool) string {
	if v {
		return trueCell
	}
	return falseCell
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true
	default:
		return false
	}
}

func formatOptString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseOptString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatOptFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func parseOptFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Location lists are stored in one cell.
const listSep = "|"

func formatList(items []string) string {
	return strings.Join(items, listSep)
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSep)
}
