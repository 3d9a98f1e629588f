package extract

import (
	"regexp"
	"strings"

	"jobad-insights/internal/domain/jobad"
)

// splitPasses run in order; every token produced by one pass is split again
// by the next.
var splitPasses = []*regexp.Regexp{
	regexp.MustCompile(`, ?`),
	regexp.MustCompile(` ?/ ?`),
	regexp.MustCompile(` oder `),
	regexp.MustCompile(` und `),
	regexp.MustCompile(` - `),
	regexp.MustCompile(`; `),
	regexp.MustCompile(` ?\+ ?`),
}

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

var locationRewrites = []rewrite{
	{regexp.MustCompile(`^Raum `), ""},
	{regexp.MustCompile(` \(?(bei|b\.|an|am|a\.|ob|in|im|vor|v\.|\+|%|u\.a\.|Raum)[)\p{L}\p{N}_ .]+`), ""},
	{regexp.MustCompile(`(?i)[ \p{L}\p{N}_-]*(Home|Office|Mobile|Remote|Bundes|Deutschland|Wahl|Standort|DACH|keine Angabe)[( \p{L}\p{N}_-]*`), jobad.Nationwide},
	{regexp.MustCompile(` ?(a\.M\.|Main|M\.|\.\.\.und weitere|Gutenbergquartier)$`), ""},
	{regexp.MustCompile(`(MBTI|bei|[0-9]{5}|Metropolregion|Fürstentum|Großraum|100%) ?`), ""},
}

// multiWordPlace marks tokens that must not be split on spaces.
var multiWordPlace = regexp.MustCompile(`^(Bad|Sankt|Palma|New|Den|Schwäbisch|Lindau) `)

// DecomposeLocation splits a raw location string into canonical place
// tokens. Empty tokens are returned as "" and mark a null location.
func DecomposeLocation(raw string) []string {
	raw = NormalizeText(raw)
	if raw == "" {
		return []string{""}
	}

	tokens := []string{strings.Trim(raw, " ,")}
	for _, re := range splitPasses {
		tokens = explode(tokens, func(s string) []string { return re.Split(s, -1) })
	}

	for i, t := range tokens {
		for _, rw := range locationRewrites {
			t = rw.re.ReplaceAllString(t, rw.repl)
		}
		t = strings.ReplaceAll(t, "St.", "Sankt")
		tokens[i] = strings.ReplaceAll(t, ".", "")
	}

	tokens = explode(tokens, func(s string) []string { return strings.Split(s, " (") })
	tokens = explode(tokens, func(s string) []string {
		if multiWordPlace.MatchString(s) {
			return []string{s}
		}
		return strings.Split(s, " ")
	})

	for i, t := range tokens {
		tokens[i] = strings.Trim(t, "[ )]")
	}
	return tokens
}

func explode(tokens []string, split func(string) []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, split(t)...)
	}
	return out
}

// CanonicalLocations drops null tokens and then every nationwide marker as
// long as another location remains, so "bundesweit" is only reported when
// it is the sole location.
func CanonicalLocations(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	nationwide := 0
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if t == jobad.Nationwide {
			nationwide++
		}
		out = append(out, t)
	}
	if nationwide == 0 || nationwide == len(out) {
		if nationwide > 1 {
			return out[:1]
		}
		return out
	}
	kept := out[:0]
	for _, t := range out {
		if t != jobad.Nationwide {
			kept = append(kept, t)
		}
	}
	return kept
}

// LocationFeatures derives main_location and multiple_locations from a
// canonical list.
func LocationFeatures(locations []string) (main *string, multiple bool) {
	if len(locations) == 0 {
		return nil, false
	}
	return strPtr(locations[0]), len(locations) > 1
}

// Locations decomposes a raw location string into its canonical list.
func Locations(raw string) []string {
	return CanonicalLocations(DecomposeLocation(raw))
}
