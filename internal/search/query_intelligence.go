package search

import (
	"sort"
	"strings"
	"unicode"

	"jobad-insights/internal/extract"
)

// NormalizeQuery folds case and diacritics and collapses every run of
// separators into a single space.
func NormalizeQuery(input string) string {
	input = extract.Fold(input)
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	lastWasSpace := false

	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '+' || r == '#' || r == '/':
			b.WriteRune(r)
			lastWasSpace = false
		case unicode.IsSpace(r) || r == '_' || r == '-' || r == '.':
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// SkillResolver maps free-text skill names onto requirement flags.
type SkillResolver struct {
	byKey map[string]string
}

func NewSkillResolver(names []string) *SkillResolver {
	r := &SkillResolver{byKey: make(map[string]string, len(names)*2)}
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
		r.byKey[NormalizeQuery(n)] = n
		r.byKey[strings.ReplaceAll(NormalizeQuery(n), " ", "")] = n
	}
	for alias, target := range Synonyms {
		if known[target] {
			r.byKey[alias] = target
		}
	}
	return r
}

// Resolve returns the flag name for term.
func (r *SkillResolver) Resolve(term string) (string, bool) {
	if r == nil {
		return "", false
	}
	key := NormalizeQuery(term)
	if key == "" {
		return "", false
	}
	if n, ok := r.byKey[key]; ok {
		return n, true
	}
	n, ok := r.byKey[strings.ReplaceAll(key, " ", "")]
	return n, ok
}

// ResolveAll resolves terms, dropping duplicates. Unresolvable terms are
// returned sorted in unknown.
func (r *SkillResolver) ResolveAll(terms []string) (resolved, unknown []string) {
	seen := map[string]bool{}
	for _, t := range terms {
		n, ok := r.Resolve(t)
		if !ok {
			if strings.TrimSpace(t) != "" {
				unknown = append(unknown, strings.TrimSpace(t))
			}
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		resolved = append(resolved, n)
	}
	sort.Strings(unknown)
	return resolved, unknown
}
