package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Character classes matching Unicode-aware \w, \W and \S, since scraped ads
// carry umlauts and non-breaking spaces.
const (
	wordChar    = `[\p{L}\p{N}_]`
	nonWordChar = `[^\p{L}\p{N}_]`
	nonSpace    = `[^\s\p{Z}]`
)

// NormalizeText composes decomposed umlauts (NFC) so that patterns written
// with precomposed characters match scraped text regardless of its source
// encoding form.
func NormalizeText(s string) string {
	if s == "" {
		return s
	}
	return norm.NFC.String(s)
}

// foldChain builds a fresh transformer per call; chains keep state and are
// not safe for concurrent use.
func foldChain() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Fold lowercases s and strips diacritics. Used for lookups of user-facing
// names, never for pattern matching.
func Fold(s string) string {
	out, _, err := transform.String(foldChain(), s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

func strPtr(s string) *string {
	return &s
}
