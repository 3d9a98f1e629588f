package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// AnalysisCachePrefix namespaces every cached dashboard answer.
const AnalysisCachePrefix = "analysis:"

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func normalizedList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = normalizeSearchValue(s); s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// analysisCacheKey hashes the JSON form of params under kind.
func analysisCacheKey(kind string, params any) string {
	b, _ := json.Marshal(params)
	sum := sha256.Sum256(b)
	return AnalysisCachePrefix + kind + ":" + hex.EncodeToString(sum[:])
}

func requirementsCacheKey(f RequirementFilter) string {
	return analysisCacheKey("requirements", RequirementFilter{
		TitleCategory: normalizeSearchValue(f.TitleCategory),
		ExperienceBin: normalizeSearchValue(f.ExperienceBin),
		SizeGroup:     normalizeSearchValue(f.SizeGroup),
		Category:      normalizeSearchValue(f.Category),
		Limit:         f.Limit,
	})
}

func recommendationsCacheKey(p RecommendationParams) string {
	p.Experience = normalizeSearchValue(p.Experience)
	p.Degree = normalizeSearchValue(p.Degree)
	p.SizeGroup = normalizeSearchValue(p.SizeGroup)
	p.Skills = normalizedList(p.Skills)
	return analysisCacheKey("recommendations", p)
}

func regionalMapCacheKey(titleCategories []string) string {
	return analysisCacheKey("map", normalizedList(titleCategories))
}
