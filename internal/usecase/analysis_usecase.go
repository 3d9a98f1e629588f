package usecase

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"

	"jobad-insights/internal/dataset"
	"jobad-insights/internal/domain/jobad"
	"jobad-insights/internal/extract"
	"jobad-insights/internal/repository"
	"jobad-insights/internal/search"
)

var (
	ErrNoData    = errors.New("no preprocessed data available")
	ErrNoGeoData = errors.New("data contains no geographic information")
)

// Applicant experience and degree choices for recommendations.
const (
	ExperienceLittle = "little"
	ExperienceSome   = "some"
	ExperienceMuch   = "much"

	DegreeNone     = "none"
	DegreeBachelor = "bachelor"
	DegreeMaster   = "master"
	DegreePhD      = "phd"
)

const (
	defaultRequirementLimit = 20
	defaultRecommendLimit   = 50
	maxRecommendLimit       = 200
)

// rankedCategories are the requirement groups shown in the requirement
// analysis; degree and major flags are filters, not requirements.
var rankedCategories = map[string]bool{
	extract.CategoryLanguages:  true,
	extract.CategoryTools:      true,
	extract.CategoryDatabases:  true,
	extract.CategoryLibraries:  true,
	extract.CategoryKnowledge:  true,
	extract.CategorySoftSkills: true,
}

var sizeGroups = map[string]bool{extract.SizeSmall: true, extract.SizeMedium: true, extract.SizeBig: true}

type RequirementFilter struct {
	TitleCategory string `json:"title_category"`
	ExperienceBin string `json:"experience_bin"`
	SizeGroup     string `json:"size_group"`
	Category      string `json:"category"`
	Limit         int    `json:"limit"`
}

type RequirementShare struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
}

type RequirementAnalysis struct {
	Total int                `json:"total"`
	Items []RequirementShare `json:"items"`
}

type RecommendationParams struct {
	Experience string   `json:"experience"`
	Degree     string   `json:"degree"`
	SizeGroup  string   `json:"size_group"`
	Skills     []string `json:"skills"`
	MinMatches int      `json:"min_matches"`
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
}

type Recommendation struct {
	Link          string   `json:"link"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	TitleCategory string   `json:"title_category"`
	MainLocation  *string  `json:"main_location"`
	Matches       int      `json:"matches"`
	MatchedSkills []string `json:"matched_skills"`
}

type Recommendations struct {
	Total   int              `json:"total"`
	Skills  []string         `json:"skills"`
	Unknown []string         `json:"unknown"`
	Items   []Recommendation `json:"items"`
}

type MapPoint struct {
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Jobs      int     `json:"jobs"`
	Size      float64 `json:"size"`
}

type SalaryStat struct {
	TitleCategory string  `json:"title_category"`
	Count         int     `json:"count"`
	Mean          float64 `json:"mean"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
}

type AnalysisUsecase interface {
	RequirementShares(ctx context.Context, f RequirementFilter) (RequirementAnalysis, error)
	Recommend(ctx context.Context, p RecommendationParams) (Recommendations, error)
	RegionalMap(ctx context.Context, titleCategories []string) ([]MapPoint, error)
	SalarySummary(ctx context.Context) ([]SalaryStat, error)
}

type Analysis struct {
	repo       repository.JobAdRepository
	cache      AnalysisCache
	categories map[string]string
	resolver   *search.SkillResolver
	log        *log.Logger
}

func NewAnalysisUsecase(repo repository.JobAdRepository, extractor *extract.Extractor, cache AnalysisCache, logger *log.Logger) *Analysis {
	if logger == nil {
		logger = log.Default()
	}
	if extractor == nil {
		extractor = extract.DefaultExtractor()
	}
	return &Analysis{
		repo:       repo,
		cache:      cache,
		categories: extractor.Categories(),
		resolver:   search.NewSkillResolver(extractor.Names()),
		log:        logger,
	}
}

// cached answers from the cache when possible and stores fresh results.
// Cache failures only cost a recomputation.
func cached[T any](ctx context.Context, a *Analysis, key string, compute func() (T, error)) (T, error) {
	var out T
	if a.cache != nil {
		if ok, err := a.cache.GetJSON(ctx, key, &out); err == nil && ok {
			return out, nil
		}
	}
	out, err := compute()
	if err != nil {
		return out, err
	}
	if a.cache != nil {
		if err := a.cache.SetJSON(ctx, key, out, 0); err != nil {
			a.log.Printf("[Cache] set %s failed: %v", key, err)
		}
	}
	return out, nil
}

func (a *Analysis) loadWide(ctx context.Context) (dataset.WideTable, error) {
	t, err := a.repo.LoadWide(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNoData) {
			return dataset.WideTable{}, ErrNoData
		}
		a.log.Printf("usecase=analysis op=load_wide status=error err=%v", err)
		return dataset.WideTable{}, ErrInternal
	}
	return t, nil
}

func validTitle(t string) bool {
	if t == jobad.TitleOthers {
		return true
	}
	for _, c := range jobad.TitleCategories {
		if c == t {
			return true
		}
	}
	return false
}

func validBin(b string) bool {
	for _, c := range jobad.ExperienceBins {
		if c == b {
			return true
		}
	}
	return false
}

func (a *Analysis) RequirementShares(ctx context.Context, f RequirementFilter) (RequirementAnalysis, error) {
	if f.TitleCategory != "" && !validTitle(f.TitleCategory) ||
		f.ExperienceBin != "" && !validBin(f.ExperienceBin) ||
		f.SizeGroup != "" && !sizeGroups[f.SizeGroup] ||
		f.Category != "" && !rankedCategories[f.Category] ||
		f.Limit < 0 {
		return RequirementAnalysis{}, ErrInvalidInput
	}
	if f.Limit == 0 {
		f.Limit = defaultRequirementLimit
	}

	return cached(ctx, a, requirementsCacheKey(f), func() (RequirementAnalysis, error) {
		t, err := a.loadWide(ctx)
		if err != nil {
			return RequirementAnalysis{}, err
		}

		var ads []jobad.Ad
		for _, ad := range t.Ads {
			if f.TitleCategory != "" && ad.TitleCategory != f.TitleCategory {
				continue
			}
			if f.ExperienceBin != "" && ad.ExperienceBin != f.ExperienceBin {
				continue
			}
			if f.SizeGroup != "" && extract.SizeGroup(ad.CompanySize) != f.SizeGroup {
				continue
			}
			ads = append(ads, ad)
		}

		out := RequirementAnalysis{Total: len(ads), Items: []RequirementShare{}}
		if len(ads) == 0 {
			return out, nil
		}
		for _, name := range t.Requirements {
			cat := a.categories[name]
			if !rankedCategories[cat] || f.Category != "" && cat != f.Category {
				continue
			}
			n := 0
			for _, ad := range ads {
				if ad.Requirements[name] {
					n++
				}
			}
			out.Items = append(out.Items, RequirementShare{
				Name:       name,
				Category:   cat,
				Percentage: float64(n) * 100 / float64(len(ads)),
			})
		}
		sort.SliceStable(out.Items, func(i, j int) bool {
			return out.Items[i].Percentage > out.Items[j].Percentage
		})
		if len(out.Items) > f.Limit {
			out.Items = out.Items[:f.Limit]
		}
		return out, nil
	})
}

// experienceAllowed lists the bins an applicant qualifies for; ads asking
// for less experience are always included.
func experienceAllowed(experience string) (map[string]bool, bool) {
	switch experience {
	case ExperienceLittle:
		return map[string]bool{jobad.BinNone: true, jobad.BinLittle: true}, true
	case ExperienceSome:
		return map[string]bool{jobad.BinNone: true, jobad.BinLittle: true, jobad.BinSome: true}, true
	case ExperienceMuch:
		return nil, true
	}
	return nil, false
}

// degreeAllowed reports whether an ad fits the applicant's degree.
func degreeAllowed(degree string, ad jobad.Ad) bool {
	r := ad.Requirements
	switch degree {
	case DegreeNone:
		return r[extract.DegreeNoDegreeInfo]
	case DegreeBachelor:
		return r[extract.DegreeNoDegreeInfo] || r[extract.DegreeBachelor]
	case DegreeMaster:
		return r[extract.DegreeNoDegreeInfo] || r[extract.DegreeMaster]
	}
	return true
}

func validDegree(d string) bool {
	switch d {
	case DegreeNone, DegreeBachelor, DegreeMaster, DegreePhD:
		return true
	}
	return false
}

func (a *Analysis) Recommend(ctx context.Context, p RecommendationParams) (Recommendations, error) {
	allowed, ok := experienceAllowed(p.Experience)
	if !ok || !validDegree(p.Degree) || p.SizeGroup != "" && !sizeGroups[p.SizeGroup] || p.Offset < 0 || p.Limit < 0 {
		return Recommendations{}, ErrInvalidInput
	}
	if p.MinMatches < 1 {
		p.MinMatches = 1
	}
	if p.Limit == 0 {
		p.Limit = defaultRecommendLimit
	}
	if p.Limit > maxRecommendLimit {
		p.Limit = maxRecommendLimit
	}

	return cached(ctx, a, recommendationsCacheKey(p), func() (Recommendations, error) {
		skills, unknown := a.resolver.ResolveAll(p.Skills)
		out := Recommendations{Skills: skills, Unknown: unknown, Items: []Recommendation{}}
		if out.Skills == nil {
			out.Skills = []string{}
		}
		if out.Unknown == nil {
			out.Unknown = []string{}
		}

		t, err := a.loadWide(ctx)
		if err != nil {
			return Recommendations{}, err
		}

		var candidates []jobad.Ad
		for _, ad := range t.Ads {
			if allowed != nil && !allowed[ad.ExperienceBin] {
				continue
			}
			if !degreeAllowed(p.Degree, ad) {
				continue
			}
			if p.SizeGroup != "" && extract.SizeGroup(ad.CompanySize) != p.SizeGroup {
				continue
			}
			candidates = append(candidates, ad)
		}

		ranked := search.RankByScore(candidates, p.MinMatches, func(ad jobad.Ad) int {
			n := 0
			for _, s := range skills {
				if ad.Requirements[s] {
					n++
				}
			}
			return n
		})
		out.Total = len(ranked)

		if p.Offset >= len(ranked) {
			return out, nil
		}
		end := p.Offset + p.Limit
		if end > len(ranked) {
			end = len(ranked)
		}
		for _, r := range ranked[p.Offset:end] {
			matched := make([]string, 0, r.Score)
			for _, s := range skills {
				if r.Item.Requirements[s] {
					matched = append(matched, s)
				}
			}
			out.Items = append(out.Items, Recommendation{
				Link:          r.Item.Link,
				Title:         r.Item.Title,
				Company:       r.Item.Company,
				TitleCategory: r.Item.TitleCategory,
				MainLocation:  r.Item.MainLocation,
				Matches:       r.Score,
				MatchedSkills: matched,
			})
		}
		return out, nil
	})
}

func (a *Analysis) RegionalMap(ctx context.Context, titleCategories []string) ([]MapPoint, error) {
	selected := make(map[string]bool, len(titleCategories))
	for _, c := range titleCategories {
		if !validTitle(c) {
			return nil, ErrInvalidInput
		}
		selected[c] = true
	}
	if len(selected) == 0 {
		for _, c := range jobad.TitleCategories {
			selected[c] = true
		}
	}

	return cached(ctx, a, regionalMapCacheKey(titleCategories), func() ([]MapPoint, error) {
		rows, err := a.repo.LoadLong(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrNoData) {
				return nil, ErrNoData
			}
			a.log.Printf("usecase=analysis op=load_long status=error err=%v", err)
			return nil, ErrInternal
		}

		type key struct {
			location string
			lat, lon float64
		}
		counts := map[key]int{}
		geo := false
		for _, r := range rows {
			if r.Latitude == nil || r.Longitude == nil {
				continue
			}
			geo = true
			if !selected[r.TitleCategory] {
				continue
			}
			counts[key{r.Location, *r.Latitude, *r.Longitude}]++
		}
		if !geo {
			return nil, ErrNoGeoData
		}

		out := make([]MapPoint, 0, len(counts))
		for k, n := range counts {
			out = append(out, MapPoint{
				Location:  k.location,
				Latitude:  k.lat,
				Longitude: k.lon,
				Jobs:      n,
				Size:      math.Log(float64(n) + 1),
			})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Location != out[j].Location {
				return out[i].Location < out[j].Location
			}
			if out[i].Latitude != out[j].Latitude {
				return out[i].Latitude < out[j].Latitude
			}
			return out[i].Longitude < out[j].Longitude
		})
		return out, nil
	})
}

func (a *Analysis) SalarySummary(ctx context.Context) ([]SalaryStat, error) {
	return cached(ctx, a, analysisCacheKey("salary", nil), func() ([]SalaryStat, error) {
		t, err := a.loadWide(ctx)
		if err != nil {
			return nil, err
		}

		stats := map[string]*SalaryStat{}
		for _, ad := range t.Ads {
			if ad.AverageSalary == nil {
				continue
			}
			v := *ad.AverageSalary
			s, ok := stats[ad.TitleCategory]
			if !ok {
				s = &SalaryStat{TitleCategory: ad.TitleCategory, Min: v, Max: v}
				stats[ad.TitleCategory] = s
			}
			s.Count++
			s.Mean += v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
		}

		out := make([]SalaryStat, 0, len(stats))
		for _, c := range append(append([]string{}, jobad.TitleCategories...), jobad.TitleOthers) {
			if s, ok := stats[c]; ok {
				s.Mean /= float64(s.Count)
				out = append(out, *s)
			}
		}
		return out, nil
	})
}
