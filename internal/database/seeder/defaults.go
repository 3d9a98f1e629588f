package seeder

import "jobad-insights/internal/extract"

func Defaults() []Seeder {
	return []Seeder{
		RequirementCatalogSeeder{Rules: extract.RequirementRules},
	}
}
