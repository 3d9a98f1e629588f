package seeder

import (
	"context"
	"fmt"

	"jobad-insights/internal/database"
	"jobad-insights/internal/extract"
)

// RequirementCatalogSeeder mirrors the requirement rules into
// requirement_catalog so SQL consumers can group flags by category.
type RequirementCatalogSeeder struct {
	Rules []extract.Rule
}

func (RequirementCatalogSeeder) Name() string { return "requirement_catalog" }

func (s RequirementCatalogSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "requirement_catalog", "name", "category", "kind", "expression", "position"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for i, r := range s.Rules {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO requirement_catalog (name, category, kind, expression, position)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (name) DO UPDATE
			 SET category = EXCLUDED.category, kind = EXCLUDED.kind,
			     expression = EXCLUDED.expression, position = EXCLUDED.position`,
				r.Name,
				r.Category,
				r.Kind.String(),
				r.Expr,
				i,
			); err != nil {
				return fmt.Errorf("upsert %s: %w", r.Name, err)
			}
		}

		if _, err := tx.Exec(ctx, `INSERT INTO requirement_catalog (name, category, kind, expression, position)
		VALUES ($1, $2, 'derived', '', $3)
		ON CONFLICT (name) DO UPDATE SET position = EXCLUDED.position`,
			extract.DegreeNoDegreeInfo, extract.CategoryDegree, len(s.Rules),
		); err != nil {
			return fmt.Errorf("upsert %s: %w", extract.DegreeNoDegreeInfo, err)
		}

		return nil
	})
}
