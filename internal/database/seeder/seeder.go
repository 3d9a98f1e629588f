package seeder

import (
	"context"

	"jobad-insights/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
