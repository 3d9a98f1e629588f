package usecase

import (
	"context"
	"time"
)

// AnalysisCache stores computed dashboard answers as JSON.
type AnalysisCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}
