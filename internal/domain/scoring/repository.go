package scoring

import (
	"context"
	"time"
)

type Repository interface {
	DeleteByDateRange(ctx context.Context, from, to time.Time) (int64, error)
	InsertCredits(ctx context.Context, credits []Credit) error
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Credit, error)
}
