package homerun

import (
	"context"
	"time"
)

type Repository interface {
	// UpsertEvents keys on (player, game) and replaces the stored count.
	UpsertEvents(ctx context.Context, events []Event) error
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Event, error)
}
