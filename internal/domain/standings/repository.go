package standings

import (
	"context"
	"time"
)

// Repository serves read-only aggregates over score credits.
type Repository interface {
	DailyTotals(ctx context.Context, leagueID int64, from, to time.Time) ([]DailyTotal, error)
	RosterHomeRuns(ctx context.Context, teamID int64) ([]RosterHomeRuns, error)
	PlayerHomeRunCounts(ctx context.Context, leagueID int64) ([]PlayerHomeRunCount, error)
}
