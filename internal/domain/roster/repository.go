package roster

import (
	"context"
	"time"
)

// Repository is the slot store behind the ledger. Implementations bound to a
// transaction lock the rows FindOpen returns until commit.
type Repository interface {
	FindOpen(ctx context.Context, teamID, playerID int64) (Slot, bool, error)
	FindOpenStarter(ctx context.Context, teamID int64, position Position) (Slot, bool, error)
	Close(ctx context.Context, slotID int64, endDate time.Time) error
	Insert(ctx context.Context, slot Slot) (Slot, error)
	ListOpenByTeam(ctx context.Context, teamID int64) ([]Slot, error)
	ListActiveOn(ctx context.Context, teamID int64, date time.Time) ([]Slot, error)
	// ListStartersOverlapping returns STARTER slots of the given players that
	// are active on at least one day of [from, to], across all teams.
	ListStartersOverlapping(ctx context.Context, playerIDs []int64, from, to time.Time) ([]Slot, error)
}
