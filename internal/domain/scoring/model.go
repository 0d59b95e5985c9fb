package scoring

import (
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
)

// Credit is one home run counted for a fantasy team.
type Credit struct {
	GameID   int64
	TeamID   int64
	PlayerID int64
	Position roster.Position
	Date     time.Time
}

// Summary reports what a reconciliation did.
type Summary struct {
	From           time.Time
	To             time.Time
	DeletedCredits int64
	Events         int
	Credits        int
}
