package standings

import (
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
)

// DailyTotal is the credits a team earned on one date.
type DailyTotal struct {
	TeamID   int64
	Date     time.Time
	HomeRuns int
}

// RaceRow is one point of the cumulative race chart.
type RaceRow struct {
	TeamID             int64
	TeamName           string
	Date               time.Time
	DailyHomeRuns      int
	CumulativeHomeRuns int
}

// RosterHomeRuns is an open slot annotated with home-run counts.
// PositionHomeRuns counts every credit for the team at the slot's position,
// PlayerHomeRuns only the credits earned by this player for this team.
type RosterHomeRuns struct {
	Slot             roster.Slot
	PlayerName       string
	MLBID            int64
	PrimaryPosition  string
	PositionHomeRuns int
	PlayerHomeRuns   int
}

// PlayerHomeRunCount compares a rostered player's real home runs with the
// ones that counted for their fantasy team.
type PlayerHomeRunCount struct {
	PlayerID        int64
	PlayerName      string
	TeamID          int64
	TeamName        string
	Position        roster.Position
	Status          roster.Status
	TotalHomeRuns   int
	CountedHomeRuns int
}
