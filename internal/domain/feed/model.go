// Package feed describes the upstream MLB data the derby reads.
package feed

import (
	"context"
	"time"
)

// Abstract game state codes as published by the stats feed.
const (
	StatusFinal      = "F"
	StatusGameOver   = "O"
	StatusInProgress = "I"
	StatusPreGame    = "P"
)

type Game struct {
	GamePK       int64
	OfficialDate time.Time
	StatusCode   string
	HomeTeamID   int64
	AwayTeamID   int64
}

// IsFinal is the only state whose boxscore is ingested.
func (g Game) IsFinal() bool {
	return g.StatusCode == StatusFinal
}

// LocksLineups reports whether the game has started or is about to.
func (g Game) LocksLineups() bool {
	switch g.StatusCode {
	case StatusFinal, StatusGameOver, StatusInProgress, StatusPreGame:
		return true
	default:
		return false
	}
}

// LockedTeams returns the MLB team ids with a locking game in games.
func LockedTeams(games []Game) map[int64]struct{} {
	out := make(map[int64]struct{})
	for _, g := range games {
		if !g.LocksLineups() {
			continue
		}
		if g.HomeTeamID > 0 {
			out[g.HomeTeamID] = struct{}{}
		}
		if g.AwayTeamID > 0 {
			out[g.AwayTeamID] = struct{}{}
		}
	}
	return out
}

type BattingLine struct {
	PlayerMLBID int64
	FullName    string
	HomeRuns    int
}

type Club struct {
	ID           int64
	Name         string
	Abbreviation string
}

type RosterEntry struct {
	PlayerMLBID  int64
	FullName     string
	PositionCode string
	TeamID       int64
}

// Provider is the read-only MLB stats feed.
type Provider interface {
	Schedule(ctx context.Context, from, to time.Time) ([]Game, error)
	Boxscore(ctx context.Context, gamePK int64) ([]BattingLine, error)
	TeamsBySeason(ctx context.Context, season int, leagueIDs []int) ([]Club, error)
	Roster(ctx context.Context, teamID int64, season int) ([]RosterEntry, error)
}
