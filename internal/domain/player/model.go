package player

import (
	"fmt"
	"strings"
	"time"
)

// Player is an MLB player known to the derby. Players are refreshed from
// the feed but never deleted, so historical slots keep resolving.
type Player struct {
	ID               int64
	MLBID            int64
	Name             string
	PrimaryPosition  string
	CurrentMLBTeamID int64
	UpdatedAt        time.Time
}

func (p Player) Validate() error {
	if p.MLBID <= 0 {
		return fmt.Errorf("player mlb id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	return nil
}

// SameFeedData reports whether syncing other onto p would change nothing.
func (p Player) SameFeedData(other Player) bool {
	return p.Name == other.Name &&
		p.PrimaryPosition == other.PrimaryPosition &&
		p.CurrentMLBTeamID == other.CurrentMLBTeamID
}

var pitcherPositionCodes = map[string]struct{}{
	"P":   {},
	"SP":  {},
	"RP":  {},
	"TWP": {},
}

// IsPitcherPosition covers two-way players too; callers keep an allow list
// for the ones that also hit.
func IsPitcherPosition(code string) bool {
	_, ok := pitcherPositionCodes[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// NormalizeName is the lookup key for draft imports.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
