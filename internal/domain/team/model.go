package team

import (
	"fmt"
	"strings"
)

// Team is a fantasy team run by one manager inside a league.
type Team struct {
	ID          int64
	LeagueID    int64
	Name        string
	ManagerName string
}

func (t Team) Validate() error {
	if t.LeagueID <= 0 {
		return fmt.Errorf("team league id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(t.ManagerName) == "" {
		return fmt.Errorf("team manager name is required")
	}
	return nil
}

func SquadName(manager string) string {
	return strings.TrimSpace(manager) + "'s Squad"
}
