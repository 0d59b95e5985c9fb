package standings

import (
	"testing"

	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/team"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

func TestBuildRace_ZeroFillsAndAccumulatesPerTeam(t *testing.T) {
	teams := []team.Team{
		{ID: 2, Name: "Sam's Squad"},
		{ID: 1, Name: "Mike's Squad"},
		{ID: 3, Name: "Mike's Squad"},
	}
	totals := []DailyTotal{
		{TeamID: 1, Date: calendar.Date(2025, 4, 1), HomeRuns: 2},
		{TeamID: 3, Date: calendar.Date(2025, 4, 1), HomeRuns: 1},
		{TeamID: 2, Date: calendar.Date(2025, 4, 3), HomeRuns: 4},
		{TeamID: 1, Date: calendar.Date(2025, 4, 3), HomeRuns: 1},
	}

	rows := BuildRace(teams, totals, calendar.Date(2025, 4, 1), calendar.Date(2025, 4, 3))
	if len(rows) != 9 {
		t.Fatalf("expected 9 rows (3 teams x 3 days), got %d", len(rows))
	}

	// Same-name teams are ordered by id and tracked separately.
	if rows[0].TeamID != 1 || rows[1].TeamID != 3 || rows[2].TeamID != 2 {
		t.Fatalf("unexpected team order on day one: %d %d %d", rows[0].TeamID, rows[1].TeamID, rows[2].TeamID)
	}

	last := map[int64]int{}
	for _, row := range rows {
		if row.CumulativeHomeRuns < last[row.TeamID] {
			t.Fatalf("cumulative total decreased for team %d on %s", row.TeamID, calendar.Format(row.Date))
		}
		last[row.TeamID] = row.CumulativeHomeRuns
	}
	if last[1] != 3 || last[2] != 4 || last[3] != 1 {
		t.Fatalf("unexpected final totals: %+v", last)
	}

	dayTwo := rows[3:6]
	for _, row := range dayTwo {
		if row.DailyHomeRuns != 0 {
			t.Fatalf("expected zero-filled day, got %+v", row)
		}
	}
}

func TestBuildRace_Empty(t *testing.T) {
	if rows := BuildRace(nil, nil, calendar.Date(2025, 4, 1), calendar.Date(2025, 4, 2)); len(rows) != 0 {
		t.Fatalf("expected no rows without teams")
	}
	rows := BuildRace([]team.Team{{ID: 1, Name: "A"}}, nil, calendar.Date(2025, 4, 2), calendar.Date(2025, 4, 1))
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice for inverted window")
	}
}

func TestRaceWindow(t *testing.T) {
	start, end := calendar.Date(2025, 3, 27), calendar.Date(2025, 9, 28)

	if _, _, ok := RaceWindow(start, end, calendar.Date(2025, 3, 1)); ok {
		t.Fatalf("race should be empty before the season")
	}
	_, to, ok := RaceWindow(start, end, calendar.Date(2025, 10, 15))
	if !ok || !to.Equal(end) {
		t.Fatalf("race should cap at league end, got %s", calendar.Format(to))
	}
	_, to, _ = RaceWindow(start, end, calendar.Date(2025, 5, 1))
	if !to.Equal(calendar.Date(2025, 5, 1)) {
		t.Fatalf("race should stop at today, got %s", calendar.Format(to))
	}
}

func TestSortRoster(t *testing.T) {
	rows := []RosterHomeRuns{
		{Slot: roster.Slot{Position: roster.PositionBench}, PlayerName: "Bench Bat", PositionHomeRuns: 9},
		{Slot: roster.Slot{Position: roster.PositionCatcher}, PlayerName: "Cal Raleigh", PositionHomeRuns: 3},
		{Slot: roster.Slot{Position: roster.PositionRightField}, PlayerName: "Aaron Judge", PositionHomeRuns: 5},
	}
	SortRoster(rows)
	if rows[0].PlayerName != "Aaron Judge" || rows[2].PlayerName != "Bench Bat" {
		t.Fatalf("unexpected order: %s, %s, %s", rows[0].PlayerName, rows[1].PlayerName, rows[2].PlayerName)
	}
}
