package standings

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/team"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

// BuildRace emits one row per team per date in [from, to], zero-filling days
// without credits. Totals accumulate per team id, so two teams sharing a
// name never share a line.
func BuildRace(teams []team.Team, totals []DailyTotal, from, to time.Time) []RaceRow {
	days := calendar.Days(from, to)
	if len(days) == 0 || len(teams) == 0 {
		return []RaceRow{}
	}

	daily := make(map[int64]map[time.Time]int, len(teams))
	for _, total := range totals {
		byDate, ok := daily[total.TeamID]
		if !ok {
			byDate = make(map[time.Time]int)
			daily[total.TeamID] = byDate
		}
		byDate[calendar.Normalize(total.Date)] += total.HomeRuns
	}

	ordered := append([]team.Team(nil), teams...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := strings.ToLower(ordered[i].Name), strings.ToLower(ordered[j].Name)
		if a != b {
			return a < b
		}
		return ordered[i].ID < ordered[j].ID
	})

	running := make(map[int64]int, len(ordered))
	rows := make([]RaceRow, 0, len(days)*len(ordered))
	for _, d := range days {
		for _, t := range ordered {
			hrs := daily[t.ID][d]
			running[t.ID] += hrs
			rows = append(rows, RaceRow{
				TeamID:             t.ID,
				TeamName:           t.Name,
				Date:               d,
				DailyHomeRuns:      hrs,
				CumulativeHomeRuns: running[t.ID],
			})
		}
	}
	return rows
}

// RaceWindow clamps the race to [league start, min(today, league end)].
// ok is false before the league starts.
func RaceWindow(start, end, today time.Time) (time.Time, time.Time, bool) {
	to := calendar.Min(calendar.Normalize(today), calendar.Normalize(end))
	from := calendar.Normalize(start)
	if to.Before(from) {
		return from, to, false
	}
	return from, to, true
}

// SortRoster orders starters first, then by position home runs, then name.
func SortRoster(rows []RosterHomeRuns) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Slot.Position.IsBench() != b.Slot.Position.IsBench() {
			return !a.Slot.Position.IsBench()
		}
		if a.PositionHomeRuns != b.PositionHomeRuns {
			return a.PositionHomeRuns > b.PositionHomeRuns
		}
		return a.PlayerName < b.PlayerName
	})
}

// SortPlayerCounts orders by team name, then counted and total home runs descending.
func SortPlayerCounts(rows []PlayerHomeRunCount) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		if a.CountedHomeRuns != b.CountedHomeRuns {
			return a.CountedHomeRuns > b.CountedHomeRuns
		}
		if a.TotalHomeRuns != b.TotalHomeRuns {
			return a.TotalHomeRuns > b.TotalHomeRuns
		}
		return a.PlayerName < b.PlayerName
	})
}
