package memory

import (
	"context"
	"sort"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/standings"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

type StandingsRepository struct {
	exec executor
}

func (r *StandingsRepository) DailyTotals(_ context.Context, leagueID int64, from, to time.Time) ([]standings.DailyTotal, error) {
	from, to = calendar.Normalize(from), calendar.Normalize(to)

	type key struct {
		team int64
		date time.Time
	}
	counts := make(map[key]int)
	err := r.exec.read(func(st *state) error {
		for _, credit := range st.credits {
			t, ok := st.teams[credit.TeamID]
			if !ok || t.LeagueID != leagueID {
				continue
			}
			if credit.Date.Before(from) || credit.Date.After(to) {
				continue
			}
			counts[key{team: credit.TeamID, date: credit.Date}]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]standings.DailyTotal, 0, len(counts))
	for k, n := range counts {
		out = append(out, standings.DailyTotal{TeamID: k.team, Date: k.date, HomeRuns: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

func (r *StandingsRepository) RosterHomeRuns(_ context.Context, teamID int64) ([]standings.RosterHomeRuns, error) {
	out := make([]standings.RosterHomeRuns, 0)
	err := r.exec.read(func(st *state) error {
		byPosition := make(map[roster.Position]int)
		byPlayer := make(map[int64]int)
		for _, credit := range st.credits {
			if credit.TeamID != teamID {
				continue
			}
			byPosition[credit.Position]++
			byPlayer[credit.PlayerID]++
		}

		for _, slot := range st.slots {
			if slot.TeamID != teamID || !slot.IsOpen() {
				continue
			}
			p := st.players[slot.PlayerID]
			out = append(out, standings.RosterHomeRuns{
				Slot:             slot,
				PlayerName:       p.Name,
				MLBID:            p.MLBID,
				PrimaryPosition:  p.PrimaryPosition,
				PositionHomeRuns: byPosition[slot.Position],
				PlayerHomeRuns:   byPlayer[slot.PlayerID],
			})
		}
		return nil
	})
	return out, err
}

func (r *StandingsRepository) PlayerHomeRunCounts(_ context.Context, leagueID int64) ([]standings.PlayerHomeRunCount, error) {
	out := make([]standings.PlayerHomeRunCount, 0)
	err := r.exec.read(func(st *state) error {
		l, ok := st.leagues[leagueID]
		if !ok {
			return nil
		}

		totals := make(map[int64]int)
		for _, event := range st.homeRuns {
			if l.Contains(event.Date) {
				totals[event.PlayerID] += event.HomeRuns
			}
		}
		type teamPlayer struct{ team, player int64 }
		counted := make(map[teamPlayer]int)
		for _, credit := range st.credits {
			counted[teamPlayer{team: credit.TeamID, player: credit.PlayerID}]++
		}

		for _, slot := range st.slots {
			t, ok := st.teams[slot.TeamID]
			if !ok || t.LeagueID != leagueID || !slot.IsOpen() {
				continue
			}
			out = append(out, standings.PlayerHomeRunCount{
				PlayerID:        slot.PlayerID,
				PlayerName:      st.players[slot.PlayerID].Name,
				TeamID:          t.ID,
				TeamName:        t.Name,
				Position:        slot.Position,
				Status:          slot.Status,
				TotalHomeRuns:   totals[slot.PlayerID],
				CountedHomeRuns: counted[teamPlayer{team: t.ID, player: slot.PlayerID}],
			})
		}
		return nil
	})
	return out, err
}
