package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/homerun-derby/internal/domain/league"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

type LeagueRepository struct {
	exec executor
}

// List orders like GetCurrent: latest season first, newest id first.
func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	out := make([]league.League, 0)
	err := r.exec.read(func(st *state) error {
		for _, l := range st.leagues {
			out = append(out, l)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeasonYear != out[j].SeasonYear {
			return out[i].SeasonYear > out[j].SeasonYear
		}
		return out[i].ID > out[j].ID
	})
	return out, err
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID int64) (league.League, bool, error) {
	var (
		out   league.League
		found bool
	)
	err := r.exec.read(func(st *state) error {
		out, found = st.leagues[leagueID]
		return nil
	})
	return out, found, err
}

func (r *LeagueRepository) GetCurrent(ctx context.Context) (league.League, bool, error) {
	leagues, err := r.List(ctx)
	if err != nil || len(leagues) == 0 {
		return league.League{}, false, err
	}
	return leagues[0], true, nil
}

func (r *LeagueRepository) Create(_ context.Context, l league.League) (league.League, error) {
	l.StartDate = calendar.Normalize(l.StartDate)
	l.EndDate = calendar.Normalize(l.EndDate)
	err := r.exec.write(func(st *state) error {
		st.nextLeagueID++
		l.ID = st.nextLeagueID
		st.leagues[l.ID] = l
		return nil
	})
	if err != nil {
		return league.League{}, err
	}
	return l, nil
}

func (r *LeagueRepository) ReplaceTemplate(_ context.Context, leagueID int64, slots []league.TemplateSlot) error {
	return r.exec.write(func(st *state) error {
		st.templates[leagueID] = append([]league.TemplateSlot(nil), slots...)
		return nil
	})
}

func (r *LeagueRepository) ListTemplate(_ context.Context, leagueID int64) ([]league.TemplateSlot, error) {
	var out []league.TemplateSlot
	err := r.exec.read(func(st *state) error {
		out = append(make([]league.TemplateSlot, 0, len(st.templates[leagueID])), st.templates[leagueID]...)
		return nil
	})
	return out, err
}
