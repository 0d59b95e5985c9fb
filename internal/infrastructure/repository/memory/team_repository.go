package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/homerun-derby/internal/domain/team"
)

type TeamRepository struct {
	exec executor
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	return r.filter(func(team.Team) bool { return true })
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID int64) ([]team.Team, error) {
	return r.filter(func(t team.Team) bool { return t.LeagueID == leagueID })
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	var (
		out   team.Team
		found bool
	)
	err := r.exec.read(func(st *state) error {
		out, found = st.teams[teamID]
		return nil
	})
	return out, found, err
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) (team.Team, error) {
	err := r.exec.write(func(st *state) error {
		if _, ok := st.leagues[t.LeagueID]; !ok {
			return fmt.Errorf("insert team: unknown league id=%d", t.LeagueID)
		}
		st.nextTeamID++
		t.ID = st.nextTeamID
		st.teams[t.ID] = t
		return nil
	})
	if err != nil {
		return team.Team{}, err
	}
	return t, nil
}

func (r *TeamRepository) filter(keep func(team.Team) bool) ([]team.Team, error) {
	out := make([]team.Team, 0)
	err := r.exec.read(func(st *state) error {
		for _, t := range st.teams {
			if keep(t) {
				out = append(out, t)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}
