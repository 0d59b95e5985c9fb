package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/homerun-derby/internal/domain/league"
	"github.com/riskibarqy/homerun-derby/internal/domain/team"
)

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
}

func NewLeagueService(leagueRepo league.Repository, teamRepo team.Repository) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

// ResolveLeague returns the league with leagueID, or the current league
// when leagueID is zero.
func (s *LeagueService) ResolveLeague(ctx context.Context, leagueID int64) (league.League, error) {
	if leagueID < 0 {
		return league.League{}, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}

	var (
		item   league.League
		exists bool
		err    error
	)
	if leagueID == 0 {
		item, exists, err = s.leagueRepo.GetCurrent(ctx)
	} else {
		item, exists, err = s.leagueRepo.GetByID(ctx, leagueID)
	}
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		if leagueID == 0 {
			return league.League{}, fmt.Errorf("%w: no league has been set up", ErrNotFound)
		}
		return league.League{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	return item, nil
}

// ListTeams lists every team, or one league's teams, ordered by name.
func (s *LeagueService) ListTeams(ctx context.Context, leagueID int64) ([]team.Team, error) {
	var (
		teams []team.Team
		err   error
	)
	if leagueID > 0 {
		if _, err := s.ResolveLeague(ctx, leagueID); err != nil {
			return nil, err
		}
		teams, err = s.teamRepo.ListByLeague(ctx, leagueID)
	} else {
		teams, err = s.teamRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := append([]team.Team(nil), teams...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *LeagueService) GetTeam(ctx context.Context, teamID int64) (team.Team, error) {
	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	return item, nil
}
