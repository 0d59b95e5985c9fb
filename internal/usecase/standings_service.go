package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/league"
	"github.com/riskibarqy/homerun-derby/internal/domain/standings"
	"github.com/riskibarqy/homerun-derby/internal/domain/team"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type RaceResult struct {
	League league.League
	From   time.Time
	To     time.Time
	Rows   []standings.RaceRow
}

// StandingsService serves the read-only dashboard aggregates.
type StandingsService struct {
	leagues   *LeagueService
	teamRepo  team.Repository
	standings standings.Repository
	location  *time.Location
	logger    *logging.Logger
	now       func() time.Time
}

func NewStandingsService(
	leagues *LeagueService,
	teamRepo team.Repository,
	standingsRepo standings.Repository,
	location *time.Location,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	if location == nil {
		location = time.UTC
	}
	return &StandingsService{
		leagues:   leagues,
		teamRepo:  teamRepo,
		standings: standingsRepo,
		location:  location,
		logger:    logger,
		now:       time.Now,
	}
}

// Race returns one row per team per day from the league start through
// today, capped at the league end. It is empty before the season starts.
func (s *StandingsService) Race(ctx context.Context, leagueID int64) (RaceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Race", attribute.Int64("league.id", leagueID))
	defer span.End()

	current, err := s.leagues.ResolveLeague(ctx, leagueID)
	if err != nil {
		recordSpanError(span, err)
		return RaceResult{}, err
	}

	from, to, ok := standings.RaceWindow(current.StartDate, current.EndDate, calendar.Today(s.now(), s.location))
	result := RaceResult{League: current, From: from, To: to, Rows: []standings.RaceRow{}}
	if !ok {
		return result, nil
	}

	teams, err := s.teamRepo.ListByLeague(ctx, current.ID)
	if err != nil {
		recordSpanError(span, err)
		return RaceResult{}, fmt.Errorf("list league teams: %w", err)
	}
	totals, err := s.standings.DailyTotals(ctx, current.ID, from, to)
	if err != nil {
		recordSpanError(span, err)
		return RaceResult{}, fmt.Errorf("load daily totals: %w", err)
	}

	result.Rows = standings.BuildRace(teams, totals, from, to)
	return result, nil
}

func (s *StandingsService) RosterWithHomeRuns(ctx context.Context, teamID int64) ([]standings.RosterHomeRuns, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.RosterWithHomeRuns", attribute.Int64("team.id", teamID))
	defer span.End()

	if _, err := s.leagues.GetTeam(ctx, teamID); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	rows, err := s.standings.RosterHomeRuns(ctx, teamID)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("load roster home runs: %w", err)
	}
	standings.SortRoster(rows)
	return rows, nil
}

// PlayerHomeRunCounts compares each rostered player's home runs with the
// ones credited to their team.
func (s *StandingsService) PlayerHomeRunCounts(ctx context.Context, leagueID int64) ([]standings.PlayerHomeRunCount, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.PlayerHomeRunCounts", attribute.Int64("league.id", leagueID))
	defer span.End()

	current, err := s.leagues.ResolveLeague(ctx, leagueID)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	rows, err := s.standings.PlayerHomeRunCounts(ctx, current.ID)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("load player home run counts: %w", err)
	}
	standings.SortPlayerCounts(rows)
	return rows, nil
}
