package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/standings"
	qb "github.com/riskibarqy/homerun-derby/internal/platform/querybuilder"
)

// StandingsRepository answers the dashboard aggregates straight from scores.
type StandingsRepository struct {
	db sqlx.ExtContext
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

type dailyTotalRow struct {
	TeamID   int64     `db:"team_id"`
	Date     time.Time `db:"date"`
	HomeRuns int       `db:"home_runs"`
}

type rosterHomeRunsRow struct {
	rosterSlotTableModel
	PlayerName       string         `db:"player_name"`
	MLBID            int64          `db:"mlb_id"`
	PrimaryPosition  sql.NullString `db:"primary_position"`
	PositionHomeRuns int            `db:"position_home_runs"`
	PlayerHomeRuns   int            `db:"player_home_runs"`
}

type playerHomeRunCountRow struct {
	PlayerID        int64  `db:"player_id"`
	PlayerName      string `db:"player_name"`
	TeamID          int64  `db:"team_id"`
	TeamName        string `db:"team_name"`
	Position        string `db:"position"`
	Status          string `db:"status"`
	TotalHomeRuns   int    `db:"total_home_runs"`
	CountedHomeRuns int    `db:"counted_home_runs"`
}

func (r *StandingsRepository) DailyTotals(ctx context.Context, leagueID int64, from, to time.Time) ([]standings.DailyTotal, error) {
	query, args, err := qb.Select(
		"s.team_id",
		"s.date",
		"COUNT(1) AS home_runs",
	).From("scores s").
		Join("JOIN teams t ON t.id = s.team_id").
		Where(
			qb.Eq("t.league_id", leagueID),
			qb.Expr("s.date BETWEEN ?::date AND ?::date", dateArg(from), dateArg(to)),
		).
		GroupBy("s.team_id", "s.date").
		OrderBy("s.date", "s.team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build daily totals query: %w", err)
	}

	var rows []dailyTotalRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select daily totals league=%d: %w", leagueID, err)
	}

	out := make([]standings.DailyTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, standings.DailyTotal{
			TeamID:   row.TeamID,
			Date:     dateFromDB(row.Date),
			HomeRuns: row.HomeRuns,
		})
	}
	return out, nil
}

func (r *StandingsRepository) RosterHomeRuns(ctx context.Context, teamID int64) ([]standings.RosterHomeRuns, error) {
	query, args, err := qb.Select(
		"tr.id",
		"tr.team_id",
		"tr.player_id",
		"tr.position",
		"tr.drafted_position",
		"tr.status",
		"tr.reason",
		"tr.effective_date",
		"tr.end_date",
		"p.name AS player_name",
		"p.mlb_id",
		"p.primary_position",
		"(SELECT COUNT(1) FROM scores s WHERE s.team_id = tr.team_id AND s.position = tr.position) AS position_home_runs",
		"(SELECT COUNT(1) FROM scores s WHERE s.team_id = tr.team_id AND s.player_id = tr.player_id) AS player_home_runs",
	).From("team_rosters tr").
		Join("JOIN players p ON p.id = tr.player_id").
		Where(
			qb.Eq("tr.team_id", teamID),
			qb.IsNull("tr.end_date"),
		).
		OrderBy("tr.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build roster home runs query: %w", err)
	}

	var rows []rosterHomeRunsRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster home runs team=%d: %w", teamID, err)
	}

	out := make([]standings.RosterHomeRuns, 0, len(rows))
	for _, row := range rows {
		out = append(out, standings.RosterHomeRuns{
			Slot:             row.rosterSlotTableModel.toDomain(),
			PlayerName:       row.PlayerName,
			MLBID:            row.MLBID,
			PrimaryPosition:  row.PrimaryPosition.String,
			PositionHomeRuns: row.PositionHomeRuns,
			PlayerHomeRuns:   row.PlayerHomeRuns,
		})
	}
	return out, nil
}

func (r *StandingsRepository) PlayerHomeRunCounts(ctx context.Context, leagueID int64) ([]standings.PlayerHomeRunCount, error) {
	query, args, err := qb.Select(
		"tr.player_id",
		"p.name AS player_name",
		"t.id AS team_id",
		"t.name AS team_name",
		"tr.position",
		"tr.status",
		"(SELECT COALESCE(SUM(g.home_runs), 0) FROM player_game_stats g WHERE g.player_id = tr.player_id AND g.date BETWEEN l.start_date AND l.end_date) AS total_home_runs",
		"(SELECT COUNT(1) FROM scores s WHERE s.team_id = tr.team_id AND s.player_id = tr.player_id) AS counted_home_runs",
	).From("team_rosters tr").
		Join("JOIN teams t ON t.id = tr.team_id").
		Join("JOIN leagues l ON l.id = t.league_id").
		Join("JOIN players p ON p.id = tr.player_id").
		Where(
			qb.Eq("t.league_id", leagueID),
			qb.IsNull("tr.end_date"),
		).
		OrderBy("t.name", "tr.player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build player home run counts query: %w", err)
	}

	var rows []playerHomeRunCountRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player home run counts league=%d: %w", leagueID, err)
	}

	out := make([]standings.PlayerHomeRunCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, standings.PlayerHomeRunCount{
			PlayerID:        row.PlayerID,
			PlayerName:      row.PlayerName,
			TeamID:          row.TeamID,
			TeamName:        row.TeamName,
			Position:        roster.Position(row.Position),
			Status:          roster.Status(row.Status),
			TotalHomeRuns:   row.TotalHomeRuns,
			CountedHomeRuns: row.CountedHomeRuns,
		})
	}
	return out, nil
}
