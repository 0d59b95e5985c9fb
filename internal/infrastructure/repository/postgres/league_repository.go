package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/homerun-derby/internal/domain/league"
	qb "github.com/riskibarqy/homerun-derby/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db sqlx.ExtContext
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select(leagueColumns...).From("leagues").
		OrderBy("season_year DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	query, args, err := qb.Select(leagueColumns...).From("leagues").
		Where(qb.Eq("id", leagueID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *LeagueRepository) GetCurrent(ctx context.Context) (league.League, bool, error) {
	query, args, err := qb.Select(leagueColumns...).From("leagues").
		OrderBy("season_year DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get current league query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) (league.League, error) {
	model := leagueInsertModel{
		Name:       l.Name,
		SeasonYear: l.SeasonYear,
		StartDate:  dateArg(l.StartDate),
		EndDate:    dateArg(l.EndDate),
	}
	query, args, err := qb.InsertModel("leagues", model, "RETURNING id")
	if err != nil {
		return league.League{}, fmt.Errorf("build insert league query: %w", err)
	}

	if err := sqlx.GetContext(ctx, r.db, &l.ID, query, args...); err != nil {
		return league.League{}, fmt.Errorf("insert league name=%q: %w", l.Name, classifyError(err))
	}
	return l, nil
}

func (r *LeagueRepository) ReplaceTemplate(ctx context.Context, leagueID int64, slots []league.TemplateSlot) error {
	deleteQuery, deleteArgs, err := qb.DeleteFrom("roster_templates").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete roster template query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete roster template league=%d: %w", leagueID, classifyError(err))
	}
	if len(slots) == 0 {
		return nil
	}

	models := make([]rosterTemplateTableModel, 0, len(slots))
	for _, slot := range slots {
		models = append(models, rosterTemplateTableModel{
			LeagueID: leagueID,
			Position: string(slot.Position),
			Count:    slot.Count,
		})
	}
	query, args, err := qb.InsertModels("roster_templates", models, "")
	if err != nil {
		return fmt.Errorf("build insert roster template query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert roster template league=%d: %w", leagueID, classifyError(err))
	}
	return nil
}

func (r *LeagueRepository) ListTemplate(ctx context.Context, leagueID int64) ([]league.TemplateSlot, error) {
	query, args, err := qb.Select("league_id", "position", "count").From("roster_templates").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster template query: %w", err)
	}

	var rows []rosterTemplateTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list roster template league=%d: %w", leagueID, err)
	}

	out := make([]league.TemplateSlot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) getOne(ctx context.Context, query string, args []any) (league.League, bool, error) {
	var row leagueTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}
	return row.toDomain(), true, nil
}
