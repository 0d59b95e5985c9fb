package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/homerun-derby/internal/domain/scoring"
	qb "github.com/riskibarqy/homerun-derby/internal/platform/querybuilder"
)

const scoreInsertBatch = 1000

type ScoringRepository struct {
	db sqlx.ExtContext
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) DeleteByDateRange(ctx context.Context, from, to time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom("scores").
		Where(qb.Expr("date BETWEEN ?::date AND ?::date", dateArg(from), dateArg(to))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete scores query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete scores %s..%s: %w", dateArg(from), dateArg(to), classifyError(err))
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete scores rows affected: %w", err)
	}
	return deleted, nil
}

func (r *ScoringRepository) InsertCredits(ctx context.Context, credits []scoring.Credit) error {
	if len(credits) == 0 {
		return nil
	}

	models := make([]scoreCreditInsertModel, 0, len(credits))
	for _, credit := range credits {
		models = append(models, scoreCreditInsertModel{
			GameID:   credit.GameID,
			TeamID:   credit.TeamID,
			PlayerID: credit.PlayerID,
			Position: string(credit.Position),
			Date:     dateArg(credit.Date),
		})
	}

	for start := 0; start < len(models); start += scoreInsertBatch {
		end := min(start+scoreInsertBatch, len(models))
		query, args, err := qb.InsertModels("scores", models[start:end], "")
		if err != nil {
			return fmt.Errorf("build insert scores query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert scores batch=%d: %w", start/scoreInsertBatch, classifyError(err))
		}
	}
	return nil
}

func (r *ScoringRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]scoring.Credit, error) {
	query, args, err := qb.Select("game_id", "team_id", "player_id", "position", "date").
		From("scores").
		Where(qb.Expr("date BETWEEN ?::date AND ?::date", dateArg(from), dateArg(to))).
		OrderBy("date", "game_id", "team_id", "player_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores query: %w", err)
	}

	var rows []scoreCreditTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	out := make([]scoring.Credit, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
