package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/homerun-derby/internal/domain/homerun"
	qb "github.com/riskibarqy/homerun-derby/internal/platform/querybuilder"
)

// homeRunUpsertBatch keeps a single statement well under the 65535
// bind-parameter limit.
const homeRunUpsertBatch = 500

type HomeRunRepository struct {
	db sqlx.ExtContext
}

func NewHomeRunRepository(db *sqlx.DB) *HomeRunRepository {
	return &HomeRunRepository{db: db}
}

func (r *HomeRunRepository) UpsertEvents(ctx context.Context, events []homerun.Event) error {
	if len(events) == 0 {
		return nil
	}

	// Postgres refuses to touch the same conflict row twice in one statement.
	byKey := make(map[[2]int64]int, len(events))
	models := make([]homeRunInsertModel, 0, len(events))
	for _, event := range events {
		key := [2]int64{event.PlayerID, event.GameID}
		model := homeRunInsertModel{
			PlayerID: event.PlayerID,
			GameID:   event.GameID,
			Date:     dateArg(event.Date),
			HomeRuns: event.HomeRuns,
			Inning:   event.Inning,
		}
		if idx, ok := byKey[key]; ok {
			models[idx] = model
			continue
		}
		byKey[key] = len(models)
		models = append(models, model)
	}

	for start := 0; start < len(models); start += homeRunUpsertBatch {
		end := min(start+homeRunUpsertBatch, len(models))
		query, args, err := qb.InsertModels("player_game_stats", models[start:end], `ON CONFLICT (player_id, game_id)
DO UPDATE SET
    date = EXCLUDED.date,
    home_runs = EXCLUDED.home_runs,
    inning = EXCLUDED.inning,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert home runs query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert home runs batch=%d: %w", start/homeRunUpsertBatch, classifyError(err))
		}
	}
	return nil
}

func (r *HomeRunRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]homerun.Event, error) {
	query, args, err := qb.Select("player_id", "game_id", "date", "home_runs", "inning").
		From("player_game_stats").
		Where(
			qb.Expr("date BETWEEN ?::date AND ?::date", dateArg(from), dateArg(to)),
			qb.Gt("home_runs", 0),
		).
		OrderBy("date", "game_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list home runs query: %w", err)
	}

	var rows []homeRunTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list home runs %s..%s: %w", dateArg(from), dateArg(to), err)
	}

	out := make([]homerun.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
