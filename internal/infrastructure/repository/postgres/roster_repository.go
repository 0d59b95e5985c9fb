package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	qb "github.com/riskibarqy/homerun-derby/internal/platform/querybuilder"
)

// RosterRepository stores team_rosters slots. When bound to a transaction
// the open-slot lookups take row locks.
type RosterRepository struct {
	db       sqlx.ExtContext
	lockRows bool
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func newTxRosterRepository(tx *sqlx.Tx) *RosterRepository {
	return &RosterRepository{db: tx, lockRows: true}
}

func (r *RosterRepository) FindOpen(ctx context.Context, teamID, playerID int64) (roster.Slot, bool, error) {
	query, args, err := qb.Select(rosterColumns...).From("team_rosters").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("player_id", playerID),
			qb.IsNull("end_date"),
		).
		Limit(1).
		ForUpdate(r.lockRows).
		ToSQL()
	if err != nil {
		return roster.Slot{}, false, fmt.Errorf("build find open slot query: %w", err)
	}

	var row rosterSlotTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Slot{}, false, nil
		}
		return roster.Slot{}, false, fmt.Errorf("find open slot team=%d player=%d: %w", teamID, playerID, err)
	}
	return row.toDomain(), true, nil
}

func (r *RosterRepository) FindOpenStarter(ctx context.Context, teamID int64, position roster.Position) (roster.Slot, bool, error) {
	query, args, err := qb.Select(rosterColumns...).From("team_rosters").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("position", string(position)),
			qb.Eq("status", string(roster.StatusStarter)),
			qb.IsNull("end_date"),
		).
		Limit(1).
		ForUpdate(r.lockRows).
		ToSQL()
	if err != nil {
		return roster.Slot{}, false, fmt.Errorf("build find open starter query: %w", err)
	}

	var row rosterSlotTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Slot{}, false, nil
		}
		return roster.Slot{}, false, fmt.Errorf("find open starter team=%d position=%s: %w", teamID, position, err)
	}
	return row.toDomain(), true, nil
}

func (r *RosterRepository) Close(ctx context.Context, slotID int64, endDate time.Time) error {
	query, args, err := qb.Update("team_rosters").
		Set("end_date", dateArg(endDate)).
		Where(
			qb.Eq("id", slotID),
			qb.IsNull("end_date"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build close slot query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("close slot id=%d: %w", slotID, classifyError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("close slot id=%d rows affected: %w", slotID, err)
	}
	if affected != 1 {
		return fmt.Errorf("%w: open slot id=%d", roster.ErrSlotNotFound, slotID)
	}
	return nil
}

func (r *RosterRepository) Insert(ctx context.Context, slot roster.Slot) (roster.Slot, error) {
	query, args, err := qb.InsertModel("team_rosters", rosterInsertModelFromDomain(slot), "RETURNING id")
	if err != nil {
		return roster.Slot{}, fmt.Errorf("build insert slot query: %w", err)
	}

	var id int64
	if err := sqlx.GetContext(ctx, r.db, &id, query, args...); err != nil {
		return roster.Slot{}, fmt.Errorf("insert slot team=%d player=%d: %w", slot.TeamID, slot.PlayerID, classifyError(err))
	}
	slot.ID = id
	return slot, nil
}

func (r *RosterRepository) ListOpenByTeam(ctx context.Context, teamID int64) ([]roster.Slot, error) {
	query, args, err := qb.Select(rosterColumns...).From("team_rosters").
		Where(
			qb.Eq("team_id", teamID),
			qb.IsNull("end_date"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list open slots query: %w", err)
	}

	var rows []rosterSlotTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list open slots team=%d: %w", teamID, err)
	}
	return slotsFromRows(rows), nil
}

func (r *RosterRepository) ListActiveOn(ctx context.Context, teamID int64, date time.Time) ([]roster.Slot, error) {
	day := dateArg(date)
	query, args, err := qb.Select(rosterColumns...).From("team_rosters").
		Where(
			qb.Eq("team_id", teamID),
			qb.Expr("effective_date <= ?::date", day),
			qb.Expr("(end_date IS NULL OR end_date > ?::date)", day),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active slots query: %w", err)
	}

	var rows []rosterSlotTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active slots team=%d date=%s: %w", teamID, day, err)
	}
	return slotsFromRows(rows), nil
}

func (r *RosterRepository) ListStartersOverlapping(ctx context.Context, playerIDs []int64, from, to time.Time) ([]roster.Slot, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}
	query, args, err := qb.Select(rosterColumns...).From("team_rosters").
		Where(
			qb.InInt64("player_id", playerIDs),
			qb.Eq("status", string(roster.StatusStarter)),
			qb.Expr("effective_date <= ?::date", dateArg(to)),
			qb.Expr("(end_date IS NULL OR end_date > ?::date)", dateArg(from)),
		).
		OrderBy("player_id", "effective_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list overlapping starters query: %w", err)
	}

	var rows []rosterSlotTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list overlapping starters: %w", err)
	}
	return slotsFromRows(rows), nil
}
