package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
	"github.com/riskibarqy/homerun-derby/internal/usecase"
)

const (
	pqUniqueViolation       pq.ErrorCode = "23505"
	pqExclusionViolation    pq.ErrorCode = "23P01"
	pqSerializationFailure  pq.ErrorCode = "40001"
	pqDeadlockDetected      pq.ErrorCode = "40P01"
	openPlayerSlotIndexName              = "team_rosters_open_player_uidx"
	openStarterConstraint                = "team_rosters_open_starter_excl"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// classifyError maps driver errors onto domain sentinels while keeping the
// *pq.Error reachable through errors.As.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqExclusionViolation:
		if pqErr.Constraint == openStarterConstraint || pqErr.Constraint == "" {
			return fmt.Errorf("%w: %w", roster.ErrPositionOccupied, err)
		}
	case pqUniqueViolation:
		if pqErr.Constraint == openPlayerSlotIndexName {
			return fmt.Errorf("%w: %w", roster.ErrSlotAlreadyOpen, err)
		}
		return fmt.Errorf("%w: %w", usecase.ErrTransient, err)
	case pqSerializationFailure, pqDeadlockDetected:
		return fmt.Errorf("%w: %w", usecase.ErrTransient, err)
	}
	return err
}

// dateArg binds a civil date as text so the server never shifts it by zone.
func dateArg(t time.Time) string {
	return calendar.Format(t)
}

func nullableDateArg(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return calendar.Format(*t)
}

func dateFromDB(t time.Time) time.Time {
	return calendar.Normalize(t)
}

func nullDateFromDB(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	d := calendar.Normalize(t.Time)
	return &d
}

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v > 0}
}

func nullString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}
