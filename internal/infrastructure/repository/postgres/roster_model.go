package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
)

var rosterColumns = []string{
	"id",
	"team_id",
	"player_id",
	"position",
	"drafted_position",
	"status",
	"reason",
	"effective_date",
	"end_date",
}

type rosterSlotTableModel struct {
	ID              int64          `db:"id"`
	TeamID          int64          `db:"team_id"`
	PlayerID        int64          `db:"player_id"`
	Position        string         `db:"position"`
	DraftedPosition string         `db:"drafted_position"`
	Status          string         `db:"status"`
	Reason          sql.NullString `db:"reason"`
	EffectiveDate   time.Time      `db:"effective_date"`
	EndDate         sql.NullTime   `db:"end_date"`
}

type rosterSlotInsertModel struct {
	TeamID          int64          `db:"team_id"`
	PlayerID        int64          `db:"player_id"`
	Position        string         `db:"position"`
	DraftedPosition string         `db:"drafted_position"`
	Status          string         `db:"status"`
	Reason          sql.NullString `db:"reason"`
	EffectiveDate   string         `db:"effective_date"`
	EndDate         any            `db:"end_date"`
}

func (m rosterSlotTableModel) toDomain() roster.Slot {
	return roster.Slot{
		ID:              m.ID,
		TeamID:          m.TeamID,
		PlayerID:        m.PlayerID,
		Position:        roster.Position(m.Position),
		DraftedPosition: roster.Position(m.DraftedPosition),
		Status:          roster.Status(m.Status),
		Reason:          m.Reason.String,
		EffectiveDate:   dateFromDB(m.EffectiveDate),
		EndDate:         nullDateFromDB(m.EndDate),
	}
}

func rosterInsertModelFromDomain(s roster.Slot) rosterSlotInsertModel {
	return rosterSlotInsertModel{
		TeamID:          s.TeamID,
		PlayerID:        s.PlayerID,
		Position:        string(s.Position),
		DraftedPosition: string(s.DraftedPosition),
		Status:          string(s.Status),
		Reason:          nullString(s.Reason),
		EffectiveDate:   dateArg(s.EffectiveDate),
		EndDate:         nullableDateArg(s.EndDate),
	}
}

func slotsFromRows(rows []rosterSlotTableModel) []roster.Slot {
	out := make([]roster.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
