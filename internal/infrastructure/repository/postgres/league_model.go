package postgres

import (
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/league"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
)

var leagueColumns = []string{"id", "name", "season_year", "start_date", "end_date"}

type leagueTableModel struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	SeasonYear int       `db:"season_year"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
}

type leagueInsertModel struct {
	Name       string `db:"name"`
	SeasonYear int    `db:"season_year"`
	StartDate  string `db:"start_date"`
	EndDate    string `db:"end_date"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:         m.ID,
		Name:       m.Name,
		SeasonYear: m.SeasonYear,
		StartDate:  dateFromDB(m.StartDate),
		EndDate:    dateFromDB(m.EndDate),
	}
}

type rosterTemplateTableModel struct {
	LeagueID int64  `db:"league_id"`
	Position string `db:"position"`
	Count    int    `db:"count"`
}

func (m rosterTemplateTableModel) toDomain() league.TemplateSlot {
	return league.TemplateSlot{
		Position: roster.Position(m.Position),
		Count:    m.Count,
	}
}
