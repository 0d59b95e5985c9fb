package postgres

import (
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/homerun"
)

type homeRunTableModel struct {
	PlayerID int64     `db:"player_id"`
	GameID   int64     `db:"game_id"`
	Date     time.Time `db:"date"`
	HomeRuns int       `db:"home_runs"`
	Inning   int       `db:"inning"`
}

type homeRunInsertModel struct {
	PlayerID int64  `db:"player_id"`
	GameID   int64  `db:"game_id"`
	Date     string `db:"date"`
	HomeRuns int    `db:"home_runs"`
	Inning   int    `db:"inning"`
}

func (m homeRunTableModel) toDomain() homerun.Event {
	return homerun.Event{
		PlayerID: m.PlayerID,
		GameID:   m.GameID,
		Date:     dateFromDB(m.Date),
		HomeRuns: m.HomeRuns,
		Inning:   m.Inning,
	}
}
