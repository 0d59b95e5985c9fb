package postgres

import (
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/scoring"
)

type scoreCreditTableModel struct {
	GameID   int64     `db:"game_id"`
	TeamID   int64     `db:"team_id"`
	PlayerID int64     `db:"player_id"`
	Position string    `db:"position"`
	Date     time.Time `db:"date"`
}

type scoreCreditInsertModel struct {
	GameID   int64  `db:"game_id"`
	TeamID   int64  `db:"team_id"`
	PlayerID int64  `db:"player_id"`
	Position string `db:"position"`
	Date     string `db:"date"`
}

func (m scoreCreditTableModel) toDomain() scoring.Credit {
	return scoring.Credit{
		GameID:   m.GameID,
		TeamID:   m.TeamID,
		PlayerID: m.PlayerID,
		Position: roster.Position(m.Position),
		Date:     dateFromDB(m.Date),
	}
}
