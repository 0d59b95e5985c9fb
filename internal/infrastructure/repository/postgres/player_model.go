package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/player"
)

var playerColumns = []string{
	"id",
	"mlb_id",
	"name",
	"primary_position",
	"current_mlb_team_id",
	"updated_at",
}

type playerTableModel struct {
	ID               int64         `db:"id" insert:"-"`
	MLBID            int64         `db:"mlb_id"`
	Name             string        `db:"name"`
	PrimaryPosition  string        `db:"primary_position"`
	CurrentMLBTeamID sql.NullInt64 `db:"current_mlb_team_id"`
	UpdatedAt        time.Time     `db:"updated_at" insert:"-"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:               m.ID,
		MLBID:            m.MLBID,
		Name:             m.Name,
		PrimaryPosition:  m.PrimaryPosition,
		CurrentMLBTeamID: m.CurrentMLBTeamID.Int64,
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

func playerModelFromDomain(p player.Player) playerTableModel {
	return playerTableModel{
		MLBID:            p.MLBID,
		Name:             p.Name,
		PrimaryPosition:  p.PrimaryPosition,
		CurrentMLBTeamID: nullInt64(p.CurrentMLBTeamID),
	}
}
