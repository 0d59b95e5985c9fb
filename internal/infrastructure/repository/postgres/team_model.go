package postgres

import "github.com/riskibarqy/homerun-derby/internal/domain/team"

var teamColumns = []string{"id", "league_id", "name", "manager_name"}

type teamTableModel struct {
	ID          int64  `db:"id" insert:"-"`
	LeagueID    int64  `db:"league_id"`
	Name        string `db:"name"`
	ManagerName string `db:"manager_name"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:          m.ID,
		LeagueID:    m.LeagueID,
		Name:        m.Name,
		ManagerName: m.ManagerName,
	}
}
