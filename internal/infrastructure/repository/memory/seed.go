package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/league"
	"github.com/riskibarqy/homerun-derby/internal/domain/player"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/storage"
	"github.com/riskibarqy/homerun-derby/internal/domain/team"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

// SeedPick is one drafted player in a demo league.
type SeedPick struct {
	Manager  string
	Position roster.Position
	Player   string
}

// Seed describes a demo league that can be loaded into any backend.
type Seed struct {
	League  league.League
	Players []player.Player
	Picks   []SeedPick
}

func DemoSeed() Seed {
	return Seed{
		League: league.League{
			Name:       "Home Run Derby 2025",
			SeasonYear: 2025,
			StartDate:  calendar.Date(2025, time.March, 27),
			EndDate:    calendar.Date(2025, time.September, 28),
		},
		Players: []player.Player{
			{MLBID: 592450, Name: "Aaron Judge", PrimaryPosition: "RF", CurrentMLBTeamID: 147},
			{MLBID: 660271, Name: "Shohei Ohtani", PrimaryPosition: "TWP", CurrentMLBTeamID: 119},
			{MLBID: 624413, Name: "Pete Alonso", PrimaryPosition: "1B", CurrentMLBTeamID: 121},
			{MLBID: 656941, Name: "Kyle Schwarber", PrimaryPosition: "DH", CurrentMLBTeamID: 143},
			{MLBID: 663728, Name: "Cal Raleigh", PrimaryPosition: "C", CurrentMLBTeamID: 136},
			{MLBID: 608070, Name: "Jose Ramirez", PrimaryPosition: "3B", CurrentMLBTeamID: 114},
			{MLBID: 677951, Name: "Bobby Witt Jr.", PrimaryPosition: "SS", CurrentMLBTeamID: 118},
			{MLBID: 670541, Name: "Yordan Alvarez", PrimaryPosition: "LF", CurrentMLBTeamID: 117},
			{MLBID: 677594, Name: "Julio Rodriguez", PrimaryPosition: "CF", CurrentMLBTeamID: 136},
			{MLBID: 621566, Name: "Matt Olson", PrimaryPosition: "1B", CurrentMLBTeamID: 144},
			{MLBID: 665742, Name: "Juan Soto", PrimaryPosition: "RF", CurrentMLBTeamID: 121},
			{MLBID: 669257, Name: "Will Smith", PrimaryPosition: "C", CurrentMLBTeamID: 119},
			{MLBID: 663586, Name: "Austin Riley", PrimaryPosition: "3B", CurrentMLBTeamID: 144},
			{MLBID: 683002, Name: "Gunnar Henderson", PrimaryPosition: "SS", CurrentMLBTeamID: 110},
			{MLBID: 545361, Name: "Mike Trout", PrimaryPosition: "CF", CurrentMLBTeamID: 108},
			{MLBID: 547180, Name: "Bryce Harper", PrimaryPosition: "1B", CurrentMLBTeamID: 143},
			{MLBID: 605141, Name: "Mookie Betts", PrimaryPosition: "SS", CurrentMLBTeamID: 119},
			{MLBID: 519317, Name: "Giancarlo Stanton", PrimaryPosition: "DH", CurrentMLBTeamID: 147},
			{MLBID: 664034, Name: "Ketel Marte", PrimaryPosition: "2B", CurrentMLBTeamID: 109},
			{MLBID: 666182, Name: "Bo Bichette", PrimaryPosition: "SS", CurrentMLBTeamID: 141},
		},
		Picks: []SeedPick{
			{Manager: "Dana", Position: roster.PositionCatcher, Player: "Cal Raleigh"},
			{Manager: "Dana", Position: roster.PositionFirstBase, Player: "Pete Alonso"},
			{Manager: "Dana", Position: roster.PositionSecondBase, Player: "Ketel Marte"},
			{Manager: "Dana", Position: roster.PositionThirdBase, Player: "Jose Ramirez"},
			{Manager: "Dana", Position: roster.PositionShortstop, Player: "Bobby Witt Jr."},
			{Manager: "Dana", Position: roster.PositionLeftField, Player: "Yordan Alvarez"},
			{Manager: "Dana", Position: roster.PositionCenterField, Player: "Julio Rodriguez"},
			{Manager: "Dana", Position: roster.PositionRightField, Player: "Aaron Judge"},
			{Manager: "Dana", Position: roster.PositionDesignated, Player: "Kyle Schwarber"},
			{Manager: "Dana", Position: roster.PositionBench, Player: "Giancarlo Stanton"},
			{Manager: "Sam", Position: roster.PositionCatcher, Player: "Will Smith"},
			{Manager: "Sam", Position: roster.PositionFirstBase, Player: "Matt Olson"},
			{Manager: "Sam", Position: roster.PositionSecondBase, Player: "Mookie Betts"},
			{Manager: "Sam", Position: roster.PositionThirdBase, Player: "Austin Riley"},
			{Manager: "Sam", Position: roster.PositionShortstop, Player: "Gunnar Henderson"},
			{Manager: "Sam", Position: roster.PositionLeftField, Player: "Bryce Harper"},
			{Manager: "Sam", Position: roster.PositionCenterField, Player: "Mike Trout"},
			{Manager: "Sam", Position: roster.PositionRightField, Player: "Juan Soto"},
			{Manager: "Sam", Position: roster.PositionDesignated, Player: "Shohei Ohtani"},
			{Manager: "Sam", Position: roster.PositionBench, Player: "Bo Bichette"},
		},
	}
}

// LoadSeed writes seed into tx in one transaction. Players are matched to
// picks by name, teams are created in first-seen manager order.
func LoadSeed(ctx context.Context, tx storage.Transactor, seed Seed) error {
	return tx.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		createdLeague, err := repos.Leagues.Create(ctx, seed.League)
		if err != nil {
			return fmt.Errorf("seed league: %w", err)
		}
		if err := repos.Leagues.ReplaceTemplate(ctx, createdLeague.ID, league.DefaultTemplate()); err != nil {
			return fmt.Errorf("seed roster template: %w", err)
		}

		playerIDs := make(map[string]int64, len(seed.Players))
		for _, p := range seed.Players {
			created, err := repos.Players.Create(ctx, p)
			if err != nil {
				return fmt.Errorf("seed player %s: %w", p.Name, err)
			}
			playerIDs[player.NormalizeName(p.Name)] = created.ID
		}

		teamIDs := make(map[string]int64)
		ledger := roster.NewLedger(repos.Slots)
		for _, pick := range seed.Picks {
			teamID, ok := teamIDs[pick.Manager]
			if !ok {
				created, err := repos.Teams.Create(ctx, team.Team{
					LeagueID:    createdLeague.ID,
					Name:        team.SquadName(pick.Manager),
					ManagerName: pick.Manager,
				})
				if err != nil {
					return fmt.Errorf("seed team %s: %w", pick.Manager, err)
				}
				teamID = created.ID
				teamIDs[pick.Manager] = teamID
			}

			playerID, ok := playerIDs[player.NormalizeName(pick.Player)]
			if !ok {
				return fmt.Errorf("seed pick %s: unknown player %q", pick.Manager, pick.Player)
			}
			if _, err := ledger.OpenInitialSlot(ctx, teamID, playerID, pick.Position, pick.Position, createdLeague.StartDate); err != nil {
				return fmt.Errorf("seed slot %s/%s: %w", pick.Manager, pick.Player, err)
			}
		}
		return nil
	})
}
