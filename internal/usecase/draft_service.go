package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/league"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/storage"
	"github.com/riskibarqy/homerun-derby/internal/domain/team"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
)

type DraftPick struct {
	Manager  string
	Position string
	Player   string
}

type DraftImportInput struct {
	LeagueName string
	SeasonYear int
	StartDate  time.Time
	EndDate    time.Time
	Picks      []DraftPick
}

type DraftImportResult struct {
	League       league.League
	Teams        []team.Team
	Slots        int
	SkippedPicks []DraftPick
}

// DraftService sets up a league from draft results.
type DraftService struct {
	tx     storage.Transactor
	logger *logging.Logger
}

func NewDraftService(tx storage.Transactor, logger *logging.Logger) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DraftService{tx: tx, logger: logger}
}

// Import creates the league, its default roster template, one team per
// manager, and each pick's initial slot effective on the league start date.
// Picks naming an unknown player are skipped; everything else is one
// transaction.
func (s *DraftService) Import(ctx context.Context, input DraftImportInput) (DraftImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Import")
	defer span.End()

	newLeague := league.League{
		Name:       strings.TrimSpace(input.LeagueName),
		SeasonYear: input.SeasonYear,
		StartDate:  calendar.Normalize(input.StartDate),
		EndDate:    calendar.Normalize(input.EndDate),
	}
	if err := newLeague.Validate(); err != nil {
		return DraftImportResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(input.Picks) == 0 {
		return DraftImportResult{}, fmt.Errorf("%w: at least one pick is required", ErrInvalidInput)
	}

	positions := make([]roster.Position, len(input.Picks))
	for i, pick := range input.Picks {
		if strings.TrimSpace(pick.Manager) == "" || strings.TrimSpace(pick.Player) == "" {
			return DraftImportResult{}, fmt.Errorf("%w: pick %d needs a manager and a player", ErrInvalidInput, i+1)
		}
		pos, err := roster.ParsePosition(pick.Position)
		if err != nil {
			return DraftImportResult{}, fmt.Errorf("%w: pick %d: %w", ErrInvalidInput, i+1, err)
		}
		positions[i] = pos
	}

	var result DraftImportResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		created, err := repos.Leagues.Create(ctx, newLeague)
		if err != nil {
			return fmt.Errorf("create league: %w", err)
		}
		if err := repos.Leagues.ReplaceTemplate(ctx, created.ID, league.DefaultTemplate()); err != nil {
			return fmt.Errorf("create roster template: %w", err)
		}
		result = DraftImportResult{League: created}

		teams := make(map[string]team.Team)
		ledger := roster.NewLedger(repos.Slots)
		for i, pick := range input.Picks {
			manager := strings.TrimSpace(pick.Manager)
			t, ok := teams[manager]
			if !ok {
				t, err = repos.Teams.Create(ctx, team.Team{
					LeagueID:    created.ID,
					Name:        team.SquadName(manager),
					ManagerName: manager,
				})
				if err != nil {
					return fmt.Errorf("create team for %s: %w", manager, err)
				}
				teams[manager] = t
				result.Teams = append(result.Teams, t)
			}

			p, found, err := repos.Players.FindByName(ctx, pick.Player)
			if err != nil {
				return fmt.Errorf("find player %q: %w", pick.Player, err)
			}
			if !found {
				s.logger.WarnContext(ctx, "draft pick skipped, player not found", "manager", manager, "player", pick.Player)
				result.SkippedPicks = append(result.SkippedPicks, pick)
				continue
			}

			if _, err := ledger.OpenInitialSlot(ctx, t.ID, p.ID, positions[i], positions[i], created.StartDate); err != nil {
				return fmt.Errorf("open slot for %s (%s): %w", pick.Player, manager, err)
			}
			result.Slots++
		}
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return DraftImportResult{}, err
	}

	s.logger.InfoContext(ctx, "league imported",
		"league_id", result.League.ID,
		"teams", len(result.Teams),
		"slots", result.Slots,
		"skipped", len(result.SkippedPicks),
	)
	return result, nil
}
