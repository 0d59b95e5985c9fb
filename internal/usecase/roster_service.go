package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/feed"
	"github.com/riskibarqy/homerun-derby/internal/domain/player"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/storage"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
	"github.com/riskibarqy/homerun-derby/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const defaultSwapFeedTimeout = 5 * time.Second

type RosterServiceConfig struct {
	Location    *time.Location
	FeedTimeout time.Duration
}

type MoveInput struct {
	TeamID   int64
	PlayerID int64
	Position string
	Reason   string
	// EffectiveDate defaults to today in the league time zone.
	EffectiveDate time.Time
}

type MoveResult struct {
	Slot    roster.Slot
	Message string
}

type SwapInput struct {
	TeamID    int64
	Player1ID int64
	Player2ID int64
	Reason    string
}

type SwapResult struct {
	First         roster.Slot
	Second        roster.Slot
	EffectiveDate time.Time
	Immediate     bool
	LockedPlayers []string
	Message       string
}

// RosterEntry is an open or historical slot joined with its player.
type RosterEntry struct {
	Slot    roster.Slot
	Player  player.Player
	// Pending marks an open slot that starts after today, e.g. the result of
	// a deferred swap. Only CurrentRoster sets it.
	Pending bool
}

type RosterService struct {
	tx          storage.Transactor
	repos       storage.Repositories
	feed        feed.Provider
	location    *time.Location
	feedTimeout time.Duration
	metrics     *metrics.Manager
	logger      *logging.Logger
	now         func() time.Time
}

func NewRosterService(
	tx storage.Transactor,
	repos storage.Repositories,
	provider feed.Provider,
	cfg RosterServiceConfig,
	metricsManager *metrics.Manager,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.FeedTimeout <= 0 {
		cfg.FeedTimeout = defaultSwapFeedTimeout
	}

	return &RosterService{
		tx:          tx,
		repos:       repos,
		feed:        provider,
		location:    cfg.Location,
		feedTimeout: cfg.FeedTimeout,
		metrics:     metricsManager,
		logger:      logger,
		now:         time.Now,
	}
}

// CurrentRoster lists the team's open slots, bench last. Slots opened for a
// future date are included and flagged Pending; use RosterOn for the lineup
// that scores on a given day.
func (s *RosterService) CurrentRoster(ctx context.Context, teamID int64) ([]RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CurrentRoster", attribute.Int64("team.id", teamID))
	defer span.End()

	if err := s.requireTeam(ctx, teamID); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	slots, err := roster.NewLedger(s.repos.Slots).ListOpen(ctx, teamID)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list roster: %w", err)
	}
	entries, err := s.withPlayers(ctx, slots)
	if err != nil {
		return nil, err
	}
	today := s.today()
	for i := range entries {
		entries[i].Pending = entries[i].Slot.EffectiveDate.After(today)
	}
	return entries, nil
}

// RosterOn answers who held which slot on date.
func (s *RosterService) RosterOn(ctx context.Context, teamID int64, date time.Time) ([]RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RosterOn", attribute.Int64("team.id", teamID))
	defer span.End()

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := s.requireTeam(ctx, teamID); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	slots, err := roster.NewLedger(s.repos.Slots).ListActiveOn(ctx, teamID, date)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list roster on %s: %w", calendar.Format(date), err)
	}
	return s.withPlayers(ctx, slots)
}

// Move changes one player's slot from input.EffectiveDate on. It does not
// consult the game schedule.
func (s *RosterService) Move(ctx context.Context, input MoveInput) (MoveResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Move",
		attribute.Int64("team.id", input.TeamID),
		attribute.Int64("player.id", input.PlayerID),
	)
	defer span.End()

	if input.TeamID <= 0 || input.PlayerID <= 0 {
		return MoveResult{}, fmt.Errorf("%w: team id and player id are required", ErrInvalidInput)
	}
	target, err := roster.ParsePosition(input.Position)
	if err != nil {
		return MoveResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	effective := calendar.Normalize(input.EffectiveDate)
	if effective.IsZero() {
		effective = s.today()
	}

	var result MoveResult
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		if err := requireTeamIn(ctx, repos, input.TeamID); err != nil {
			return err
		}

		ledger := roster.NewLedger(repos.Slots)
		current, err := ledger.GetOpenSlot(ctx, input.TeamID, input.PlayerID)
		if err != nil {
			return err
		}
		occupant, occupied, err := ledger.Occupant(ctx, input.TeamID, target)
		if err != nil {
			return err
		}

		next, err := roster.PlanMove(current, target, input.Reason, occupant, occupied)
		if err != nil {
			return err
		}
		next.EffectiveDate = effective

		slot, err := ledger.CloseAndOpen(ctx, input.TeamID, input.PlayerID, next)
		if err != nil {
			return err
		}
		result = MoveResult{Slot: slot, Message: "Roster move completed"}
		return nil
	}, storage.WithSnapshot())
	s.metrics.ObserveRosterMutation("move", mutationOutcome(err))
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "roster move rejected",
			"team_id", input.TeamID,
			"player_id", input.PlayerID,
			"position", string(target),
			"error", err,
		)
		return MoveResult{}, err
	}

	s.logger.InfoContext(ctx, "roster move committed",
		"team_id", input.TeamID,
		"player_id", input.PlayerID,
		"position", string(result.Slot.Position),
		"effective_date", calendar.Format(result.Slot.EffectiveDate),
	)
	return result, nil
}

// Swap trades the positions of two players on one team. When either
// player's MLB club has a game today that has started or is about to, the
// swap takes effect tomorrow.
func (s *RosterService) Swap(ctx context.Context, input SwapInput) (SwapResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Swap",
		attribute.Int64("team.id", input.TeamID),
		attribute.Int64("player1.id", input.Player1ID),
		attribute.Int64("player2.id", input.Player2ID),
	)
	defer span.End()

	if input.TeamID <= 0 || input.Player1ID <= 0 || input.Player2ID <= 0 {
		return SwapResult{}, fmt.Errorf("%w: team id and both player ids are required", ErrInvalidInput)
	}
	if input.Player1ID == input.Player2ID {
		return SwapResult{}, fmt.Errorf("%w: cannot swap a player with themselves", ErrInvalidInput)
	}

	today := s.today()
	var result SwapResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		if err := requireTeamIn(ctx, repos, input.TeamID); err != nil {
			return err
		}

		ledger := roster.NewLedger(repos.Slots)
		first, err := ledger.GetOpenSlot(ctx, input.TeamID, input.Player1ID)
		if err != nil {
			return err
		}
		second, err := ledger.GetOpenSlot(ctx, input.TeamID, input.Player2ID)
		if err != nil {
			return err
		}

		firstNext, secondNext, err := roster.PlanSwap(first, second, input.Reason)
		if err != nil {
			return err
		}

		players, err := loadPlayers(ctx, repos.Players, input.Player1ID, input.Player2ID)
		if err != nil {
			return err
		}
		locked, err := s.lockedPlayers(ctx, today, players[input.Player1ID], players[input.Player2ID])
		if err != nil {
			return err
		}

		effective := today
		if len(locked) > 0 {
			effective = calendar.AddDays(today, 1)
		}
		firstNext.EffectiveDate = effective
		secondNext.EffectiveDate = effective

		firstSlot, err := ledger.CloseAndOpen(ctx, input.TeamID, input.Player1ID, firstNext)
		if err != nil {
			return err
		}
		secondSlot, err := ledger.CloseAndOpen(ctx, input.TeamID, input.Player2ID, secondNext)
		if err != nil {
			return err
		}

		result = SwapResult{
			First:         firstSlot,
			Second:        secondSlot,
			EffectiveDate: effective,
			Immediate:     len(locked) == 0,
			LockedPlayers: locked,
			Message:       swapMessage(effective, locked),
		}
		return nil
	}, storage.WithSnapshot())
	s.metrics.ObserveRosterMutation("swap", mutationOutcome(err))
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "roster swap rejected",
			"team_id", input.TeamID,
			"player1_id", input.Player1ID,
			"player2_id", input.Player2ID,
			"error", err,
		)
		return SwapResult{}, err
	}

	s.logger.InfoContext(ctx, "roster swap committed",
		"team_id", input.TeamID,
		"player1_id", input.Player1ID,
		"player2_id", input.Player2ID,
		"effective_date", calendar.Format(result.EffectiveDate),
		"locked_players", strings.Join(result.LockedPlayers, ", "),
	)
	return result, nil
}

// lockedPlayers returns the names of the given players whose MLB club plays
// a locking game on day. Any feed failure aborts the swap.
func (s *RosterService) lockedPlayers(ctx context.Context, day time.Time, players ...player.Player) ([]string, error) {
	if s.feed == nil {
		return nil, fmt.Errorf("%w: schedule feed is not configured", ErrDependencyUnavailable)
	}

	feedCtx, cancel := context.WithTimeout(ctx, s.feedTimeout)
	defer cancel()

	games, err := s.feed.Schedule(feedCtx, day, day)
	if err != nil {
		if stderrors.Is(err, ErrDependencyUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: check today's schedule: %w", ErrDependencyUnavailable, err)
	}

	lockedTeams := feed.LockedTeams(games)
	names := make([]string, 0, len(players))
	for _, p := range players {
		if p.CurrentMLBTeamID <= 0 {
			continue
		}
		if _, ok := lockedTeams[p.CurrentMLBTeamID]; ok {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

func (s *RosterService) today() time.Time {
	return calendar.Today(s.now(), s.location)
}

func (s *RosterService) requireTeam(ctx context.Context, teamID int64) error {
	if teamID <= 0 {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	return requireTeamIn(ctx, s.repos, teamID)
}

func (s *RosterService) withPlayers(ctx context.Context, slots []roster.Slot) ([]RosterEntry, error) {
	ids := make([]int64, 0, len(slots))
	for _, slot := range slots {
		ids = append(ids, slot.PlayerID)
	}
	players, err := s.repos.Players.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list roster players: %w", err)
	}
	byID := make(map[int64]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	out := make([]RosterEntry, 0, len(slots))
	for _, slot := range slots {
		out = append(out, RosterEntry{Slot: slot, Player: byID[slot.PlayerID]})
	}
	return out, nil
}

func requireTeamIn(ctx context.Context, repos storage.Repositories, teamID int64) error {
	_, exists, err := repos.Teams.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	return nil
}

func loadPlayers(ctx context.Context, repo player.Repository, ids ...int64) (map[int64]player.Player, error) {
	out := make(map[int64]player.Player, len(ids))
	for _, id := range ids {
		p, exists, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get player: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: player=%d", ErrNotFound, id)
		}
		out[id] = p
	}
	return out, nil
}

func swapMessage(effective time.Time, locked []string) string {
	if len(locked) == 0 {
		return "Players swapped successfully - effective immediately"
	}
	return fmt.Sprintf(
		"Players swapped successfully - change will be effective %s (%s already playing today)",
		calendar.Format(effective), strings.Join(locked, ", "),
	)
}

func mutationOutcome(err error) string {
	switch {
	case err == nil:
		return "committed"
	case stderrors.Is(err, ErrDependencyUnavailable):
		return "upstream_unavailable"
	case stderrors.Is(err, ErrTransient):
		return "transient"
	default:
		return "rejected"
	}
}
