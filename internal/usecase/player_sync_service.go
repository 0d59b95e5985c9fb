package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/homerun-derby/internal/domain/feed"
	"github.com/riskibarqy/homerun-derby/internal/domain/player"
	"github.com/riskibarqy/homerun-derby/internal/domain/storage"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultPlayerSyncWorkers = 6

// MLB league ids for the American and National leagues.
var defaultSyncLeagueIDs = []int{103, 104}

// Two-way players whose pitcher position code must not drop them.
var defaultPitcherExceptionIDs = []int64{660271}

type PlayerSyncConfig struct {
	Season              int
	LeagueIDs           []int
	PitcherExceptionIDs []int64
	MaxWorkers          int
}

type PlayerSyncSummary struct {
	Season          int `json:"season"`
	Clubs           int `json:"clubs"`
	RosterEntries   int `json:"roster_entries"`
	SkippedPitchers int `json:"skipped_pitchers"`
	Created         int `json:"created"`
	Updated         int `json:"updated"`
	Unchanged       int `json:"unchanged"`
}

// PlayerSyncService refreshes players from 40-man rosters. Players are
// created or updated, never deleted.
type PlayerSyncService struct {
	tx         storage.Transactor
	feed       feed.Provider
	season     int
	leagueIDs  []int
	exceptions map[int64]struct{}
	workers    int
	logger     *logging.Logger
}

func NewPlayerSyncService(tx storage.Transactor, provider feed.Provider, cfg PlayerSyncConfig, logger *logging.Logger) *PlayerSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if len(cfg.LeagueIDs) == 0 {
		cfg.LeagueIDs = defaultSyncLeagueIDs
	}
	if cfg.PitcherExceptionIDs == nil {
		cfg.PitcherExceptionIDs = defaultPitcherExceptionIDs
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultPlayerSyncWorkers
	}

	exceptions := make(map[int64]struct{}, len(cfg.PitcherExceptionIDs))
	for _, id := range cfg.PitcherExceptionIDs {
		exceptions[id] = struct{}{}
	}

	return &PlayerSyncService{
		tx:         tx,
		feed:       provider,
		season:     cfg.Season,
		leagueIDs:  append([]int(nil), cfg.LeagueIDs...),
		exceptions: exceptions,
		workers:    cfg.MaxWorkers,
		logger:     logger,
	}
}

// Sync pulls every club's roster for season (the configured season when
// season is zero) and writes the result in one transaction.
func (s *PlayerSyncService) Sync(ctx context.Context, season int) (PlayerSyncSummary, error) {
	if season <= 0 {
		season = s.season
	}
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerSyncService.Sync", attribute.Int("season", season))
	defer span.End()

	if season <= 0 {
		return PlayerSyncSummary{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if s.feed == nil {
		return PlayerSyncSummary{}, fmt.Errorf("%w: stats feed is not configured", ErrDependencyUnavailable)
	}

	summary := PlayerSyncSummary{Season: season}
	clubs, err := s.feed.TeamsBySeason(ctx, season, s.leagueIDs)
	if err != nil {
		recordSpanError(span, err)
		return PlayerSyncSummary{}, fmt.Errorf("fetch clubs: %w", err)
	}
	summary.Clubs = len(clubs)

	entries, err := s.fetchRosters(ctx, clubs, season)
	if err != nil {
		recordSpanError(span, err)
		return PlayerSyncSummary{}, err
	}
	summary.RosterEntries = len(entries)

	incoming := make([]player.Player, 0, len(entries))
	seen := make(map[int64]struct{}, len(entries))
	for _, entry := range entries {
		if player.IsPitcherPosition(entry.PositionCode) {
			if _, ok := s.exceptions[entry.PlayerMLBID]; !ok {
				summary.SkippedPitchers++
				continue
			}
		}
		if _, dup := seen[entry.PlayerMLBID]; dup {
			continue
		}
		seen[entry.PlayerMLBID] = struct{}{}
		incoming = append(incoming, player.Player{
			MLBID:            entry.PlayerMLBID,
			Name:             strings.TrimSpace(entry.FullName),
			PrimaryPosition:  entry.PositionCode,
			CurrentMLBTeamID: entry.TeamID,
		})
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		existing, err := repos.Players.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		byMLBID := make(map[int64]player.Player, len(existing))
		for _, p := range existing {
			byMLBID[p.MLBID] = p
		}

		for _, p := range incoming {
			if err := p.Validate(); err != nil {
				s.logger.WarnContext(ctx, "skip invalid roster entry", "mlb_id", p.MLBID, "error", err)
				continue
			}
			current, ok := byMLBID[p.MLBID]
			if !ok {
				if _, err := repos.Players.Create(ctx, p); err != nil {
					return fmt.Errorf("create player mlb_id=%d: %w", p.MLBID, err)
				}
				summary.Created++
				continue
			}
			if current.SameFeedData(p) {
				summary.Unchanged++
				continue
			}
			p.ID = current.ID
			if err := repos.Players.Update(ctx, p); err != nil {
				return fmt.Errorf("update player mlb_id=%d: %w", p.MLBID, err)
			}
			summary.Updated++
		}
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return PlayerSyncSummary{}, fmt.Errorf("write players: %w", err)
	}

	s.logger.InfoContext(ctx, "players synced",
		"season", season,
		"clubs", summary.Clubs,
		"roster_entries", summary.RosterEntries,
		"skipped_pitchers", summary.SkippedPitchers,
		"created", summary.Created,
		"updated", summary.Updated,
		"unchanged", summary.Unchanged,
	)
	return summary, nil
}

// fetchRosters fans out one roster call per club. Entries come back ordered
// by club id so duplicate players resolve the same way every run.
func (s *PlayerSyncService) fetchRosters(ctx context.Context, clubs []feed.Club, season int) ([]feed.RosterEntry, error) {
	if len(clubs) == 0 {
		return nil, nil
	}

	workerCount := s.workers
	if workerCount > len(clubs) {
		workerCount = len(clubs)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
		byClub  = make(map[int64][]feed.RosterEntry, len(clubs))
		errs    []error
	)
	for _, club := range clubs {
		club := club
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			entries, err := s.feed.Roster(ctx, club.ID, season)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("fetch roster team_id=%d: %w", club.ID, err))
				return
			}
			byClub[club.ID] = entries
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit roster task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if len(errs) > 0 {
		return nil, stderrors.Join(errs...)
	}

	ids := make([]int64, 0, len(byClub))
	for id := range byClub {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]feed.RosterEntry, 0)
	for _, id := range ids {
		out = append(out, byClub[id]...)
	}
	return out, nil
}
