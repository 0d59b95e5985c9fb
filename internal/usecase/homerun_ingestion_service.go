package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/feed"
	"github.com/riskibarqy/homerun-derby/internal/domain/homerun"
	"github.com/riskibarqy/homerun-derby/internal/domain/scoring"
	"github.com/riskibarqy/homerun-derby/internal/domain/storage"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
	"github.com/riskibarqy/homerun-derby/internal/platform/metrics"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const defaultFetchConcurrency = 4

type HomeRunIngestionConfig struct {
	FetchConcurrency int
}

type IngestionSummary struct {
	From           time.Time
	To             time.Time
	Games          int
	FinalGames     int
	Events         int
	HomeRuns       int
	UnknownPlayers int
	Scoring        scoring.Summary
}

// HomeRunIngestionService copies final-game home runs from the feed into
// player_game_stats and rescores the same window.
type HomeRunIngestionService struct {
	tx          storage.Transactor
	repos       storage.Repositories
	feed        feed.Provider
	scoring     *ScoringService
	concurrency int
	metrics     *metrics.Manager
	logger      *logging.Logger
}

func NewHomeRunIngestionService(
	tx storage.Transactor,
	repos storage.Repositories,
	provider feed.Provider,
	scoringSvc *ScoringService,
	cfg HomeRunIngestionConfig,
	metricsManager *metrics.Manager,
	logger *logging.Logger,
) *HomeRunIngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = defaultFetchConcurrency
	}
	return &HomeRunIngestionService{
		tx:          tx,
		repos:       repos,
		feed:        provider,
		scoring:     scoringSvc,
		concurrency: cfg.FetchConcurrency,
		metrics:     metricsManager,
		logger:      logger,
	}
}

type gameLines struct {
	game  feed.Game
	lines []feed.BattingLine
}

// Run ingests [from, to]. Any feed error aborts the run before anything is
// written; the next run retries the same window.
func (s *HomeRunIngestionService) Run(ctx context.Context, from, to time.Time) (IngestionSummary, error) {
	from, to = calendar.Normalize(from), calendar.Normalize(to)
	ctx, span := startUsecaseSpan(ctx, "usecase.HomeRunIngestionService.Run",
		attribute.String("window.from", calendar.Format(from)),
		attribute.String("window.to", calendar.Format(to)),
	)
	defer span.End()

	if from.IsZero() || to.IsZero() || to.Before(from) {
		return IngestionSummary{}, fmt.Errorf("%w: invalid ingestion window %s..%s", ErrInvalidInput, calendar.Format(from), calendar.Format(to))
	}
	if s.feed == nil {
		return IngestionSummary{}, fmt.Errorf("%w: stats feed is not configured", ErrDependencyUnavailable)
	}

	summary := IngestionSummary{From: from, To: to}
	games, err := s.feed.Schedule(ctx, from, to)
	if err != nil {
		recordSpanError(span, err)
		return IngestionSummary{}, fmt.Errorf("fetch schedule: %w", err)
	}
	summary.Games = len(games)

	final := make([]feed.Game, 0, len(games))
	for _, g := range games {
		if g.IsFinal() {
			final = append(final, g)
		}
	}
	summary.FinalGames = len(final)

	boxscores, err := s.fetchBoxscores(ctx, final)
	if err != nil {
		recordSpanError(span, err)
		return IngestionSummary{}, err
	}

	known, err := s.playersByMLBID(ctx)
	if err != nil {
		recordSpanError(span, err)
		return IngestionSummary{}, err
	}

	events := make([]homerun.Event, 0)
	for _, box := range boxscores {
		for _, line := range box.lines {
			if line.HomeRuns <= 0 {
				continue
			}
			playerID, ok := known[line.PlayerMLBID]
			if !ok {
				summary.UnknownPlayers++
				continue
			}
			events = append(events, homerun.Event{
				PlayerID: playerID,
				GameID:   box.game.GamePK,
				Date:     box.game.OfficialDate,
				HomeRuns: line.HomeRuns,
			})
		}
	}
	homerun.Sort(events)
	summary.Events = len(events)
	summary.HomeRuns = homerun.Total(events)

	if len(events) > 0 {
		err = s.tx.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
			return repos.HomeRuns.UpsertEvents(ctx, events)
		})
		if err != nil {
			recordSpanError(span, err)
			return IngestionSummary{}, fmt.Errorf("upsert home runs: %w", err)
		}
	}
	s.metrics.AddHomeRunsIngested(summary.HomeRuns)

	scored, err := s.scoring.Recompute(ctx, from, to)
	if err != nil {
		recordSpanError(span, err)
		return IngestionSummary{}, err
	}
	summary.Scoring = scored

	s.logger.InfoContext(ctx, "home runs ingested",
		"from", calendar.Format(from),
		"to", calendar.Format(to),
		"games", summary.Games,
		"final_games", summary.FinalGames,
		"events", summary.Events,
		"home_runs", summary.HomeRuns,
		"unknown_players", summary.UnknownPlayers,
		"credits", scored.Credits,
	)
	return summary, nil
}

func (s *HomeRunIngestionService) fetchBoxscores(ctx context.Context, games []feed.Game) ([]gameLines, error) {
	if len(games) == 0 {
		return nil, nil
	}

	p := pool.NewWithResults[gameLines]().
		WithMaxGoroutines(s.concurrency).
		WithContext(ctx).
		WithCancelOnError()
	for _, g := range games {
		g := g
		p.Go(func(ctx context.Context) (gameLines, error) {
			lines, err := s.feed.Boxscore(ctx, g.GamePK)
			if err != nil {
				return gameLines{}, fmt.Errorf("fetch boxscore game_pk=%d: %w", g.GamePK, err)
			}
			return gameLines{game: g, lines: lines}, nil
		})
	}

	out, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].game.GamePK < out[j].game.GamePK })
	return out, nil
}

func (s *HomeRunIngestionService) playersByMLBID(ctx context.Context) (map[int64]int64, error) {
	players, err := s.repos.Players.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	out := make(map[int64]int64, len(players))
	for _, p := range players {
		out[p.MLBID] = p.ID
	}
	return out, nil
}
