package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/homerun"
	"github.com/riskibarqy/homerun-derby/internal/domain/scoring"
	"github.com/riskibarqy/homerun-derby/internal/domain/storage"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
	"github.com/riskibarqy/homerun-derby/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

// ScoringService rebuilds score credits from home-run events and the roster
// ledger. Credits in a range are always recomputed from scratch.
type ScoringService struct {
	tx      storage.Transactor
	metrics *metrics.Manager
	logger  *logging.Logger
}

func NewScoringService(tx storage.Transactor, metricsManager *metrics.Manager, logger *logging.Logger) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		tx:      tx,
		metrics: metricsManager,
		logger:  logger,
	}
}

// Recompute replaces every credit dated in [from, to] in one transaction.
// Running it twice over the same range leaves the same rows.
func (s *ScoringService) Recompute(ctx context.Context, from, to time.Time) (scoring.Summary, error) {
	from, to = calendar.Normalize(from), calendar.Normalize(to)
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Recompute",
		attribute.String("window.from", calendar.Format(from)),
		attribute.String("window.to", calendar.Format(to)),
	)
	defer span.End()

	if from.IsZero() || to.IsZero() {
		return scoring.Summary{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if to.Before(from) {
		return scoring.Summary{}, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidInput, calendar.Format(to), calendar.Format(from))
	}

	summary := scoring.Summary{From: from, To: to}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		deleted, err := repos.Credits.DeleteByDateRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("delete credits: %w", err)
		}
		summary.DeletedCredits = deleted

		events, err := repos.HomeRuns.ListByDateRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("list home runs: %w", err)
		}
		summary.Events = len(events)
		if len(events) == 0 {
			return nil
		}

		slots, err := repos.Slots.ListStartersOverlapping(ctx, eventPlayerIDs(events), from, to)
		if err != nil {
			return fmt.Errorf("list starter slots: %w", err)
		}

		credits := scoring.Attribute(events, slots)
		if err := repos.Credits.InsertCredits(ctx, credits); err != nil {
			return fmt.Errorf("insert credits: %w", err)
		}
		summary.Credits = len(credits)
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return scoring.Summary{}, fmt.Errorf("recompute %s..%s: %w", calendar.Format(from), calendar.Format(to), err)
	}

	s.metrics.AddCreditsWritten(summary.Credits)
	s.logger.InfoContext(ctx, "score credits recomputed",
		"from", calendar.Format(from),
		"to", calendar.Format(to),
		"deleted", summary.DeletedCredits,
		"events", summary.Events,
		"credits", summary.Credits,
	)
	return summary, nil
}

func eventPlayerIDs(events []homerun.Event) []int64 {
	seen := make(map[int64]struct{}, len(events))
	out := make([]int64, 0, len(events))
	for _, e := range events {
		if _, ok := seen[e.PlayerID]; ok {
			continue
		}
		seen[e.PlayerID] = struct{}{}
		out = append(out, e.PlayerID)
	}
	return out
}
